package spacedrep

import (
	"math"
	"time"
)

// Quality is the SM-2 recall rating, 0 (blackout) to 5 (perfect).
type Quality int

const (
	QualityBlackout  Quality = 0
	QualityWrong     Quality = 1
	QualityHard      Quality = 2
	QualityDifficult Quality = 3
	QualityGood      Quality = 4
	QualityPerfect   Quality = 5
)

// Ease factor bounds.
const (
	MinEase     = 1.3
	MaxEase     = 2.5
	DefaultEase = 2.5
)

// MaxHistory is the number of review events kept per record.
const MaxHistory = 20

// Latency thresholds used to grade correct answers.
const (
	FastAnswer   = 2000 * time.Millisecond
	MediumAnswer = 5000 * time.Millisecond
)

// QualityFromAnswer grades an answer by correctness and response time.
// A non-positive latency means the time is unknown.
func QualityFromAnswer(correct bool, latency time.Duration) Quality {
	switch {
	case !correct:
		return QualityWrong
	case latency <= 0:
		return QualityDifficult
	case latency < FastAnswer:
		return QualityPerfect
	case latency < MediumAnswer:
		return QualityGood
	default:
		return QualityDifficult
	}
}

// Success reports whether q counts as a successful recall.
func (q Quality) Success() bool {
	return q >= QualityDifficult
}

// Update applies one review with quality q at now and returns the new
// record. The input record is not modified.
func Update(r ReviewRecord, q Quality, now time.Time) ReviewRecord {
	q = min(max(q, QualityBlackout), QualityPerfect)
	next := r.Clone()
	if next.EaseFactor == 0 {
		next.EaseFactor = DefaultEase
	}

	next.TotalReviews++
	reviewedAt := now
	next.LastReviewedAt = &reviewedAt

	if q.Success() {
		next.CorrectCount++
		switch next.Repetitions {
		case 0:
			next.Interval = 1
		case 1:
			next.Interval = 3
		default:
			next.Interval = int(math.Round(float64(next.Interval) * next.EaseFactor))
		}
		next.Repetitions++
	} else {
		next.IncorrectCount++
		next.Repetitions = 0
		next.Interval = 0
	}

	next.EaseFactor = adjustEase(next.EaseFactor, q)

	due := now.AddDate(0, 0, next.Interval)
	next.NextReviewAt = &due

	next.History = append(next.History, HistoryEntry{
		ReviewedAt: now,
		Quality:    q,
		Interval:   next.Interval,
		EaseFactor: next.EaseFactor,
	})
	if len(next.History) > MaxHistory {
		next.History = append([]HistoryEntry(nil), next.History[len(next.History)-MaxHistory:]...)
	}
	return next
}

func adjustEase(ease float64, q Quality) float64 {
	d := float64(QualityPerfect - q)
	return clampEase(ease + (0.1 - d*(0.08+d*0.02)))
}

func clampEase(ease float64) float64 {
	return math.Max(MinEase, math.Min(MaxEase, ease))
}
