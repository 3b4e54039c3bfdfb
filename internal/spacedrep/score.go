package spacedrep

import (
	"math"
	"time"
)

// Due score weights.
const (
	NovelScore      = 100.0
	DueBase         = 50.0
	OverdueRate     = 5.0
	MaxOverdueBonus = 50.0
	UpcomingRate    = 2.0
	StrugglingBonus = 20.0
)

// DueScore ranks an item for practice; higher means more urgent. A nil
// record is a novel item.
func DueScore(r *ReviewRecord, now time.Time) float64 {
	if r == nil {
		return NovelScore
	}

	days := r.OverdueDays(now)
	var score float64
	if days >= 0 {
		score = DueBase + math.Min(days*OverdueRate, MaxOverdueBonus)
	} else {
		score = math.Max(0, DueBase+days*UpcomingRate)
	}

	if r.IncorrectCount >= r.CorrectCount {
		score += StrugglingBonus
	}
	return score
}
