package spacedrep

import "time"

// HistoryEntry is one past review of an item.
type HistoryEntry struct {
	ReviewedAt time.Time `json:"date"`
	Quality    Quality   `json:"quality"`
	Interval   int       `json:"interval"`
	EaseFactor float64   `json:"easeFactor"`
}

// ReviewRecord holds the SM-2 state for a single item.
// CorrectCount + IncorrectCount always equals TotalReviews.
type ReviewRecord struct {
	ItemID         string         `json:"itemId"`
	EaseFactor     float64        `json:"easeFactor"`
	Interval       int            `json:"interval"`
	Repetitions    int            `json:"repetitions"`
	NextReviewAt   *time.Time     `json:"nextReviewAt"`
	LastReviewedAt *time.Time     `json:"lastReviewedAt"`
	TotalReviews   int            `json:"totalReviews"`
	CorrectCount   int            `json:"correctCount"`
	IncorrectCount int            `json:"incorrectCount"`
	History        []HistoryEntry `json:"history"`
}

// NewRecord returns the default record for an item that has never been reviewed.
func NewRecord(itemID string) ReviewRecord {
	return ReviewRecord{
		ItemID:     itemID,
		EaseFactor: DefaultEase,
		History:    []HistoryEntry{},
	}
}

// IsDue returns true if the item is due for review at now. A record
// without a scheduled review is always due.
func (r *ReviewRecord) IsDue(now time.Time) bool {
	return r.NextReviewAt == nil || !now.Before(*r.NextReviewAt)
}

// OverdueDays returns how many days past due the item is. Negative
// values mean the review is still in the future.
func (r *ReviewRecord) OverdueDays(now time.Time) float64 {
	if r.NextReviewAt == nil {
		return 0
	}
	return now.Sub(*r.NextReviewAt).Hours() / 24.0
}

// IsStruggling reports whether the learner misses the item at least
// half as often as they get it right.
func (r *ReviewRecord) IsStruggling() bool {
	return r.IncorrectCount > 0 && float64(r.IncorrectCount) >= float64(r.CorrectCount)*0.5
}

// Deficit is incorrect minus correct answers.
func (r *ReviewRecord) Deficit() int {
	return r.IncorrectCount - r.CorrectCount
}

// Accuracy returns the percentage of correct reviews, 0 when never reviewed.
func (r *ReviewRecord) Accuracy() float64 {
	if r.TotalReviews == 0 {
		return 0
	}
	return float64(r.CorrectCount) / float64(r.TotalReviews) * 100
}

// DaysUntilReview returns the whole days until the next review.
// Returns 0 if already due.
func (r *ReviewRecord) DaysUntilReview(now time.Time) int {
	if r.IsDue(now) {
		return 0
	}
	return int(r.NextReviewAt.Sub(now).Hours()/24.0) + 1
}

// Clone returns a deep copy of r.
func (r ReviewRecord) Clone() ReviewRecord {
	out := r
	if r.NextReviewAt != nil {
		t := *r.NextReviewAt
		out.NextReviewAt = &t
	}
	if r.LastReviewedAt != nil {
		t := *r.LastReviewedAt
		out.LastReviewedAt = &t
	}
	out.History = append([]HistoryEntry(nil), r.History...)
	if out.History == nil {
		out.History = []HistoryEntry{}
	}
	return out
}
