package spacedrep

import (
	"sort"
	"time"
)

// Scheduler manages review records for all items a learner has practiced.
// It operates on the record map it was given, so the owner of that map
// sees every update.
type Scheduler struct {
	records map[string]ReviewRecord
}

// NewScheduler creates a scheduler over records. A nil map starts empty.
func NewScheduler(records map[string]ReviewRecord) *Scheduler {
	if records == nil {
		records = make(map[string]ReviewRecord)
	}
	return &Scheduler{records: records}
}

// Records returns the underlying record map.
func (s *Scheduler) Records() map[string]ReviewRecord {
	return s.records
}

// Record returns the review record for an item, or nil if it has never
// been reviewed. The returned value is a copy.
func (s *Scheduler) Record(itemID string) *ReviewRecord {
	r, ok := s.records[itemID]
	if !ok {
		return nil
	}
	c := r.Clone()
	return &c
}

// RecordAnswer grades an answer and updates the item's schedule.
func (s *Scheduler) RecordAnswer(itemID string, correct bool, latency time.Duration, now time.Time) ReviewRecord {
	return s.Review(itemID, QualityFromAnswer(correct, latency), now)
}

// Review applies a review with an explicit quality, creating the record
// on first review.
func (s *Scheduler) Review(itemID string, q Quality, now time.Time) ReviewRecord {
	r, ok := s.records[itemID]
	if !ok {
		r = NewRecord(itemID)
	}
	next := Update(r, q, now)
	s.records[itemID] = next
	return next
}

// DueItems returns reviewed items that are due at now, most overdue first.
func (s *Scheduler) DueItems(now time.Time) []string {
	type dueItem struct {
		id      string
		overdue float64
	}
	var due []dueItem
	for id, r := range s.records {
		if r.IsDue(now) {
			due = append(due, dueItem{id: id, overdue: r.OverdueDays(now)})
		}
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].overdue != due[j].overdue {
			return due[i].overdue > due[j].overdue
		}
		return due[i].id < due[j].id
	})

	ids := make([]string, len(due))
	for i, d := range due {
		ids[i] = d.id
	}
	return ids
}

// ResetItem restores an item's record to its defaults. Returns false if
// the item has no record.
func (s *Scheduler) ResetItem(itemID string) bool {
	if _, ok := s.records[itemID]; !ok {
		return false
	}
	s.records[itemID] = NewRecord(itemID)
	return true
}

// Stats summarizes the review records.
type Stats struct {
	TotalItems   int     `json:"totalWords"`
	Mastered     int     `json:"masteredWords"`
	Learning     int     `json:"learningWords"`
	New          int     `json:"newWords"`
	DueToday     int     `json:"dueToday"`
	AverageEase  float64 `json:"averageEase"`
	TotalReviews int     `json:"totalReviews"`
}

// MasteredRepetitions is the repetition count at which an item counts as
// mastered in review statistics.
const MasteredRepetitions = 5

// Stats computes review statistics at now. Items count as due today when
// their review date is at or before the start of now's day.
func (s *Scheduler) Stats(now time.Time) Stats {
	st := Stats{TotalItems: len(s.records), AverageEase: DefaultEase}
	if len(s.records) == 0 {
		return st
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	var easeSum float64
	for _, r := range s.records {
		switch {
		case r.Repetitions >= MasteredRepetitions:
			st.Mastered++
		case r.Repetitions > 0:
			st.Learning++
		default:
			st.New++
		}
		if r.NextReviewAt == nil || !r.NextReviewAt.After(today) {
			st.DueToday++
		}
		easeSum += r.EaseFactor
		st.TotalReviews += r.TotalReviews
	}
	st.AverageEase = easeSum / float64(len(s.records))
	return st
}
