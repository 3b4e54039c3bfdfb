package spacedrep

import (
	"math"
	"testing"
	"time"
)

func recordDue(at time.Time, correct, incorrect int) *ReviewRecord {
	r := NewRecord("x")
	r.NextReviewAt = &at
	r.CorrectCount = correct
	r.IncorrectCount = incorrect
	r.TotalReviews = correct + incorrect
	return &r
}

func TestDueScore(t *testing.T) {
	now := t0
	tests := []struct {
		name string
		rec  *ReviewRecord
		want float64
	}{
		{"novel", nil, 100},
		{"due exactly now", recordDue(now, 3, 0), 50},
		{"two days overdue", recordDue(now.AddDate(0, 0, -2), 3, 0), 60},
		{"overdue bonus capped", recordDue(now.AddDate(0, 0, -30), 3, 0), 100},
		{"due in five days", recordDue(now.AddDate(0, 0, 5), 3, 0), 40},
		{"far future floors at zero", recordDue(now.AddDate(0, 0, 60), 3, 0), 0},
		{"struggling bonus on tie", recordDue(now, 2, 2), 70},
		{"struggling bonus", recordDue(now.AddDate(0, 0, 5), 1, 3), 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DueScore(tt.rec, now)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DueScore() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestDueScore_UnscheduledRecordIsDue(t *testing.T) {
	r := NewRecord("x")
	r.CorrectCount, r.TotalReviews = 1, 1
	if got := DueScore(&r, t0); got != DueBase {
		t.Errorf("DueScore() = %f, want %f", got, DueBase)
	}
}
