package progress

import (
	"slices"
	"time"

	"github.com/abhisek/wordiz/internal/badges"
	"github.com/abhisek/wordiz/internal/mastery"
)

// Stats is the learner's aggregate progress. Level, the bucket counts and
// AverageAccuracy are derived and refreshed on every update.
type Stats struct {
	TotalPoints    int `json:"totalPoints"`
	CorrectAnswers int `json:"correctAnswers"`
	TotalAnswered  int `json:"totalAnswered"`
	CurrentStreak  int `json:"currentStreak"`
	MaxStreak      int `json:"maxStreak"`

	mastery.Lists
	MasteredCount   int `json:"masteredWords"`
	LearningCount   int `json:"learningWords"`
	StrugglingCount int `json:"strugglingWords"`

	Referrals       int      `json:"referrals"`
	ModesPlayedList []string `json:"modesPlayedList"`
	ModesPlayed     int      `json:"modesPlayed"`

	Level            int        `json:"level"`
	EarnedBadges     []string   `json:"earnedBadges"`
	LastPlayedAt     *time.Time `json:"lastPlayedAt"`
	TotalSessionTime int64      `json:"totalSessionTime"` // seconds
	AverageAccuracy  float64    `json:"averageAccuracy"`
}

// NewStats returns zeroed stats with empty, non-nil lists.
func NewStats() Stats {
	s := Stats{}
	s.Refresh()
	return s
}

// Answer is one answered question as seen by the aggregator.
type Answer struct {
	ItemKey string
	Correct bool
	// PointsKey selects the base points: the difficulty, or the mode for
	// modes without difficulties.
	PointsKey string
	Mode      string
}

// Outcome reports what a single answer changed.
type Outcome struct {
	Points     int
	Transition *mastery.StateTransition
	NewBadges  []badges.Badge
	LevelUp    bool
	Level      Level
}

// Accuracy returns the percentage of correct answers, 0 with no answers.
func (s Stats) Accuracy() float64 {
	if s.TotalAnswered == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.TotalAnswered) * 100
}

// Facts returns the badge-rule view of s.
func (s Stats) Facts() badges.Facts {
	return badges.Facts{
		CorrectAnswers: s.CorrectAnswers,
		TotalAnswered:  s.TotalAnswered,
		MaxStreak:      s.MaxStreak,
		TotalPoints:    s.TotalPoints,
		MasteredItems:  len(s.Mastered),
		Referrals:      s.Referrals,
		ModesPlayed:    len(s.ModesPlayedList),
	}
}

// Clone returns a deep copy of s.
func (s Stats) Clone() Stats {
	out := s
	out.Lists = s.Lists.Clone()
	out.ModesPlayedList = append([]string{}, s.ModesPlayedList...)
	out.EarnedBadges = append([]string{}, s.EarnedBadges...)
	if s.LastPlayedAt != nil {
		t := *s.LastPlayedAt
		out.LastPlayedAt = &t
	}
	return out
}

// Refresh recomputes every derived field from the primary ones.
func (s *Stats) Refresh() {
	s.Lists.Normalize()
	s.MasteredCount, s.LearningCount, s.StrugglingCount = s.Lists.Counts()
	if s.ModesPlayedList == nil {
		s.ModesPlayedList = []string{}
	}
	s.ModesPlayed = len(s.ModesPlayedList)
	s.Level = LevelFor(s.TotalPoints).Number
	s.AverageAccuracy = s.Accuracy()
	s.EarnedBadges = badges.Earned(s.Facts())
}

// RecordAnswer applies one answer and returns the updated stats. The
// input is not modified.
func RecordAnswer(s Stats, a Answer, now time.Time) (Stats, Outcome) {
	next := s.Clone()
	var out Outcome

	next.TotalAnswered++
	if a.Correct {
		next.CorrectAnswers++
		out.Points = Points(a.PointsKey, s.CurrentStreak)
		next.TotalPoints += out.Points
		next.CurrentStreak++
	} else {
		next.CurrentStreak = 0
	}
	next.MaxStreak = max(next.MaxStreak, next.CurrentStreak)

	if a.ItemKey != "" {
		out.Transition = next.Lists.Record(a.ItemKey, a.Correct)
	}
	if a.Mode != "" && !slices.Contains(next.ModesPlayedList, a.Mode) {
		next.ModesPlayedList = append(next.ModesPlayedList, a.Mode)
	}

	played := now
	next.LastPlayedAt = &played

	previous := s.EarnedBadges
	next.Refresh()
	out.NewBadges = badges.NewlyEarned(next.EarnedBadges, previous)
	out.Level = LevelFor(next.TotalPoints)
	out.LevelUp = out.Level.Number > LevelFor(s.TotalPoints).Number
	return next, out
}

// AddReferral records a successful referral.
func AddReferral(s Stats) (Stats, []badges.Badge) {
	next := s.Clone()
	next.Referrals++
	next.Refresh()
	return next, badges.NewlyEarned(next.EarnedBadges, s.EarnedBadges)
}

// AddSessionTime accumulates time spent in quizzes.
func AddSessionTime(s Stats, d time.Duration) Stats {
	next := s.Clone()
	next.TotalSessionTime += int64(d / time.Second)
	return next
}
