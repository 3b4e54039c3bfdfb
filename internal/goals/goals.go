package goals

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"time"
)

// ErrUnknownPreset is returned when selecting a preset that does not exist.
var ErrUnknownPreset = errors.New("unknown goal preset")

// Goal is a daily target. The day counts as complete when either the
// question or the points target is reached.
type Goal struct {
	Questions int    `json:"questions"`
	Points    int    `json:"points"`
	Name      string `json:"name"`
}

// Preset names a built-in goal.
type Preset string

const (
	PresetCasual  Preset = "casual"
	PresetRegular Preset = "regular"
	PresetSerious Preset = "serious"
	PresetIntense Preset = "intense"
)

// DefaultPreset is used for new learners and unknown preset names.
const DefaultPreset = PresetRegular

var presets = map[Preset]Goal{
	PresetCasual:  {Questions: 10, Points: 100, Name: "Casual Learner"},
	PresetRegular: {Questions: 25, Points: 250, Name: "Regular Practice"},
	PresetSerious: {Questions: 50, Points: 500, Name: "Serious Study"},
	PresetIntense: {Questions: 100, Points: 1000, Name: "Intense Training"},
}

// AllPresets returns the presets from easiest to hardest.
func AllPresets() []Preset {
	return []Preset{PresetCasual, PresetRegular, PresetSerious, PresetIntense}
}

// Goal returns the preset's target.
func (p Preset) Goal() (Goal, bool) {
	g, ok := presets[p]
	return g, ok
}

// HistoryRetentionDays is how long day records are kept by Cleanup.
const HistoryRetentionDays = 30

// DayRecord is the learner's activity on one calendar day.
type DayRecord struct {
	QuestionsAnswered int        `json:"questionsAnswered"`
	PointsEarned      int        `json:"pointsEarned"`
	StartedAt         *time.Time `json:"startTime,omitempty"`
	Completed         bool       `json:"completed"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
}

// State is the goal configuration and per-day history.
type State struct {
	GoalPreset Preset               `json:"goalPreset"`
	CustomGoal *Goal                `json:"customGoal"`
	History    map[string]DayRecord `json:"history"`
}

// NewState returns the default goal state.
func NewState() State {
	return State{GoalPreset: DefaultPreset, History: make(map[string]DayRecord)}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	if s.CustomGoal != nil {
		g := *s.CustomGoal
		out.CustomGoal = &g
	}
	out.History = make(map[string]DayRecord, len(s.History))
	maps.Copy(out.History, s.History)
	return out
}

// Normalize rewrites legacy day keys into DayLayout and drops keys that
// are not dates. Records colliding on the same day are summed.
func (s *State) Normalize(loc *time.Location) {
	if _, ok := presets[s.GoalPreset]; !ok {
		s.GoalPreset = DefaultPreset
	}
	if s.CustomGoal != nil && (s.CustomGoal.Questions <= 0 || s.CustomGoal.Points <= 0) {
		s.CustomGoal = nil
	}
	history := make(map[string]DayRecord, len(s.History))
	for key, rec := range s.History {
		day, ok := ParseDayKey(key, loc)
		if !ok {
			continue
		}
		k := DayKey(day)
		if prev, dup := history[k]; dup {
			rec.QuestionsAnswered += prev.QuestionsAnswered
			rec.PointsEarned += prev.PointsEarned
			rec.Completed = rec.Completed || prev.Completed
			if rec.CompletedAt == nil {
				rec.CompletedAt = prev.CompletedAt
			}
		}
		history[k] = rec
	}
	s.History = history
}

// Goal returns the active goal: the custom goal if set, else the preset.
func (s State) Goal() Goal {
	if s.CustomGoal != nil {
		return *s.CustomGoal
	}
	if g, ok := presets[s.GoalPreset]; ok {
		return g
	}
	return presets[DefaultPreset]
}

// SetPreset selects a preset and clears any custom goal.
func (s *State) SetPreset(p Preset) error {
	if _, ok := presets[p]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, p)
	}
	s.GoalPreset = p
	s.CustomGoal = nil
	return nil
}

// SetCustomGoal sets a custom target. Both values must be positive.
func (s *State) SetCustomGoal(questions, points int) error {
	if questions <= 0 || points <= 0 {
		return fmt.Errorf("custom goal needs positive targets, got %d questions and %d points", questions, points)
	}
	s.CustomGoal = &Goal{Questions: questions, Points: points, Name: "Custom Goal"}
	return nil
}

// Today returns the record for now's day, zero if there is none.
func (s State) Today(now time.Time) DayRecord {
	return s.History[DayKey(now)]
}

// UpdateProgress adds activity to now's day, creating the record on first
// use. CompletedAt is stamped only the first time the goal is reached.
func (s *State) UpdateProgress(now time.Time, questions, points int) DayRecord {
	if s.History == nil {
		s.History = make(map[string]DayRecord)
	}
	key := DayKey(now)
	rec, ok := s.History[key]
	if !ok {
		started := now
		rec.StartedAt = &started
	}

	rec.QuestionsAnswered += questions
	rec.PointsEarned += points

	g := s.Goal()
	if !rec.Completed && (rec.QuestionsAnswered >= g.Questions || rec.PointsEarned >= g.Points) {
		completed := now
		rec.Completed = true
		rec.CompletedAt = &completed
	}
	s.History[key] = rec
	return rec
}

// ProgressPercent returns the better of question and points progress
// toward today's goal, capped at 100.
func (s State) ProgressPercent(now time.Time) float64 {
	rec := s.Today(now)
	g := s.Goal()
	q := float64(rec.QuestionsAnswered) / float64(g.Questions) * 100
	p := float64(rec.PointsEarned) / float64(g.Points) * 100
	return math.Min(100, math.Max(q, p))
}

// maxStreakDays bounds the streak walk.
const maxStreakDays = 365

// StreakLength counts consecutive completed days ending today. Today
// itself may still be incomplete. Days in bridged were covered by a streak
// shield: they keep the run alive but do not add to it.
func (s State) StreakLength(today time.Time, bridged []string) int {
	covered := make(map[string]bool, len(bridged))
	for _, d := range bridged {
		covered[d] = true
	}

	streak := 0
	day := startOfDay(today)
	for i := 0; i <= maxStreakDays; i++ {
		key := DayKey(day.AddDate(0, 0, -i))
		switch {
		case s.History[key].Completed:
			streak++
		case covered[key], i == 0:
		default:
			return streak
		}
	}
	return streak
}

// LastCompletedBefore returns the most recent completed day strictly
// before today within the streak window.
func (s State) LastCompletedBefore(today time.Time) (time.Time, bool) {
	day := startOfDay(today)
	for i := 1; i <= maxStreakDays; i++ {
		d := day.AddDate(0, 0, -i)
		if s.History[DayKey(d)].Completed {
			return d, true
		}
	}
	return time.Time{}, false
}

// DayView is one day of the weekly history.
type DayView struct {
	Date time.Time
	DayRecord
}

// DayName returns the short weekday name.
func (d DayView) DayName() string {
	return d.Date.Format("Mon")
}

// WeekHistory returns the last seven days ending today, oldest first.
// Days without activity are zero records.
func (s State) WeekHistory(today time.Time) []DayView {
	day := startOfDay(today)
	out := make([]DayView, 0, 7)
	for i := 6; i >= 0; i-- {
		d := day.AddDate(0, 0, -i)
		out = append(out, DayView{Date: d, DayRecord: s.History[DayKey(d)]})
	}
	return out
}

// Cleanup removes day records older than keepDays before now and returns
// how many were removed.
func (s *State) Cleanup(now time.Time, keepDays int) int {
	cutoff := startOfDay(now).AddDate(0, 0, -keepDays)
	removed := 0
	for key := range s.History {
		day, ok := ParseDayKey(key, now.Location())
		if !ok || day.Before(cutoff) {
			delete(s.History, key)
			removed++
		}
	}
	return removed
}
