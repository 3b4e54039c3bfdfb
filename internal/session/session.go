package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/wordiz/internal/badges"
	"github.com/abhisek/wordiz/internal/catalog"
	"github.com/abhisek/wordiz/internal/goals"
	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/progress"
	"github.com/abhisek/wordiz/internal/spacedrep"
)

// ErrSessionDone is returned when answering after the last question.
var ErrSessionDone = errors.New("session has no more questions")

// Ledger is the learner state that an answer updates. The caller owns it
// and persists it afterwards.
type Ledger struct {
	Scheduler *spacedrep.Scheduler
	Stats     *progress.Stats
	Goals     *goals.State
}

// Session is one quiz in progress.
type Session struct {
	ID         string
	Mode       Mode
	Difficulty catalog.Difficulty
	Questions  []Question
	Results    []Result
	StartedAt  time.Time

	current int
}

// Result is the outcome of one answered question.
type Result struct {
	Question      Question
	Choice        string
	Correct       bool
	Latency       time.Duration
	Quality       spacedrep.Quality
	Record        spacedrep.ReviewRecord
	Points        int
	Transition    *mastery.StateTransition
	NewBadges     []badges.Badge
	LevelUp       bool
	Level         progress.Level
	Goal          goals.DayRecord
	GoalCompleted bool // the daily goal was reached by this answer
}

// New starts a session over questions.
func New(m Mode, d catalog.Difficulty, questions []Question, now time.Time) *Session {
	if !m.NeedsDifficulty() {
		d = ""
	}
	return &Session{
		ID:         uuid.New().String(),
		Mode:       m,
		Difficulty: d,
		Questions:  questions,
		StartedAt:  now,
	}
}

// PointsKey returns the key used for base points: the difficulty when the
// mode has one, otherwise the mode.
func (s *Session) PointsKey() string {
	if s.Difficulty != "" {
		return string(s.Difficulty)
	}
	return string(s.Mode)
}

// Current returns the question awaiting an answer, or nil when done.
func (s *Session) Current() *Question {
	if s.Done() {
		return nil
	}
	return &s.Questions[s.current]
}

// Position returns the 1-based index of the current question.
func (s *Session) Position() int {
	return s.current + 1
}

// Done reports whether every question has been answered.
func (s *Session) Done() bool {
	return s.current >= len(s.Questions)
}

// Answer records the learner's choice for the current question and
// applies it to l: the review schedule, aggregate stats and daily goal.
func (s *Session) Answer(l Ledger, choice string, latency time.Duration, now time.Time) (Result, error) {
	q := s.Current()
	if q == nil {
		return Result{}, ErrSessionDone
	}

	key := q.Item.Key()
	correct := q.IsCorrect(choice)
	res := Result{
		Question: *q,
		Choice:   choice,
		Correct:  correct,
		Latency:  latency,
		Quality:  spacedrep.QualityFromAnswer(correct, latency),
	}

	res.Record = l.Scheduler.Review(key, res.Quality, now)

	stats, out := progress.RecordAnswer(*l.Stats, progress.Answer{
		ItemKey:   key,
		Correct:   correct,
		PointsKey: s.PointsKey(),
		Mode:      string(s.Mode),
	}, now)
	*l.Stats = stats
	res.Points = out.Points
	res.Transition = out.Transition
	res.NewBadges = out.NewBadges
	res.LevelUp = out.LevelUp
	res.Level = out.Level

	wasComplete := l.Goals.Today(now).Completed
	res.Goal = l.Goals.UpdateProgress(now, 1, res.Points)
	res.GoalCompleted = !wasComplete && res.Goal.Completed

	s.Results = append(s.Results, res)
	s.current++
	return res, nil
}

// Summary is the end-of-quiz report.
type Summary struct {
	ID         string
	Mode       Mode
	Difficulty catalog.Difficulty
	Duration   time.Duration
	Total      int
	Correct    int
	Score      int
	Accuracy   float64
	Grade      string
	Words      []string
	Missed     []string
	NewBadges  []badges.Badge
}

// Summary builds the report for the answers given so far.
func (s *Session) Summary(now time.Time) Summary {
	sum := Summary{
		ID:         s.ID,
		Mode:       s.Mode,
		Difficulty: s.Difficulty,
		Duration:   now.Sub(s.StartedAt),
		Total:      len(s.Results),
	}
	for _, r := range s.Results {
		key := r.Question.Item.Key()
		sum.Words = append(sum.Words, key)
		sum.Score += r.Points
		sum.NewBadges = append(sum.NewBadges, r.NewBadges...)
		if r.Correct {
			sum.Correct++
		} else {
			sum.Missed = append(sum.Missed, key)
		}
	}
	if sum.Total > 0 {
		sum.Accuracy = float64(sum.Correct) / float64(sum.Total) * 100
	}
	sum.Grade = progress.Grade(sum.Accuracy)
	return sum
}
