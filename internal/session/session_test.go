package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordiz/internal/catalog"
	"github.com/abhisek/wordiz/internal/goals"
	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/progress"
	"github.com/abhisek/wordiz/internal/spacedrep"
)

func newLedger() (Ledger, *progress.Stats, *goals.State) {
	stats := progress.NewStats()
	g := goals.NewState()
	return Ledger{
		Scheduler: spacedrep.NewScheduler(nil),
		Stats:     &stats,
		Goals:     &g,
	}, &stats, &g
}

func fixedQuestions(items []catalog.Item) []Question {
	qs := make([]Question, len(items))
	for i, it := range items {
		v := it.(catalog.VocabItem)
		qs[i] = Question{
			Item:    it,
			Mode:    ModeVocab,
			Prompt:  v.Word,
			Options: []string{v.Definition, "wrong"},
			Answer:  v.Definition,
		}
	}
	return qs
}

func TestSession_AnswerUpdatesLedger(t *testing.T) {
	l, stats, _ := newLedger()
	s := New(ModeVocab, catalog.Medium, fixedQuestions(vocab("alpha", "beta")), now)

	res, err := s.Answer(l, "meaning of alpha", time.Second, now)
	require.NoError(t, err)

	assert.True(t, res.Correct)
	assert.Equal(t, spacedrep.QualityPerfect, res.Quality)
	assert.Equal(t, 1, res.Record.Interval)
	assert.Equal(t, 1, res.Record.Repetitions)
	require.NotNil(t, res.Record.NextReviewAt)
	assert.Equal(t, now.AddDate(0, 0, 1), *res.Record.NextReviewAt)

	assert.Equal(t, 15, res.Points)
	assert.Equal(t, 15, stats.TotalPoints)
	assert.Equal(t, 1, stats.CurrentStreak)
	require.NotNil(t, res.Transition)
	assert.Equal(t, mastery.StateLearning, res.Transition.To)
	assert.Equal(t, 1, res.Goal.QuestionsAnswered)
	assert.Equal(t, 15, res.Goal.PointsEarned)

	res, err = s.Answer(l, "wrong", 8*time.Second, now)
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, spacedrep.QualityWrong, res.Quality)
	assert.Equal(t, 0, res.Points)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 1, stats.MaxStreak)
	assert.Equal(t, 2, stats.TotalAnswered)

	rec := l.Scheduler.Record("beta")
	require.NotNil(t, rec)
	assert.Equal(t, 1, rec.IncorrectCount)
	assert.True(t, s.Done())
}

func TestSession_ErrSessionDone(t *testing.T) {
	l, _, _ := newLedger()
	s := New(ModeVocab, catalog.Easy, fixedQuestions(vocab("one")), now)
	_, err := s.Answer(l, "x", time.Second, now)
	require.NoError(t, err)

	_, err = s.Answer(l, "x", time.Second, now)
	assert.True(t, errors.Is(err, ErrSessionDone))
	assert.Nil(t, s.Current())
}

func TestSession_GoalCompletedOnce(t *testing.T) {
	l, _, g := newLedger()
	require.NoError(t, g.SetCustomGoal(2, 1000))
	s := New(ModeVocab, catalog.Easy, fixedQuestions(vocab("a", "b", "c")), now)

	var flags []bool
	for _, q := range s.Questions {
		res, err := s.Answer(l, q.Answer, 3*time.Second, now)
		require.NoError(t, err)
		flags = append(flags, res.GoalCompleted)
	}
	assert.Equal(t, []bool{false, true, false}, flags)
	assert.True(t, g.Today(now).Completed)
}

func TestSession_PointsKey(t *testing.T) {
	assert.Equal(t, "hard", New(ModeSynonym, catalog.Hard, nil, now).PointsKey())

	s := New(ModeAcronym, catalog.Hard, nil, now)
	assert.Equal(t, catalog.Difficulty(""), s.Difficulty)
	assert.Equal(t, "acronym", s.PointsKey())
}

func TestSession_Summary(t *testing.T) {
	l, _, _ := newLedger()
	s := New(ModeVocab, catalog.Easy, fixedQuestions(vocab("a", "b", "c", "d")), now)

	choices := []string{"meaning of a", "meaning of b", "wrong", "meaning of d"}
	for _, c := range choices {
		_, err := s.Answer(l, c, 2*time.Second, now)
		require.NoError(t, err)
	}

	sum := s.Summary(now.Add(90 * time.Second))
	assert.Equal(t, 4, sum.Total)
	assert.Equal(t, 3, sum.Correct)
	assert.InDelta(t, 75.0, sum.Accuracy, 0.001)
	assert.Equal(t, 90*time.Second, sum.Duration)
	assert.Equal(t, []string{"a", "b", "c", "d"}, sum.Words)
	assert.Equal(t, []string{"c"}, sum.Missed)
	// 10 + 11, then a miss resets the streak, then 10.
	assert.Equal(t, 31, sum.Score)
	assert.NotEmpty(t, sum.NewBadges)
}
