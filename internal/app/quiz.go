package app

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/wordiz/internal/catalog"
	"github.com/abhisek/wordiz/internal/history"
	"github.com/abhisek/wordiz/internal/progress"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/spacedrep"
	"github.com/abhisek/wordiz/internal/store"
)

// StartQuiz selects a practice set for mode and builds its questions.
// count <= 0 uses the configured quiz size.
func (a *App) StartQuiz(ctx context.Context, mode session.Mode, d catalog.Difficulty, count int) (*session.Session, error) {
	if mode.NeedsDifficulty() && !d.Valid() {
		return nil, fmt.Errorf("quiz mode %s needs a difficulty, got %q", mode, d)
	}
	if count <= 0 {
		count = a.quizSize
	}

	pool := session.Pool(a.catalog, mode, d)
	st := a.store.Load(ctx)
	now := a.now()

	selected := session.SelectPracticeSet(pool, count, spacedrep.NewScheduler(st.ReviewRecords), now, a.rng)
	questions := session.BuildQuestions(mode, selected, pool, a.rng)
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: mode %s, difficulty %q", ErrNoQuestions, mode, d)
	}
	if skipped := len(selected) - len(questions); skipped > 0 {
		a.logger.Debug("skipped items without a valid question", "mode", mode, "skipped", skipped)
	}

	s := session.New(mode, d, questions, now)
	a.logger.Debug("quiz started", "session", s.ID, "mode", mode, "difficulty", d, "questions", len(questions))
	return s, nil
}

// Answer grades the current question of s and records the result in the
// learner state.
func (a *App) Answer(ctx context.Context, s *session.Session, choice string, latency time.Duration) (session.Result, error) {
	if s.Done() {
		return session.Result{}, session.ErrSessionDone
	}

	var (
		res session.Result
		err error
	)
	a.store.Update(ctx, func(st *store.AppState) {
		ledger := session.Ledger{
			Scheduler: spacedrep.NewScheduler(st.ReviewRecords),
			Stats:     &st.ProgressStats,
			Goals:     &st.DailyGoals,
		}
		res, err = s.Answer(ledger, choice, latency, a.now())
	})
	if err != nil {
		return session.Result{}, err
	}

	if res.GoalCompleted {
		a.logger.Info("daily goal completed", "questions", res.Goal.QuestionsAnswered, "points", res.Goal.PointsEarned)
	}
	for _, b := range res.NewBadges {
		a.logger.Info("badge earned", "badge", b.ID)
	}
	return res, nil
}

// FinishQuiz records s in the quiz history, adds its duration to the
// session time and writes the state immediately.
func (a *App) FinishQuiz(ctx context.Context, s *session.Session) session.Summary {
	now := a.now()
	sum := s.Summary(now)
	if sum.Total == 0 {
		return sum
	}

	a.store.Update(ctx, func(st *store.AppState) {
		st.QuizHistory.Add(history.NewEntry(history.Quiz{
			Mode:             string(sum.Mode),
			Difficulty:       string(sum.Difficulty),
			QuestionsTotal:   sum.Total,
			QuestionsCorrect: sum.Correct,
			Score:            sum.Score,
			TimeSpent:        sum.Duration,
			Words:            sum.Words,
		}, now))
		st.ProgressStats = progress.AddSessionTime(st.ProgressStats, sum.Duration)
	})
	if !a.store.Flush(ctx) {
		a.logger.Warn("quiz result kept in memory only", "session", s.ID)
	}
	return sum
}
