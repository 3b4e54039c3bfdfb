package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/abhisek/wordiz/internal/catalog"
	"github.com/abhisek/wordiz/internal/goals"
	"github.com/abhisek/wordiz/internal/history"
	"github.com/abhisek/wordiz/internal/progress"
	"github.com/abhisek/wordiz/internal/spacedrep"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fakeTimer struct {
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// fakeClock fires timers synchronously from Advance.
type fakeClock struct {
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock { return &fakeClock{now: testNow} }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			t.f()
		}
	}
}

// countingBackend counts writes to the state key.
type countingBackend struct {
	*MemoryBackend
	sets int
}

func (b *countingBackend) Set(ctx context.Context, key string, value []byte) error {
	if key == StorageKey {
		b.sets++
	}
	return b.MemoryBackend.Set(ctx, key, value)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T, b Backend) (*Store, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	s := New(b,
		WithClock(clock),
		WithLogger(quietLogger()),
		WithLocation(time.UTC),
	)
	return s, clock
}

// populate fills st with activity in every section.
func populate(st *AppState, now time.Time) {
	sched := spacedrep.NewScheduler(st.ReviewRecords)
	sched.Review("Lucid", spacedrep.QualityPerfect, now)
	sched.Review("Lucid", spacedrep.QualityGood, now.Add(time.Hour))
	sched.Review("Ephemeral", spacedrep.QualityWrong, now)

	stats := st.ProgressStats
	for i, correct := range []bool{true, true, false, true} {
		stats, _ = progress.RecordAnswer(stats, progress.Answer{
			ItemKey:   fmt.Sprintf("word%d", i%2),
			Correct:   correct,
			PointsKey: "medium",
			Mode:      "vocab",
		}, now)
	}
	st.ProgressStats = stats

	st.DailyGoals.UpdateProgress(now, 4, 45)
	st.DailyGoals.UpdateProgress(now.AddDate(0, 0, -1), 30, 300)

	st.Bookmarks.Add(catalog.Ref{Key: "Lucid", Kind: catalog.KindVocab, Difficulty: catalog.Medium, Prompt: "Lucid", Answer: "clear"}, "vocab", now)
	st.QuizHistory.Add(history.NewEntry(history.Quiz{
		Mode: "vocab", Difficulty: "medium",
		QuestionsTotal: 4, QuestionsCorrect: 3, Score: 45,
		TimeSpent: 80 * time.Second, Words: []string{"word0", "word1"},
	}, now))

	st.StreakShields.Accrue(now)
	st.Settings.DarkMode = false
	_ = st.DailyGoals.SetPreset(goals.PresetSerious)
}
