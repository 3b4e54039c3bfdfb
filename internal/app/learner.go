package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/abhisek/wordiz/internal/badges"
	"github.com/abhisek/wordiz/internal/bookmarks"
	"github.com/abhisek/wordiz/internal/catalog"
	"github.com/abhisek/wordiz/internal/goals"
	"github.com/abhisek/wordiz/internal/history"
	"github.com/abhisek/wordiz/internal/progress"
	"github.com/abhisek/wordiz/internal/spacedrep"
	"github.com/abhisek/wordiz/internal/store"
)

// Report is the learner's progress overview.
type Report struct {
	Stats   progress.Stats
	Level   progress.LevelProgress
	Review  spacedrep.Stats
	Quizzes history.Summary
	Badges  []badges.Badge
}

// Report summarizes the learner's progress.
func (a *App) Report(ctx context.Context) Report {
	st := a.store.Load(ctx)
	now := a.now()

	r := Report{
		Stats:   st.ProgressStats,
		Level:   progress.ProgressFor(st.ProgressStats.TotalPoints),
		Review:  spacedrep.NewScheduler(st.ReviewRecords).Stats(now),
		Quizzes: st.QuizHistory.Summarize(now),
	}
	for _, id := range st.ProgressStats.EarnedBadges {
		if b, ok := badges.Lookup(id); ok {
			r.Badges = append(r.Badges, b)
		}
	}
	return r
}

// DueItem is a reviewed item whose next review has arrived.
type DueItem struct {
	Ref    catalog.Ref
	Record spacedrep.ReviewRecord
}

// Due returns up to limit due items, most overdue first. Items no longer
// in the catalog are skipped. limit <= 0 returns all.
func (a *App) Due(ctx context.Context, limit int) []DueItem {
	st := a.store.Load(ctx)
	sched := spacedrep.NewScheduler(st.ReviewRecords)

	var out []DueItem
	for _, id := range sched.DueItems(a.now()) {
		item, ok := a.catalog.Lookup(id)
		if !ok {
			continue
		}
		out = append(out, DueItem{Ref: catalog.RefOf(item), Record: *sched.Record(id)})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// ResetItem forgets the review schedule of key.
func (a *App) ResetItem(ctx context.Context, key string) bool {
	var ok bool
	a.store.Update(ctx, func(st *store.AppState) {
		ok = spacedrep.NewScheduler(st.ReviewRecords).ResetItem(key)
	})
	return ok
}

// AddBookmark saves a catalog item. It reports false if already saved.
func (a *App) AddBookmark(ctx context.Context, key string) (bool, error) {
	item, ok := a.catalog.Lookup(key)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownItem, key)
	}
	var added bool
	a.store.Update(ctx, func(st *store.AppState) {
		added = st.Bookmarks.Add(catalog.RefOf(item), string(item.Kind()), a.now())
	})
	return added, nil
}

// RemoveBookmark deletes a bookmark. It reports false if none existed.
func (a *App) RemoveBookmark(ctx context.Context, key string) bool {
	var removed bool
	a.store.Update(ctx, func(st *store.AppState) {
		removed = st.Bookmarks.Remove(key)
	})
	return removed
}

// ToggleBookmark adds or removes key and reports whether it is now saved.
func (a *App) ToggleBookmark(ctx context.Context, key string) (bool, error) {
	item, ok := a.catalog.Lookup(key)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownItem, key)
	}
	var saved bool
	a.store.Update(ctx, func(st *store.AppState) {
		saved = st.Bookmarks.Toggle(catalog.RefOf(item), string(item.Kind()), a.now())
	})
	return saved, nil
}

// SetBookmarkNote attaches notes to a saved item.
func (a *App) SetBookmarkNote(ctx context.Context, key, notes string) bool {
	var ok bool
	a.store.Update(ctx, func(st *store.AppState) {
		ok = st.Bookmarks.SetNotes(key, notes)
	})
	return ok
}

// Bookmarks returns the saved items in the order they were added.
func (a *App) Bookmarks(ctx context.Context) bookmarks.List {
	return a.store.Load(ctx).Bookmarks
}

// GoalStatus is today's goal progress and the recent streak.
type GoalStatus struct {
	Goal    goals.Goal
	Preset  goals.Preset
	Custom  bool
	Today   goals.DayRecord
	Percent float64
	Week    []goals.DayView
	Streak  StreakReport
}

// Goal reports the daily goal and streak.
func (a *App) Goal(ctx context.Context) GoalStatus {
	streak := a.Streak(ctx)
	st := a.store.Load(ctx)
	now := a.now()
	return GoalStatus{
		Goal:    st.DailyGoals.Goal(),
		Preset:  st.DailyGoals.GoalPreset,
		Custom:  st.DailyGoals.CustomGoal != nil,
		Today:   st.DailyGoals.Today(now),
		Percent: st.DailyGoals.ProgressPercent(now),
		Week:    st.DailyGoals.WeekHistory(now),
		Streak:  streak,
	}
}

// SetGoalPreset selects a built-in daily goal.
func (a *App) SetGoalPreset(ctx context.Context, name string) error {
	var err error
	a.store.Update(ctx, func(st *store.AppState) {
		if err = st.DailyGoals.SetPreset(goals.Preset(name)); err == nil {
			st.Settings.DailyGoalPreset = name
		}
	})
	return err
}

// SetCustomGoal sets a custom daily goal.
func (a *App) SetCustomGoal(ctx context.Context, questions, points int) error {
	var err error
	a.store.Update(ctx, func(st *store.AppState) {
		err = st.DailyGoals.SetCustomGoal(questions, points)
	})
	return err
}

// StreakReport describes the goal streak and shield balance.
type StreakReport struct {
	Length  int
	Status  goals.StreakStatus
	Shields int
	Earned  int // shields granted by this check
}

// Streak grants any shields earned since the last check, drops stale
// protection records and reports the streak.
func (a *App) Streak(ctx context.Context) StreakReport {
	var r StreakReport
	a.store.Update(ctx, func(st *store.AppState) {
		now := a.now()
		r.Earned = st.StreakShields.Accrue(now)
		st.StreakShields.Prune(now, goals.HistoryRetentionDays)
		r.Status = st.StreakShields.Check(lastActive(st.DailyGoals, now), now)
		r.Length = st.DailyGoals.StreakLength(now, st.StreakShields.ProtectedDays)
		r.Shields = st.StreakShields.Count
	})
	if r.Earned > 0 {
		a.logger.Info("streak shield earned", "earned", r.Earned, "shields", r.Shields)
	}
	return r
}

// ProtectStreak spends a shield to cover yesterday when it was the only
// missed day. It reports whether a shield was spent.
func (a *App) ProtectStreak(ctx context.Context) bool {
	var ok bool
	a.store.Update(ctx, func(st *store.AppState) {
		now := a.now()
		if last := lastActive(st.DailyGoals, now); last != nil {
			ok = st.StreakShields.Protect(*last, now)
		}
	})
	return ok
}

func lastActive(g goals.State, now time.Time) *time.Time {
	if g.Today(now).Completed {
		return &now
	}
	if d, ok := g.LastCompletedBefore(now); ok {
		return &d
	}
	return nil
}

// History returns up to n most recent quizzes, newest first.
func (a *App) History(ctx context.Context, n int) history.List {
	return a.store.Load(ctx).QuizHistory.Recent(n)
}

// ModeBreakdown returns per-mode quiz tallies sorted by mode name.
func (a *App) ModeBreakdown(ctx context.Context) []ModeTally {
	sum := a.store.Load(ctx).QuizHistory.Summarize(a.now())
	out := make([]ModeTally, 0, len(sum.ByMode))
	for mode, t := range sum.ByMode {
		out = append(out, ModeTally{Mode: mode, Tally: t})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Mode < out[j].Mode })
	return out
}

// ModeTally is the quiz tally for one mode.
type ModeTally struct {
	Mode string
	history.Tally
}
