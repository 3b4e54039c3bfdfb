package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordiz/internal/history"
)

func TestLoad_Defaults(t *testing.T) {
	s, _ := newTestStore(t, NewMemoryBackend())
	st := s.Load(context.Background())

	assert.Equal(t, CurrentVersion, st.Version)
	assert.Equal(t, DefaultSettings(), st.Settings)
	assert.Empty(t, st.ReviewRecords)
	assert.NotNil(t, st.ReviewRecords)
	assert.Equal(t, 1, st.ProgressStats.Level)
	assert.Equal(t, 1, st.StreakShields.Count)
	assert.Equal(t, testNow, st.CreatedAt)
}

func TestLoad_CorruptBlob(t *testing.T) {
	ctx := context.Background()
	for _, blob := range []string{`{"settings": {`, `null`, `[1,2,3]`, `"text"`} {
		t.Run(blob, func(t *testing.T) {
			b := NewMemoryBackend()
			require.NoError(t, b.Set(ctx, StorageKey, []byte(blob)))
			s, _ := newTestStore(t, b)

			st := s.Load(ctx)
			assert.Equal(t, DefaultState(testNow), st)

			_, err := b.Get(ctx, StorageKey)
			assert.True(t, errors.Is(err, ErrNotFound), "corrupt blob should be removed")
		})
	}
}

func TestLoad_BadSectionKeepsOthers(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	doc := `{
		"version": 2,
		"settings": {"darkMode": false},
		"progressStats": {"totalPoints": "lots"},
		"reviewRecords": {
			"Lucid": {"easeFactor": 2.1, "interval": 3, "repetitions": 2},
			"Broken": {"nextReviewAt": "yesterday"}
		}
	}`
	require.NoError(t, b.Set(ctx, StorageKey, []byte(doc)))
	s, _ := newTestStore(t, b)

	st := s.Load(ctx)
	assert.False(t, st.Settings.DarkMode)
	assert.True(t, st.Settings.SoundEnabled, "missing fields come from defaults")
	assert.Equal(t, 0, st.ProgressStats.TotalPoints)
	require.Contains(t, st.ReviewRecords, "Lucid")
	assert.Equal(t, "Lucid", st.ReviewRecords["Lucid"].ItemID)
	assert.InDelta(t, 2.1, st.ReviewRecords["Lucid"].EaseFactor, 1e-9)
	assert.NotContains(t, st.ReviewRecords, "Broken")
}

func TestSave_Debounced(t *testing.T) {
	ctx := context.Background()
	b := &countingBackend{MemoryBackend: NewMemoryBackend()}
	s, clock := newTestStore(t, b)

	st := s.Load(ctx)
	for i := range 3 {
		st.ProgressStats.TotalPoints = (i + 1) * 10
		assert.True(t, s.Save(st))
		clock.Advance(100 * time.Millisecond)
	}
	assert.Equal(t, 0, b.sets)
	assert.True(t, s.Pending())

	clock.Advance(199 * time.Millisecond)
	assert.Equal(t, 0, b.sets)
	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, b.sets)
	assert.False(t, s.Pending())

	raw, err := b.Get(ctx, StorageKey)
	require.NoError(t, err)
	var doc AppState
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, 30, doc.ProgressStats.TotalPoints)
	assert.Equal(t, testNow.Add(200*time.Millisecond), doc.UpdatedAt)
}

func TestSave_CacheIsSourceOfTruth(t *testing.T) {
	ctx := context.Background()
	b := &countingBackend{MemoryBackend: NewMemoryBackend()}
	s, _ := newTestStore(t, b)

	st := s.Load(ctx)
	st.Settings.FontSize = "large"
	s.Save(st)
	st.Settings.FontSize = "small"

	assert.Equal(t, "large", s.Load(ctx).Settings.FontSize)
	assert.Equal(t, 0, b.sets)
}

func TestFlushAndSaveSync(t *testing.T) {
	ctx := context.Background()
	b := &countingBackend{MemoryBackend: NewMemoryBackend()}
	s, clock := newTestStore(t, b)

	assert.True(t, s.Flush(ctx), "nothing pending")
	assert.Equal(t, 0, b.sets)

	s.Update(ctx, func(st *AppState) { st.ProgressStats.TotalPoints = 5 })
	assert.True(t, s.Flush(ctx))
	assert.Equal(t, 1, b.sets)
	clock.Advance(time.Second)
	assert.Equal(t, 1, b.sets, "flushed write must not fire again")

	st := s.Load(ctx)
	st.ProgressStats.TotalPoints = 7
	s.Save(st)
	assert.True(t, s.SaveSync(ctx, st))
	assert.Equal(t, 2, b.sets)
	clock.Advance(time.Second)
	assert.Equal(t, 2, b.sets)

	require.NoError(t, s.Close())
}

func TestUpdate_AppliesToLatest(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(t, NewMemoryBackend())

	s.Update(ctx, func(st *AppState) { st.ProgressStats.TotalPoints += 10 })
	s.Update(ctx, func(st *AppState) { st.ProgressStats.TotalPoints += 15 })
	clock.Advance(DefaultDebounce)

	reopened, _ := newTestStore(t, s.backend)
	assert.Equal(t, 25, reopened.Load(ctx).ProgressStats.TotalPoints)
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := NewMemoryBackend()
	s, _ := newTestStore(t, src)
	s.Update(ctx, func(st *AppState) { populate(st, testNow) })
	require.True(t, s.Flush(ctx))

	// Reload so the reference state has been through decoding.
	loaded, _ := newTestStore(t, src)
	want := loaded.Load(ctx)

	data, err := loaded.ExportJSON(ctx)
	require.NoError(t, err)

	var meta map[string]any
	require.NoError(t, json.Unmarshal(data, &meta))
	assert.Equal(t, DefaultAppVersion, meta["_appVersion"])
	assert.EqualValues(t, ExportVersion, meta["_exportVersion"])
	assert.Contains(t, meta, "_exportedAt")

	dst, _ := newTestStore(t, NewMemoryBackend())
	got, err := dst.ImportJSON(ctx, data)
	require.NoError(t, err)
	got.UpdatedAt = want.UpdatedAt
	assert.Equal(t, want, got)

	reloaded, _ := newTestStore(t, dst.backend)
	again := reloaded.Load(ctx)
	again.UpdatedAt = want.UpdatedAt
	assert.Equal(t, want, again)
	assert.NotContains(t, string(mustGet(t, dst.backend)), "_exportedAt")
}

func TestImport_Rejected(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		input  string
		reason ImportReason
	}{
		{"not json", `{"settings":`, ReasonInvalidJSON},
		{"empty", ``, ReasonInvalidJSON},
		{"array", `[{"settings":{}}]`, ReasonInvalidShape},
		{"no known section", `{"foo": 1, "progressStats": {}}`, ReasonInvalidShape},
		{"wrong section type", `{"settings": "dark"}`, ReasonInvalidShape},
		{"bookmarks not list", `{"bookmarks": {}}`, ReasonInvalidShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewMemoryBackend()
			s, _ := newTestStore(t, b)
			s.Update(ctx, func(st *AppState) { populate(st, testNow) })
			require.True(t, s.Flush(ctx))
			before := s.Load(ctx)
			stored := mustGet(t, b)

			_, err := s.ImportJSON(ctx, []byte(tt.input))
			var ie *ImportError
			require.True(t, errors.As(err, &ie), "got %v", err)
			assert.Equal(t, tt.reason, ie.Reason)
			assert.NotEmpty(t, ie.Error())

			assert.Equal(t, before, s.Load(ctx))
			assert.Equal(t, stored, mustGet(t, b))
		})
	}
}

func TestImport_WriteFailureLeavesState(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	s, _ := newTestStore(t, b)
	s.Update(ctx, func(st *AppState) { st.ProgressStats.TotalPoints = 42 })
	require.True(t, s.Flush(ctx))

	b.Quota = 10
	_, err := s.ImportJSON(ctx, []byte(`{"settings": {"darkMode": false}}`))
	var ie *ImportError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, ReasonWriteFailed, ie.Reason)
	assert.True(t, errors.Is(err, ErrQuotaExceeded))

	st := s.Load(ctx)
	assert.Equal(t, 42, st.ProgressStats.TotalPoints)
	assert.True(t, st.Settings.DarkMode)
}

func TestImport_V1Backup(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, NewMemoryBackend())
	backup := `{
		"version": 1,
		"srs": {"Lucid": {"wordId": "Lucid", "easeFactor": 2.36, "interval": 6, "repetitions": 2,
			"nextReviewDate": "2025-03-16T09:00:00.000Z", "lastReviewDate": "2025-03-10T09:00:00.000Z",
			"quality": 4, "totalReviews": 2, "correctCount": 2, "incorrectCount": 0, "history": []}},
		"stats": {"totalPoints": 250, "correctAnswers": 20, "totalAnswered": 25,
			"lastPlayedDate": "2025-03-09T20:00:00.000Z", "masteredWordsList": ["Lucid"]},
		"streakProtection": {"shields": 3, "lastUsed": null, "lastEarned": "2025-03-03T10:00:00.000Z", "totalUsed": 2},
		"quizHistory": [{"id": 1710000000000, "date": "2025-03-09T20:00:00.000Z", "mode": "vocab",
			"questionsTotal": 10, "questionsCorrect": 8, "score": 90, "accuracy": 80, "timeSpent": 120, "words": []}],
		"users": [], "onboarding": {"completed": true},
		"_exportedAt": "2025-03-10T00:00:00.000Z", "_appVersion": "VocabPro-v1", "_exportVersion": 1
	}`

	st, err := s.ImportJSON(ctx, []byte(backup))
	require.NoError(t, err)

	rec := st.ReviewRecords["Lucid"]
	assert.Equal(t, "Lucid", rec.ItemID)
	assert.Equal(t, 6, rec.Interval)
	require.NotNil(t, rec.NextReviewAt)
	assert.Equal(t, time.Date(2025, 3, 16, 9, 0, 0, 0, time.UTC), rec.NextReviewAt.UTC())

	assert.Equal(t, 250, st.ProgressStats.TotalPoints)
	assert.Equal(t, 3, st.ProgressStats.Level)
	assert.InDelta(t, 80.0, st.ProgressStats.AverageAccuracy, 1e-9)
	require.NotNil(t, st.ProgressStats.LastPlayedAt)
	assert.Equal(t, []string{"Lucid"}, st.ProgressStats.Mastered)
	assert.Equal(t, 1, st.ProgressStats.MasteredCount)

	assert.Equal(t, 3, st.StreakShields.Count)
	assert.Equal(t, 2, st.StreakShields.TotalUsed)
	require.NotNil(t, st.StreakShields.LastEarnedAt)

	require.Len(t, st.QuizHistory, 1)
	assert.Equal(t, "1710000000000", st.QuizHistory[0].ID)
	assert.Equal(t, CurrentVersion, st.Version)
}

func TestQuota_TrimAndRetry(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	s, _ := newTestStore(t, b)

	st := s.Load(ctx)
	for i := range history.MaxEntries {
		st.QuizHistory.Add(history.NewEntry(history.Quiz{
			Mode: "vocab", QuestionsTotal: 10, QuestionsCorrect: i % 10,
			Words: []string{strings.Repeat("w", 40), fmt.Sprint(i)},
		}, testNow.Add(-time.Duration(i)*time.Hour)))
	}
	for d := range 60 {
		st.DailyGoals.UpdateProgress(testNow.AddDate(0, 0, -d), 5, 50)
	}

	full, err := json.Marshal(st)
	require.NoError(t, err)
	trimmed := st.Clone()
	trimmed.QuizHistory.Trim(QuotaQuizHistory)
	trimmed.DailyGoals.Cleanup(testNow, QuotaGoalDays)
	small, err := json.Marshal(trimmed)
	require.NoError(t, err)
	require.Less(t, len(small)+200, len(full))

	b.Quota = len(small) + 100
	assert.True(t, s.SaveSync(ctx, st))
	assert.False(t, s.Degraded())

	got := s.Load(ctx)
	assert.Len(t, got.QuizHistory, QuotaQuizHistory)
	assert.Len(t, got.DailyGoals.History, QuotaGoalDays+1)
	assert.Equal(t, st.QuizHistory[0].ID, got.QuizHistory[0].ID, "newest entries are kept")
}

func TestQuota_DegradesToMemory(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	b.Quota = 64
	s, clock := newTestStore(t, b)

	s.Update(ctx, func(st *AppState) { st.ProgressStats.TotalPoints = 99 })
	clock.Advance(DefaultDebounce)

	assert.True(t, s.Degraded())
	assert.Equal(t, 99, s.Load(ctx).ProgressStats.TotalPoints)
	assert.False(t, s.SaveSync(ctx, s.Load(ctx)))
	assert.True(t, s.Info(ctx).Degraded)

	b.Quota = 0
	assert.True(t, s.SaveSync(ctx, s.Load(ctx)))
	assert.False(t, s.Degraded())
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	s, _ := newTestStore(t, b)
	s.Update(ctx, func(st *AppState) { populate(st, testNow) })
	require.NoError(t, b.Set(ctx, "vocabProWOTD", []byte(`"Lucid"`)))

	kept := s.Reset(ctx, false)
	assert.NotEmpty(t, kept.ReviewRecords)

	st := s.Reset(ctx, true)
	assert.Equal(t, DefaultState(testNow), st)
	assert.Equal(t, DefaultState(testNow), s.Load(ctx))
	assert.False(t, s.Pending())

	_, err := b.Get(ctx, "vocabProWOTD")
	assert.True(t, errors.Is(err, ErrNotFound))

	reopened, _ := newTestStore(t, b)
	assert.Empty(t, reopened.Load(ctx).ReviewRecords)
}

func TestInfo(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	s, _ := newTestStore(t, b)

	info := s.Info(ctx)
	assert.True(t, info.Available)
	assert.Zero(t, info.BytesUsed)

	s.Update(ctx, func(st *AppState) { populate(st, testNow) })
	require.True(t, s.Flush(ctx))
	info = s.Info(ctx)
	assert.Equal(t, StorageKey, info.StorageKey)
	assert.Equal(t, CurrentVersion, info.Version)
	assert.Equal(t, len(mustGet(t, b)), info.BytesUsed)
	assert.Equal(t, 2, info.ReviewRecords)
	assert.Equal(t, 1, info.Bookmarks)
	assert.Equal(t, 1, info.QuizHistory)
	assert.Equal(t, 2, info.DailyGoalHistory)
}

func mustGet(t *testing.T, b Backend) []byte {
	t.Helper()
	raw, err := b.Get(context.Background(), StorageKey)
	require.NoError(t, err)
	return raw
}
