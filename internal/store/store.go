// Package store persists the learner's AppState as one versioned JSON
// document in a key-value Backend. Writes go through a debounced buffer;
// the in-memory copy is the source of truth between writes.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/wordiz/internal/goals"
)

// DefaultDebounce is how long Save waits for further changes before writing.
const DefaultDebounce = 300 * time.Millisecond

// Limits applied when a write exceeds the backend's capacity.
const (
	QuotaQuizHistory = 20
	QuotaGoalDays    = goals.HistoryRetentionDays
)

// Store loads and saves the learner's state.
type Store struct {
	backend    Backend
	clock      Clock
	logger     *slog.Logger
	debounce   time.Duration
	loc        *time.Location
	appVersion string

	mu       sync.Mutex
	cache    *AppState
	pending  Timer
	degraded bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for timestamps and the write buffer.
func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithDebounce sets the write buffer delay.
func WithDebounce(d time.Duration) Option {
	return func(s *Store) { s.debounce = d }
}

// WithLocation sets the time zone used to interpret calendar days.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) { s.loc = loc }
}

// WithAppVersion sets the version stamped on exports.
func WithAppVersion(v string) Option {
	return func(s *Store) { s.appVersion = v }
}

// New creates a Store over b.
func New(b Backend, opts ...Option) *Store {
	s := &Store{
		backend:    b,
		clock:      SystemClock(),
		logger:     slog.Default(),
		debounce:   DefaultDebounce,
		loc:        time.Local,
		appVersion: DefaultAppVersion,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open opens a SQLite-backed Store at dsn.
func Open(dsn string, quota int64, opts ...Option) (*Store, error) {
	b, err := OpenSQLite(dsn, WithQuota(quota))
	if err != nil {
		return nil, err
	}
	return New(b, opts...), nil
}

// Load returns the current state. It never fails: a missing or corrupt
// document yields migrated legacy data or defaults.
func (s *Store) Load(ctx context.Context) AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx).Clone()
}

func (s *Store) loadLocked(ctx context.Context) *AppState {
	if s.cache != nil {
		return s.cache
	}
	st, migrated := s.read(ctx)
	s.cache = &st
	if migrated {
		s.persistLocked(ctx)
	}
	return s.cache
}

// read loads the document from the backend. migrated reports that the
// state came from legacy keys and has not been written yet.
func (s *Store) read(ctx context.Context) (st AppState, migrated bool) {
	now := s.clock.Now()

	raw, err := s.backend.Get(ctx, StorageKey)
	switch {
	case err == nil:
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err == nil && doc != nil {
			return decode(doc, now, s.loc, s.logger), false
		}
		s.logger.Warn("discarding corrupt state", "key", StorageKey, "bytes", len(raw))
		if err := s.backend.Remove(ctx, StorageKey); err != nil {
			s.logger.Error("remove corrupt state", "error", err)
		}
	case !errors.Is(err, ErrNotFound):
		s.logger.Error("storage unavailable, using defaults", "error", err)
		return DefaultState(now), false
	}

	doc, found := readLegacy(ctx, s.backend, s.logger)
	if !found {
		return DefaultState(now), false
	}
	st = decode(doc, now, s.loc, s.logger)
	st.CreatedAt, st.UpdatedAt = now, now
	s.removeLegacy(ctx)
	s.logger.Info("migrated legacy storage keys",
		"reviewRecords", len(st.ReviewRecords),
		"bookmarks", len(st.Bookmarks),
		"quizHistory", len(st.QuizHistory))
	return st, true
}

func (s *Store) removeLegacy(ctx context.Context) {
	for _, key := range LegacyKeys {
		if err := s.backend.Remove(ctx, key); err != nil {
			s.logger.Debug("remove legacy key", "key", key, "error", err)
		}
	}
}

// Save replaces the state and schedules a write after the debounce delay.
// Bursts of saves collapse into one write of the latest state. It always
// reports true; call Flush or SaveSync when the write must complete.
func (s *Store) Save(state AppState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := state.Clone()
	st.UpdatedAt = s.clock.Now()
	s.cache = &st
	s.scheduleLocked()
	return true
}

// SaveSync replaces the state and writes it immediately, cancelling any
// pending debounced write. It reports whether the write reached the backend.
func (s *Store) SaveSync(ctx context.Context, state AppState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	st := state.Clone()
	st.UpdatedAt = s.clock.Now()
	s.cache = &st
	return s.persistLocked(ctx)
}

// Update applies fn to the latest state and schedules a write. Concurrent
// updates are serialized, so none is lost to a stale copy.
func (s *Store) Update(ctx context.Context, fn func(*AppState)) AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.loadLocked(ctx).Clone()
	fn(&next)
	next.UpdatedAt = s.clock.Now()
	s.cache = &next
	s.scheduleLocked()
	return next.Clone()
}

// Flush writes a pending debounced save now. It reports false only when a
// pending write failed.
func (s *Store) Flush(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return true
	}
	s.cancelLocked()
	return s.persistLocked(ctx)
}

// Pending reports whether a debounced write is waiting.
func (s *Store) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Degraded reports whether the last write failed for lack of space, so
// the state lives only in memory.
func (s *Store) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *Store) scheduleLocked() {
	s.cancelLocked()
	s.pending = s.clock.AfterFunc(s.debounce, s.flushPending)
}

func (s *Store) cancelLocked() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

func (s *Store) flushPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return
	}
	s.pending = nil
	s.persistLocked(context.Background())
}

// persistLocked writes the cached state, entering memory-only mode when
// the backend stays full after trimming.
func (s *Store) persistLocked(ctx context.Context) bool {
	err := s.writeLocked(ctx, s.cache)
	switch {
	case err == nil:
		s.degraded = false
		return true
	case errors.Is(err, ErrQuotaExceeded):
		if !s.degraded {
			s.logger.Error("storage full, keeping state in memory only", "error", err)
		}
		s.degraded = true
	default:
		s.logger.Error("save state", "error", err)
	}
	return false
}

// writeLocked serializes st and stores it. When the backend is full it
// trims bulk history from st and retries once.
func (s *Store) writeLocked(ctx context.Context, st *AppState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	err = s.backend.Set(ctx, StorageKey, data)
	if !errors.Is(err, ErrQuotaExceeded) {
		return err
	}

	quizzes := st.QuizHistory.Trim(QuotaQuizHistory)
	days := st.DailyGoals.Cleanup(s.clock.Now(), QuotaGoalDays)
	s.logger.Warn("storage quota exceeded, retrying after trim",
		"quizzesDropped", quizzes, "daysDropped", days)

	if data, err = json.Marshal(st); err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return s.backend.Set(ctx, StorageKey, data)
}

// Reset replaces the state with defaults and removes legacy keys. Without
// confirm it changes nothing and returns the current state.
func (s *Store) Reset(ctx context.Context, confirm bool) AppState {
	if !confirm {
		s.logger.Warn("reset requested without confirmation")
		return s.Load(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	st := DefaultState(s.clock.Now())
	s.cache = &st
	s.persistLocked(ctx)
	s.removeLegacy(ctx)
	s.logger.Info("state reset to defaults")
	return st.Clone()
}

// Info describes the stored document.
type Info struct {
	Version          int
	StorageKey       string
	Available        bool
	Degraded         bool
	BytesUsed        int
	CreatedAt        time.Time
	UpdatedAt        time.Time
	ReviewRecords    int
	Bookmarks        int
	QuizHistory      int
	DailyGoalHistory int
}

// KB returns BytesUsed in kilobytes rounded to two decimals.
func (i Info) KB() float64 {
	return float64(i.BytesUsed*100/1024) / 100
}

// Info reports storage details for diagnostics.
func (s *Store) Info(ctx context.Context) Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.loadLocked(ctx)

	info := Info{
		Version:          st.Version,
		StorageKey:       StorageKey,
		Degraded:         s.degraded,
		CreatedAt:        st.CreatedAt,
		UpdatedAt:        st.UpdatedAt,
		ReviewRecords:    len(st.ReviewRecords),
		Bookmarks:        len(st.Bookmarks),
		QuizHistory:      len(st.QuizHistory),
		DailyGoalHistory: len(st.DailyGoals.History),
	}
	raw, err := s.backend.Get(ctx, StorageKey)
	switch {
	case err == nil:
		info.Available = true
		info.BytesUsed = len(raw)
	case errors.Is(err, ErrNotFound):
		info.Available = true
	}
	return info
}

// Close flushes any pending write and closes the backend.
func (s *Store) Close() error {
	s.Flush(context.Background())
	return s.backend.Close()
}
