// Package app wires the catalog, the state store and the learning engine
// into the operations the CLI exposes. Every mutation goes through
// store.Update so answers given in quick succession all land on the latest
// state.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/abhisek/wordiz/internal/catalog"
	"github.com/abhisek/wordiz/internal/store"
)

var (
	// ErrNoQuestions is returned when a quiz cannot produce any question.
	ErrNoQuestions = errors.New("no questions available for this quiz")

	// ErrNoCards is returned when a flashcard deck would be empty.
	ErrNoCards = errors.New("no flashcards available")

	// ErrUnknownItem is returned for a key that is not in the catalog.
	ErrUnknownItem = errors.New("unknown item")
)

// Options configures an App.
type Options struct {
	Store    *store.Store
	Catalog  *catalog.Catalog
	Rand     *rand.Rand
	Now      func() time.Time
	Logger   *slog.Logger
	QuizSize int
}

// App is the composition root for one learner profile.
type App struct {
	store    *store.Store
	catalog  *catalog.Catalog
	rng      *rand.Rand
	now      func() time.Time
	logger   *slog.Logger
	quizSize int
}

// DefaultQuizSize is the number of questions when Options.QuizSize is unset.
const DefaultQuizSize = 10

// New creates an App. Store and Catalog are required.
func New(opts Options) (*App, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("app: store is required")
	}
	if opts.Catalog == nil {
		return nil, fmt.Errorf("app: catalog is required")
	}
	a := &App{
		store:    opts.Store,
		catalog:  opts.Catalog,
		rng:      opts.Rand,
		now:      opts.Now,
		logger:   opts.Logger,
		quizSize: opts.QuizSize,
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.quizSize <= 0 {
		a.quizSize = DefaultQuizSize
	}
	return a, nil
}

// Catalog returns the item catalog.
func (a *App) Catalog() *catalog.Catalog {
	return a.catalog
}

// State returns a copy of the current learner state.
func (a *App) State(ctx context.Context) store.AppState {
	return a.store.Load(ctx)
}

// Flush writes any pending state change.
func (a *App) Flush(ctx context.Context) bool {
	return a.store.Flush(ctx)
}

// Export returns a JSON backup of the learner state.
func (a *App) Export(ctx context.Context) ([]byte, error) {
	return a.store.ExportJSON(ctx)
}

// Import replaces the learner state with a JSON backup.
func (a *App) Import(ctx context.Context, data []byte) (store.AppState, error) {
	st, err := a.store.ImportJSON(ctx, data)
	if err != nil {
		return store.AppState{}, err
	}
	a.logger.Info("imported backup",
		"reviewRecords", len(st.ReviewRecords),
		"bookmarks", len(st.Bookmarks),
		"quizHistory", len(st.QuizHistory))
	return st, nil
}

// Reset restores the default state when confirm is true.
func (a *App) Reset(ctx context.Context, confirm bool) store.AppState {
	return a.store.Reset(ctx, confirm)
}

// StorageInfo reports storage diagnostics.
func (a *App) StorageInfo(ctx context.Context) store.Info {
	return a.store.Info(ctx)
}

// Close flushes pending writes and closes the store.
func (a *App) Close() error {
	return a.store.Close()
}
