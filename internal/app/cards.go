package app

import (
	"context"

	"github.com/abhisek/wordiz/internal/flashcards"
	"github.com/abhisek/wordiz/internal/session"
	"github.com/abhisek/wordiz/internal/spacedrep"
	"github.com/abhisek/wordiz/internal/store"
)

// StartFlashcards builds a deck of up to count cards. Bookmark decks put
// the least reviewed bookmarks first; review decks come from the practice
// selector over the whole catalog.
func (a *App) StartFlashcards(ctx context.Context, src flashcards.Source, count int) (*flashcards.Deck, error) {
	if count <= 0 {
		count = a.quizSize
	}
	st := a.store.Load(ctx)

	var deck *flashcards.Deck
	switch src {
	case flashcards.SourceBookmarks:
		deck = flashcards.NewDeck(src, st.Bookmarks.ForPractice(count))
	default:
		items := session.SelectPracticeSet(a.catalog.All(), count, spacedrep.NewScheduler(st.ReviewRecords), a.now(), a.rng)
		deck = flashcards.FromItems(flashcards.SourceReview, items)
	}
	if deck.Len() == 0 {
		return nil, ErrNoCards
	}
	return deck, nil
}

// GradeCard records the learner's verdict for the current card.
func (a *App) GradeCard(ctx context.Context, d *flashcards.Deck, v flashcards.Verdict) (flashcards.Mark, error) {
	var (
		mark flashcards.Mark
		err  error
	)
	a.store.Update(ctx, func(st *store.AppState) {
		now := a.now()
		mark, err = d.Grade(spacedrep.NewScheduler(st.ReviewRecords), v, now)
		if err == nil && d.Source == flashcards.SourceBookmarks {
			st.Bookmarks.MarkReviewed(mark.Card.Key, now)
		}
	})
	return mark, err
}
