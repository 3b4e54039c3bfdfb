// Package flashcards runs self-graded flashcard reviews. Each verdict is
// fed to the review scheduler with a fixed response time, so a card the
// learner knows is scheduled like a correct, unhurried quiz answer.
package flashcards

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/abhisek/wordiz/internal/catalog"
	"github.com/abhisek/wordiz/internal/spacedrep"
)

// Response times reported to the scheduler for each verdict.
const (
	KnowLatency     = 3000 * time.Millisecond
	DontKnowLatency = 5000 * time.Millisecond
)

// ErrDeckDone is returned when grading past the last card.
var ErrDeckDone = errors.New("flashcard deck is finished")

// Source identifies where a deck's cards came from.
type Source string

const (
	SourceBookmarks Source = "bookmarks"
	SourceReview    Source = "review"
)

// Verdict is the learner's self-assessment of one card.
type Verdict string

const (
	Know     Verdict = "know"
	DontKnow Verdict = "dont_know"
)

// Recorder receives graded answers. *spacedrep.Scheduler implements it.
type Recorder interface {
	RecordAnswer(itemID string, correct bool, latency time.Duration, now time.Time) spacedrep.ReviewRecord
}

// Mark is one graded card.
type Mark struct {
	Card    catalog.Ref
	Verdict Verdict
	Record  spacedrep.ReviewRecord
}

// Deck is a pass over a fixed list of cards.
type Deck struct {
	Source Source
	cards  []catalog.Ref
	pos    int
	marks  []Mark
}

// NewDeck builds a deck. Cards with an empty or repeated key are dropped.
func NewDeck(src Source, refs []catalog.Ref) *Deck {
	seen := make(map[string]bool, len(refs))
	cards := make([]catalog.Ref, 0, len(refs))
	for _, r := range refs {
		if r.Key == "" || seen[r.Key] {
			continue
		}
		seen[r.Key] = true
		cards = append(cards, r)
	}
	return &Deck{Source: src, cards: cards}
}

// FromItems builds a deck from catalog items, e.g. a selector's practice set.
func FromItems(src Source, items []catalog.Item) *Deck {
	refs := make([]catalog.Ref, len(items))
	for i, it := range items {
		refs[i] = catalog.RefOf(it)
	}
	return NewDeck(src, refs)
}

// Shuffle reorders the cards not yet graded.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rest := d.cards[d.pos:]
	rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
}

func (d *Deck) Len() int       { return len(d.cards) }
func (d *Deck) Position() int  { return d.pos + 1 }
func (d *Deck) Remaining() int { return len(d.cards) - d.pos }
func (d *Deck) Done() bool     { return d.pos >= len(d.cards) }

// Current returns the card being shown, or nil when the deck is done.
func (d *Deck) Current() *catalog.Ref {
	if d.Done() {
		return nil
	}
	return &d.cards[d.pos]
}

// Grade records the verdict for the current card with rec and advances.
func (d *Deck) Grade(rec Recorder, v Verdict, now time.Time) (Mark, error) {
	card := d.Current()
	if card == nil {
		return Mark{}, ErrDeckDone
	}
	latency := DontKnowLatency
	if v == Know {
		latency = KnowLatency
	}
	m := Mark{
		Card:    *card,
		Verdict: v,
		Record:  rec.RecordAnswer(card.Key, v == Know, latency, now),
	}
	d.marks = append(d.marks, m)
	d.pos++
	return m, nil
}

// Marks returns the graded cards in order.
func (d *Deck) Marks() []Mark {
	return append([]Mark(nil), d.marks...)
}

// Summary counts the verdicts given so far.
type Summary struct {
	Total   int
	Known   int
	Unknown int
}

// Percent returns the share of graded cards marked known.
func (s Summary) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return s.Known * 100 / s.Total
}

func (d *Deck) Summary() Summary {
	s := Summary{Total: len(d.marks)}
	for _, m := range d.marks {
		if m.Verdict == Know {
			s.Known++
		} else {
			s.Unknown++
		}
	}
	return s
}

// Restart rewinds the deck and clears its verdicts. Schedules already
// updated are kept.
func (d *Deck) Restart() {
	d.pos = 0
	d.marks = nil
}
