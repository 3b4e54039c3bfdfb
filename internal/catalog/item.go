package catalog

import "strings"

// Kind identifies the shape of a catalog entry.
type Kind string

const (
	KindVocab   Kind = "vocab"
	KindAcronym Kind = "acronym"
	KindOneWord Kind = "oneword"
)

// Difficulty buckets the vocabulary lists.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// AllDifficulties returns the vocabulary difficulties in ascending order.
func AllDifficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// Item is a read-only learning item. The concrete type is one of
// VocabItem, AcronymItem or OneWordItem.
type Item interface {
	// Key is the stable identifier used by review records and mastery lists.
	Key() string
	Kind() Kind
	// Prompt is the text shown to the learner.
	Prompt() string
	// Answer is the canonical correct answer for the item's own question.
	Answer() string
}

// VocabItem is a vocabulary word with its definition and word relations.
type VocabItem struct {
	Word          string     `json:"word"`
	Definition    string     `json:"definition"`
	Pronunciation string     `json:"pronunciation,omitempty"`
	Example       string     `json:"example,omitempty"`
	Synonyms      []string   `json:"synonyms,omitempty"`
	Antonyms      []string   `json:"antonyms,omitempty"`
	Exam          string     `json:"exam,omitempty"`
	Difficulty    Difficulty `json:"-"`
}

func (v VocabItem) Key() string    { return v.Word }
func (v VocabItem) Kind() Kind     { return KindVocab }
func (v VocabItem) Prompt() string { return v.Word }
func (v VocabItem) Answer() string { return v.Definition }

// AcronymItem maps an acronym to its expansion. Options always include Full.
type AcronymItem struct {
	Acronym  string   `json:"acronym"`
	Full     string   `json:"full"`
	Options  []string `json:"options"`
	Category string   `json:"category,omitempty"`
}

func (a AcronymItem) Key() string    { return a.Acronym }
func (a AcronymItem) Kind() Kind     { return KindAcronym }
func (a AcronymItem) Prompt() string { return a.Acronym }
func (a AcronymItem) Answer() string { return a.Full }

// OneWordItem maps a descriptive phrase to a single-word substitute.
// Options always include Word.
type OneWordItem struct {
	Phrase  string   `json:"phrase"`
	Word    string   `json:"answer"`
	Options []string `json:"options"`
}

func (o OneWordItem) Key() string    { return o.Phrase }
func (o OneWordItem) Kind() Kind     { return KindOneWord }
func (o OneWordItem) Prompt() string { return o.Phrase }
func (o OneWordItem) Answer() string { return o.Word }

// Ref is a persisted reference to a catalog item, used by bookmarks
// and history entries so they survive catalog edits.
type Ref struct {
	Key        string     `json:"key"`
	Kind       Kind       `json:"kind"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	Prompt     string     `json:"prompt"`
	Answer     string     `json:"answer"`
}

// RefOf builds a Ref for item.
func RefOf(item Item) Ref {
	ref := Ref{
		Key:    item.Key(),
		Kind:   item.Kind(),
		Prompt: item.Prompt(),
		Answer: item.Answer(),
	}
	if v, ok := item.(VocabItem); ok {
		ref.Difficulty = v.Difficulty
	}
	return ref
}

// ensureOption returns options with answer present exactly once,
// dropping blanks and duplicates.
func ensureOption(options []string, answer string) []string {
	seen := make(map[string]bool, len(options)+1)
	out := make([]string, 0, len(options)+1)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}
	add(answer)
	for _, o := range options {
		add(o)
	}
	return out
}
