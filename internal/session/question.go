package session

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/abhisek/wordiz/internal/catalog"
)

// Mode is a quiz type.
type Mode string

const (
	ModeVocab   Mode = "vocab"
	ModeSynonym Mode = "synonym"
	ModeAntonym Mode = "antonym"
	ModeAcronym Mode = "acronym"
	ModeOneWord Mode = "oneword"
)

// AllModes returns every quiz mode.
func AllModes() []Mode {
	return []Mode{ModeVocab, ModeSynonym, ModeAntonym, ModeAcronym, ModeOneWord}
}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if slices.Contains(AllModes(), m) {
		return m, nil
	}
	return "", fmt.Errorf("unknown quiz mode %q", s)
}

// NeedsDifficulty reports whether the mode draws from a vocabulary level.
func (m Mode) NeedsDifficulty() bool {
	switch m {
	case ModeVocab, ModeSynonym, ModeAntonym:
		return true
	}
	return false
}

// DisplayName returns a human-readable label for the mode.
func (m Mode) DisplayName() string {
	switch m {
	case ModeVocab:
		return "Vocabulary"
	case ModeSynonym:
		return "Synonyms"
	case ModeAntonym:
		return "Antonyms"
	case ModeAcronym:
		return "Acronyms"
	case ModeOneWord:
		return "One-Word Substitutes"
	default:
		return string(m)
	}
}

// Pool returns the catalog items a quiz of mode m draws from.
func Pool(c *catalog.Catalog, m Mode, d catalog.Difficulty) []catalog.Item {
	switch m {
	case ModeVocab, ModeSynonym, ModeAntonym:
		return c.Vocab(d)
	case ModeAcronym:
		return c.Acronyms()
	case ModeOneWord:
		return c.OneWords()
	}
	return nil
}

// MaxDistractors is the number of wrong options per question.
const MaxDistractors = 3

// Question is one multiple-choice question.
type Question struct {
	Item    catalog.Item
	Mode    Mode
	Prompt  string
	Options []string
	Answer  string
}

// IsCorrect reports whether choice is the correct option.
func (q *Question) IsCorrect(choice string) bool {
	return choice == q.Answer
}

// AnswerIndex returns the position of the correct option.
func (q *Question) AnswerIndex() int {
	return slices.Index(q.Options, q.Answer)
}

// BuildQuestions builds one question per selected item. pool supplies the
// distractors. Items that cannot produce a valid question for mode are
// skipped.
func BuildQuestions(m Mode, selected, pool []catalog.Item, rng *rand.Rand) []Question {
	var out []Question
	for _, item := range selected {
		if q, ok := BuildQuestion(m, item, pool, rng); ok {
			out = append(out, q)
		}
	}
	return out
}

// BuildQuestion builds a question for item. ok is false when the item
// lacks what the mode needs or no distractor is available.
func BuildQuestion(m Mode, item catalog.Item, pool []catalog.Item, rng *rand.Rand) (Question, bool) {
	var (
		prompt      string
		answer      string
		distractors []string
	)

	switch it := item.(type) {
	case catalog.VocabItem:
		prompt = it.Word
		switch m {
		case ModeVocab:
			answer = it.Definition
			var defs []string
			for _, other := range pool {
				if v, ok := other.(catalog.VocabItem); ok && v.Word != it.Word {
					defs = append(defs, v.Definition)
				}
			}
			distractors = sample(rng, defs, MaxDistractors, []string{answer})
		case ModeSynonym, ModeAntonym:
			own := it.Synonyms
			if m == ModeAntonym {
				own = it.Antonyms
			}
			if len(own) == 0 {
				return Question{}, false
			}
			answer = own[rng.IntN(len(own))]
			var related []string
			for _, other := range pool {
				v, ok := other.(catalog.VocabItem)
				if !ok || v.Word == it.Word {
					continue
				}
				if m == ModeSynonym {
					related = append(related, v.Synonyms...)
				} else {
					related = append(related, v.Antonyms...)
				}
			}
			distractors = sample(rng, related, MaxDistractors, own)
		default:
			return Question{}, false
		}
	case catalog.AcronymItem:
		if m != ModeAcronym {
			return Question{}, false
		}
		prompt, answer = it.Acronym, it.Full
		distractors = sample(rng, it.Options, MaxDistractors, []string{answer})
	case catalog.OneWordItem:
		if m != ModeOneWord {
			return Question{}, false
		}
		prompt, answer = it.Phrase, it.Word
		distractors = sample(rng, it.Options, MaxDistractors, []string{answer})
	default:
		return Question{}, false
	}

	if answer == "" || len(distractors) == 0 {
		return Question{}, false
	}

	options := append([]string{answer}, distractors...)
	rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	return Question{Item: item, Mode: m, Prompt: prompt, Options: options, Answer: answer}, true
}

// sample draws up to n distinct strings from pool at random, never
// returning any string in exclude.
func sample(rng *rand.Rand, pool []string, n int, exclude []string) []string {
	skip := make(map[string]bool, len(exclude))
	for _, s := range exclude {
		skip[s] = true
	}
	var candidates []string
	for _, s := range pool {
		if s == "" || skip[s] {
			continue
		}
		skip[s] = true
		candidates = append(candidates, s)
	}
	rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
	return candidates[:min(n, len(candidates))]
}
