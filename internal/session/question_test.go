package session

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordiz/internal/catalog"
)

func assertDistinct(t *testing.T, options []string) {
	t.Helper()
	seen := map[string]bool{}
	for _, o := range options {
		require.False(t, seen[o], "duplicate option %q in %v", o, options)
		seen[o] = true
	}
}

func TestBuildQuestion_Vocab(t *testing.T) {
	c := catalog.Default()
	pool := c.Vocab(catalog.Easy)
	rng := rand.New(rand.NewPCG(1, 2))

	for _, item := range pool {
		q, ok := BuildQuestion(ModeVocab, item, pool, rng)
		require.True(t, ok, item.Key())
		v := item.(catalog.VocabItem)

		assert.Equal(t, v.Word, q.Prompt)
		assert.Equal(t, v.Definition, q.Answer)
		assert.Len(t, q.Options, 4)
		assertDistinct(t, q.Options)
		assert.Equal(t, 1, countOf(q.Options, v.Definition))
		assert.True(t, q.IsCorrect(q.Options[q.AnswerIndex()]))
	}
}

func TestBuildQuestion_SynonymExcludesOwnSet(t *testing.T) {
	items := []catalog.Item{
		catalog.VocabItem{Word: "Happy", Definition: "d1", Synonyms: []string{"glad", "joyful"}},
		catalog.VocabItem{Word: "Sad", Definition: "d2", Synonyms: []string{"glum", "glad"}},
		catalog.VocabItem{Word: "Big", Definition: "d3", Synonyms: []string{"large", "huge", "joyful"}},
	}
	rng := rand.New(rand.NewPCG(3, 4))

	for range 50 {
		q, ok := BuildQuestion(ModeSynonym, items[0], items, rng)
		require.True(t, ok)
		assert.Contains(t, []string{"glad", "joyful"}, q.Answer)
		assertDistinct(t, q.Options)
		for _, o := range q.Options {
			if o == q.Answer {
				continue
			}
			assert.NotContains(t, []string{"glad", "joyful"}, o, "distractor from own synonym set")
		}
		assert.Len(t, q.Options, 4)
	}
}

func TestBuildQuestion_SkipsMissingField(t *testing.T) {
	items := []catalog.Item{
		catalog.VocabItem{Word: "Plain", Definition: "d1"},
		catalog.VocabItem{Word: "Other", Definition: "d2", Antonyms: []string{"x"}},
	}
	rng := rand.New(rand.NewPCG(5, 6))

	_, ok := BuildQuestion(ModeSynonym, items[0], items, rng)
	assert.False(t, ok)
	_, ok = BuildQuestion(ModeAntonym, items[0], items, rng)
	assert.False(t, ok)

	// "Other" has antonyms but the pool offers no distractors.
	_, ok = BuildQuestion(ModeAntonym, items[1], items, rng)
	assert.False(t, ok)

	qs := BuildQuestions(ModeVocab, items, items, rng)
	assert.Len(t, qs, 2)
}

func TestBuildQuestion_OwnOptions(t *testing.T) {
	c := catalog.Default()
	rng := rand.New(rand.NewPCG(7, 8))

	for _, item := range c.Acronyms() {
		q, ok := BuildQuestion(ModeAcronym, item, c.Acronyms(), rng)
		require.True(t, ok)
		assert.Equal(t, item.(catalog.AcronymItem).Full, q.Answer)
		assert.Contains(t, q.Options, q.Answer)
		assert.LessOrEqual(t, len(q.Options), 4)
		assertDistinct(t, q.Options)
	}
	for _, item := range c.OneWords() {
		q, ok := BuildQuestion(ModeOneWord, item, c.OneWords(), rng)
		require.True(t, ok)
		assert.Equal(t, item.(catalog.OneWordItem).Word, q.Answer)
		assert.Contains(t, q.Options, q.Answer)
	}
}

func TestBuildQuestion_ModeMismatch(t *testing.T) {
	c := catalog.Default()
	rng := rand.New(rand.NewPCG(9, 9))
	_, ok := BuildQuestion(ModeVocab, c.Acronyms()[0], c.Acronyms(), rng)
	assert.False(t, ok)
	_, ok = BuildQuestion(ModeAcronym, c.Vocab(catalog.Easy)[0], c.Vocab(catalog.Easy), rng)
	assert.False(t, ok)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("oneword")
	require.NoError(t, err)
	assert.False(t, m.NeedsDifficulty())
	assert.True(t, ModeSynonym.NeedsDifficulty())

	_, err = ParseMode("spelling")
	assert.Error(t, err)
}

func countOf(s []string, v string) int {
	n := 0
	for i := range s {
		if s[i] == v {
			n++
		}
	}
	return n
}

