package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// ErrInvalidItem is wrapped by record validation failures.
var ErrInvalidItem = errors.New("invalid catalog item")

//go:embed data/catalog.json
var defaultCatalog []byte

// Catalog is an immutable, validated set of learning items.
type Catalog struct {
	vocab    map[Difficulty][]Item
	acronyms []Item
	oneWords []Item
	byKey    map[string]Item

	// Skipped counts records rejected during parsing.
	Skipped int
}

// rawFile is the on-disk layout of a catalog file.
type rawFile struct {
	Easy     []json.RawMessage `json:"easy"`
	Medium   []json.RawMessage `json:"medium"`
	Hard     []json.RawMessage `json:"hard"`
	Acronyms []json.RawMessage `json:"acronyms"`
	OneWord  []json.RawMessage `json:"oneword"`
}

// rawRecord accepts every field any item kind may carry so a record can
// be discriminated once, here, instead of probed downstream.
type rawRecord struct {
	Word          string   `json:"word"`
	Definition    string   `json:"definition"`
	Pronunciation string   `json:"pronunciation"`
	Example       string   `json:"example"`
	Synonyms      []string `json:"synonyms"`
	Antonyms      []string `json:"antonyms"`
	Exam          string   `json:"exam"`

	Acronym  string `json:"acronym"`
	Full     string `json:"full"`
	Category string `json:"category"`

	Phrase string `json:"phrase"`
	Answer string `json:"answer"`

	Options     []string `json:"options"`
	Distractors []string `json:"distractors"`
}

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	c, err := Parse(defaultCatalog, nil)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Load reads and parses a catalog file from path.
func Load(path string, logger *slog.Logger) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data, logger)
}

// Parse decodes a catalog document. Records that fail validation are
// skipped and counted; only a malformed document is an error.
func Parse(data []byte, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var raw rawFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		vocab: make(map[Difficulty][]Item),
		byKey: make(map[string]Item),
	}

	add := func(section string, records []json.RawMessage, decode func(rawRecord) (Item, error)) []Item {
		var items []Item
		for i, msg := range records {
			var rec rawRecord
			if err := json.Unmarshal(msg, &rec); err != nil {
				c.skip(logger, section, i, err)
				continue
			}
			item, err := decode(rec)
			if err != nil {
				c.skip(logger, section, i, err)
				continue
			}
			if _, dup := c.byKey[item.Key()]; dup {
				c.skip(logger, section, i, fmt.Errorf("%w: duplicate key %q", ErrInvalidItem, item.Key()))
				continue
			}
			c.byKey[item.Key()] = item
			items = append(items, item)
		}
		return items
	}

	c.vocab[Easy] = add("easy", raw.Easy, vocabDecoder(Easy))
	c.vocab[Medium] = add("medium", raw.Medium, vocabDecoder(Medium))
	c.vocab[Hard] = add("hard", raw.Hard, vocabDecoder(Hard))
	c.acronyms = add("acronyms", raw.Acronyms, decodeAcronym)
	c.oneWords = add("oneword", raw.OneWord, decodeOneWord)

	return c, nil
}

func (c *Catalog) skip(logger *slog.Logger, section string, index int, err error) {
	c.Skipped++
	logger.Debug("catalog record skipped", "section", section, "index", index, "error", err)
}

func vocabDecoder(d Difficulty) func(rawRecord) (Item, error) {
	return func(r rawRecord) (Item, error) {
		word := strings.TrimSpace(r.Word)
		if word == "" {
			return nil, fmt.Errorf("%w: missing word", ErrInvalidItem)
		}
		def := strings.TrimSpace(r.Definition)
		if def == "" {
			return nil, fmt.Errorf("%w: %q has no definition", ErrInvalidItem, word)
		}
		return VocabItem{
			Word:          word,
			Definition:    def,
			Pronunciation: r.Pronunciation,
			Example:       r.Example,
			Synonyms:      cleanList(r.Synonyms),
			Antonyms:      cleanList(r.Antonyms),
			Exam:          r.Exam,
			Difficulty:    d,
		}, nil
	}
}

func decodeAcronym(r rawRecord) (Item, error) {
	acr := strings.TrimSpace(r.Acronym)
	full := strings.TrimSpace(r.Full)
	if acr == "" || full == "" {
		return nil, fmt.Errorf("%w: acronym needs acronym and full", ErrInvalidItem)
	}
	opts := ensureOption(append(r.Options, r.Distractors...), full)
	if len(opts) < 2 {
		return nil, fmt.Errorf("%w: acronym %q has no distractors", ErrInvalidItem, acr)
	}
	return AcronymItem{Acronym: acr, Full: full, Options: opts, Category: r.Category}, nil
}

func decodeOneWord(r rawRecord) (Item, error) {
	phrase := strings.TrimSpace(r.Phrase)
	answer := strings.TrimSpace(r.Answer)
	if phrase == "" || answer == "" {
		return nil, fmt.Errorf("%w: one-word item needs phrase and answer", ErrInvalidItem)
	}
	opts := ensureOption(append(r.Options, r.Distractors...), answer)
	if len(opts) < 2 {
		return nil, fmt.Errorf("%w: one-word item %q has no distractors", ErrInvalidItem, phrase)
	}
	return OneWordItem{Phrase: phrase, Word: answer, Options: opts}, nil
}

func cleanList(in []string) []string {
	var out []string
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Vocab returns the vocabulary items of one difficulty.
func (c *Catalog) Vocab(d Difficulty) []Item {
	return c.vocab[d]
}

// Acronyms returns all acronym items.
func (c *Catalog) Acronyms() []Item {
	return c.acronyms
}

// OneWords returns all one-word substitution items.
func (c *Catalog) OneWords() []Item {
	return c.oneWords
}

// All returns every item, vocabulary first by difficulty.
func (c *Catalog) All() []Item {
	var out []Item
	for _, d := range AllDifficulties() {
		out = append(out, c.vocab[d]...)
	}
	out = append(out, c.acronyms...)
	return append(out, c.oneWords...)
}

// Lookup finds an item by key.
func (c *Catalog) Lookup(key string) (Item, bool) {
	item, ok := c.byKey[key]
	return item, ok
}

// Len returns the number of valid items.
func (c *Catalog) Len() int {
	return len(c.byKey)
}

// Counts returns the number of items per section.
func (c *Catalog) Counts() map[string]int {
	return map[string]int{
		string(Easy):        len(c.vocab[Easy]),
		string(Medium):      len(c.vocab[Medium]),
		string(Hard):        len(c.vocab[Hard]),
		"acronyms":          len(c.acronyms),
		string(KindOneWord): len(c.oneWords),
	}
}
