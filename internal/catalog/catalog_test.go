package catalog

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestDefault_Counts(t *testing.T) {
	c := Default()
	want := map[string]int{"easy": 8, "medium": 6, "hard": 6, "acronyms": 5, "oneword": 5}
	got := c.Counts()
	for k, n := range want {
		if got[k] != n {
			t.Errorf("Counts()[%q] = %d, want %d", k, got[k], n)
		}
	}
	if c.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", c.Skipped)
	}
	if c.Len() != 30 {
		t.Errorf("Len() = %d, want 30", c.Len())
	}
}

func TestParse_SkipsInvalidAndDuplicates(t *testing.T) {
	doc := `{
		"easy": [
			{"word": "Alpha", "definition": "first"},
			{"word": "", "definition": "nameless"},
			{"word": "Beta"},
			{"word": "Alpha", "definition": "again"},
			"not an object"
		],
		"acronyms": [
			{"acronym": "ABC", "full": "Alpha Beta Charlie", "options": ["Alpha Beta Charlie", "Another Big Cat"]},
			{"acronym": "XYZ", "full": "Only Answer"}
		],
		"oneword": [
			{"phrase": "A lover of words", "answer": "Logophile", "distractors": ["Lexicon", "Logophile"]}
		]
	}`

	c, err := Parse([]byte(doc), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Skipped != 5 {
		t.Errorf("Skipped = %d, want 5", c.Skipped)
	}
	if len(c.Vocab(Easy)) != 1 {
		t.Fatalf("easy = %d items, want 1", len(c.Vocab(Easy)))
	}

	item, ok := c.Lookup("ABC")
	if !ok {
		t.Fatal("ABC not found")
	}
	acr := item.(AcronymItem)
	if len(acr.Options) != 2 || !slices.Contains(acr.Options, "Alpha Beta Charlie") {
		t.Errorf("ABC options = %v", acr.Options)
	}

	ow := c.OneWords()[0].(OneWordItem)
	if len(ow.Options) != 2 {
		t.Errorf("one-word options = %v, want answer deduplicated", ow.Options)
	}
}

func TestParse_MalformedDocument(t *testing.T) {
	if _, err := Parse([]byte(`{"easy": [`), nil); err == nil {
		t.Fatal("expected error for malformed document")
	}
}

func TestRefOf(t *testing.T) {
	c := Default()
	item, ok := c.Lookup("Lucid")
	if !ok {
		t.Fatal("Lucid not in default catalog")
	}
	ref := RefOf(item)
	if ref.Key != "Lucid" || ref.Kind != KindVocab || ref.Difficulty != Medium {
		t.Errorf("RefOf = %+v", ref)
	}
	if ref.Answer != item.(VocabItem).Definition {
		t.Errorf("Answer = %q, want definition", ref.Answer)
	}
}

func TestRef_UnmarshalLegacyRecord(t *testing.T) {
	tests := []struct {
		in   string
		want Ref
	}{
		{`{"key":"Lucid","kind":"vocab","prompt":"Lucid","answer":"clear"}`, Ref{Key: "Lucid", Kind: KindVocab, Prompt: "Lucid", Answer: "clear"}},
		{`{"word":"Lucid","definition":"clear"}`, Ref{Key: "Lucid", Kind: KindVocab, Prompt: "Lucid", Answer: "clear"}},
		{`{"acronym":"RBI","full":"Reserve Bank of India"}`, Ref{Key: "RBI", Kind: KindAcronym, Prompt: "RBI", Answer: "Reserve Bank of India"}},
		{`{"phrase":"Fear of heights","answer":"Acrophobia"}`, Ref{Key: "Fear of heights", Kind: KindOneWord, Prompt: "Fear of heights", Answer: "Acrophobia"}},
		{`{}`, Ref{}},
	}
	for _, tt := range tests {
		var got Ref
		if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Unmarshal(%s) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
