package catalog

import "encoding/json"

// UnmarshalJSON accepts both the Ref layout and a raw catalog record, which
// is how older bookmark data stored items.
func (r *Ref) UnmarshalJSON(data []byte) error {
	type plain Ref
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.Key != "" {
		*r = Ref(p)
		return nil
	}

	var rec rawRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	switch {
	case rec.Word != "":
		*r = Ref{Key: rec.Word, Kind: KindVocab, Prompt: rec.Word, Answer: rec.Definition}
	case rec.Acronym != "":
		*r = Ref{Key: rec.Acronym, Kind: KindAcronym, Prompt: rec.Acronym, Answer: rec.Full}
	case rec.Phrase != "":
		*r = Ref{Key: rec.Phrase, Kind: KindOneWord, Prompt: rec.Phrase, Answer: rec.Answer}
	default:
		*r = Ref{}
	}
	return nil
}
