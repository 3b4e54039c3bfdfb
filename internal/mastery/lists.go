package mastery

import "slices"

// Lists classifies item keys into three disjoint buckets. Keys absent from
// all three are Unseen.
type Lists struct {
	Mastered   []string `json:"masteredWordsList"`
	Learning   []string `json:"learningWordsList"`
	Struggling []string `json:"strugglingWordsList"`
}

// State returns the current state of key.
func (l *Lists) State(key string) MasteryState {
	switch {
	case slices.Contains(l.Mastered, key):
		return StateMastered
	case slices.Contains(l.Learning, key):
		return StateLearning
	case slices.Contains(l.Struggling, key):
		return StateStruggling
	default:
		return StateUnseen
	}
}

// Record applies one answer for key. Returns the transition, or nil if
// the state did not change.
func (l *Lists) Record(key string, correct bool) *StateTransition {
	from := l.State(key)
	to := Next(from, correct)
	if from == to {
		return nil
	}
	l.remove(key)
	l.add(key, to)

	trigger := "incorrect"
	if correct {
		trigger = "correct"
	}
	return &StateTransition{ItemID: key, From: from, To: to, Trigger: trigger}
}

// Counts returns the size of each bucket.
func (l *Lists) Counts() (mastered, learning, struggling int) {
	return len(l.Mastered), len(l.Learning), len(l.Struggling)
}

// Clone returns a deep copy of l.
func (l Lists) Clone() Lists {
	return Lists{
		Mastered:   cloneList(l.Mastered),
		Learning:   cloneList(l.Learning),
		Struggling: cloneList(l.Struggling),
	}
}

// Normalize removes duplicates and enforces that every key is in at most
// one bucket. When a key appears in several buckets the most advanced one
// wins: mastered, then learning, then struggling.
func (l *Lists) Normalize() {
	seen := make(map[string]bool)
	keep := func(in []string) []string {
		out := []string{}
		for _, k := range in {
			if k == "" || seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, k)
		}
		return out
	}
	l.Mastered = keep(l.Mastered)
	l.Learning = keep(l.Learning)
	l.Struggling = keep(l.Struggling)
}

func (l *Lists) remove(key string) {
	del := func(s []string) []string {
		return slices.DeleteFunc(s, func(k string) bool { return k == key })
	}
	l.Mastered = del(l.Mastered)
	l.Learning = del(l.Learning)
	l.Struggling = del(l.Struggling)
}

func (l *Lists) add(key string, s MasteryState) {
	switch s {
	case StateMastered:
		l.Mastered = append(l.Mastered, key)
	case StateLearning:
		l.Learning = append(l.Learning, key)
	case StateStruggling:
		l.Struggling = append(l.Struggling, key)
	}
}

func cloneList(in []string) []string {
	return append([]string{}, in...)
}
