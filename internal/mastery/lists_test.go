package mastery

import (
	"fmt"
	"math/rand/v2"
	"testing"
)

func TestNext(t *testing.T) {
	tests := []struct {
		from    MasteryState
		correct bool
		want    MasteryState
	}{
		{StateUnseen, true, StateLearning},
		{StateLearning, true, StateMastered},
		{StateMastered, true, StateMastered},
		{StateStruggling, true, StateLearning},
		{StateUnseen, false, StateStruggling},
		{StateLearning, false, StateStruggling},
		{StateMastered, false, StateLearning},
		{StateStruggling, false, StateStruggling},
	}
	for _, tt := range tests {
		if got := Next(tt.from, tt.correct); got != tt.want {
			t.Errorf("Next(%s, %v) = %s, want %s", tt.from, tt.correct, got, tt.want)
		}
	}
}

func TestRecord_CorrectPathToMastered(t *testing.T) {
	var l Lists
	var path []MasteryState
	for range 15 {
		if tr := l.Record("Lucid", true); tr != nil {
			path = append(path, tr.To)
		}
	}

	if len(path) != 2 || path[0] != StateLearning || path[1] != StateMastered {
		t.Errorf("transitions = %v, want [learning mastered]", path)
	}
	if l.State("Lucid") != StateMastered {
		t.Errorf("State = %s, want mastered", l.State("Lucid"))
	}
	if m, le, s := l.Counts(); m != 1 || le != 0 || s != 0 {
		t.Errorf("Counts = %d/%d/%d, want 1/0/0", m, le, s)
	}
}

func TestRecord_NoChangeReturnsNil(t *testing.T) {
	var l Lists
	l.Record("x", false)
	if tr := l.Record("x", false); tr != nil {
		t.Errorf("expected nil transition, got %+v", tr)
	}
}

func TestRecord_AtMostOneBucket(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	var l Lists
	for range 2000 {
		key := fmt.Sprintf("w%d", rng.IntN(20))
		l.Record(key, rng.IntN(3) > 0)

		seen := map[string]int{}
		for _, bucket := range [][]string{l.Mastered, l.Learning, l.Struggling} {
			for _, k := range bucket {
				seen[k]++
			}
		}
		for k, n := range seen {
			if n != 1 {
				t.Fatalf("key %s present %d times", k, n)
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	l := Lists{
		Mastered:   []string{"a", "a"},
		Learning:   []string{"a", "b", ""},
		Struggling: []string{"b", "c"},
	}
	l.Normalize()

	if len(l.Mastered) != 1 || len(l.Learning) != 1 || len(l.Struggling) != 1 {
		t.Fatalf("Normalize() = %+v", l)
	}
	if l.State("a") != StateMastered || l.State("b") != StateLearning || l.State("c") != StateStruggling {
		t.Errorf("Normalize() = %+v", l)
	}
}
