package domain

import (
	"math"
	"testing"
)

func TestBuildWordIndex_FlattensInSourceOrder(t *testing.T) {
	groups := []TimingGroup{
		{Text: "At first", Start: 0, End: 0.64, Words: []Word{
			{Text: "At", Start: 0, End: 0.34},
			{Text: "first", Start: 0.34, End: 0.64},
		}},
		{Text: "there was", Start: 0.9, End: 1.5},
		{Text: "nothing", Start: 1.6, End: 2.1, Words: []Word{
			{Text: "no", Start: 1.9, End: 2.1},
			{Text: "thing", Start: 1.6, End: 1.8},
		}},
	}

	words := BuildWordIndex(groups)

	wantTexts := []string{"At", "first", "there was", "no", "thing"}
	if len(words) != len(wantTexts) {
		t.Fatalf("got %d words, want %d", len(words), len(wantTexts))
	}
	for i, w := range words {
		if w.Text != wantTexts[i] {
			t.Errorf("word %d: text = %q; want %q", i, w.Text, wantTexts[i])
		}
		if !w.Valid {
			t.Errorf("word %d: expected valid timing", i)
		}
	}

	pseudo := words[2]
	if !pseudo.Synthesized || pseudo.Start != 0.9 || pseudo.End != 1.5 || pseudo.GroupIndex != 1 {
		t.Errorf("pseudo-word = %+v; want synthesized [0.9, 1.5] from group 1", pseudo)
	}
	// out-of-order entries are not re-sorted
	if words[3].Start <= words[4].Start {
		t.Errorf("source order not preserved: %+v then %+v", words[3], words[4])
	}
}

func TestBuildWordIndex_FlagsMalformedTimings(t *testing.T) {
	tests := []struct {
		name  string
		word  Word
		valid bool
	}{
		{name: "ordinary", word: Word{Text: "a", Start: 1, End: 2}, valid: true},
		{name: "zero length", word: Word{Text: "a", Start: 1, End: 1}, valid: true},
		{name: "negative start", word: Word{Text: "a", Start: -0.1, End: 1}, valid: false},
		{name: "start after end", word: Word{Text: "a", Start: 2, End: 1}, valid: false},
		{name: "nan end", word: Word{Text: "a", Start: 0, End: math.NaN()}, valid: false},
		{name: "infinite start", word: Word{Text: "a", Start: math.Inf(1), End: math.Inf(1)}, valid: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			words := BuildWordIndex([]TimingGroup{{Text: "g", Words: []Word{tc.word}}})
			if len(words) != 1 {
				t.Fatalf("got %d words, want 1", len(words))
			}
			if words[0].Valid != tc.valid {
				t.Errorf("Valid = %v; want %v", words[0].Valid, tc.valid)
			}
		})
	}
}

func TestBuildWordIndex_Empty(t *testing.T) {
	if words := BuildWordIndex(nil); len(words) != 0 {
		t.Errorf("got %d words for nil groups", len(words))
	}
}
