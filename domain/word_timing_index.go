package domain

import "math"

// FlatWord is one entry of a segment's flattened word list. Times are
// segment-relative seconds.
type FlatWord struct {
	Text        string
	Start       float64
	End         float64
	GroupIndex  int
	Synthesized bool
	Valid       bool
}

// BuildWordIndex flattens timing groups into a single word list in source
// order. Groups without words contribute one pseudo-word spanning the group.
// Malformed timings are kept but flagged invalid.
func BuildWordIndex(groups []TimingGroup) []FlatWord {
	size := 0
	for _, g := range groups {
		if len(g.Words) == 0 {
			size++
		} else {
			size += len(g.Words)
		}
	}

	words := make([]FlatWord, 0, size)
	for gi, g := range groups {
		if len(g.Words) == 0 {
			words = append(words, FlatWord{
				Text:        g.Text,
				Start:       g.Start,
				End:         g.End,
				GroupIndex:  gi,
				Synthesized: true,
				Valid:       validTiming(g.Start, g.End),
			})
			continue
		}
		for _, w := range g.Words {
			words = append(words, FlatWord{
				Text:       w.Text,
				Start:      w.Start,
				End:        w.End,
				GroupIndex: gi,
				Valid:      validTiming(w.Start, w.End),
			})
		}
	}

	return words
}

func validTiming(start, end float64) bool {
	if !finite(start) || !finite(end) {
		return false
	}
	if start < 0 || end < 0 {
		return false
	}
	return start <= end
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
