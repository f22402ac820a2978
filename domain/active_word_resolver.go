package domain

type WordStatus struct {
	Text        string  `json:"text"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	IsActive    bool    `json:"isActive"`
	IsCompleted bool    `json:"isCompleted"`
}

// ResolveActiveWords reports the status of every word at segment-local time t.
//
// A word is active when t lies in [start, end], both ends inclusive. Overlapping
// words are all active; a t inside a silence gap leaves every word inactive.
func ResolveActiveWords(words []FlatWord, t float64) []WordStatus {
	return AppendActiveWords(make([]WordStatus, 0, len(words)), words, t)
}

// AppendActiveWords is ResolveActiveWords appending into dst, for per-frame callers
// that reuse a buffer.
func AppendActiveWords(dst []WordStatus, words []FlatWord, t float64) []WordStatus {
	for _, w := range words {
		status := WordStatus{Text: w.Text, Start: w.Start, End: w.End}
		if w.Valid && finite(t) {
			status.IsActive = t >= w.Start && t <= w.End
			status.IsCompleted = t > w.End
		}
		dst = append(dst, status)
	}
	return dst
}

func HasActiveWord(statuses []WordStatus) bool {
	for _, s := range statuses {
		if s.IsActive {
			return true
		}
	}
	return false
}
