package domain

const DefaultWordsPerBatch = 3

type CaptionBatch struct {
	Index int          `json:"index"`
	Words []WordStatus `json:"words"`
}

// BatchCaptions splits the word stream into contiguous groups of wordsPerBatch
// by position only; silence between words never splits a batch. Batches share
// the backing array of words.
func BatchCaptions(words []WordStatus, wordsPerBatch int) []CaptionBatch {
	if wordsPerBatch <= 0 {
		wordsPerBatch = DefaultWordsPerBatch
	}
	if len(words) == 0 {
		return nil
	}

	batches := make([]CaptionBatch, 0, (len(words)+wordsPerBatch-1)/wordsPerBatch)
	for start := 0; start < len(words); start += wordsPerBatch {
		end := start + wordsPerBatch
		if end > len(words) {
			end = len(words)
		}
		batches = append(batches, CaptionBatch{
			Index: len(batches),
			Words: words[start:end:end],
		})
	}

	return batches
}

// CurrentBatchIndex picks the batch to show: the one holding the first active
// word, else the one holding the next word still to be spoken, else the last
// batch. Returns -1 when there is nothing to show.
func CurrentBatchIndex(batches []CaptionBatch) int {
	if len(batches) == 0 {
		return -1
	}

	for _, b := range batches {
		if HasActiveWord(b.Words) {
			return b.Index
		}
	}

	for _, b := range batches {
		for _, w := range b.Words {
			if !w.IsCompleted && !w.IsActive && isUpcoming(w) {
				return b.Index
			}
		}
	}

	return batches[len(batches)-1].Index
}

// isUpcoming excludes malformed words, which are never completed and would
// otherwise pin the caption to their batch forever.
func isUpcoming(w WordStatus) bool {
	return validTiming(w.Start, w.End)
}
