package keyness

import "errors"

// DefaultChunkLength is the window size used when the caller does not
// configure one. 500 tokens is the conventional window for bursty keyword
// analysis: long enough that common words occur in most windows, short
// enough that a locally clustered word shows up in only a few.
const DefaultChunkLength = 500

// ErrBadChunkLength is returned when the requested window size is not a
// positive integer.
var ErrBadChunkLength = errors.New("chunk length must be positive")

// Chunk partitions tokens into consecutive non-overlapping windows of
// chunkLength tokens and reduces each window to a word-count table. The
// final window holds the remainder and may be shorter. Windows cover the
// sequence exactly once in order; an empty sequence yields no chunks.
func Chunk(tokens []string, chunkLength int) ([]map[string]int, error) {
	if chunkLength < 1 {
		return nil, ErrBadChunkLength
	}

	chunks := make([]map[string]int, 0, len(tokens)/chunkLength+1)
	for start := 0; start < len(tokens); start += chunkLength {
		end := start + chunkLength
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, CountTokens(tokens[start:end]))
	}
	return chunks, nil
}
