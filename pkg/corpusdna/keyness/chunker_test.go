package keyness

import (
	"errors"
	"fmt"
	"testing"
)

// makeTokens builds a deterministic token sequence of the given length over
// a small rotating vocabulary.
func makeTokens(n int) []string {
	vocab := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	tokens := make([]string, n)
	for i := 0; i < n; i++ {
		tokens[i] = vocab[(i*i+i/3)%len(vocab)]
	}
	return tokens
}

func chunkSize(chunk map[string]int) int {
	total := 0
	for _, n := range chunk {
		total += n
	}
	return total
}

func TestChunkBoundary(t *testing.T) {
	tests := []struct {
		tokens      int
		chunkLength int
		wantChunks  int
		wantLast    int
	}{
		{1250, 500, 3, 250},
		{1000, 500, 2, 500},
		{499, 500, 1, 499},
		{500, 500, 1, 500},
		{501, 500, 2, 1},
		{3, 1, 3, 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dtokens_%dwindow", tt.tokens, tt.chunkLength), func(t *testing.T) {
			chunks, err := Chunk(makeTokens(tt.tokens), tt.chunkLength)
			if err != nil {
				t.Fatalf("Chunk failed: %v", err)
			}
			if len(chunks) != tt.wantChunks {
				t.Fatalf("Expected %d chunks, got %d", tt.wantChunks, len(chunks))
			}
			for i := 0; i < len(chunks)-1; i++ {
				if got := chunkSize(chunks[i]); got != tt.chunkLength {
					t.Errorf("Chunk %d holds %d tokens, expected full window of %d", i, got, tt.chunkLength)
				}
			}
			if got := chunkSize(chunks[len(chunks)-1]); got != tt.wantLast {
				t.Errorf("Last chunk holds %d tokens, expected %d", got, tt.wantLast)
			}
		})
	}
}

func TestChunkRoundTrip(t *testing.T) {
	tokens := makeTokens(1337)

	chunks, err := Chunk(tokens, 100)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}

	merged := make(map[string]int)
	for _, chunk := range chunks {
		for word, n := range chunk {
			merged[word] += n
		}
	}

	whole := CountTokens(tokens)
	if len(merged) != len(whole) {
		t.Fatalf("Merged vocabulary has %d words, whole-corpus count has %d", len(merged), len(whole))
	}
	for word, n := range whole {
		if merged[word] != n {
			t.Errorf("Word %q: merged count %d != whole-corpus count %d", word, merged[word], n)
		}
	}
}

func TestChunkOrderPreserved(t *testing.T) {
	chunks, err := Chunk([]string{"a", "b", "c"}, 1)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}

	want := []string{"a", "b", "c"}
	if len(chunks) != len(want) {
		t.Fatalf("Expected %d chunks, got %d", len(want), len(chunks))
	}
	for i, word := range want {
		if chunks[i][word] != 1 || len(chunks[i]) != 1 {
			t.Errorf("Chunk %d = %v, expected {%s:1}", i, chunks[i], word)
		}
	}
}

func TestChunkEmptyInput(t *testing.T) {
	chunks, err := Chunk(nil, 500)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("Expected no chunks for empty input, got %d", len(chunks))
	}
}

func TestChunkBadLength(t *testing.T) {
	for _, n := range []int{0, -1, -500} {
		if _, err := Chunk([]string{"a"}, n); !errors.Is(err, ErrBadChunkLength) {
			t.Errorf("Chunk length %d: expected ErrBadChunkLength, got %v", n, err)
		}
	}
}
