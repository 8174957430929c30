package keyness

import (
	"errors"
	"math"
	"testing"
)

func TestCountTokens(t *testing.T) {
	counts := CountTokens([]string{"a", "b", "a", "c", "a"})

	if counts["a"] != 3 {
		t.Errorf("Expected count 3 for 'a', got %d", counts["a"])
	}
	if counts["b"] != 1 {
		t.Errorf("Expected count 1 for 'b', got %d", counts["b"])
	}
	if counts["missing"] != 0 {
		t.Error("Absent word should have count 0")
	}
	if len(counts) != 3 {
		t.Errorf("Expected 3 distinct words, got %d", len(counts))
	}
}

func TestDifferenceSmallCorpora(t *testing.T) {
	diffs, err := Difference([]string{"x", "x", "y"}, []string{"x", "y", "y"})
	if err != nil {
		t.Fatalf("Difference failed: %v", err)
	}

	if len(diffs) != 2 {
		t.Fatalf("Expected 2 vocabulary words, got %d", len(diffs))
	}
	if math.Abs(diffs["x"]-1.0/3.0) > 1e-12 {
		t.Errorf("diff(x) = %f, expected 1/3", diffs["x"])
	}
	if math.Abs(diffs["y"]+1.0/3.0) > 1e-12 {
		t.Errorf("diff(y) = %f, expected -1/3", diffs["y"])
	}
}

func TestDifferenceUnionVocabulary(t *testing.T) {
	diffs, err := Difference([]string{"only-a", "shared"}, []string{"shared", "only-b", "only-b"})
	if err != nil {
		t.Fatalf("Difference failed: %v", err)
	}

	if len(diffs) != 3 {
		t.Fatalf("Expected union vocabulary of 3 words, got %d", len(diffs))
	}
	if math.Abs(diffs["only-a"]-0.5) > 1e-12 {
		t.Errorf("diff(only-a) = %f, expected 0.5", diffs["only-a"])
	}
	if math.Abs(diffs["only-b"]+2.0/3.0) > 1e-12 {
		t.Errorf("diff(only-b) = %f, expected -2/3", diffs["only-b"])
	}
	if _, ok := diffs["never-seen"]; ok {
		t.Error("Word absent from both corpora must not be in the vocabulary")
	}
}

func TestDifferenceBounds(t *testing.T) {
	tokensA := []string{"a", "a", "a", "b", "c", "c"}
	tokensB := []string{"d", "d", "b", "b", "b", "e", "e", "e"}

	diffs, err := Difference(tokensA, tokensB)
	if err != nil {
		t.Fatalf("Difference failed: %v", err)
	}

	for word, d := range diffs {
		if d < -1 || d > 1 {
			t.Errorf("diff(%q) = %f, outside [-1, 1]", word, d)
		}
	}
}

func TestDifferenceDisjointExtremes(t *testing.T) {
	diffs, err := Difference([]string{"a"}, []string{"b"})
	if err != nil {
		t.Fatalf("Difference failed: %v", err)
	}

	if diffs["a"] != 1 {
		t.Errorf("diff(a) = %f, expected 1", diffs["a"])
	}
	if diffs["b"] != -1 {
		t.Errorf("diff(b) = %f, expected -1", diffs["b"])
	}
}

func TestDifferenceEmptyInput(t *testing.T) {
	if _, err := Difference(nil, []string{"a"}); !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("Expected ErrEmptyCorpus for empty A, got %v", err)
	}
	if _, err := Difference([]string{"a"}, []string{}); !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("Expected ErrEmptyCorpus for empty B, got %v", err)
	}
}
