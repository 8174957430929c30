package keyness

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"testing"
)

// fakeTester lets tests script the rank-sum collaborator.
type fakeTester struct {
	fn func(a, b []float64) (float64, float64, error)
}

func (f fakeTester) TwoSided(a, b []float64) (float64, float64, error) {
	return f.fn(a, b)
}

func findScore(scores []WordScore, word string) (WordScore, bool) {
	for _, sc := range scores {
		if sc.Word == word {
			return sc, true
		}
	}
	return WordScore{}, false
}

func TestAnalyzeTinyCorpora(t *testing.T) {
	res, err := AnalyzeWithOptions(
		[]string{"x", "x", "y"},
		[]string{"x", "y", "y"},
		Options{ChunkLength: 1},
	)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	// diff(x) = 2/3 - 1/3 > 0, so x belongs to the B-characteristic group;
	// diff(y) < 0 puts y on the A side.
	x, ok := findScore(res.CharacteristicB, "x")
	if !ok {
		t.Fatal("Expected word 'x' in the B-characteristic list")
	}
	if math.Abs(x.Diff-1.0/3.0) > 1e-12 {
		t.Errorf("diff(x) = %f, expected 1/3", x.Diff)
	}

	y, ok := findScore(res.CharacteristicA, "y")
	if !ok {
		t.Fatal("Expected word 'y' in the A-characteristic list")
	}
	if math.Abs(y.Diff+1.0/3.0) > 1e-12 {
		t.Errorf("diff(y) = %f, expected -1/3", y.Diff)
	}

	for _, sc := range append(res.CharacteristicA, res.CharacteristicB...) {
		if sc.PValue < 0 || sc.PValue > 1 {
			t.Errorf("p-value for %q out of range: %f", sc.Word, sc.PValue)
		}
	}
}

func TestBuildSamplePerChunkCounts(t *testing.T) {
	chunksA, err := Chunk([]string{"x", "x", "y"}, 1)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}
	chunksB, err := Chunk([]string{"x", "y", "y"}, 1)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}

	if got := buildSample("x", chunksA); !reflect.DeepEqual(got, []float64{1, 1, 0}) {
		t.Errorf("sampleA for 'x' = %v, expected [1 1 0]", got)
	}
	if got := buildSample("x", chunksB); !reflect.DeepEqual(got, []float64{1, 0, 0}) {
		t.Errorf("sampleB for 'x' = %v, expected [1 0 0]", got)
	}
	if got := buildSample("y", chunksB); !reflect.DeepEqual(got, []float64{0, 1, 1}) {
		t.Errorf("sampleB for 'y' = %v, expected [0 1 1]", got)
	}
}

func TestAnalyzeEmptyCorpus(t *testing.T) {
	if _, err := Analyze(nil, []string{"a", "b"}); !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("Expected ErrEmptyCorpus for empty A, got %v", err)
	}
	if _, err := Analyze([]string{"a", "b"}, []string{}); !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("Expected ErrEmptyCorpus for empty B, got %v", err)
	}
}

func TestAnalyzeDegenerateWord(t *testing.T) {
	// "a" occurs once in every chunk of both corpora, so its samples are
	// identical constants and the rank-sum test has nothing to say.
	res, err := AnalyzeWithOptions(
		[]string{"a", "a"},
		[]string{"a"},
		Options{ChunkLength: 1},
	)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	sc, ok := findScore(res.CharacteristicA, "a")
	if !ok {
		t.Fatal("Word 'a' has diff 0 and must land in the A-characteristic list")
	}
	if sc.PValue != 1 {
		t.Errorf("Degenerate word should score p = 1, got %f", sc.PValue)
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("Degenerate samples are not diagnostics, got %v", res.Diagnostics)
	}
}

func TestAnalyzeCollaboratorFailure(t *testing.T) {
	boom := errors.New("numerical meltdown")
	res, err := AnalyzeWithOptions(
		[]string{"a", "b", "a"},
		[]string{"b", "c", "c"},
		Options{
			ChunkLength: 1,
			Tester: fakeTester{fn: func(a, b []float64) (float64, float64, error) {
				return 0, 0, boom
			}},
		},
	)
	if err != nil {
		t.Fatalf("Per-word failures must not abort the batch: %v", err)
	}

	vocabSize := len(res.CharacteristicA) + len(res.CharacteristicB)
	if vocabSize != 3 {
		t.Fatalf("Expected all 3 words in the output, got %d", vocabSize)
	}
	for _, sc := range append(res.CharacteristicA, res.CharacteristicB...) {
		if sc.PValue != 1 {
			t.Errorf("Failed word %q should score the sentinel p = 1, got %f", sc.Word, sc.PValue)
		}
	}
	if len(res.Diagnostics) != 3 {
		t.Fatalf("Expected a diagnostic per word, got %d", len(res.Diagnostics))
	}
	for _, d := range res.Diagnostics {
		if !errors.Is(d.Err, boom) {
			t.Errorf("Diagnostic for %q should carry the tester error, got %v", d.Word, d.Err)
		}
	}
}

// buildTestCorpora makes two corpora with overlapping vocabulary and
// different per-word clustering.
func buildTestCorpora() (tokensA, tokensB []string) {
	for i := 0; i < 240; i++ {
		tokensA = append(tokensA, fmt.Sprintf("w%d", i%7))
		if i%11 == 0 {
			tokensA = append(tokensA, "bursty-a", "bursty-a", "bursty-a")
		}
		tokensB = append(tokensB, fmt.Sprintf("w%d", i%5))
		if i%13 == 0 {
			tokensB = append(tokensB, "bursty-b", "bursty-b")
		}
	}
	return tokensA, tokensB
}

func TestAnalyzeDeterministic(t *testing.T) {
	tokensA, tokensB := buildTestCorpora()

	first, err := AnalyzeWithOptions(tokensA, tokensB, Options{ChunkLength: 25})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	second, err := AnalyzeWithOptions(tokensA, tokensB, Options{ChunkLength: 25})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Identical inputs must produce identical ranked lists")
	}
}

func TestAnalyzeParallelMatchesSerial(t *testing.T) {
	tokensA, tokensB := buildTestCorpora()

	serial, err := AnalyzeWithOptions(tokensA, tokensB, Options{ChunkLength: 25, Workers: 1})
	if err != nil {
		t.Fatalf("Serial analyze failed: %v", err)
	}
	parallel, err := AnalyzeWithOptions(tokensA, tokensB, Options{ChunkLength: 25, Workers: 8})
	if err != nil {
		t.Fatalf("Parallel analyze failed: %v", err)
	}

	if !reflect.DeepEqual(serial, parallel) {
		t.Error("Worker count must not change the result")
	}
}

func TestAnalyzeDirectionality(t *testing.T) {
	tokensA, tokensB := buildTestCorpora()

	res, err := AnalyzeWithOptions(tokensA, tokensB, Options{ChunkLength: 25})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	for _, sc := range res.CharacteristicA {
		if sc.Diff > 0 {
			t.Errorf("A-characteristic word %q has positive diff %f", sc.Word, sc.Diff)
		}
	}
	for _, sc := range res.CharacteristicB {
		if sc.Diff <= 0 {
			t.Errorf("B-characteristic word %q has non-positive diff %f", sc.Word, sc.Diff)
		}
	}

	for name, side := range map[string][]WordScore{"A": res.CharacteristicA, "B": res.CharacteristicB} {
		for i := 1; i < len(side); i++ {
			if side[i].PValue < side[i-1].PValue {
				t.Errorf("Side %s not sorted by ascending p-value at index %d", name, i)
			}
		}
	}
}

func TestAnalyzeTieBreakLexicographic(t *testing.T) {
	res, err := AnalyzeWithOptions(
		[]string{"delta", "alpha", "echo", "bravo"},
		[]string{"charlie", "foxtrot", "alpha", "bravo"},
		Options{
			ChunkLength: 2,
			Tester: fakeTester{fn: func(a, b []float64) (float64, float64, error) {
				return 0, 0.5, nil
			}},
		},
	)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	for name, side := range map[string][]WordScore{"A": res.CharacteristicA, "B": res.CharacteristicB} {
		words := make([]string, len(side))
		for i, sc := range side {
			words[i] = sc.Word
		}
		if !sort.StringsAreSorted(words) {
			t.Errorf("Side %s with tied p-values not in lexicographic order: %v", name, words)
		}
	}
}

func TestAnalyzeStopwords(t *testing.T) {
	res, err := AnalyzeWithOptions(
		[]string{"the", "cat", "the", "sat"},
		[]string{"the", "dog", "the", "ran"},
		Options{
			ChunkLength: 1,
			Stopwords:   map[string]bool{"the": true},
		},
	)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if _, ok := findScore(res.CharacteristicA, "the"); ok {
		t.Error("Stopword leaked into the A-characteristic list")
	}
	if _, ok := findScore(res.CharacteristicB, "the"); ok {
		t.Error("Stopword leaked into the B-characteristic list")
	}
	if got := len(res.CharacteristicA) + len(res.CharacteristicB); got != 4 {
		t.Errorf("Expected 4 words after stopword filtering, got %d", got)
	}
}

func TestTop(t *testing.T) {
	scores := []WordScore{
		{Word: "a", PValue: 0.01},
		{Word: "b", PValue: 0.02},
		{Word: "c", PValue: 0.03},
	}

	if got := Top(scores, 2); len(got) != 2 || got[1].Word != "b" {
		t.Errorf("Top(2) = %v", got)
	}
	if got := Top(scores, 10); len(got) != 3 {
		t.Errorf("Oversized k should return the whole list, got %d entries", len(got))
	}
	if got := Top(scores, -1); len(got) != 3 {
		t.Errorf("Negative k should return the whole list, got %d entries", len(got))
	}
	if got := Top(scores, 0); len(got) != 0 {
		t.Errorf("Top(0) should be empty, got %d entries", len(got))
	}
}
