package keyness

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// WordScore is one ranked vocabulary entry: the word, the two-sided
// rank-sum p-value of its per-chunk counts, and its relative-frequency
// difference (the directionality signal).
type WordScore struct {
	Word   string
	PValue float64
	Diff   float64
}

// Diagnostic records a word whose rank-sum test failed for a reason other
// than degenerate samples. The word still appears in the ranked lists with
// p = 1 so that no vocabulary entry is silently dropped.
type Diagnostic struct {
	Word string
	Err  error
}

// Result holds the two ranked lists produced by Analyze. Both lists are
// sorted by ascending p-value (most significant first), ties broken by
// lexicographic word order. Words with Diff <= 0 land in CharacteristicA,
// the rest in CharacteristicB; exact-zero differences belong to A.
type Result struct {
	CharacteristicA []WordScore
	CharacteristicB []WordScore
	Diagnostics     []Diagnostic
}

// Options control a single analysis. The zero value selects the defaults:
// 500-token chunks, the Mann-Whitney tester, a single worker, no
// stopwords.
type Options struct {
	ChunkLength int
	Workers     int
	Tester      RankSumTester
	Stopwords   map[string]bool
}

// Analyze runs the bursty keyness procedure with default options.
func Analyze(tokensA, tokensB []string) (*Result, error) {
	return AnalyzeWithOptions(tokensA, tokensB, Options{})
}

// AnalyzeWithOptions chunks both corpora, builds each vocabulary word's
// per-chunk count samples, obtains a two-sided rank-sum p-value for every
// word, and returns the vocabulary partitioned by frequency-difference
// sign and ranked by significance.
//
// Per-word failures never abort the batch: degenerate samples (word
// distributed identically in both corpora, e.g. a constant count in every
// chunk) score p = 1, and any other tester error scores p = 1 and is
// reported in Result.Diagnostics. Identical inputs always yield identical
// results regardless of worker count.
func AnalyzeWithOptions(tokensA, tokensB []string, opts Options) (*Result, error) {
	if len(tokensA) == 0 {
		return nil, fmt.Errorf("corpus A: %w", ErrEmptyCorpus)
	}
	if len(tokensB) == 0 {
		return nil, fmt.Errorf("corpus B: %w", ErrEmptyCorpus)
	}

	chunkLength := opts.ChunkLength
	if chunkLength == 0 {
		chunkLength = DefaultChunkLength
	}
	tester := opts.Tester
	if tester == nil {
		tester = NewMannWhitney()
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	chunksA, err := Chunk(tokensA, chunkLength)
	if err != nil {
		return nil, err
	}
	chunksB, err := Chunk(tokensB, chunkLength)
	if err != nil {
		return nil, err
	}

	diffs, err := Difference(tokensA, tokensB)
	if err != nil {
		return nil, err
	}

	// Fixed vocabulary order so the tie-break below is reproducible no
	// matter how the map iterates or how many workers run.
	vocab := make([]string, 0, len(diffs))
	for word := range diffs {
		if opts.Stopwords[word] {
			continue
		}
		vocab = append(vocab, word)
	}
	sort.Strings(vocab)

	testWord := func(word string) (float64, error) {
		sampleA := buildSample(word, chunksA)
		sampleB := buildSample(word, chunksB)
		_, p, err := tester.TwoSided(sampleA, sampleB)
		if err != nil {
			if errors.Is(err, ErrDegenerate) {
				// No evidence of difference.
				return 1, nil
			}
			return 1, err
		}
		return p, nil
	}

	pvalues := make(map[string]float64, len(vocab))
	var diags []Diagnostic

	if workers == 1 {
		for _, word := range vocab {
			p, err := testWord(word)
			pvalues[word] = p
			if err != nil {
				diags = append(diags, Diagnostic{Word: word, Err: err})
			}
		}
	} else {
		type wordResult struct {
			word string
			p    float64
			err  error
		}

		jobs := make(chan string)
		results := make(chan wordResult, workers)

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for word := range jobs {
					p, err := testWord(word)
					results <- wordResult{word: word, p: p, err: err}
				}
			}()
		}
		go func() {
			for _, word := range vocab {
				jobs <- word
			}
			close(jobs)
			wg.Wait()
			close(results)
		}()

		for r := range results {
			pvalues[r.word] = r.p
			if r.err != nil {
				diags = append(diags, Diagnostic{Word: r.word, Err: r.err})
			}
		}
		sort.Slice(diags, func(i, j int) bool { return diags[i].Word < diags[j].Word })
	}

	res := &Result{Diagnostics: diags}
	for _, word := range vocab {
		score := WordScore{Word: word, PValue: pvalues[word], Diff: diffs[word]}
		if score.Diff <= 0 {
			res.CharacteristicA = append(res.CharacteristicA, score)
		} else {
			res.CharacteristicB = append(res.CharacteristicB, score)
		}
	}
	sortScores(res.CharacteristicA)
	sortScores(res.CharacteristicB)
	return res, nil
}

// Top returns the k most significant entries of a ranked list. A negative
// or oversized k returns the whole list.
func Top(scores []WordScore, k int) []WordScore {
	if k < 0 || k > len(scores) {
		return scores
	}
	return scores[:k]
}

// buildSample extracts one word's count from each chunk, in chunk order.
func buildSample(word string, chunks []map[string]int) []float64 {
	sample := make([]float64, len(chunks))
	for i, counts := range chunks {
		sample[i] = float64(counts[word])
	}
	return sample
}

func sortScores(scores []WordScore) {
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].PValue != scores[j].PValue {
			return scores[i].PValue < scores[j].PValue
		}
		return scores[i].Word < scores[j].Word
	})
}
