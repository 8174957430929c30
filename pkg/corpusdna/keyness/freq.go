package keyness

import "errors"

// ErrEmptyCorpus is returned when a token sequence has no tokens; relative
// frequency is undefined for an empty corpus.
var ErrEmptyCorpus = errors.New("corpus has no tokens")

// CountTokens reduces a token sequence to a word -> occurrence count table.
func CountTokens(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens)/4+1)
	for _, tok := range tokens {
		counts[tok]++
	}
	return counts
}

// Difference computes, for every word in the union vocabulary of the two
// sequences, the difference in relative frequency:
//
//	diff(w) = count_in_A(w)/len(A) - count_in_B(w)/len(B)
//
// A word absent from a sequence contributes count 0, so every value lies in
// [-1, 1]. The sign is the directionality convention used by the engine:
// diff <= 0 places a word in the A-characteristic group, diff > 0 in the
// B-characteristic group.
func Difference(tokensA, tokensB []string) (map[string]float64, error) {
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return nil, ErrEmptyCorpus
	}

	countsA := CountTokens(tokensA)
	countsB := CountTokens(tokensB)
	lenA := float64(len(tokensA))
	lenB := float64(len(tokensB))

	diffs := make(map[string]float64, len(countsA)+len(countsB))
	for word, n := range countsA {
		diffs[word] = float64(n)/lenA - float64(countsB[word])/lenB
	}
	for word, n := range countsB {
		if _, seen := countsA[word]; seen {
			continue
		}
		diffs[word] = -float64(n) / lenB
	}
	return diffs, nil
}
