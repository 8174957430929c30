package keyness

import (
	"errors"

	"github.com/aclements/go-moremath/stats"
)

// ErrDegenerate reports that two samples are statistically
// indistinguishable (e.g. both constant and equal), so the rank-sum test
// has no defined p-value. The engine absorbs this per word as p = 1.
var ErrDegenerate = errors.New("samples are degenerate")

// RankSumTester computes a two-sided Mann-Whitney rank-sum test over two
// independent samples. Sample sizes may differ. Implementations must
// return ErrDegenerate (possibly wrapped) when the samples are identical
// constant sequences.
type RankSumTester interface {
	TwoSided(sampleA, sampleB []float64) (stat, p float64, err error)
}

// mannWhitney is the default RankSumTester, backed by go-moremath. It
// computes the exact p-value for small tie-free samples and falls back to
// the normal approximation with tie correction otherwise.
type mannWhitney struct{}

// NewMannWhitney returns the default Mann-Whitney U rank-sum tester.
func NewMannWhitney() RankSumTester {
	return mannWhitney{}
}

func (mannWhitney) TwoSided(sampleA, sampleB []float64) (float64, float64, error) {
	res, err := stats.MannWhitneyUTest(sampleA, sampleB, stats.LocationDiffers)
	if err != nil {
		if errors.Is(err, stats.ErrSamplesEqual) {
			return 0, 1, ErrDegenerate
		}
		return 0, 0, err
	}

	p := res.P
	// The two-sided normal approximation can nudge past 1 for near-equal
	// samples.
	if p > 1 {
		p = 1
	}
	return res.U, p, nil
}
