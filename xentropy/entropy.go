package xentropy

import (
	"math"
	"slices"
)

// Entropy calculates the Shannon entropy of data.
//
// Formula: H(X) = -Σ p_i * log_b(p_i)
//
// With ProbabilityBased mode (default) every element of data is used as p_i.
// With DiscreteSample mode p_i is the relative frequency of each distinct
// value, taken in ascending value order. All NaN observations together form
// one symbol with probability count(NaN)/len(data); tools that count NaN by
// equality (NaN == NaN is false) instead give that symbol probability 0, so
// for [NaN, NaN, 1, 1] in base 2 this returns 1 where they return 0.5.
// The base defaults to 10.
//
// An empty dataset has zero entropy. Zero probabilities contribute zero.
// Neither the element range nor the base is validated: malformed input
// yields a number, not an error.
func Entropy(data []float64, opts ...Option) float64 {
	o := newOptions(opts)

	if len(data) == 0 {
		return 0
	}

	return sum(distribution(data, o.mode), math.Log(o.base))
}

// Distribution returns the probability vector that Entropy sums over:
// a copy of data for ProbabilityBased, the ascending frequency table of
// distinct values for DiscreteSample.
func Distribution(data []float64, mode Mode) []float64 {
	if len(data) == 0 {
		return nil
	}
	if mode.discrete {
		return frequencies(data)
	}
	return slices.Clone(data)
}

// Normalized calculates entropy on a 0-1 scale by dividing it by the maximum
// entropy log_b(k), where k is the number of symbols with non-zero probability.
//
// Returns:
//   - 0: No entropy (one symbol or fewer)
//   - 1: Maximum entropy (uniform distribution)
func Normalized(data []float64, opts ...Option) float64 {
	o := newOptions(opts)

	probs := distribution(data, o.mode)

	var symbols int
	for _, p := range probs {
		if p != 0 {
			symbols++
		}
	}
	if symbols <= 1 {
		return 0
	}

	lnBase := math.Log(o.base)
	maxEntropy := math.Log(float64(symbols)) / lnBase

	return sum(probs, lnBase) / maxEntropy
}

// MinEntropy calculates the min-entropy (Rényi entropy with α=∞) of data.
//
// Formula: H_∞(X) = -log_b(max(p_i))
//
// Returns 0 for empty data, when no element carries positive probability, or
// when one symbol has probability 1.
func MinEntropy(data []float64, opts ...Option) float64 {
	o := newOptions(opts)

	var maxProb float64
	for _, p := range distribution(data, o.mode) {
		if p > maxProb {
			maxProb = p
		}
	}
	if maxProb == 0 || maxProb == 1 {
		return 0
	}

	return -math.Log(maxProb) / math.Log(o.base)
}

// plogp returns p * log_b(p) for lnBase = ln(b).
// By convention 0 * log(0) = 0, so a zero probability contributes nothing
// instead of NaN.
func plogp(p, lnBase float64) float64 {
	if p == 0 {
		return 0
	}
	return p * (math.Log(p) / lnBase)
}

// sum returns -Σ plogp(p) accumulated in slice order.
func sum(probs []float64, lnBase float64) float64 {
	var entropy float64
	for _, p := range probs {
		entropy -= plogp(p, lnBase)
	}
	return entropy
}

func distribution(data []float64, mode Mode) []float64 {
	if mode.discrete {
		return frequencies(data)
	}
	return data
}

// frequencies returns count/len for every distinct value in ascending order.
// All NaN observations count as one symbol, ordered first.
func frequencies(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	sorted := slices.Clone(data)
	slices.Sort(sorted)

	total := float64(len(sorted))
	probs := make([]float64, 0, len(sorted))

	for i := 0; i < len(sorted); {
		j := i + 1
		for j < len(sorted) && sameSymbol(sorted[i], sorted[j]) {
			j++
		}
		probs = append(probs, float64(j-i)/total)
		i = j
	}

	return probs
}

func sameSymbol(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}
