package xentropy

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// JointEntropy calculates H(A,B), the entropy of the joint distribution of a and b.
//
// How a and b are combined depends on the mode:
//   - DiscreteSample: a[i] and b[i] form one paired observation. Both slices
//     must have the same length, otherwise ErrLengthMismatch is returned.
//     Probabilities come from the frequency of each distinct (a, b) pair.
//   - ProbabilityBased: a and b are the marginal distributions of two
//     independent variables. The joint distribution is their outer product
//     a[i] * b[j]. Use GridEntropy when the joint distribution is known.
//
// An empty joint distribution has zero entropy.
func JointEntropy(a, b []float64, opts ...Option) (float64, error) {
	o := newOptions(opts)

	joint, err := jointDistribution(a, b, o.mode)
	if err != nil {
		return 0, err
	}

	return sum(joint, math.Log(o.base)), nil
}

// MutualInformation calculates I(A;B) = H(A) + H(B) - H(A,B).
//
// Pairing rules are the same as for JointEntropy. For ProbabilityBased input
// the variables are independent by construction, so the result is zero up to
// rounding.
func MutualInformation(a, b []float64, opts ...Option) (float64, error) {
	joint, err := JointEntropy(a, b, opts...)
	if err != nil {
		return 0, err
	}

	return Entropy(a, opts...) + Entropy(b, opts...) - joint, nil
}

// ConditionalEntropy calculates H(A|B) = H(A,B) - H(B).
func ConditionalEntropy(a, b []float64, opts ...Option) (float64, error) {
	joint, err := JointEntropy(a, b, opts...)
	if err != nil {
		return 0, err
	}

	return joint - Entropy(b, opts...), nil
}

type pair struct {
	a, b float64
}

func jointDistribution(a, b []float64, mode Mode) ([]float64, error) {
	if mode.discrete {
		if len(a) != len(b) {
			return nil, fmt.Errorf("%w: dataset_a has %d samples, dataset_b has %d", ErrLengthMismatch, len(a), len(b))
		}
		return pairFrequencies(a, b), nil
	}

	return outer(a, b), nil
}

// pairFrequencies returns count/len for every distinct (a[i], b[i]) pair,
// ordered by a and then by b.
func pairFrequencies(a, b []float64) []float64 {
	if len(a) == 0 {
		return nil
	}

	pairs := make([]pair, len(a))
	for i := range a {
		pairs[i] = pair{a: a[i], b: b[i]}
	}

	slices.SortFunc(pairs, func(x, y pair) int {
		if c := cmp.Compare(x.a, y.a); c != 0 {
			return c
		}
		return cmp.Compare(x.b, y.b)
	})

	total := float64(len(pairs))
	probs := make([]float64, 0, len(pairs))

	for i := 0; i < len(pairs); {
		j := i + 1
		for j < len(pairs) && sameSymbol(pairs[i].a, pairs[j].a) && sameSymbol(pairs[i].b, pairs[j].b) {
			j++
		}
		probs = append(probs, float64(j-i)/total)
		i = j
	}

	return probs
}

// outer returns the row-major outer product of a and b.
func outer(a, b []float64) []float64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	probs := make([]float64, 0, len(a)*len(b))
	for _, p := range a {
		for _, q := range b {
			probs = append(probs, p*q)
		}
	}

	return probs
}
