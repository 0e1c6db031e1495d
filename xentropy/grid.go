package xentropy

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// NewGrid builds a joint probability grid from rows, where rows index the
// outcomes of A and columns the outcomes of B. Empty or ragged input returns
// ErrInvalidGrid.
func NewGrid(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: grid is empty", ErrInvalidGrid)
	}

	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)

	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidGrid, i, len(row), cols)
		}
		data = append(data, row...)
	}

	return mat.NewDense(len(rows), cols, data), nil
}

// GridEntropy calculates H(A,B) from an explicit joint probability grid.
// The grid is always read as probabilities; only the base option applies.
func GridEntropy(joint mat.Matrix, opts ...Option) float64 {
	o := newOptions(opts)
	lnBase := math.Log(o.base)

	r, c := joint.Dims()

	var entropy float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			entropy -= plogp(joint.At(i, j), lnBase)
		}
	}

	return entropy
}

// GridMutualInformation calculates I(A;B) = H(A) + H(B) - H(A,B) from an
// explicit joint probability grid. The marginals H(A) and H(B) are taken from
// the row and column sums.
func GridMutualInformation(joint mat.Matrix, opts ...Option) float64 {
	o := newOptions(opts)
	lnBase := math.Log(o.base)

	r, c := joint.Dims()
	rowSums := make([]float64, r)
	colSums := make([]float64, c)

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := joint.At(i, j)
			rowSums[i] += v
			colSums[j] += v
		}
	}

	return sum(rowSums, lnBase) + sum(colSums, lnBase) - GridEntropy(joint, opts...)
}
