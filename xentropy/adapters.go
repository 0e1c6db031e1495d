package xentropy

import (
	"encoding/json"
	"fmt"
	"slices"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/mat"
)

// Number is any integer or floating-point type a dataset may be built from.
type Number interface {
	constraints.Integer | constraints.Float
}

// FromSlice converts a numeric slice into the canonical []float64 dataset.
func FromSlice[T Number](values []T) []float64 {
	if values == nil {
		return nil
	}

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

// FromVector copies a gonum vector into a dataset.
func FromVector(v mat.Vector) []float64 {
	n := v.Len()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = v.AtVec(i)
	}
	return out
}

// Series is a labeled one-dimensional sequence of values.
// Index is optional; when set it has one label per value.
type Series struct {
	Index  []string  `json:"index,omitempty" yaml:"index,omitempty"`
	Values []float64 `json:"values" yaml:"values"`
}

func NewSeries(index []string, values []float64) (Series, error) {
	if index != nil && len(index) != len(values) {
		return Series{}, fmt.Errorf("%w: series has %d labels for %d values", ErrLengthMismatch, len(index), len(values))
	}

	return Series{Index: index, Values: values}, nil
}

func (s Series) Len() int {
	return len(s.Values)
}

// Float64s returns a copy of the series values, dropping the labels.
func (s Series) Float64s() []float64 {
	return slices.Clone(s.Values)
}

// FromAny converts an untyped dataset into []float64.
//
// Accepted containers:
//   - numeric slices ([]float64, []float32, []int, []int64, []uint8, ...)
//   - mat.Vector
//   - Series and *Series
//   - []any holding numbers of any Number type or json.Number, as produced by encoding/json
//   - map[string]any with a "values" array (and optional "index"), the JSON form of Series
//
// Any other container returns an *UnsupportedContainerError; a non-numeric
// element inside an accepted container returns ErrNonNumeric.
func FromAny(dataset any) ([]float64, error) {
	switch data := dataset.(type) {
	case []float64:
		return slices.Clone(data), nil
	case []float32:
		return FromSlice(data), nil
	case []int:
		return FromSlice(data), nil
	case []int8:
		return FromSlice(data), nil
	case []int16:
		return FromSlice(data), nil
	case []int32:
		return FromSlice(data), nil
	case []int64:
		return FromSlice(data), nil
	case []uint:
		return FromSlice(data), nil
	case []uint8:
		return FromSlice(data), nil
	case []uint16:
		return FromSlice(data), nil
	case []uint32:
		return FromSlice(data), nil
	case []uint64:
		return FromSlice(data), nil
	case Series:
		return data.Float64s(), nil
	case *Series:
		if data == nil {
			return nil, &UnsupportedContainerError{Type: "nil *Series"}
		}
		return data.Float64s(), nil
	case mat.Vector:
		return FromVector(data), nil
	case []any:
		return fromValues(data)
	case map[string]any:
		return fromSeriesObject(data)
	default:
		return nil, &UnsupportedContainerError{Type: fmt.Sprintf("%T", dataset)}
	}
}

func fromValues(values []any) ([]float64, error) {
	out := make([]float64, len(values))

	for i, value := range values {
		switch v := value.(type) {
		case float64:
			out[i] = v
		case float32:
			out[i] = float64(v)
		case int:
			out[i] = float64(v)
		case int8:
			out[i] = float64(v)
		case int16:
			out[i] = float64(v)
		case int32:
			out[i] = float64(v)
		case int64:
			out[i] = float64(v)
		case uint:
			out[i] = float64(v)
		case uint8:
			out[i] = float64(v)
		case uint16:
			out[i] = float64(v)
		case uint32:
			out[i] = float64(v)
		case uint64:
			out[i] = float64(v)
		case uintptr:
			out[i] = float64(v)
		case json.Number:
			f, err := v.Float64()
			if err != nil {
				return nil, fmt.Errorf("%w: element %d: %w", ErrNonNumeric, i, err)
			}
			out[i] = f
		default:
			return nil, fmt.Errorf("%w: element %d has type %T", ErrNonNumeric, i, value)
		}
	}

	return out, nil
}

func fromSeriesObject(obj map[string]any) ([]float64, error) {
	raw, ok := obj["values"]
	if !ok {
		return nil, &UnsupportedContainerError{Type: `object without "values"`}
	}

	values, ok := raw.([]any)
	if !ok {
		return nil, &UnsupportedContainerError{Type: fmt.Sprintf("series values of type %T", raw)}
	}

	if index, ok := obj["index"].([]any); ok && len(index) != len(values) {
		return nil, fmt.Errorf("%w: series has %d labels for %d values", ErrLengthMismatch, len(index), len(values))
	}

	return fromValues(values)
}
