package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Tensor is a dense row-major float64 array.
type Tensor struct {
	Shape []int
	Data  []float64
}

// NewTensor validates that shape and data agree.
func NewTensor(shape []int, data []float64) (Tensor, error) {
	size := 1
	for _, d := range shape {
		if d < 1 {
			return Tensor{}, fmt.Errorf("invalid dimension %d in shape %v", d, shape)
		}
		size *= d
	}
	if size != len(data) {
		return Tensor{}, fmt.Errorf("shape %v needs %d values, got %d", shape, size, len(data))
	}
	return Tensor{Shape: shape, Data: data}, nil
}

// Rank returns the number of dimensions.
func (t Tensor) Rank() int {
	return len(t.Shape)
}

// Rows returns a rank-2 tensor as a slice of row views over Data.
func (t Tensor) Rows() ([][]float64, error) {
	if t.Rank() != 2 {
		return nil, fmt.Errorf("expected 2D array, got shape %v", t.Shape)
	}
	cols := t.Shape[1]
	rows := make([][]float64, t.Shape[0])
	for i := range rows {
		rows[i] = t.Data[i*cols : (i+1)*cols]
	}
	return rows, nil
}

// Nested converts the tensor into nested []any following its shape, the form
// that encodes to plain JSON arrays.
func (t Tensor) Nested() any {
	if t.Rank() == 0 {
		if len(t.Data) == 0 {
			return nil
		}
		return t.Data[0]
	}
	v, _ := nest(t.Shape, t.Data)
	return v
}

func nest(shape []int, data []float64) (any, []float64) {
	if len(shape) == 1 {
		out := make([]any, shape[0])
		for i := range out {
			out[i] = data[i]
		}
		return out, data[shape[0]:]
	}
	out := make([]any, shape[0])
	for i := range out {
		out[i], data = nest(shape[1:], data)
	}
	return out, data
}

// TensorFromNested infers the shape of a JSON-like nested numeric value and
// flattens it. Scalars yield a rank-0 tensor. Every error wraps ErrInvalidInput.
func TensorFromNested(v any) (Tensor, error) {
	if v == nil {
		return Tensor{}, fmt.Errorf("%w: data is required", ErrInvalidInput)
	}

	shape, err := inferShape(v)
	if err != nil {
		return Tensor{}, err
	}

	size := 1
	for _, d := range shape {
		size *= d
	}
	data := make([]float64, 0, size)
	if err := flatten(v, shape, nil, &data); err != nil {
		return Tensor{}, err
	}
	return Tensor{Shape: shape, Data: data}, nil
}

// inferShape follows the first element at each depth.
func inferShape(v any) ([]int, error) {
	var shape []int
	var path []int
	for {
		s, ok := asSlice(v)
		if !ok {
			return shape, nil
		}
		if len(s) == 0 {
			return nil, fmt.Errorf("%w: data contains an empty sequence at %s", ErrInvalidInput, formatPath(path))
		}
		shape = append(shape, len(s))
		path = append(path, 0)
		v = s[0]
	}
}

func flatten(v any, shape []int, path []int, out *[]float64) error {
	depth := len(path)
	s, isSlice := asSlice(v)

	if depth == len(shape) {
		if isSlice {
			return fmt.Errorf("%w: data has an inhomogeneous shape at %s", ErrInvalidInput, formatPath(path))
		}
		f, err := toFloat(v)
		if err != nil {
			return fmt.Errorf("%w: data contains a non-numeric value at %s: %v", ErrInvalidInput, formatPath(path), err)
		}
		*out = append(*out, f)
		return nil
	}

	if !isSlice {
		return fmt.Errorf("%w: data has an inhomogeneous shape at %s", ErrInvalidInput, formatPath(path))
	}
	if len(s) != shape[depth] {
		return fmt.Errorf("%w: data has an inhomogeneous shape at %s: expected %d elements, got %d",
			ErrInvalidInput, formatPath(path), shape[depth], len(s))
	}
	for i, item := range s {
		if err := flatten(item, shape, append(path, i), out); err != nil {
			return err
		}
	}
	return nil
}

func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []float64:
		out := make([]any, len(s))
		for i, f := range s {
			out[i] = f
		}
		return out, true
	case [][]float64:
		out := make([]any, len(s))
		for i, row := range s {
			out[i] = row
		}
		return out, true
	default:
		return nil, false
	}
}

func toFloat(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 0, err
		}
		f = parsed
	case string:
		return 0, fmt.Errorf("%q", n)
	default:
		return 0, fmt.Errorf("%v (%T)", v, v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%v is not finite", f)
	}
	return f, nil
}

func formatPath(path []int) string {
	if len(path) == 0 {
		return "root"
	}
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strconv.Itoa(p)
	}
	return "[" + strings.Join(parts, "][") + "]"
}
