package domain

import "fmt"

// Coercer turns caller-supplied nested numeric data into a single-sample
// tensor of shape (1, n), n being the number of scalars supplied.
type Coercer struct {
	// MaxFeatures rejects inputs with more scalars than this. Zero disables the check.
	MaxFeatures int
}

func NewCoercer(maxFeatures int) *Coercer {
	return &Coercer{MaxFeatures: maxFeatures}
}

func (c *Coercer) Coerce(raw any) (Tensor, error) {
	t, err := TensorFromNested(raw)
	if err != nil {
		return Tensor{}, err
	}

	n := len(t.Data)
	if c.MaxFeatures > 0 && n > c.MaxFeatures {
		return Tensor{}, fmt.Errorf("%w: data has %d values, at most %d are accepted", ErrInvalidInput, n, c.MaxFeatures)
	}

	return Tensor{Shape: []int{1, n}, Data: t.Data}, nil
}
