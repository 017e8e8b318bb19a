package sklearn

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"maternal-care-service/internal/core/domain"
	output "maternal-care-service/internal/core/ports/output"
)

// Supported estimator classes
const (
	LinearRegression   = "LinearRegression"
	Ridge              = "Ridge"
	Lasso              = "Lasso"
	LogisticRegression = "LogisticRegression"
)

var regressors = map[string]bool{
	LinearRegression: true,
	Ridge:            true,
	Lasso:            true,
}

var classifiers = map[string]bool{
	LogisticRegression: true,
}

// Export is the portable serialized form of a fitted linear estimator.
type Export struct {
	Estimator   string    `json:"estimator" yaml:"estimator"`
	NFeaturesIn int       `json:"n_features_in" yaml:"n_features_in"`
	Coef        any       `json:"coef" yaml:"coef"`
	Intercept   any       `json:"intercept" yaml:"intercept"`
	Classes     []float64 `json:"classes,omitempty" yaml:"classes,omitempty"`
}

// Estimator is a fitted linear model evaluated in-process. It is immutable
// after construction, so Predict is safe for concurrent use.
type Estimator struct {
	name      string
	nFeatures int
	// coef has one row per output (targets or classes)
	coef       *mat.Dense
	intercept  *mat.VecDense
	classes    []float64
	classifier bool
	multiCoef  bool
}

// NewEstimator validates an export and builds the estimator.
func NewEstimator(exp Export) (*Estimator, error) {
	classifier := classifiers[exp.Estimator]
	if !classifier && !regressors[exp.Estimator] {
		return nil, fmt.Errorf("unsupported estimator %q", exp.Estimator)
	}

	coef, err := domain.TensorFromNested(exp.Coef)
	if err != nil {
		return nil, fmt.Errorf("coef: %w", err)
	}

	var outputs, nFeatures int
	switch coef.Rank() {
	case 1:
		outputs, nFeatures = 1, coef.Shape[0]
	case 2:
		outputs, nFeatures = coef.Shape[0], coef.Shape[1]
	default:
		return nil, fmt.Errorf("coef must be 1D or 2D, got shape %v", coef.Shape)
	}

	intercept, err := interceptValues(exp.Intercept, outputs)
	if err != nil {
		return nil, err
	}

	if exp.NFeaturesIn != 0 && exp.NFeaturesIn != nFeatures {
		return nil, fmt.Errorf("n_features_in is %d but coef has %d columns", exp.NFeaturesIn, nFeatures)
	}

	e := &Estimator{
		name:       exp.Estimator,
		nFeatures:  nFeatures,
		coef:       mat.NewDense(outputs, nFeatures, coef.Data),
		intercept:  mat.NewVecDense(outputs, intercept),
		classifier: classifier,
		multiCoef:  coef.Rank() == 2,
	}

	if classifier {
		switch {
		case len(exp.Classes) < 2:
			return nil, fmt.Errorf("%s needs at least 2 classes", exp.Estimator)
		case len(exp.Classes) == 2 && outputs != 1:
			return nil, fmt.Errorf("binary %s needs 1 coef row, got %d", exp.Estimator, outputs)
		case len(exp.Classes) > 2 && outputs != len(exp.Classes):
			return nil, fmt.Errorf("%s has %d classes but %d coef rows", exp.Estimator, len(exp.Classes), outputs)
		}
		e.classes = exp.Classes
	}

	return e, nil
}

func interceptValues(raw any, outputs int) ([]float64, error) {
	if raw == nil {
		return make([]float64, outputs), nil
	}
	t, err := domain.TensorFromNested(raw)
	if err != nil {
		return nil, fmt.Errorf("intercept: %w", err)
	}
	if t.Rank() > 1 {
		return nil, fmt.Errorf("intercept must be a scalar or 1D, got shape %v", t.Shape)
	}
	if len(t.Data) == 1 && outputs > 1 {
		out := make([]float64, outputs)
		for i := range out {
			out[i] = t.Data[0]
		}
		return out, nil
	}
	if len(t.Data) != outputs {
		return nil, fmt.Errorf("intercept has %d values, expected %d", len(t.Data), outputs)
	}
	return t.Data, nil
}

// Name returns the estimator class name.
func (e *Estimator) Name() string {
	return e.name
}

// NFeatures returns the number of input columns the estimator expects.
func (e *Estimator) NFeatures() int {
	return e.nFeatures
}

func (e *Estimator) Predict(ctx context.Context, input domain.Tensor) (domain.Tensor, error) {
	if input.Rank() != 2 {
		return domain.Tensor{}, fmt.Errorf("%s: expected 2D array, got shape %v", e.name, input.Shape)
	}
	if _, err := domain.NewTensor(input.Shape, input.Data); err != nil {
		return domain.Tensor{}, fmt.Errorf("%s: %w", e.name, err)
	}
	n, features := input.Shape[0], input.Shape[1]
	if features != e.nFeatures {
		return domain.Tensor{}, fmt.Errorf("X has %d features, but %s is expecting %d features as input.",
			features, e.name, e.nFeatures)
	}

	scores := e.decision(mat.NewDense(n, features, input.Data))

	if e.classifier {
		labels := make([]float64, n)
		for i := range labels {
			labels[i] = e.classify(scores.RawRowView(i))
		}
		return domain.NewTensor([]int{n}, labels)
	}

	outputs, _ := e.coef.Dims()
	data := make([]float64, 0, n*outputs)
	for i := 0; i < n; i++ {
		data = append(data, scores.RawRowView(i)...)
	}
	if !e.multiCoef {
		return domain.NewTensor([]int{n}, data)
	}
	return domain.NewTensor([]int{n, outputs}, data)
}

// decision computes X·coefᵀ + intercept, one row of scores per sample.
func (e *Estimator) decision(x *mat.Dense) *mat.Dense {
	var scores mat.Dense
	scores.Mul(x, e.coef.T())
	scores.Apply(func(_, j int, v float64) float64 {
		return v + e.intercept.AtVec(j)
	}, &scores)
	return &scores
}

func (e *Estimator) classify(scores []float64) float64 {
	if len(e.classes) == 2 {
		if scores[0] > 0 {
			return e.classes[1]
		}
		return e.classes[0]
	}
	return e.classes[floats.MaxIdx(scores)]
}

var _ output.ModelArtifact = (*Estimator)(nil)
