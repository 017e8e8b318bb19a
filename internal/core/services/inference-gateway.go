package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"maternal-care-service/internal/core/domain"
	output "maternal-care-service/internal/core/ports/output"
)

// InferenceGateway is the public prediction contract: registry lookup, input
// coercion, backend dispatch and error shaping. It holds no per-request state.
type InferenceGateway struct {
	registry *ModelRegistry
	coercer  *domain.Coercer
}

func NewInferenceGateway(registry *ModelRegistry, coercer *domain.Coercer) *InferenceGateway {
	if coercer == nil {
		coercer = domain.NewCoercer(0)
	}
	return &InferenceGateway{registry: registry, coercer: coercer}
}

// Predict runs one single-sample prediction. The result is the backend output
// as nested []any; every failure is a *domain.PredictionError.
func (g *InferenceGateway) Predict(ctx context.Context, backend string, raw any) (any, error) {
	start := time.Now()
	logger := log.WithField("backend", backend)

	state := g.registry.Get(backend)
	if !state.Available() {
		logger.WithField("reason", state.Reason).Warn("prediction rejected: model unavailable")
		return nil, unavailable(backend)
	}

	input, err := g.coercer.Coerce(raw)
	if err != nil {
		logger.WithError(err).Warn("prediction rejected: invalid input")
		return nil, &domain.PredictionError{
			Kind:    domain.ErrInvalidInput,
			Backend: backend,
			Message: inputMessage(err),
		}
	}

	result, err := invoke(ctx, state.Artifact, input)
	if err != nil {
		logger.WithError(err).Warn("prediction failed")
		return nil, &domain.PredictionError{
			Kind:    domain.ErrPredictionFailed,
			Backend: backend,
			Message: err.Error(),
		}
	}

	logger.WithFields(log.Fields{
		"features":   len(input.Data),
		"latency_ms": time.Since(start).Milliseconds(),
	}).Debug("prediction completed")

	return result.Nested(), nil
}

// Check reports whether backend can serve predictions, returning the same
// error Predict would for an unavailable backend.
func (g *InferenceGateway) Check(backend string) error {
	if !g.registry.Get(backend).Available() {
		return unavailable(backend)
	}
	return nil
}

func unavailable(backend string) *domain.PredictionError {
	return &domain.PredictionError{
		Kind:    domain.ErrModelUnavailable,
		Backend: backend,
		Message: fmt.Sprintf("%s model not loaded", domain.BackendDisplayName(backend)),
	}
}

// invoke calls the artifact, converting a panic into an error.
func invoke(ctx context.Context, artifact output.ModelArtifact, input domain.Tensor) (out domain.Tensor, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("backend panicked: %v", p)
		}
	}()

	out, err = artifact.Predict(ctx, input)
	if err != nil {
		return domain.Tensor{}, err
	}
	if len(out.Data) == 0 {
		return domain.Tensor{}, errors.New("backend returned an empty prediction")
	}
	if out.Rank() > 0 {
		if out, err = domain.NewTensor(out.Shape, out.Data); err != nil {
			return domain.Tensor{}, fmt.Errorf("backend returned a malformed prediction: %w", err)
		}
	} else if len(out.Data) != 1 {
		return domain.Tensor{}, fmt.Errorf("backend returned a malformed prediction: scalar with %d values", len(out.Data))
	}
	return out, nil
}

// inputMessage strips the sentinel prefix so callers see only the detail.
func inputMessage(err error) string {
	return strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": ")
}
