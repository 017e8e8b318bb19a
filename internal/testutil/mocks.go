package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"maternal-care-service/internal/core/domain"
	"maternal-care-service/internal/core/ports/output"
)

// MockModelArtifact is a mock of ModelArtifact.
type MockModelArtifact struct {
	mock.Mock
}

func (m *MockModelArtifact) Predict(ctx context.Context, input domain.Tensor) (domain.Tensor, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Tensor), args.Error(1)
}

// MockArtifactLoader is a mock of ArtifactLoader.
type MockArtifactLoader struct {
	mock.Mock
}

func (m *MockArtifactLoader) Load(ctx context.Context, location string) (ports.ModelArtifact, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.ModelArtifact), args.Error(1)
}

// MockContentRepo is a mock of ContentRepository.
type MockContentRepo struct {
	mock.Mock
}

func (m *MockContentRepo) ListEducation(ctx context.Context, language string) ([]domain.EducationArticle, error) {
	args := m.Called(ctx, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EducationArticle), args.Error(1)
}

func (m *MockContentRepo) ListFAQ(ctx context.Context, language string) ([]domain.FAQEntry, error) {
	args := m.Called(ctx, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FAQEntry), args.Error(1)
}

// MockKServeClient is a mock of KServeClient.
type MockKServeClient struct {
	mock.Mock
}

func (m *MockKServeClient) GetStatus(ctx context.Context, namespace, name string) (*ports.KServeStatus, error) {
	args := m.Called(ctx, namespace, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.KServeStatus), args.Error(1)
}

func (m *MockKServeClient) IsAvailable() bool {
	args := m.Called()
	return args.Bool(0)
}

// FuncArtifact adapts a plain function to ModelArtifact for tests that
// need real concurrent calls without mock bookkeeping.
type FuncArtifact func(ctx context.Context, input domain.Tensor) (domain.Tensor, error)

func (f FuncArtifact) Predict(ctx context.Context, input domain.Tensor) (domain.Tensor, error) {
	return f(ctx, input)
}
