package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pensiondoc/internal/domain"
	"pensiondoc/internal/port"
)

// MockRetirementService is a mock implementation of service.RetirementService.
type MockRetirementService struct {
	mock.Mock
}

func (m *MockRetirementService) AnalyzeAnticipatedRetirement(ctx context.Context, doc port.Document) (*domain.RetirementSummary, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RetirementSummary), args.Error(1)
}

func (m *MockRetirementService) AnalyzePartialRetirement(ctx context.Context, doc port.Document) (*domain.RetirementSummary, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RetirementSummary), args.Error(1)
}
