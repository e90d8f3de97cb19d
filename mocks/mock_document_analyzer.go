package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pensiondoc/internal/domain"
	"pensiondoc/internal/port"
)

// MockDocumentAnalyzer is a mock implementation of port.DocumentAnalyzer.
type MockDocumentAnalyzer struct {
	mock.Mock
}

func (m *MockDocumentAnalyzer) AnalyzeAnticipated(ctx context.Context, doc port.Document) (*domain.RetirementSummary, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RetirementSummary), args.Error(1)
}

func (m *MockDocumentAnalyzer) AnalyzePartial(ctx context.Context, doc port.Document) (*domain.RetirementSummary, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RetirementSummary), args.Error(1)
}
