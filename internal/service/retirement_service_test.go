package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pensiondoc/internal/analyzer"
	"pensiondoc/internal/domain"
	"pensiondoc/internal/port"
	"pensiondoc/internal/service"
	"pensiondoc/internal/validator"
	"pensiondoc/mocks"
)

func testDocument() port.Document {
	return port.Document{FileName: "informe.pdf", Content: bytes.NewReader([]byte("%PDF-1.7")), Size: 8}
}

func TestRetirementService_AnalyzeAnticipated_Success(t *testing.T) {
	analyzerMock := new(mocks.MockDocumentAnalyzer)
	svc := service.NewRetirementService(analyzerMock, validator.NewEngine(validator.NewDefaultRegistry()))

	months := 24
	amount := 2480.55
	want := &domain.RetirementSummary{
		Modality:                       domain.ModalityAnticipatedVoluntary,
		MonthsInAdvance:                &months,
		MonthlyPensionAmount14Payments: &amount,
	}
	doc := testDocument()
	analyzerMock.On("AnalyzeAnticipated", mock.Anything, doc).Return(want, nil)

	got, err := svc.AnalyzeAnticipatedRetirement(context.Background(), doc)

	require.NoError(t, err)
	assert.Same(t, want, got)
	analyzerMock.AssertExpectations(t)
	analyzerMock.AssertNotCalled(t, "AnalyzePartial", mock.Anything, mock.Anything)
}

func TestRetirementService_AnalyzePartial_Success(t *testing.T) {
	analyzerMock := new(mocks.MockDocumentAnalyzer)
	svc := service.NewRetirementService(analyzerMock, nil)

	pct := 75.0
	want := &domain.RetirementSummary{
		Modality:                domain.ModalityPartial,
		PartialRetirementDate:   &domain.Date{Year: 2025, Month: time.November, Day: 15},
		WorkdayReductionPercent: &pct,
	}
	doc := testDocument()
	analyzerMock.On("AnalyzePartial", mock.Anything, doc).Return(want, nil)

	got, err := svc.AnalyzePartialRetirement(context.Background(), doc)

	require.NoError(t, err)
	assert.Equal(t, want, got)
	analyzerMock.AssertExpectations(t)
}

func TestRetirementService_PropagatesErrorsUnchanged(t *testing.T) {
	analyzerMock := new(mocks.MockDocumentAnalyzer)
	svc := service.NewRetirementService(analyzerMock, nil)

	parseErr := &analyzer.ParseError{Kind: analyzer.ParseErrorJSON, Raw: "not json", Err: errors.New("invalid character")}
	doc := testDocument()
	analyzerMock.On("AnalyzeAnticipated", mock.Anything, doc).Return(nil, parseErr)

	got, err := svc.AnalyzeAnticipatedRetirement(context.Background(), doc)

	assert.Nil(t, got)
	assert.Same(t, parseErr, err)
}
