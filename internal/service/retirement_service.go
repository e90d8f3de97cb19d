package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"pensiondoc/internal/domain"
	"pensiondoc/internal/port"
	"pensiondoc/internal/validator"
)

// RetirementService defines the pension document analysis use cases.
type RetirementService interface {
	AnalyzeAnticipatedRetirement(ctx context.Context, doc port.Document) (*domain.RetirementSummary, error)
	AnalyzePartialRetirement(ctx context.Context, doc port.Document) (*domain.RetirementSummary, error)
}

type retirementService struct {
	analyzer port.DocumentAnalyzer
	checks   *validator.Engine
}

// NewRetirementService creates a new RetirementService implementation.
// checks may be nil, in which case no consistency findings are logged.
func NewRetirementService(analyzer port.DocumentAnalyzer, checks *validator.Engine) RetirementService {
	return &retirementService{
		analyzer: analyzer,
		checks:   checks,
	}
}

func (s *retirementService) AnalyzeAnticipatedRetirement(ctx context.Context, doc port.Document) (*domain.RetirementSummary, error) {
	return s.run(ctx, doc, domain.ModalityAnticipatedVoluntary, s.analyzer.AnalyzeAnticipated)
}

func (s *retirementService) AnalyzePartialRetirement(ctx context.Context, doc port.Document) (*domain.RetirementSummary, error) {
	return s.run(ctx, doc, domain.ModalityPartial, s.analyzer.AnalyzePartial)
}

type analyzeFunc func(ctx context.Context, doc port.Document) (*domain.RetirementSummary, error)

// run delegates to the analyzer and returns its result or error unchanged.
func (s *retirementService) run(
	ctx context.Context,
	doc port.Document,
	modality domain.RetirementModality,
	analyze analyzeFunc,
) (*domain.RetirementSummary, error) {
	logger := zerolog.Ctx(ctx).With().
		Str("modality", string(modality)).
		Str("file_name", doc.FileName).
		Int64("size", doc.Size).
		Logger()

	start := time.Now()
	summary, err := analyze(ctx, doc)
	if err != nil {
		logger.Warn().Err(err).Dur("latency", time.Since(start)).Msg("retirementService: analysis failed")
		return nil, err
	}

	logger.Info().Dur("latency", time.Since(start)).Msg("retirementService: analysis completed")

	if s.checks != nil {
		for _, f := range s.checks.Check(summary) {
			logger.Warn().
				Str("rule", f.RuleKey).
				Str("severity", string(f.Severity)).
				Str("field", f.Field).
				Str("expected", f.ExpectedValue).
				Str("actual", f.ActualValue).
				Msg(f.Message)
		}
	}

	return summary, nil
}
