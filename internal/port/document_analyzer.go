package port

import (
	"context"
	"io"

	"pensiondoc/internal/domain"
)

// Document is a PDF submitted for analysis.
type Document struct {
	FileName string
	Content  io.Reader
	Size     int64
}

// DocumentAnalyzer extracts a retirement summary from a pension-calculation PDF.
// Implementations decide which extraction backend does the work.
type DocumentAnalyzer interface {
	AnalyzeAnticipated(ctx context.Context, doc Document) (*domain.RetirementSummary, error)
	AnalyzePartial(ctx context.Context, doc Document) (*domain.RetirementSummary, error)
}
