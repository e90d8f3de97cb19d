// Package analyzer implements the document analyzer on top of an external
// document-understanding service.
//
// Each analysis owns one uploaded artifact for its whole lifetime: the PDF is
// uploaded, the model is asked to extract the modality's fields from it, the
// output is parsed and mapped, and the artifact is deleted on every exit path.
package analyzer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pensiondoc/internal/domain"
	"pensiondoc/internal/port"
)

const defaultCleanupTimeout = 30 * time.Second

// Analyzer implements port.DocumentAnalyzer using a port.ExtractionBackend.
// It holds no per-call state and is safe for concurrent use.
type Analyzer struct {
	backend        port.ExtractionBackend
	cleanupTimeout time.Duration
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithCleanupTimeout bounds how long artifact deletion may take once analysis returns.
func WithCleanupTimeout(d time.Duration) Option {
	return func(a *Analyzer) {
		if d > 0 {
			a.cleanupTimeout = d
		}
	}
}

// New creates an Analyzer that talks to backend.
func New(backend port.ExtractionBackend, opts ...Option) *Analyzer {
	a := &Analyzer{
		backend:        backend,
		cleanupTimeout: defaultCleanupTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Provider returns the name of the backing extraction provider.
func (a *Analyzer) Provider() string {
	return a.backend.Name()
}

// Model returns the extraction model in use.
func (a *Analyzer) Model() string {
	return a.backend.Model()
}

func (a *Analyzer) AnalyzeAnticipated(ctx context.Context, doc port.Document) (*domain.RetirementSummary, error) {
	return a.Analyze(ctx, doc, domain.ModalityAnticipatedVoluntary)
}

func (a *Analyzer) AnalyzePartial(ctx context.Context, doc port.Document) (*domain.RetirementSummary, error) {
	return a.Analyze(ctx, doc, domain.ModalityPartial)
}

// Analyze runs one upload, extract, parse, map and cleanup cycle for modality.
func (a *Analyzer) Analyze(ctx context.Context, doc port.Document, modality domain.RetirementModality) (*domain.RetirementSummary, error) {
	instructions, err := InstructionsFor(modality)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx).With().
		Str("provider", a.backend.Name()).
		Str("modality", string(modality)).
		Str("file_name", doc.FileName).
		Logger()

	artifact, err := a.backend.UploadFile(ctx, port.ArtifactUpload{
		FileName:    NewArtifactName(),
		ContentType: domain.ContentTypePDF,
		Content:     doc.Content,
	})
	if err != nil {
		return nil, &UploadError{Provider: a.backend.Name(), Err: err}
	}

	logger = logger.With().Str("artifact_id", artifact.ID).Logger()
	logger.Debug().Msg("analyzer: artifact uploaded")
	defer a.release(ctx, &logger, artifact)

	start := time.Now()
	raw, err := a.backend.Extract(ctx, artifact, instructions)
	if err != nil {
		return nil, &ExtractionRequestError{Provider: a.backend.Name(), Model: a.backend.Model(), Err: err}
	}
	logger.Debug().
		Dur("latency", time.Since(start)).
		Int("output_bytes", len(raw)).
		Msg("analyzer: extraction completed")

	summary, err := ParseSummary(modality, raw)
	if err != nil {
		logger.Warn().Err(err).Msg("analyzer: unusable model output")
		return nil, err
	}
	return summary, nil
}

// release deletes the artifact exactly once. It runs detached from ctx's
// cancellation so that a canceled request still removes what it uploaded.
// Failures are logged and swallowed.
func (a *Analyzer) release(ctx context.Context, logger *zerolog.Logger, artifact *port.Artifact) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cleanupTimeout)
	defer cancel()

	if err := a.backend.DeleteFile(cleanupCtx, artifact.ID); err != nil {
		cleanupErr := &CleanupError{Provider: a.backend.Name(), ArtifactID: artifact.ID, Err: err}
		logger.Error().Err(cleanupErr).Msg("analyzer: artifact cleanup failed")
		return
	}
	logger.Debug().Msg("analyzer: artifact deleted")
}

// NewArtifactName returns a unique file name carrying domain.ArtifactNamePrefix.
func NewArtifactName() string {
	return domain.ArtifactNamePrefix + uuid.New().String() + ".pdf"
}
