package service

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"pensiondoc/internal/domain"
	"pensiondoc/internal/port"
)

// ArtifactReaperConfig holds settings for the artifact reaper.
type ArtifactReaperConfig struct {
	Interval    time.Duration
	MaxAge      time.Duration
	Concurrency int
}

// ArtifactReaper deletes stored artifacts that an analysis uploaded but never
// removed, e.g. because the process died between upload and cleanup.
// Only files named with domain.ArtifactNamePrefix are considered.
type ArtifactReaper struct {
	backend port.ExtractionBackend
	cfg     ArtifactReaperConfig
	now     func() time.Time
}

// NewArtifactReaper creates a new ArtifactReaper.
func NewArtifactReaper(backend port.ExtractionBackend, cfg ArtifactReaperConfig) *ArtifactReaper {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &ArtifactReaper{
		backend: backend,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Start runs a sweep every Interval until ctx is canceled.
func (r *ArtifactReaper) Start(ctx context.Context) {
	logger := zerolog.Ctx(ctx)
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	logger.Info().
		Dur("interval", r.cfg.Interval).
		Dur("max_age", r.cfg.MaxAge).
		Int("concurrency", r.cfg.Concurrency).
		Msg("artifactReaper: started")

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("artifactReaper: shutdown complete")
			return
		case <-ticker.C:
			if _, err := r.RunOnce(ctx); err != nil {
				if ctx.Err() != nil {
					continue
				}
				logger.Error().Err(err).Msg("artifactReaper: sweep failed")
			}
		}
	}
}

// RunOnce performs a single sweep and returns the number of artifacts deleted.
// Individual delete failures are logged and do not fail the sweep.
func (r *ArtifactReaper) RunOnce(ctx context.Context) (int, error) {
	logger := zerolog.Ctx(ctx)

	artifacts, err := r.backend.ListFiles(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := r.now().Add(-r.cfg.MaxAge)
	var deleted atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)
	for i := range artifacts {
		artifact := artifacts[i]
		if !strings.HasPrefix(artifact.FileName, domain.ArtifactNamePrefix) {
			continue
		}
		if artifact.CreatedAt.IsZero() || artifact.CreatedAt.After(cutoff) {
			continue
		}
		g.Go(func() error {
			if err := r.backend.DeleteFile(gctx, artifact.ID); err != nil {
				logger.Warn().Err(err).Str("artifact_id", artifact.ID).Msg("artifactReaper: delete failed")
				return nil
			}
			deleted.Add(1)
			logger.Info().
				Str("artifact_id", artifact.ID).
				Str("file_name", artifact.FileName).
				Time("created_at", artifact.CreatedAt).
				Msg("artifactReaper: orphaned artifact deleted")
			return nil
		})
	}
	_ = g.Wait()

	return int(deleted.Load()), ctx.Err()
}
