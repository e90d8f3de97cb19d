// @title Pension Document Analysis API
// @version 1.0
// @description Extracts retirement summaries from Spanish Social Security pension calculation documents.
// @BasePath /
package main

//go:generate go run github.com/swaggo/swag/cmd/swag@v1.16.6 init -d ../../ -g cmd/server/main.go -o ../../docs --parseInternal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"pensiondoc/docs"
	"pensiondoc/internal/analyzer"
	"pensiondoc/internal/analyzer/providers"
	"pensiondoc/internal/config"
	"pensiondoc/internal/handler"
	"pensiondoc/internal/observability"
	"pensiondoc/internal/router"
	"pensiondoc/internal/service"
	"pensiondoc/internal/validator"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := observability.Setup(cfg.Log, os.Stdout)
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	// Initialize the extraction backend and analyzer
	providers.RegisterAll()
	backend, err := analyzer.NewBackend(&cfg.Analyzer)
	if err != nil {
		return fmt.Errorf("failed to initialize %s backend: %w", cfg.Analyzer.Provider, err)
	}
	docAnalyzer := analyzer.New(backend, analyzer.WithCleanupTimeout(cfg.Analyzer.CleanupTimeout()))

	// Initialize services
	checks := validator.NewEngine(validator.NewDefaultRegistry())
	retirementSvc := service.NewRetirementService(docAnalyzer, checks)

	// Initialize handlers
	retirementH := handler.NewRetirementHandler(retirementSvc, cfg.Upload.MaxBytes())
	healthH := handler.NewHealthHandler(docAnalyzer)

	// Setup router
	docs.SwaggerInfo.BasePath = cfg.Server.BasePath + "/"
	r := router.Setup(cfg, logger, retirementH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().
			Str("addr", cfg.Server.Port).
			Str("provider", docAnalyzer.Provider()).
			Str("model", docAnalyzer.Model()).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info().Msg("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.Reaper.Enabled {
		reaper := service.NewArtifactReaper(backend, service.ArtifactReaperConfig{
			Interval:    cfg.Reaper.Interval,
			MaxAge:      cfg.Reaper.MaxAge,
			Concurrency: cfg.Reaper.Concurrency,
		})
		g.Go(func() error {
			reaper.Start(gctx)
			return nil
		})
	}

	return g.Wait()
}
