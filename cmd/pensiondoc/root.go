package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pensiondoc/internal/analyzer"
	"pensiondoc/internal/analyzer/providers"
	"pensiondoc/internal/config"
	"pensiondoc/internal/observability"
	"pensiondoc/internal/port"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "pensiondoc",
	Short:         "Analyze Social Security pension calculation documents",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading configuration")
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newReapCmd())
}

// environment is the configuration and provider wiring shared by subcommands.
type environment struct {
	cfg     *config.Config
	logger  zerolog.Logger
	backend port.ExtractionBackend
}

func setup() (*environment, error) {
	_ = godotenv.Load(envFile)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// stdout carries command output
	logger := observability.Setup(cfg.Log, os.Stderr)

	providers.RegisterAll()
	backend, err := analyzer.NewBackend(&cfg.Analyzer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s backend: %w", cfg.Analyzer.Provider, err)
	}

	return &environment{cfg: cfg, logger: logger, backend: backend}, nil
}
