// Package providers wires the concrete extraction backends into the analyzer registry.
package providers

import (
	"context"

	"pensiondoc/internal/analyzer"
	"pensiondoc/internal/analyzer/claude"
	"pensiondoc/internal/analyzer/gemini"
	"pensiondoc/internal/analyzer/openai"
	"pensiondoc/internal/config"
	"pensiondoc/internal/port"
)

// RegisterAll registers every built-in extraction backend.
func RegisterAll() {
	analyzer.RegisterBackend(openai.ProviderName, func(cfg *config.AnalyzerConfig) (port.ExtractionBackend, error) {
		return openai.NewBackend(cfg), nil
	})
	analyzer.RegisterBackend(claude.ProviderName, func(cfg *config.AnalyzerConfig) (port.ExtractionBackend, error) {
		return claude.NewBackend(cfg), nil
	})
	analyzer.RegisterBackend(gemini.ProviderName, func(cfg *config.AnalyzerConfig) (port.ExtractionBackend, error) {
		return gemini.NewBackend(context.Background(), cfg)
	})
}
