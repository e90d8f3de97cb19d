package analyzer

import (
	"fmt"
	"sort"

	"pensiondoc/internal/config"
	"pensiondoc/internal/port"
)

// BackendFactory creates an ExtractionBackend from the analyzer config.
type BackendFactory func(cfg *config.AnalyzerConfig) (port.ExtractionBackend, error)

// registry of backend factories, populated at startup via RegisterBackend.
var backends = map[string]BackendFactory{}

// RegisterBackend registers an extraction backend factory by provider name.
func RegisterBackend(name string, factory BackendFactory) {
	backends[name] = factory
}

// NewBackend creates the ExtractionBackend configured by cfg.Provider.
func NewBackend(cfg *config.AnalyzerConfig) (port.ExtractionBackend, error) {
	factory, ok := backends[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown analyzer provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// Providers returns the registered provider names in sorted order.
func Providers() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
