package validator

import (
	"pensiondoc/internal/domain"
)

// Engine applies the registered rules to summaries.
type Engine struct {
	registry *Registry
}

// NewEngine creates a new validation engine.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Check runs every applicable rule against summary and returns the failures.
// A nil summary yields no findings.
func (e *Engine) Check(summary *domain.RetirementSummary) []Finding {
	if summary == nil {
		return nil
	}

	var findings []Finding
	for _, rule := range e.registry.All() {
		if !rule.Applies(summary.Modality) {
			continue
		}
		for _, r := range rule.Check(summary) {
			if r.Passed {
				continue
			}
			findings = append(findings, Finding{
				RuleKey:       rule.Key(),
				Severity:      rule.Severity(),
				Field:         r.Field,
				ExpectedValue: r.ExpectedValue,
				ActualValue:   r.ActualValue,
				Message:       r.Message,
			})
		}
	}
	return findings
}

// HasErrors reports whether any finding has error severity.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}
