// Package validator runs non-fatal consistency checks over extracted
// retirement summaries. Findings are informational: they are logged and
// exported, and never change the summary they describe.
package validator

import (
	"pensiondoc/internal/domain"
)

// Severity classifies how suspicious a failed check is.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Rule is a single built-in consistency check.
type Rule interface {
	Key() string
	Name() string
	Severity() Severity
	// Applies reports whether the rule is meaningful for the modality.
	Applies(modality domain.RetirementModality) bool
	Check(summary *domain.RetirementSummary) []Result
}

// Result is the outcome of one rule on one field.
type Result struct {
	Passed        bool
	Field         string
	ExpectedValue string
	ActualValue   string
	Message       string
}

// Finding is a failed Result tagged with the rule that produced it.
type Finding struct {
	RuleKey       string   `json:"rule_key"`
	Severity      Severity `json:"severity"`
	Field         string   `json:"field"`
	ExpectedValue string   `json:"expected_value"`
	ActualValue   string   `json:"actual_value"`
	Message       string   `json:"message"`
}
