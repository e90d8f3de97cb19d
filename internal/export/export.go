// Package export writes batches of analysis results as CSV or XLSX tables.
package export

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"pensiondoc/internal/domain"
	"pensiondoc/internal/validator"
)

// Record is the outcome of analyzing one document. Exactly one of Summary and Err is set.
type Record struct {
	Source   string
	Summary  *domain.RetirementSummary
	Findings []validator.Finding
	Err      error
}

// Status values for the "Estado" column.
const (
	StatusOK       = "ok"
	StatusWarnings = "revisar"
	StatusFailed   = "error"
)

// columns defines the header row shared by every format.
var columns = []string{
	"Documento",
	"Modalidad",
	"Estado",
	"Fecha jubilación",
	"Meses anticipación",
	"Coeficiente reductor %",
	"Reducción jornada %",
	"Importe pensión 14 pagas",
	"Hallazgos",
	"Error",
}

// Columns returns a copy of the header row.
func Columns() []string {
	return append([]string(nil), columns...)
}

// recordToRow converts a record to a row aligned with columns. Missing values are empty cells.
func recordToRow(r *Record) []string {
	row := make([]string, len(columns))
	row[0] = r.Source

	if r.Err != nil || r.Summary == nil {
		row[2] = StatusFailed
		if r.Err != nil {
			row[9] = r.Err.Error()
		}
		return row
	}

	s := r.Summary
	row[1] = string(s.Modality)
	row[2] = status(r.Findings)
	row[3] = formatDate(s.RetirementDate())
	row[4] = formatInt(s.MonthsInAdvance)
	row[5] = formatFloat(s.ReductionCoefficientPercent)
	row[6] = formatFloat(s.WorkdayReductionPercent)
	row[7] = formatFloat(s.MonthlyPensionAmount14Payments)
	row[8] = formatFindings(r.Findings)
	return row
}

func status(findings []validator.Finding) string {
	if len(findings) > 0 {
		return StatusWarnings
	}
	return StatusOK
}

func formatDate(d *domain.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func formatFindings(findings []validator.Finding) string {
	msgs := make([]string, 0, len(findings))
	for _, f := range findings {
		msgs = append(msgs, fmt.Sprintf("[%s] %s", f.Severity, f.Message))
	}
	return strings.Join(msgs, "; ")
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename replaces characters outside [a-zA-Z0-9_-] with _, collapses
// repeats, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.{ext}.
func BuildFilename(name, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), now.Format("2006-01-02"), ext)
}
