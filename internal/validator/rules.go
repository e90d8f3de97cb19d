package validator

import (
	"fmt"
	"strconv"

	"pensiondoc/internal/domain"
)

// Field paths as they appear in the response payloads.
const (
	fieldAnticipatedDate   = "f_jubilacion_anticipada_voluntaria"
	fieldMonthsInAdvance   = "meses_anticipacion"
	fieldReductionCoef     = "coeficiente_reductor_porcentaje"
	fieldPartialDate       = "f_jubilacion_parcial"
	fieldWorkdayReduction  = "porcentaje_reduccion_jornada"
	fieldPensionAmount     = "importe_pension_14_pagas"
	maxMonthsInAdvance     = 48
	minPartialReductionPct = 25.0
	maxPartialReductionPct = 75.0
)

// summaryRule is a Rule backed by a check function.
type summaryRule struct {
	key        string
	name       string
	severity   Severity
	modalities []domain.RetirementModality
	check      func(*domain.RetirementSummary) []Result
}

func (r *summaryRule) Key() string        { return r.key }
func (r *summaryRule) Name() string       { return r.name }
func (r *summaryRule) Severity() Severity { return r.severity }

func (r *summaryRule) Applies(modality domain.RetirementModality) bool {
	if len(r.modalities) == 0 {
		return true
	}
	for _, m := range r.modalities {
		if m == modality {
			return true
		}
	}
	return false
}

func (r *summaryRule) Check(summary *domain.RetirementSummary) []Result {
	return r.check(summary)
}

// fieldPresence records whether a summary field is populated.
type fieldPresence struct {
	field string
	set   bool
}

// BuiltinRules returns every built-in consistency rule.
func BuiltinRules() []Rule {
	return []Rule{
		&summaryRule{
			key: "summary.modality_group", name: "Summary: Fields Match Modality",
			severity: SeverityError,
			check: func(s *domain.RetirementSummary) []Result {
				var foreign []fieldPresence
				switch s.Modality {
				case domain.ModalityAnticipatedVoluntary:
					foreign = []fieldPresence{
						{fieldPartialDate, s.PartialRetirementDate != nil},
						{fieldWorkdayReduction, s.WorkdayReductionPercent != nil},
					}
				case domain.ModalityPartial:
					foreign = []fieldPresence{
						{fieldAnticipatedDate, s.AnticipatedRetirementDate != nil},
						{fieldMonthsInAdvance, s.MonthsInAdvance != nil},
						{fieldReductionCoef, s.ReductionCoefficientPercent != nil},
					}
				}
				var results []Result
				for _, fp := range foreign {
					field, set := fp.field, fp.set
					msg := fmt.Sprintf("Summary: %s is not populated for %s", field, s.Modality)
					if set {
						msg = fmt.Sprintf("Summary: %s belongs to another modality but is populated for %s", field, s.Modality)
					}
					results = append(results, Result{
						Passed: !set, Field: field,
						ExpectedValue: "null", ActualValue: presence(set), Message: msg,
					})
				}
				return results
			},
		},
		&summaryRule{
			key: "summary.pension_amount", name: "Summary: Pension Amount Positive",
			severity: SeverityWarning,
			check: func(s *domain.RetirementSummary) []Result {
				amount := s.MonthlyPensionAmount14Payments
				if amount == nil {
					return []Result{{
						Passed: false, Field: fieldPensionAmount, ExpectedValue: "> 0", ActualValue: "null",
						Message: "Summary: monthly pension amount was not found in the document",
					}}
				}
				passed := *amount > 0
				msg := "Summary: monthly pension amount is positive"
				if !passed {
					msg = fmt.Sprintf("Summary: monthly pension amount is not positive (%.2f)", *amount)
				}
				return []Result{{
					Passed: passed, Field: fieldPensionAmount, ExpectedValue: "> 0", ActualValue: fmtf(*amount), Message: msg,
				}}
			},
		},
		&summaryRule{
			key: "summary.retirement_date", name: "Summary: Retirement Date Present",
			severity: SeverityWarning,
			check: func(s *domain.RetirementSummary) []Result {
				field := fieldAnticipatedDate
				if s.Modality == domain.ModalityPartial {
					field = fieldPartialDate
				}
				date := s.RetirementDate()
				if date == nil {
					return []Result{{
						Passed: false, Field: field, ExpectedValue: "YYYY-MM-DD", ActualValue: "null",
						Message: "Summary: retirement date was not found in the document",
					}}
				}
				return []Result{{
					Passed: true, Field: field, ExpectedValue: "YYYY-MM-DD", ActualValue: date.String(),
					Message: "Summary: retirement date is present",
				}}
			},
		},
		&summaryRule{
			key: "anticipated.months_in_advance", name: "Anticipated: Months In Advance Range",
			severity:   SeverityWarning,
			modalities: []domain.RetirementModality{domain.ModalityAnticipatedVoluntary},
			check: func(s *domain.RetirementSummary) []Result {
				if s.MonthsInAdvance == nil {
					return nil
				}
				months := *s.MonthsInAdvance
				passed := months >= 1 && months <= maxMonthsInAdvance
				msg := "Anticipated: months in advance within range"
				if !passed {
					msg = fmt.Sprintf("Anticipated: months in advance out of range (%d)", months)
				}
				return []Result{{
					Passed: passed, Field: fieldMonthsInAdvance,
					ExpectedValue: fmt.Sprintf("1..%d", maxMonthsInAdvance), ActualValue: strconv.Itoa(months), Message: msg,
				}}
			},
		},
		&summaryRule{
			key: "anticipated.reduction_coefficient", name: "Anticipated: Reduction Coefficient Range",
			severity:   SeverityWarning,
			modalities: []domain.RetirementModality{domain.ModalityAnticipatedVoluntary},
			check: func(s *domain.RetirementSummary) []Result {
				return percentRange(s.ReductionCoefficientPercent, fieldReductionCoef, 0, 100, "Anticipated: reduction coefficient")
			},
		},
		&summaryRule{
			key: "partial.workday_reduction", name: "Partial: Workday Reduction Range",
			severity:   SeverityWarning,
			modalities: []domain.RetirementModality{domain.ModalityPartial},
			check: func(s *domain.RetirementSummary) []Result {
				return percentRange(s.WorkdayReductionPercent, fieldWorkdayReduction,
					minPartialReductionPct, maxPartialReductionPct, "Partial: workday reduction")
			},
		},
	}
}

func percentRange(v *float64, field string, minPct, maxPct float64, label string) []Result {
	if v == nil {
		return nil
	}
	passed := *v >= minPct && *v <= maxPct
	msg := fmt.Sprintf("%s within range", label)
	if !passed {
		msg = fmt.Sprintf("%s out of range (%s%%)", label, fmtf(*v))
	}
	return []Result{{
		Passed: passed, Field: field,
		ExpectedValue: fmt.Sprintf("%s..%s", fmtf(minPct), fmtf(maxPct)), ActualValue: fmtf(*v), Message: msg,
	}}
}

func fmtf(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func presence(set bool) string {
	if set {
		return "present"
	}
	return "null"
}
