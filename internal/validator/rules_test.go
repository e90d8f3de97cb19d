package validator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pensiondoc/internal/domain"
	"pensiondoc/internal/validator"
)

func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }

func date(y int, m time.Month, d int) *domain.Date {
	dt := domain.NewDate(y, m, d)
	return &dt
}

func validAnticipated() *domain.RetirementSummary {
	return &domain.RetirementSummary{
		Modality:                       domain.ModalityAnticipatedVoluntary,
		AnticipatedRetirementDate:      date(2026, time.March, 1),
		MonthsInAdvance:                intp(24),
		ReductionCoefficientPercent:    f64(17.6),
		MonthlyPensionAmount14Payments: f64(2480.55),
	}
}

func validPartial() *domain.RetirementSummary {
	return &domain.RetirementSummary{
		Modality:                       domain.ModalityPartial,
		PartialRetirementDate:          date(2025, time.November, 15),
		WorkdayReductionPercent:        f64(75),
		MonthlyPensionAmount14Payments: f64(2748.26),
	}
}

func findingKeys(findings []validator.Finding) []string {
	keys := make([]string, 0, len(findings))
	for _, f := range findings {
		keys = append(keys, f.RuleKey)
	}
	return keys
}

func TestEngine_Check_CleanSummaries(t *testing.T) {
	engine := validator.NewEngine(validator.NewDefaultRegistry())

	assert.Empty(t, engine.Check(validAnticipated()))
	assert.Empty(t, engine.Check(validPartial()))
	assert.Nil(t, engine.Check(nil))
}

func TestEngine_Check_ForeignGroupIsError(t *testing.T) {
	engine := validator.NewEngine(validator.NewDefaultRegistry())
	s := validAnticipated()
	s.WorkdayReductionPercent = f64(50)

	findings := engine.Check(s)

	require.Len(t, findings, 1)
	assert.Equal(t, "summary.modality_group", findings[0].RuleKey)
	assert.Equal(t, validator.SeverityError, findings[0].Severity)
	assert.Equal(t, "porcentaje_reduccion_jornada", findings[0].Field)
	assert.True(t, validator.HasErrors(findings))
}

func TestEngine_Check_MissingValuesAreWarnings(t *testing.T) {
	engine := validator.NewEngine(validator.NewDefaultRegistry())
	s := &domain.RetirementSummary{Modality: domain.ModalityPartial}

	findings := engine.Check(s)

	assert.ElementsMatch(t, []string{"summary.pension_amount", "summary.retirement_date"}, findingKeys(findings))
	assert.False(t, validator.HasErrors(findings))
}

func TestEngine_Check_Ranges(t *testing.T) {
	engine := validator.NewEngine(validator.NewDefaultRegistry())

	anticipated := validAnticipated()
	anticipated.MonthsInAdvance = intp(60)
	anticipated.ReductionCoefficientPercent = f64(120)
	assert.ElementsMatch(t,
		[]string{"anticipated.months_in_advance", "anticipated.reduction_coefficient"},
		findingKeys(engine.Check(anticipated)))

	partial := validPartial()
	partial.WorkdayReductionPercent = f64(80)
	findings := engine.Check(partial)
	require.Len(t, findings, 1)
	assert.Equal(t, "partial.workday_reduction", findings[0].RuleKey)
	assert.Equal(t, "80.00", findings[0].ActualValue)
	assert.Equal(t, "25.00..75.00", findings[0].ExpectedValue)
}

func TestEngine_Check_DoesNotModifySummary(t *testing.T) {
	engine := validator.NewEngine(validator.NewDefaultRegistry())
	s := validAnticipated()
	s.MonthlyPensionAmount14Payments = f64(-1)
	before := *s

	findings := engine.Check(s)

	assert.NotEmpty(t, findings)
	assert.Equal(t, before, *s)
}

func TestRegistry_AllSortedByKey(t *testing.T) {
	reg := validator.NewDefaultRegistry()
	all := reg.All()

	require.Len(t, all, len(validator.BuiltinRules()))
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Key(), all[i].Key())
	}
	assert.NotNil(t, reg.Get("partial.workday_reduction"))
	assert.Nil(t, reg.Get("nope"))
}

func TestEngine_Check_ModalityGroupFindingsAreOrdered(t *testing.T) {
	engine := validator.NewEngine(validator.NewDefaultRegistry())
	s := validPartial()
	s.AnticipatedRetirementDate = date(2026, time.March, 1)
	s.MonthsInAdvance = intp(24)
	s.ReductionCoefficientPercent = f64(17.6)

	want := []string{"f_jubilacion_anticipada_voluntaria", "meses_anticipacion", "coeficiente_reductor_porcentaje"}
	for i := 0; i < 20; i++ {
		var fields []string
		for _, f := range engine.Check(s) {
			if f.RuleKey == "summary.modality_group" {
				fields = append(fields, f.Field)
			}
		}
		require.Equal(t, want, fields)
	}
}
