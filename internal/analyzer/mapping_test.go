package analyzer_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pensiondoc/internal/analyzer"
	"pensiondoc/internal/domain"
)

func TestParseSummary_ReductionCoefficientFromComplement(t *testing.T) {
	// "Porcentaje anticipada 82,40 %" is reported by the model as 100 - 82.40.
	summary, err := analyzer.ParseSummary(domain.ModalityAnticipatedVoluntary, `{"coeficiente_reductor_porcentaje": 17.6}`)

	require.NoError(t, err)
	require.NotNil(t, summary.ReductionCoefficientPercent)
	assert.Equal(t, "17.60", strconv.FormatFloat(*summary.ReductionCoefficientPercent, 'f', 2, 64))
}

func TestParseSummary_AbsentFieldsAreNil(t *testing.T) {
	summary, err := analyzer.ParseSummary(domain.ModalityAnticipatedVoluntary, `{"modalidad":"jubilacion_anticipada_voluntaria","meses_anticipacion":null}`)

	require.NoError(t, err)
	assert.Equal(t, domain.ModalityAnticipatedVoluntary, summary.Modality)
	assert.Nil(t, summary.AnticipatedRetirementDate)
	assert.Nil(t, summary.MonthsInAdvance)
	assert.Nil(t, summary.ReductionCoefficientPercent)
	assert.Nil(t, summary.MonthlyPensionAmount14Payments)
}

func TestParseSummary_InvalidDateBecomesNil(t *testing.T) {
	for _, raw := range []string{"01/03/2026", "2026-02-30", "marzo 2026", ""} {
		summary, err := analyzer.ParseSummary(domain.ModalityPartial, `{"f_jubilacion_parcial": "`+raw+`", "porcentaje_reduccion_jornada": 50}`)

		require.NoError(t, err, raw)
		assert.Nil(t, summary.PartialRetirementDate, raw)
		assert.InDelta(t, 50.0, *summary.WorkdayReductionPercent, 1e-9)
	}
}

func TestParseSummary_DateRoundTrip(t *testing.T) {
	// The model converts "15/11/2025" to ISO; the day, month and year must survive.
	summary, err := analyzer.ParseSummary(domain.ModalityPartial, `{"f_jubilacion_parcial": "2025-11-15"}`)

	require.NoError(t, err)
	require.NotNil(t, summary.PartialRetirementDate)
	assert.Equal(t, 2025, summary.PartialRetirementDate.Year)
	assert.Equal(t, time.November, summary.PartialRetirementDate.Month)
	assert.Equal(t, 15, summary.PartialRetirementDate.Day)
}

func TestParseSummary_IgnoresOtherModalityFields(t *testing.T) {
	summary, err := analyzer.ParseSummary(domain.ModalityPartial, `{
		"f_jubilacion_anticipada_voluntaria": "2026-03-01",
		"meses_anticipacion": 12,
		"porcentaje_reduccion_jornada": 60
	}`)

	require.NoError(t, err)
	assert.Nil(t, summary.AnticipatedRetirementDate)
	assert.Nil(t, summary.MonthsInAdvance)
	assert.InDelta(t, 60.0, *summary.WorkdayReductionPercent, 1e-9)
}

func TestParseSummary_ModalityComesFromCaller(t *testing.T) {
	summary, err := analyzer.ParseSummary(domain.ModalityPartial, `{"modalidad": "jubilacion_anticipada_voluntaria"}`)

	require.NoError(t, err)
	assert.Equal(t, domain.ModalityPartial, summary.Modality)
}

func TestParseSummary_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind analyzer.ParseErrorKind
	}{
		{"prose", "El documento indica una pensión de 2.480,55 €", analyzer.ParseErrorJSON},
		{"fenced", "```json\n{\"meses_anticipacion\": 24}\n```", analyzer.ParseErrorJSON},
		{"truncated", `{"meses_anticipacion": 24`, analyzer.ParseErrorJSON},
		{"null", `null`, analyzer.ParseErrorJSON},
		{"array", `[1, 2]`, analyzer.ParseErrorJSON},
		{"amount as string", `{"importe_pension_14_pagas": "2.480,55"}`, analyzer.ParseErrorSchema},
		{"fractional months", `{"meses_anticipacion": 6.5}`, analyzer.ParseErrorSchema},
		{"date as number", `{"f_jubilacion_anticipada_voluntaria": 20260301}`, analyzer.ParseErrorSchema},
		{"months beyond int range", `{"meses_anticipacion": 1e19}`, analyzer.ParseErrorSchema},
		{"negative months", `{"meses_anticipacion": -3}`, analyzer.ParseErrorSchema},
		{"months above bound", `{"meses_anticipacion": 1201}`, analyzer.ParseErrorSchema},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := analyzer.ParseSummary(domain.ModalityAnticipatedVoluntary, tt.raw)

			assert.Nil(t, summary)
			var parseErr *analyzer.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.kind, parseErr.Kind)
			assert.Equal(t, tt.raw, parseErr.Raw)
		})
	}
}

func TestParseSummary_MonthsAtBound(t *testing.T) {
	summary, err := analyzer.ParseSummary(domain.ModalityAnticipatedVoluntary, `{"meses_anticipacion": 1200}`)

	require.NoError(t, err)
	require.NotNil(t, summary.MonthsInAdvance)
	assert.Equal(t, 1200, *summary.MonthsInAdvance)
}

func TestParseSummary_UnknownModality(t *testing.T) {
	_, err := analyzer.ParseSummary(domain.RetirementModality("jubilacion_activa"), `{}`)

	assert.ErrorIs(t, err, domain.ErrUnknownModality)
}
