package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pensiondoc/internal/domain"
	"pensiondoc/internal/validator"
)

func f64(v float64) *float64 { return &v }

func sampleRecords() []Record {
	months := 24
	anticipatedDate := domain.NewDate(2026, time.March, 1)
	partialDate := domain.NewDate(2025, time.November, 15)
	return []Record{
		{
			Source: "anticipada.pdf",
			Summary: &domain.RetirementSummary{
				Modality:                       domain.ModalityAnticipatedVoluntary,
				AnticipatedRetirementDate:      &anticipatedDate,
				MonthsInAdvance:                &months,
				ReductionCoefficientPercent:    f64(17.6),
				MonthlyPensionAmount14Payments: f64(2480.55),
			},
		},
		{
			Source: "parcial.pdf",
			Summary: &domain.RetirementSummary{
				Modality:                domain.ModalityPartial,
				PartialRetirementDate:   &partialDate,
				WorkdayReductionPercent: f64(80),
			},
			Findings: []validator.Finding{
				{RuleKey: "partial.workday_reduction", Severity: validator.SeverityWarning, Field: "porcentaje_reduccion_jornada",
					ExpectedValue: "25.00..75.00", ActualValue: "80.00", Message: "Partial: workday reduction out of range (80.00%)"},
			},
		},
		{
			Source: "roto.pdf",
			Err:    errors.New("model output is not valid JSON"),
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords()))

	require.True(t, bytes.HasPrefix(buf.Bytes(), BOM))
	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, Columns(), rows[0])
	assert.Equal(t, []string{
		"anticipada.pdf", "jubilacion_anticipada_voluntaria", StatusOK, "2026-03-01", "24", "17.60", "", "2480.55", "", "",
	}, rows[1])

	assert.Equal(t, StatusWarnings, rows[2][2])
	assert.Equal(t, "2025-11-15", rows[2][3])
	assert.Equal(t, "", rows[2][7])
	assert.Contains(t, rows[2][8], "[warning] Partial: workday reduction out of range")

	assert.Equal(t, StatusFailed, rows[3][2])
	assert.Equal(t, "model output is not valid JSON", rows[3][9])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleRecords()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Resumen", "Hallazgos"}, f.GetSheetList())

	summary, err := f.GetRows("Resumen")
	require.NoError(t, err)
	require.Len(t, summary, 4)
	assert.Equal(t, "Documento", summary[0][0])
	assert.Equal(t, "17.60", summary[1][5])

	findings, err := f.GetRows("Hallazgos")
	require.NoError(t, err)
	require.Len(t, findings, 2)
	assert.Equal(t, []string{
		"parcial.pdf", "partial.workday_reduction", "warning", "porcentaje_reduccion_jornada",
		"25.00..75.00", "80.00", "Partial: workday reduction out of range (80.00%)",
	}, findings[1])
}

func TestBuildFilename(t *testing.T) {
	now := time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, "Informes_octubre_2026-10-18.xlsx", BuildFilename("Informes octubre", "xlsx", now))
	assert.Equal(t, "a_b_2026-10-18.csv", BuildFilename("a // b", "csv", now))
}
