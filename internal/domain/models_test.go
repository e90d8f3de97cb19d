package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2026, time.March, 1), d)
	assert.Equal(t, "2026-03-01", d.String())

	for _, bad := range []string{"", "01/03/2026", "2024-02-30", "2026-3-1"} {
		_, err := ParseDate(bad)
		assert.True(t, errors.Is(err, ErrInvalidDate), bad)
	}
}

func TestDate_JSON(t *testing.T) {
	b, err := json.Marshal(NewDate(2025, time.November, 15))
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-11-15"`, string(b))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-11-15"`), &d))
	assert.Equal(t, NewDate(2025, time.November, 15), d)
	assert.Error(t, json.Unmarshal([]byte(`20251115`), &d))
}

func TestRetirementSummary_JSONOmitsOtherGroup(t *testing.T) {
	pct := 75.0
	date := NewDate(2025, time.November, 15)
	s := RetirementSummary{
		Modality:                ModalityPartial,
		PartialRetirementDate:   &date,
		WorkdayReductionPercent: &pct,
	}

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"modalidad": "jubilacion_parcial",
		"f_jubilacion_parcial": "2025-11-15",
		"porcentaje_reduccion_jornada": 75
	}`, string(b))
	assert.Equal(t, &date, s.RetirementDate())
}

func TestParseModality(t *testing.T) {
	cases := map[string]RetirementModality{
		"anticipada":                       ModalityAnticipatedVoluntary,
		"jubilacion_anticipada_voluntaria": ModalityAnticipatedVoluntary,
		"parcial":                          ModalityPartial,
		"partial":                          ModalityPartial,
	}
	for in, want := range cases {
		got, err := ParseModality(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
		assert.True(t, got.IsValid())
	}

	_, err := ParseModality("ordinaria")
	assert.ErrorIs(t, err, ErrUnknownModality)
	assert.False(t, RetirementModality("ordinaria").IsValid())
}
