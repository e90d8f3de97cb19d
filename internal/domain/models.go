package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// dateLayout is the ISO calendar date format used on the wire.
const dateLayout = "2006-01-02"

// Date is a calendar date without a time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the Date for the given day, month and year.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses a YYYY-MM-DD string. Impossible dates such as 2024-02-30 are rejected.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// RetirementSummary is the normalized result of analyzing one pension document.
// Only the field group of Modality is populated; the other group stays nil.
type RetirementSummary struct {
	Modality RetirementModality `json:"modalidad"`

	// Anticipated voluntary retirement.
	AnticipatedRetirementDate   *Date    `json:"f_jubilacion_anticipada_voluntaria,omitempty"`
	MonthsInAdvance             *int     `json:"meses_anticipacion,omitempty"`
	ReductionCoefficientPercent *float64 `json:"coeficiente_reductor_porcentaje,omitempty"`

	// Partial retirement.
	PartialRetirementDate   *Date    `json:"f_jubilacion_parcial,omitempty"`
	WorkdayReductionPercent *float64 `json:"porcentaje_reduccion_jornada,omitempty"`

	// Monthly amount under the 14-payments-per-year convention, both modalities.
	MonthlyPensionAmount14Payments *float64 `json:"importe_pension_14_pagas,omitempty"`
}

// RetirementDate returns the retirement date relevant to the summary's modality.
func (s *RetirementSummary) RetirementDate() *Date {
	if s.Modality == ModalityPartial {
		return s.PartialRetirementDate
	}
	return s.AnticipatedRetirementDate
}
