package analyzer

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"

	"pensiondoc/internal/domain"
)

// Output schemas only constrain the JSON type of fields that are present.
// Absent or null fields are allowed and map to nil.
const anticipatedOutputSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "modalidad": {"type": ["string", "null"]},
    "f_jubilacion_anticipada_voluntaria": {"type": ["string", "null"]},
    "meses_anticipacion": {"type": ["integer", "null"], "minimum": 0, "maximum": 1200},
    "coeficiente_reductor_porcentaje": {"type": ["number", "null"]},
    "importe_pension_14_pagas": {"type": ["number", "null"]}
  }
}`

const partialOutputSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "modalidad": {"type": ["string", "null"]},
    "importe_pension_14_pagas": {"type": ["number", "null"]},
    "f_jubilacion_parcial": {"type": ["string", "null"]},
    "porcentaje_reduccion_jornada": {"type": ["number", "null"]}
  }
}`

var outputSchemas = map[domain.RetirementModality]*gojsonschema.Schema{
	domain.ModalityAnticipatedVoluntary: mustCompileSchema(anticipatedOutputSchema),
	domain.ModalityPartial:              mustCompileSchema(partialOutputSchema),
}

func mustCompileSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("analyzer: compiling output schema: %v", err))
	}
	return schema
}

// ParseSummary turns raw model output into a RetirementSummary for modality.
//
// Parsing is strict: output that is not a JSON object, or whose present fields
// have the wrong JSON type, fails with a *ParseError. Mapping is lenient: absent
// and null fields become nil, and dates that are not YYYY-MM-DD become nil.
func ParseSummary(modality domain.RetirementModality, raw string) (*domain.RetirementSummary, error) {
	schema, ok := outputSchemas[modality]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownModality, modality)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, &ParseError{Kind: ParseErrorJSON, Raw: raw, Err: err}
	}
	if fields == nil {
		return nil, &ParseError{Kind: ParseErrorJSON, Raw: raw, Err: fmt.Errorf("expected a JSON object, got null")}
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(fields))
	if err != nil {
		return nil, &ParseError{Kind: ParseErrorSchema, Raw: raw, Err: err}
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return nil, &ParseError{Kind: ParseErrorSchema, Raw: raw, Err: fmt.Errorf("%s", strings.Join(msgs, "; "))}
	}

	return mapSummary(modality, fields), nil
}

func mapSummary(modality domain.RetirementModality, fields map[string]interface{}) *domain.RetirementSummary {
	summary := &domain.RetirementSummary{Modality: modality}

	switch modality {
	case domain.ModalityAnticipatedVoluntary:
		summary.AnticipatedRetirementDate = dateField(fields, FieldAnticipatedRetirementDate)
		summary.MonthsInAdvance = intField(fields, FieldMonthsInAdvance)
		summary.ReductionCoefficientPercent = numberField(fields, FieldReductionCoefficientPercent)
	case domain.ModalityPartial:
		summary.PartialRetirementDate = dateField(fields, FieldPartialRetirementDate)
		summary.WorkdayReductionPercent = numberField(fields, FieldWorkdayReductionPercent)
	}
	summary.MonthlyPensionAmount14Payments = numberField(fields, FieldPensionAmount14Payments)

	return summary
}

func numberField(fields map[string]interface{}, name string) *float64 {
	v, ok := fields[name].(float64)
	if !ok {
		return nil
	}
	return &v
}

// intField relies on the schema having rejected non-integral and out-of-range numbers.
func intField(fields map[string]interface{}, name string) *int {
	v, ok := fields[name].(float64)
	if !ok {
		return nil
	}
	n := int(v)
	return &n
}

func dateField(fields map[string]interface{}, name string) *domain.Date {
	s, ok := fields[name].(string)
	if !ok || s == "" {
		return nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return nil
	}
	return &d
}
