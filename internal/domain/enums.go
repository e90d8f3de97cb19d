package domain

import "fmt"

// RetirementModality identifies which retirement regime a pension document describes.
// The values double as the "modalidad" field of the extraction contract.
type RetirementModality string

const (
	ModalityAnticipatedVoluntary RetirementModality = "jubilacion_anticipada_voluntaria"
	ModalityPartial              RetirementModality = "jubilacion_parcial"
)

// Modalities lists every supported modality.
var Modalities = []RetirementModality{
	ModalityAnticipatedVoluntary,
	ModalityPartial,
}

// modalityAliases maps short names used by the CLI and routes to modalities.
var modalityAliases = map[string]RetirementModality{
	"anticipada":                         ModalityAnticipatedVoluntary,
	"anticipated":                        ModalityAnticipatedVoluntary,
	"anticipated_voluntary":              ModalityAnticipatedVoluntary,
	string(ModalityAnticipatedVoluntary): ModalityAnticipatedVoluntary,
	"parcial":                            ModalityPartial,
	"partial":                            ModalityPartial,
	string(ModalityPartial):              ModalityPartial,
}

// ParseModality resolves a modality from its wire value or a short alias.
func ParseModality(s string) (RetirementModality, error) {
	m, ok := modalityAliases[s]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownModality, s)
	}
	return m, nil
}

// IsValid reports whether m is a supported modality.
func (m RetirementModality) IsValid() bool {
	return m == ModalityAnticipatedVoluntary || m == ModalityPartial
}

// ContentTypePDF is the only media type accepted for analysis.
const ContentTypePDF = "application/pdf"

// ArtifactNamePrefix marks documents this service stores on the extraction provider.
// Orphan sweeps only ever touch files carrying it.
const ArtifactNamePrefix = "pensiondoc-"
