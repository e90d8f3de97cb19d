package analyzer

import (
	"fmt"

	"pensiondoc/internal/domain"
)

// Field names of the extraction contract. The instruction payloads below, the
// output schemas and the mapping step must all agree on them.
const (
	FieldModality                    = "modalidad"
	FieldAnticipatedRetirementDate   = "f_jubilacion_anticipada_voluntaria"
	FieldMonthsInAdvance             = "meses_anticipacion"
	FieldReductionCoefficientPercent = "coeficiente_reductor_porcentaje"
	FieldPartialRetirementDate       = "f_jubilacion_parcial"
	FieldWorkdayReductionPercent     = "porcentaje_reduccion_jornada"
	FieldPensionAmount14Payments     = "importe_pension_14_pagas"
)

// ContractFields returns the output fields the model must produce for a modality.
func ContractFields(modality domain.RetirementModality) []string {
	switch modality {
	case domain.ModalityAnticipatedVoluntary:
		return []string{
			FieldModality,
			FieldAnticipatedRetirementDate,
			FieldMonthsInAdvance,
			FieldReductionCoefficientPercent,
			FieldPensionAmount14Payments,
		}
	case domain.ModalityPartial:
		return []string{
			FieldModality,
			FieldPensionAmount14Payments,
			FieldPartialRetirementDate,
			FieldWorkdayReductionPercent,
		}
	default:
		return nil
	}
}

// InstructionsFor returns the extraction instructions sent alongside the stored document.
func InstructionsFor(modality domain.RetirementModality) (string, error) {
	switch modality {
	case domain.ModalityAnticipatedVoluntary:
		return anticipatedRetirementInstructions, nil
	case domain.ModalityPartial:
		return partialRetirementInstructions, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownModality, modality)
	}
}

// Covers the "cálculo de base reguladora a 300 meses" template, including the
// variant where the public-pension ceiling (art. 210.3 LGSS) caps the amount.
const anticipatedRetirementInstructions = `
Eres una IA especializada en extraer datos de documentos de cálculo de pensión de la Seguridad Social española, en concreto de JUBILACIÓN ANTICIPADA VOLUNTARIA.

Recibirás un único PDF. Lee el documento COMPLETO (encabezados, tablas y notas) y devuelve ÚNICAMENTE un JSON válido con esta estructura:

{
  "modalidad": "jubilacion_anticipada_voluntaria",
  "f_jubilacion_anticipada_voluntaria": "YYYY-MM-DD",
  "meses_anticipacion": <numero entero>,
  "coeficiente_reductor_porcentaje": <numero>,
  "importe_pension_14_pagas": <numero>
}

REGLAS GENERALES
- No escribas nada fuera del JSON.
- Usa exactamente estos nombres de campo.
- Los números van SIN símbolo de euro y SIN símbolo de porcentaje, con punto como separador decimal (por ejemplo: 3048.02, 17.6).
- Convierte cualquier fecha DD/MM/AAAA al formato ISO "YYYY-MM-DD".
- Si hace falta una operación sencilla (por ejemplo 100 - 82.4), calcúlala tú y devuelve solo el resultado numérico.

DÓNDE ESTÁ CADA CAMPO EN LOS DOCUMENTOS "CÁLCULO DE BASE REGULADORA A 300 MESES":

- "f_jubilacion_anticipada_voluntaria":
  - La fecha indicada como "Fecha jubilación" en el encabezado del documento.

- "meses_anticipacion":
  - El valor junto a "Meses de anticipación" (o texto equivalente) en el bloque del cálculo por anticipación.

- "coeficiente_reductor_porcentaje":
  - PRIMERO comprueba si el documento aplica el límite máximo de pensiones públicas. Lo hace si contiene alguna de estas frases:
    * "Dado que la base reguladora de la pensión es superior al límite máximo de las pensiones públicas"
    * "segundo párrafo del artículo 210.3 LGSS"
    * "Al ser la base reguladora de la pensión calculada superior al límite máximo"

  - SI APARECE ALGUNA DE ESAS FRASES:
    * Toma el coeficiente reductor que el documento relaciona con el límite máximo de las pensiones públicas.
    * Suele aparecer como: "el coeficiente reductor de [X] %, se aplica sobre el límite máximo de las pensiones públicas".
    * Devuelve X.
    * Ejemplo: "coeficiente reductor de una tabla específica 6.72 %, se aplica sobre el límite máximo" → 6.72

  - SI NO APARECE NINGUNA (caso habitual):
    * Si hay un "porcentaje de descuento" por anticipar la jubilación (por ejemplo "descuento del 17,6 %"), devuelve ese número.
    * Si no aparece de forma explícita pero hay un "Porcentaje anticipada" o "Porcentaje reductor por anticipación" con valor X (por ejemplo 82,40 %),
      el coeficiente reductor es la parte que se pierde:
        coeficiente_reductor_porcentaje = 100 - X

- "importe_pension_14_pagas":
  - El importe FINAL mensual de la pensión anticipada en 14 pagas.
  - Si el documento muestra primero una "pensión ordinaria" (por ejemplo 3.009,81 €) y después indica que se limita por el máximo de pensiones públicas a otra cantidad (por ejemplo 3.048,02 €), devuelve esa última cantidad.
  - Si no se menciona el límite máximo, devuelve la pensión definitiva resultante de la jubilación anticipada.

Devuelve SOLO el JSON con estos 5 campos, sin explicaciones.
`

const partialRetirementInstructions = `
Eres una IA especializada en extraer datos de documentos de cálculo de pensión de la Seguridad Social española, en concreto de JUBILACIÓN PARCIAL.

Recibirás un único PDF. Lee el documento COMPLETO y devuelve ÚNICAMENTE un JSON válido con esta estructura:

{
  "modalidad": "jubilacion_parcial",
  "importe_pension_14_pagas": <numero>,
  "f_jubilacion_parcial": "YYYY-MM-DD",
  "porcentaje_reduccion_jornada": <numero>
}

REGLAS GENERALES
- No escribas nada fuera del JSON.
- Usa exactamente estos nombres de campo.
- Los números van SIN símbolo de euro y SIN símbolo de porcentaje, con punto como separador decimal (por ejemplo: 2748.26, 75.0).
- Convierte cualquier fecha DD/MM/AAAA al formato ISO "YYYY-MM-DD".

DÓNDE ESTÁ CADA CAMPO:

- "f_jubilacion_parcial":
  - La fecha que figura como "Fecha hecho causante" en el encabezado del documento (la referencia habitual en la jubilación parcial).

- "porcentaje_reduccion_jornada":
  - Si aparece un campo "% reducción de jornada", usa ese valor.
  - Si no aparece pero hay un "Porcentaje jubilación parcial: 75,00 %", usa ese valor como porcentaje de reducción de jornada.

- "importe_pension_14_pagas":
  - El importe que aparece como "Importe jubilación parcial" o el campo equivalente con la pensión mensual en 14 pagas (por ejemplo "Importe jubilación parcial: 2.748,26 €" → 2748.26).

Devuelve SOLO el JSON con estos 4 campos, sin explicaciones.
`
