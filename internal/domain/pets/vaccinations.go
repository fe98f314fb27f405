package pets

import "strings"

// NormalizeVaccinations deduplica un historial crudo de vacunas antes de guardarlo.
//
// Reglas:
//   - entradas sin tipo de vacuna (vacío tras trim) se descartan
//   - clave de dedup = tipo trimmeado en minúsculas
//   - gana la PRIMERA aparición por clave, en orden de entrada (first-seen-wins,
//     no la de fecha más reciente; el cálculo de vencimientos usa otro criterio
//     a propósito, no "arreglar" esto)
//   - el tipo se conserva con su casing original (trimmeado)
//   - las fechas no se validan acá: pasan tal cual y las inválidas las saltea
//     el evaluador
//
// Función pura, sin efectos.
func NormalizeVaccinations(in []VaccinationRecord) []VaccinationRecord {
	out := make([]VaccinationRecord, 0, len(in))
	seen := map[string]struct{}{}

	for _, v := range in {
		name := strings.TrimSpace(v.VaccineType)
		if name == "" {
			continue
		}

		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		out = append(out, VaccinationRecord{
			VaccineType: name,
			Date:        v.Date,
		})
	}

	return out
}
