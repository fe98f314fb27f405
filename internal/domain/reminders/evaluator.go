package reminders

import (
	"strings"
	"time"

	"pet-adoption-backend/internal/domain/pets"
)

const dateLayout = "2006-01-02"

// DueEvent es un par (mascota, vacuna) que vence mañana.
// Se computa fresco en cada pase; no se persiste.
type DueEvent struct {
	Pet          pets.Pet
	VaccineType  string // casing de la tabla de intervalos
	LastDoseDate string
	NextDueDate  string
}

// ComputeDueEvents recorre mascota por vacuna y emite un DueEvent cuando la
// próxima dosis cae exactamente en el día calendario siguiente a asOf.
//
// Las fechas se comparan como strings YYYY-MM-DD (ventana [mañana, pasado)),
// y la suma de días se hace sobre medianoche UTC: nada de aritmética con
// hora local, que es donde aparecen los corrimientos de un día.
//
// El evaluador mira el historial crudo (sin dedup) y se queda con la última
// dosis por tipo; registros sin tipo en la tabla o con fecha rota se saltean
// en silencio. El orden de salida no está garantizado.
func ComputeDueEvents(petList []pets.Pet, table IntervalTable, asOf time.Time) []DueEvent {
	tomorrow := asOf.AddDate(0, 0, 1).Format(dateLayout)
	dayAfter := asOf.AddDate(0, 0, 2).Format(dateLayout)

	out := make([]DueEvent, 0)

	for _, p := range petList {
		if len(p.Vaccinations) == 0 {
			continue
		}

		for key, entry := range table.entries {
			last, ok := latestDose(p.Vaccinations, key)
			if !ok {
				continue
			}

			lastDate, err := time.Parse(dateLayout, strings.TrimSpace(last.Date))
			if err != nil {
				// fecha guardada ilegible: este par no se evalúa
				continue
			}

			nextDue := lastDate.AddDate(0, 0, entry.days).Format(dateLayout)
			if nextDue >= tomorrow && nextDue < dayAfter {
				out = append(out, DueEvent{
					Pet:          p,
					VaccineType:  entry.display,
					LastDoseDate: lastDate.Format(dateLayout),
					NextDueDate:  nextDue,
				})
			}
		}
	}

	return out
}

// latestDose elige la dosis más reciente del tipo pedido (clave ya en
// minúsculas). Arranca con la primera coincidencia y solo la reemplaza una
// fecha posterior que parsea bien; si la primera no parsea, queda esa y el
// caller la descarta. Empates: se queda la vista primero.
func latestDose(entries []pets.VaccinationRecord, key string) (pets.VaccinationRecord, bool) {
	var best pets.VaccinationRecord
	var bestTime time.Time
	bestParses := false
	found := false

	for _, v := range entries {
		if strings.ToLower(strings.TrimSpace(v.VaccineType)) != key {
			continue
		}
		if strings.TrimSpace(v.Date) == "" {
			continue
		}

		if !found {
			best = v
			bestTime, bestParses = parseDate(v.Date)
			found = true
			continue
		}

		t, ok := parseDate(v.Date)
		if ok && bestParses && t.After(bestTime) {
			best = v
			bestTime = t
		}
	}

	return best, found
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
