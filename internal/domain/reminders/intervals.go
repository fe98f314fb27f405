package reminders

import (
	"fmt"
	"strconv"
	"strings"
)

// IntervalTable mapea tipo de vacuna -> días hasta la próxima dosis.
// Se arma una sola vez al inicio y no se muta: los lookups se hacen siempre
// por clave en minúsculas, así que dos entradas que solo difieren en casing
// colapsan en una.
type IntervalTable struct {
	entries map[string]intervalEntry
}

type intervalEntry struct {
	display string // casing tal como vino en la config (para los mails)
	days    int
}

func NewIntervalTable(in map[string]int) IntervalTable {
	entries := make(map[string]intervalEntry, len(in))
	for name, days := range in {
		name = strings.TrimSpace(name)
		if name == "" || days <= 0 {
			continue
		}
		entries[strings.ToLower(name)] = intervalEntry{display: name, days: days}
	}
	return IntervalTable{entries: entries}
}

// DefaultIntervalTable es la tabla fija de arranque; se puede pisar por env
// con VACCINE_INTERVALS (ver ParseIntervals).
func DefaultIntervalTable() IntervalTable {
	return NewIntervalTable(map[string]int{
		"Rabies":        365,
		"Distemper":     365,
		"Parvovirus":    365,
		"Leptospirosis": 365,
		"Bordetella":    180,
	})
}

// ParseIntervals parsea "Rabies:365,Bordetella:180".
func ParseIntervals(raw string) (map[string]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	out := map[string]int{}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf(`intervals must be "Name:days,Name:days", got %q`, pair)
		}
		name := strings.TrimSpace(parts[0])
		days, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || name == "" || days <= 0 {
			return nil, fmt.Errorf("invalid interval entry %q", pair)
		}
		out[name] = days
	}
	return out, nil
}

// DaysFor devuelve el intervalo para un tipo de vacuna (case-insensitive).
func (t IntervalTable) DaysFor(vaccineType string) (int, bool) {
	e, ok := t.entries[strings.ToLower(strings.TrimSpace(vaccineType))]
	if !ok {
		return 0, false
	}
	return e.days, true
}

func (t IntervalTable) Len() int {
	return len(t.entries)
}
