package reminders

import "testing"

func TestIntervalTable_LookupIsCaseInsensitive(t *testing.T) {
	table := NewIntervalTable(map[string]int{"Rabies": 365})

	for _, name := range []string{"Rabies", "rabies", "RABIES", "  rabies "} {
		days, ok := table.DaysFor(name)
		if !ok || days != 365 {
			t.Fatalf("DaysFor(%q) = (%d, %v), expected (365, true)", name, days, ok)
		}
	}

	if _, ok := table.DaysFor("Giardia"); ok {
		t.Fatalf("unexpected hit for unknown type")
	}
}

func TestNewIntervalTable_CollapsesCaseDuplicates(t *testing.T) {
	table := NewIntervalTable(map[string]int{
		"Rabies": 365,
		"rabies": 180,
	})

	if table.Len() != 1 {
		t.Fatalf("expected case duplicates to collapse, len=%d", table.Len())
	}
}

func TestNewIntervalTable_DropsInvalidEntries(t *testing.T) {
	table := NewIntervalTable(map[string]int{
		"":       10,
		"   ":    10,
		"Rabies": 0,
		"Lepto":  -5,
		"Parvo":  30,
	})

	if table.Len() != 1 {
		t.Fatalf("expected only Parvo to survive, len=%d", table.Len())
	}
	if _, ok := table.DaysFor("parvo"); !ok {
		t.Fatalf("expected parvo present")
	}
}

func TestParseIntervals(t *testing.T) {
	got, err := ParseIntervals(" Rabies:365, Bordetella:180 ,")
	if err != nil {
		t.Fatalf("ParseIntervals error: %v", err)
	}
	if len(got) != 2 || got["Rabies"] != 365 || got["Bordetella"] != 180 {
		t.Fatalf("unexpected result: %+v", got)
	}

	if got, err := ParseIntervals("   "); err != nil || got != nil {
		t.Fatalf("empty input should be nil, nil; got %+v, %v", got, err)
	}

	for _, bad := range []string{"Rabies", "Rabies:abc", "Rabies:-1", ":365"} {
		if _, err := ParseIntervals(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
