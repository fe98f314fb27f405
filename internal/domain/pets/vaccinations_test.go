package pets

import "testing"

func TestNormalizeVaccinations_FirstSeenWins_CaseInsensitive(t *testing.T) {
	in := []VaccinationRecord{
		{VaccineType: "Rabies", Date: "2024-01-10"},
		{VaccineType: "rabies", Date: "2024-06-10"},
		{VaccineType: "  RABIES  ", Date: "2024-12-10"},
		{VaccineType: "Distemper", Date: "2024-02-01"},
	}

	out := NormalizeVaccinations(in)

	if len(out) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(out), out)
	}

	// Gana la primera aparición, no la de fecha más nueva.
	if out[0].VaccineType != "Rabies" || out[0].Date != "2024-01-10" {
		t.Fatalf("expected first-seen Rabies 2024-01-10, got %+v", out[0])
	}
	if out[1].VaccineType != "Distemper" {
		t.Fatalf("expected Distemper second, got %+v", out[1])
	}
}

func TestNormalizeVaccinations_DropsEmptyTypes(t *testing.T) {
	in := []VaccinationRecord{
		{VaccineType: "", Date: "2024-01-10"},
		{VaccineType: "   ", Date: "2024-01-11"},
		{VaccineType: "Parvovirus", Date: "2024-01-12"},
	}

	out := NormalizeVaccinations(in)

	if len(out) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(out))
	}
	if out[0].VaccineType != "Parvovirus" {
		t.Fatalf("expected Parvovirus, got %+v", out[0])
	}
}

func TestNormalizeVaccinations_TrimsTypeKeepsCasing(t *testing.T) {
	in := []VaccinationRecord{
		{VaccineType: "  BorDetella ", Date: "2024-03-01"},
	}

	out := NormalizeVaccinations(in)

	if len(out) != 1 || out[0].VaccineType != "BorDetella" {
		t.Fatalf("expected trimmed original casing, got %+v", out)
	}
}

func TestNormalizeVaccinations_InvalidDatesPassThrough(t *testing.T) {
	// Las fechas no se validan al escribir; el evaluador las saltea después.
	in := []VaccinationRecord{
		{VaccineType: "Rabies", Date: "not-a-date"},
		{VaccineType: "Distemper", Date: ""},
	}

	out := NormalizeVaccinations(in)

	if len(out) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(out))
	}
	if out[0].Date != "not-a-date" || out[1].Date != "" {
		t.Fatalf("dates must pass through untouched, got %+v", out)
	}
}

func TestNormalizeVaccinations_EmptyInput(t *testing.T) {
	if out := NormalizeVaccinations(nil); len(out) != 0 {
		t.Fatalf("expected empty output, got %+v", out)
	}
}
