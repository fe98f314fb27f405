package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-adoption-backend/internal/domain/adoptions"
	"pet-adoption-backend/internal/domain/pets"
	"pet-adoption-backend/internal/domain/purchases"
)

type fakePetSource struct {
	pets []pets.Pet
	err  error

	// gates opcionales para simular un pase lento
	started chan struct{}
	release chan struct{}
}

func (f *fakePetSource) ListWithVaccinations(ctx context.Context) ([]pets.Pet, error) {
	if f.started != nil {
		close(f.started)
		f.started = nil
	}
	if f.release != nil {
		<-f.release
		f.release = nil
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.pets, nil
}

func newTestService(src *fakePetSource, mailer *fakeMailer, table IntervalTable) *Service {
	d := NewDispatcher(
		&fakeAdoptions{byPet: map[string]adoptions.Adoption{
			"pet-1": {PetID: "pet-1", AdopterEmail: "adopter@example.com", Status: adoptions.StatusAccepted},
		}},
		&fakePurchases{byPet: map[string]purchases.Purchase{}},
		mailer, "PetAdopt", nil,
	)
	return NewService(src, d, table, nil)
}

func TestRunPassAsOf_EndToEnd(t *testing.T) {
	src := &fakePetSource{pets: []pets.Pet{
		{ID: "pet-1", Name: "Bella", Vaccinations: []pets.VaccinationRecord{
			{VaccineType: "Rabies", Date: "2024-01-11"},
		}},
		{ID: "pet-2", Name: "Luna", Vaccinations: []pets.VaccinationRecord{
			{VaccineType: "Rabies", Date: "2024-06-01"},
		}},
	}}
	mailer := &fakeMailer{}
	svc := newTestService(src, mailer, NewIntervalTable(map[string]int{"Rabies": 365}))

	sum, err := svc.RunPassAsOf(context.Background(), date("2025-01-09"))
	if err != nil {
		t.Fatalf("RunPassAsOf error: %v", err)
	}

	if sum.PetsScanned != 2 {
		t.Fatalf("expected 2 pets scanned, got %d", sum.PetsScanned)
	}
	if sum.EventsDue != 1 {
		t.Fatalf("expected 1 due event, got %d", sum.EventsDue)
	}
	if sum.EmailsQueued != 1 {
		t.Fatalf("expected 1 email queued, got %d", sum.EmailsQueued)
	}
	if sum.AsOf != "2025-01-09" {
		t.Fatalf("expected as_of 2025-01-09, got %s", sum.AsOf)
	}

	got := mailer.all()
	if len(got) != 1 || got[0].To != "adopter@example.com" {
		t.Fatalf("unexpected mails: %+v", got)
	}
}

func TestRunPass_RerunResendsMails(t *testing.T) {
	// No hay registro de "ya avisado": repetir el pase duplica el mail.
	src := &fakePetSource{pets: []pets.Pet{
		{ID: "pet-1", Name: "Bella", Vaccinations: []pets.VaccinationRecord{
			{VaccineType: "Rabies", Date: "2024-01-11"},
		}},
	}}
	mailer := &fakeMailer{}
	svc := newTestService(src, mailer, NewIntervalTable(map[string]int{"Rabies": 365}))

	asOf := date("2025-01-09")
	if _, err := svc.RunPassAsOf(context.Background(), asOf); err != nil {
		t.Fatalf("first pass: %v", err)
	}
	if _, err := svc.RunPassAsOf(context.Background(), asOf); err != nil {
		t.Fatalf("second pass: %v", err)
	}

	if got := mailer.all(); len(got) != 2 {
		t.Fatalf("expected 2 mails across two passes, got %d", len(got))
	}
}

func TestRunPass_StoreFailureAbortsPass(t *testing.T) {
	src := &fakePetSource{err: errors.New("store unreachable")}
	svc := newTestService(src, &fakeMailer{}, DefaultIntervalTable())

	if _, err := svc.RunPass(context.Background()); err == nil {
		t.Fatalf("expected pass-level error")
	}

	// El próximo trigger corre igual (la guarda quedó liberada).
	src.err = nil
	if _, err := svc.RunPass(context.Background()); err != nil {
		t.Fatalf("next pass should run: %v", err)
	}
}

func TestRunPass_InFlightGuard(t *testing.T) {
	src := &fakePetSource{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := newTestService(src, &fakeMailer{}, DefaultIntervalTable())

	done := make(chan error, 1)
	go func() {
		_, err := svc.RunPass(context.Background())
		done <- err
	}()

	<-src.started // el primer pase está adentro del snapshot

	if _, err := svc.RunPass(context.Background()); !errors.Is(err, ErrPassInFlight) {
		t.Fatalf("expected ErrPassInFlight, got %v", err)
	}

	close(src.release)
	if err := <-done; err != nil {
		t.Fatalf("first pass failed: %v", err)
	}

	// Liberada la guarda, se puede volver a correr.
	if _, err := svc.RunPass(context.Background()); err != nil {
		t.Fatalf("pass after release failed: %v", err)
	}
}

func TestRunPass_UsesInjectedClock(t *testing.T) {
	src := &fakePetSource{pets: []pets.Pet{
		{ID: "pet-1", Name: "Bella", Vaccinations: []pets.VaccinationRecord{
			{VaccineType: "Rabies", Date: "2024-01-11"},
		}},
	}}
	mailer := &fakeMailer{}
	svc := newTestService(src, mailer, NewIntervalTable(map[string]int{"Rabies": 365}))
	svc.now = func() time.Time { return date("2025-01-09") }

	sum, err := svc.RunPass(context.Background())
	if err != nil {
		t.Fatalf("RunPass error: %v", err)
	}
	if sum.EventsDue != 1 || sum.EmailsQueued != 1 {
		t.Fatalf("unexpected summary %+v", sum)
	}
}
