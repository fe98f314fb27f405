package adoptions

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrBadState     = errors.New("invalid state")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type RequestInput struct {
	PetID         string
	OwnerUserID   string
	AdopterUserID string
	AdopterEmail  string
	Message       string
}

// Request crea una solicitud pending. Si el adopter ya tiene una solicitud
// no-rechazada para la misma mascota, se actualiza esa (email/mensaje) en vez
// de acumular duplicados.
func (s *Service) Request(ctx context.Context, in RequestInput) (Adoption, error) {
	petID := strings.TrimSpace(in.PetID)
	ownerID := strings.TrimSpace(in.OwnerUserID)
	adopterID := strings.TrimSpace(in.AdopterUserID)
	email := strings.TrimSpace(in.AdopterEmail)

	if petID == "" || ownerID == "" || adopterID == "" {
		return Adoption{}, ErrInvalidInput
	}
	if ownerID == adopterID {
		return Adoption{}, ErrInvalidInput
	}
	if email == "" {
		return Adoption{}, ErrInvalidInput
	}

	now := s.now()

	existing, err := s.findLatestMatch(ctx, petID, adopterID)
	if err == nil && existing.Status != StatusRejected {
		existing.AdopterEmail = email
		existing.Message = strings.TrimSpace(in.Message)
		existing.UpdatedAt = now

		if err := s.repo.Update(ctx, existing); err != nil {
			return Adoption{}, err
		}
		return existing, nil
	}

	a := Adoption{
		ID:            uuid.NewString(),
		PetID:         petID,
		OwnerUserID:   ownerID,
		AdopterUserID: adopterID,
		AdopterEmail:  email,
		Message:       strings.TrimSpace(in.Message),
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Adoption{}, err
	}
	return a, nil
}

// Accept marca la solicitud como accepted y rechaza (best-effort) las otras
// pending de la misma mascota, para sostener "a lo sumo una aceptada".
func (s *Service) Accept(ctx context.Context, adoptionID, ownerUserID string) (Adoption, error) {
	adoptionID = strings.TrimSpace(adoptionID)
	ownerUserID = strings.TrimSpace(ownerUserID)

	if adoptionID == "" || ownerUserID == "" {
		return Adoption{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, adoptionID)
	if err != nil {
		return Adoption{}, ErrNotFound
	}

	if a.OwnerUserID != ownerUserID {
		return Adoption{}, ErrForbidden
	}

	// Idempotente
	if a.Status == StatusAccepted {
		return a, nil
	}
	if a.Status != StatusPending {
		return Adoption{}, ErrBadState
	}

	now := s.now()
	a.Status = StatusAccepted
	a.UpdatedAt = now
	a.DecidedAt = &now

	if err := s.repo.Update(ctx, a); err != nil {
		return Adoption{}, err
	}

	s.rejectOtherPending(ctx, a, now)

	return a, nil
}

func (s *Service) Reject(ctx context.Context, adoptionID, ownerUserID string) (Adoption, error) {
	adoptionID = strings.TrimSpace(adoptionID)
	ownerUserID = strings.TrimSpace(ownerUserID)

	if adoptionID == "" || ownerUserID == "" {
		return Adoption{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, adoptionID)
	if err != nil {
		return Adoption{}, ErrNotFound
	}

	if a.OwnerUserID != ownerUserID {
		return Adoption{}, ErrForbidden
	}

	// Idempotente
	if a.Status == StatusRejected {
		return a, nil
	}

	now := s.now()
	a.Status = StatusRejected
	a.UpdatedAt = now
	a.DecidedAt = &now

	if err := s.repo.Update(ctx, a); err != nil {
		return Adoption{}, err
	}
	return a, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Adoption, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPet(ctx, petID)
}

// AcceptedByPet es el lookup que usa el dispatcher de recordatorios:
// la solicitud aceptada (si existe) trae el email del adoptante.
func (s *Service) AcceptedByPet(ctx context.Context, petID string) (Adoption, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Adoption{}, ErrInvalidInput
	}
	a, err := s.repo.GetAcceptedByPet(ctx, petID)
	if err != nil {
		return Adoption{}, ErrNotFound
	}
	return a, nil
}

func (s *Service) findLatestMatch(ctx context.Context, petID, adopterUserID string) (Adoption, error) {
	items, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return Adoption{}, err
	}

	var winner Adoption
	hasWinner := false

	for _, a := range items {
		if a.AdopterUserID != adopterUserID {
			continue
		}
		if !hasWinner || a.UpdatedAt.After(winner.UpdatedAt) {
			winner = a
			hasWinner = true
		}
	}

	if !hasWinner {
		return Adoption{}, ErrNotFound
	}
	return winner, nil
}

func (s *Service) rejectOtherPending(ctx context.Context, accepted Adoption, now time.Time) {
	items, err := s.repo.ListByPet(ctx, accepted.PetID)
	if err != nil {
		return
	}

	for _, a := range items {
		if a.ID == accepted.ID || a.Status != StatusPending {
			continue
		}
		a.Status = StatusRejected
		a.UpdatedAt = now
		t := now
		a.DecidedAt = &t
		_ = s.repo.Update(ctx, a) // best-effort (MVP)
	}
}
