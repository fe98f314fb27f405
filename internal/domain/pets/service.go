package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
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

type CreateInput struct {
	Name         string
	Species      string
	Breed        string
	Sex          string
	BirthDate    *time.Time
	Notes        string
	Vaccinations []VaccinationRecord
}

func (s *Service) Create(ctx context.Context, listerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(listerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Species) == "" {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:           uuid.NewString(),
		ListerUserID: listerUserID,
		Name:         strings.TrimSpace(in.Name),
		Species:      Species(strings.TrimSpace(in.Species)),
		Breed:        strings.TrimSpace(in.Breed),
		Sex:          Sex(strings.TrimSpace(in.Sex)),
		BirthDate:    in.BirthDate,
		Notes:        strings.TrimSpace(in.Notes),
		Status:       StatusAvailable,
		Vaccinations: NormalizeVaccinations(in.Vaccinations),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByLister(ctx context.Context, listerUserID string) ([]Pet, error) {
	return s.repo.ListByLister(ctx, listerUserID)
}

// ReplaceVaccinations reemplaza el historial completo de la mascota.
// El dedup (first-seen-wins) se aplica acá, en el write path; el pase de
// recordatorios lee lo guardado tal cual.
func (s *Service) ReplaceVaccinations(ctx context.Context, petID string, entries []VaccinationRecord) (Pet, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Pet{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}

	p.Vaccinations = NormalizeVaccinations(entries)
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// ListWithVaccinations expone el snapshot para el pase de recordatorios.
func (s *Service) ListWithVaccinations(ctx context.Context) ([]Pet, error) {
	return s.repo.ListWithVaccinations(ctx)
}

// ListerOf expone el listerUserID de una mascota.
// Se usa para chequear ownership desde otros módulos sin ciclos de imports.
func (s *Service) ListerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.ListerUserID, nil
}
