package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption-backend/internal/domain/adoptions"
)

type adoptionRepo struct {
	mu   sync.RWMutex
	byID map[string]adoptions.Adoption
}

func NewAdoptionRepo() adoptions.Repository {
	return &adoptionRepo{
		byID: make(map[string]adoptions.Adoption),
	}
}

func (r *adoptionRepo) Create(ctx context.Context, a adoptions.Adoption) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("adoption id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("adoption already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *adoptionRepo) Update(ctx context.Context, a adoptions.Adoption) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("adoption id required")
	}
	if _, exists := r.byID[a.ID]; !exists {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *adoptionRepo) GetByID(ctx context.Context, id string) (adoptions.Adoption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return adoptions.Adoption{}, ErrNotFound
	}
	return a, nil
}

func (r *adoptionRepo) ListByPet(ctx context.Context, petID string) ([]adoptions.Adoption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adoptions.Adoption, 0)
	for _, a := range r.byID {
		if a.PetID == petID {
			out = append(out, a)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *adoptionRepo) GetAcceptedByPet(ctx context.Context, petID string) (adoptions.Adoption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var winner adoptions.Adoption
	has := false

	for _, a := range r.byID {
		if a.PetID != petID || a.Status != adoptions.StatusAccepted {
			continue
		}
		if !has || a.UpdatedAt.After(winner.UpdatedAt) {
			winner = a
			has = true
		}
	}

	if !has {
		return adoptions.Adoption{}, ErrNotFound
	}
	return winner, nil
}
