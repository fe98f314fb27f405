package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption-backend/internal/domain/purchases"
)

type purchaseRepo struct {
	mu   sync.RWMutex
	byID map[string]purchases.Purchase
}

func NewPurchaseRepo() purchases.Repository {
	return &purchaseRepo{
		byID: make(map[string]purchases.Purchase),
	}
}

func (r *purchaseRepo) Create(ctx context.Context, p purchases.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("purchase id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("purchase already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *purchaseRepo) GetByID(ctx context.Context, id string) (purchases.Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return purchases.Purchase{}, ErrNotFound
	}
	return p, nil
}

func (r *purchaseRepo) ListBySeller(ctx context.Context, sellerUserID string) ([]purchases.Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]purchases.Purchase, 0)
	for _, p := range r.byID {
		if p.SellerUserID == sellerUserID {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *purchaseRepo) GetByPet(ctx context.Context, petID string) (purchases.Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var winner purchases.Purchase
	has := false

	for _, p := range r.byID {
		if p.PetID != petID {
			continue
		}
		if !has || p.CreatedAt.After(winner.CreatedAt) {
			winner = p
			has = true
		}
	}

	if !has {
		return purchases.Purchase{}, ErrNotFound
	}
	return winner, nil
}
