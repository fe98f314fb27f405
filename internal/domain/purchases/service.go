package purchases

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

type RecordInput struct {
	PetID        string
	SellerUserID string
	BuyerUserID  string
	BuyerEmail   string
	AmountCents  int64
	Currency     string
}

func (s *Service) Record(ctx context.Context, in RecordInput) (Purchase, error) {
	petID := strings.TrimSpace(in.PetID)
	sellerID := strings.TrimSpace(in.SellerUserID)
	buyerEmail := strings.TrimSpace(in.BuyerEmail)

	if petID == "" || sellerID == "" {
		return Purchase{}, ErrInvalidInput
	}
	if buyerEmail == "" {
		return Purchase{}, ErrInvalidInput
	}
	if in.AmountCents < 0 {
		return Purchase{}, ErrInvalidInput
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "USD"
	}

	p := Purchase{
		ID:           uuid.NewString(),
		PetID:        petID,
		SellerUserID: sellerID,
		BuyerUserID:  strings.TrimSpace(in.BuyerUserID),
		BuyerEmail:   buyerEmail,
		AmountCents:  in.AmountCents,
		Currency:     currency,
		CreatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Purchase{}, err
	}
	return p, nil
}

// ByPet es el lookup que usa el dispatcher de recordatorios.
func (s *Service) ByPet(ctx context.Context, petID string) (Purchase, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Purchase{}, ErrInvalidInput
	}
	p, err := s.repo.GetByPet(ctx, petID)
	if err != nil {
		return Purchase{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) ListBySeller(ctx context.Context, sellerUserID string) ([]Purchase, error) {
	sellerUserID = strings.TrimSpace(sellerUserID)
	if sellerUserID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListBySeller(ctx, sellerUserID)
}
