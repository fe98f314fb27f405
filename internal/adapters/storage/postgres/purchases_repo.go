package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption-backend/internal/domain/purchases"
)

type PurchasesRepo struct {
	db *sql.DB
}

func NewPurchasesRepo(db *sql.DB) *PurchasesRepo {
	return &PurchasesRepo{db: db}
}

func (r *PurchasesRepo) Create(ctx context.Context, p purchases.Purchase) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO purchases (
			id, pet_id,
			seller_user_id, buyer_user_id, buyer_email,
			amount_cents, currency,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		p.ID,
		p.PetID,
		p.SellerUserID,
		p.BuyerUserID,
		p.BuyerEmail,
		p.AmountCents,
		p.Currency,
		p.CreatedAt,
	)
	return err
}

const purchaseColumns = `
	id, pet_id,
	seller_user_id, buyer_user_id, buyer_email,
	amount_cents, currency,
	created_at
`

func (r *PurchasesRepo) GetByID(ctx context.Context, id string) (purchases.Purchase, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return purchases.Purchase{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+purchaseColumns+`
		FROM purchases
		WHERE id = $1
	`, id)

	p, err := scanPurchase(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return purchases.Purchase{}, ErrNotFound
		}
		return purchases.Purchase{}, err
	}
	return p, nil
}

func (r *PurchasesRepo) ListBySeller(ctx context.Context, sellerUserID string) ([]purchases.Purchase, error) {
	sellerUserID = strings.TrimSpace(sellerUserID)
	if sellerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+purchaseColumns+`
		FROM purchases
		WHERE seller_user_id = $1
		ORDER BY created_at ASC
	`, sellerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]purchases.Purchase, 0)
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PurchasesRepo) GetByPet(ctx context.Context, petID string) (purchases.Purchase, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return purchases.Purchase{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+purchaseColumns+`
		FROM purchases
		WHERE pet_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, petID)

	p, err := scanPurchase(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return purchases.Purchase{}, ErrNotFound
		}
		return purchases.Purchase{}, err
	}
	return p, nil
}

func scanPurchase(row rowScanner) (purchases.Purchase, error) {
	var p purchases.Purchase
	if err := row.Scan(
		&p.ID,
		&p.PetID,
		&p.SellerUserID,
		&p.BuyerUserID,
		&p.BuyerEmail,
		&p.AmountCents,
		&p.Currency,
		&p.CreatedAt,
	); err != nil {
		return purchases.Purchase{}, err
	}
	return p, nil
}
