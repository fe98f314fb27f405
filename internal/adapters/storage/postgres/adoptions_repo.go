package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pet-adoption-backend/internal/domain/adoptions"
)

type AdoptionsRepo struct {
	db *sql.DB
}

func NewAdoptionsRepo(db *sql.DB) *AdoptionsRepo {
	return &AdoptionsRepo{db: db}
}

func (r *AdoptionsRepo) Create(ctx context.Context, a adoptions.Adoption) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adoptions (
			id, pet_id,
			owner_user_id, adopter_user_id, adopter_email,
			message, status,
			created_at, updated_at, decided_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		a.ID,
		a.PetID,
		a.OwnerUserID,
		a.AdopterUserID,
		a.AdopterEmail,
		a.Message,
		string(a.Status),
		a.CreatedAt,
		a.UpdatedAt,
		toNullTime(a.DecidedAt),
	)
	return err
}

func (r *AdoptionsRepo) Update(ctx context.Context, a adoptions.Adoption) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE adoptions
		SET
			adopter_email = $2,
			message = $3,
			status = $4,
			updated_at = $5,
			decided_at = $6
		WHERE id = $1
	`,
		a.ID,
		a.AdopterEmail,
		a.Message,
		string(a.Status),
		a.UpdatedAt,
		toNullTime(a.DecidedAt),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const adoptionColumns = `
	id, pet_id,
	owner_user_id, adopter_user_id, adopter_email,
	message, status,
	created_at, updated_at, decided_at
`

func (r *AdoptionsRepo) GetByID(ctx context.Context, id string) (adoptions.Adoption, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return adoptions.Adoption{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+adoptionColumns+`
		FROM adoptions
		WHERE id = $1
	`, id)

	a, err := scanAdoption(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return adoptions.Adoption{}, ErrNotFound
		}
		return adoptions.Adoption{}, err
	}
	return a, nil
}

func (r *AdoptionsRepo) ListByPet(ctx context.Context, petID string) ([]adoptions.Adoption, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+adoptionColumns+`
		FROM adoptions
		WHERE pet_id = $1
		ORDER BY created_at ASC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptions.Adoption, 0)
	for rows.Next() {
		a, err := scanAdoption(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AdoptionsRepo) GetAcceptedByPet(ctx context.Context, petID string) (adoptions.Adoption, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return adoptions.Adoption{}, ErrNotFound
	}

	// Con datos sucios puede haber más de una aceptada: gana la última.
	row := r.db.QueryRowContext(ctx, `
		SELECT `+adoptionColumns+`
		FROM adoptions
		WHERE pet_id = $1 AND status = 'accepted'
		ORDER BY updated_at DESC
		LIMIT 1
	`, petID)

	a, err := scanAdoption(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return adoptions.Adoption{}, ErrNotFound
		}
		return adoptions.Adoption{}, err
	}
	return a, nil
}

func scanAdoption(row rowScanner) (adoptions.Adoption, error) {
	var a adoptions.Adoption
	var status string
	var decided sql.NullTime

	if err := row.Scan(
		&a.ID,
		&a.PetID,
		&a.OwnerUserID,
		&a.AdopterUserID,
		&a.AdopterEmail,
		&a.Message,
		&status,
		&a.CreatedAt,
		&a.UpdatedAt,
		&decided,
	); err != nil {
		return adoptions.Adoption{}, err
	}

	a.Status = adoptions.Status(status)
	if decided.Valid {
		t := decided.Time
		a.DecidedAt = &t
	}
	return a, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
