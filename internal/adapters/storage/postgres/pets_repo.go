package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"pet-adoption-backend/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

// vaccRow es la forma jsonb del historial. Se guarda embebido en la fila de
// la mascota, igual que en el documento original: las fechas van como texto.
type vaccRow struct {
	VaccineType string `json:"vaccine_type"`
	Date        string `json:"date"`
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	vaccs, err := marshalVaccinations(p.Vaccinations)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, lister_user_id,
			name, species, breed, sex,
			birth_date, notes, status,
			vaccinations,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		p.ID,
		p.ListerUserID,
		p.Name,
		string(p.Species),
		p.Breed,
		string(p.Sex),
		toNullDate(p.BirthDate),
		p.Notes,
		string(p.Status),
		vaccs,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	vaccs, err := marshalVaccinations(p.Vaccinations)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			species = $3,
			breed = $4,
			sex = $5,
			birth_date = $6,
			notes = $7,
			status = $8,
			vaccinations = $9,
			updated_at = $10
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		string(p.Species),
		p.Breed,
		string(p.Sex),
		toNullDate(p.BirthDate),
		p.Notes,
		string(p.Status),
		vaccs,
		p.UpdatedAt,
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

const petColumns = `
	id, lister_user_id,
	name, species, breed, sex,
	birth_date, notes, status,
	vaccinations,
	created_at, updated_at
`

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE id = $1
	`, id)

	p, err := scanPet(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) ListByLister(ctx context.Context, listerUserID string) ([]pets.Pet, error) {
	listerUserID = strings.TrimSpace(listerUserID)
	if listerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE lister_user_id = $1
		ORDER BY created_at ASC
	`, listerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPets(rows)
}

func (r *PetsRepo) ListWithVaccinations(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE jsonb_array_length(vaccinations) > 0
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPets(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var species, sex, status string
	var bd sql.NullTime
	var vaccs []byte

	if err := row.Scan(
		&p.ID,
		&p.ListerUserID,
		&p.Name,
		&species,
		&p.Breed,
		&sex,
		&bd,
		&p.Notes,
		&status,
		&vaccs,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	p.Species = pets.Species(species)
	p.Sex = pets.Sex(sex)
	p.Status = pets.Status(status)

	if bd.Valid {
		t := bd.Time
		// birth_date es DATE; pgx lo trae como midnight UTC
		p.BirthDate = &t
	}

	var rowsVacc []vaccRow
	if len(vaccs) > 0 {
		if err := json.Unmarshal(vaccs, &rowsVacc); err != nil {
			return pets.Pet{}, err
		}
	}
	p.Vaccinations = make([]pets.VaccinationRecord, 0, len(rowsVacc))
	for _, v := range rowsVacc {
		p.Vaccinations = append(p.Vaccinations, pets.VaccinationRecord{
			VaccineType: v.VaccineType,
			Date:        v.Date,
		})
	}

	return p, nil
}

func collectPets(rows *sql.Rows) ([]pets.Pet, error) {
	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func marshalVaccinations(in []pets.VaccinationRecord) ([]byte, error) {
	rows := make([]vaccRow, 0, len(in))
	for _, v := range in {
		rows = append(rows, vaccRow{VaccineType: v.VaccineType, Date: v.Date})
	}
	return json.Marshal(rows)
}

// birth_date es DATE, lo pasamos como NullTime para simplificar
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
