package adoptions

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

type Adoption struct {
	ID string

	PetID string

	OwnerUserID   string // lister que publicó la mascota
	AdopterUserID string // quien pide adoptar

	AdopterEmail string // destino de los recordatorios de vacunas

	Message string

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
	DecidedAt *time.Time
}
