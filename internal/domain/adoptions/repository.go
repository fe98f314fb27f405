package adoptions

import "context"

type Repository interface {
	Create(ctx context.Context, a Adoption) error
	Update(ctx context.Context, a Adoption) error
	GetByID(ctx context.Context, id string) (Adoption, error)
	ListByPet(ctx context.Context, petID string) ([]Adoption, error)

	// GetAcceptedByPet devuelve la solicitud aceptada de una mascota.
	// Si por datos sucios hay más de una, gana la de updated_at más reciente.
	GetAcceptedByPet(ctx context.Context, petID string) (Adoption, error)
}
