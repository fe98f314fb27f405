package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByLister(ctx context.Context, listerUserID string) ([]Pet, error)

	// ListWithVaccinations devuelve solo mascotas con historial no vacío.
	// Es el snapshot que recorre el pase de recordatorios.
	ListWithVaccinations(ctx context.Context) ([]Pet, error)
}
