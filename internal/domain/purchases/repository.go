package purchases

import "context"

type Repository interface {
	Create(ctx context.Context, p Purchase) error
	GetByID(ctx context.Context, id string) (Purchase, error)
	ListBySeller(ctx context.Context, sellerUserID string) ([]Purchase, error)

	// GetByPet devuelve el registro de compra de una mascota.
	// Con duplicados (re-venta registrada a mano) gana el más reciente.
	GetByPet(ctx context.Context, petID string) (Purchase, error)
}
