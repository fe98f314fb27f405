package purchases

import "time"

// Purchase es el registro de una venta ya concretada.
// El cobro en sí (payment intent, pasarela) ocurre fuera de este servicio;
// acá solo importa quién compró y a qué email avisarle.
type Purchase struct {
	ID string

	PetID string

	SellerUserID string
	BuyerUserID  string

	BuyerEmail string // destino de los recordatorios de vacunas

	AmountCents int64
	Currency    string

	CreatedAt time.Time
}
