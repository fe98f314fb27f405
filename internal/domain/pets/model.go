package pets

import "time"

// Species define las especies soportadas en el marketplace.
// @Enum dog, cat
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Status define el estado del listing.
// Una mascota puede quedar adopted y luego sold (o al revés) por ajustes
// administrativos; por eso adoptions y purchases se consultan por separado.
type Status string

const (
	StatusAvailable Status = "available"
	StatusAdopted   Status = "adopted"
	StatusSold      Status = "sold"
)

// VaccinationRecord es una dosis aplicada, tal como se guardó.
// Date se conserva como string YYYY-MM-DD: una fecha inválida se guarda igual
// y es el evaluador de recordatorios quien la ignora.
type VaccinationRecord struct {
	VaccineType string
	Date        string
}

// Pet representa un listing del marketplace con su historial de vacunas embebido.
type Pet struct {
	ID           string
	ListerUserID string

	Name    string
	Species Species
	Breed   string
	Sex     Sex

	BirthDate *time.Time
	Notes     string

	Status Status

	Vaccinations []VaccinationRecord

	CreatedAt time.Time
	UpdatedAt time.Time
}
