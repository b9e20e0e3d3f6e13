package pets

import "time"

// PetType es libre (dog, cat, bird, reptile, ...); la app solo sugiere valores.
type PetType string

const (
	PetTypeDog     PetType = "dog"
	PetTypeCat     PetType = "cat"
	PetTypeBird    PetType = "bird"
	PetTypeReptile PetType = "reptile"
	PetTypeOther   PetType = "other"
)

// Pet pertenece a un fur boss (OwnerID = fur_boss_id).
type Pet struct {
	ID      string
	OwnerID string

	Name    string
	PetType PetType
	Breed   string
	Age     *int

	FoodPreferences string
	MedicalInfo     string
	VetContact      string
	PhotoURL        string

	CreatedAt time.Time
	UpdatedAt time.Time
}
