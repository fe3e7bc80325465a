package appointment

import "github.com/BruksfildServices01/petspa-booking/internal/httperr"

type PetType string

const (
	PetDog PetType = "dog"
	PetCat PetType = "cat"
)

func ParsePetType(s string) (PetType, error) {
	switch PetType(s) {
	case PetDog, PetCat:
		return PetType(s), nil
	}
	return "", httperr.Validation("invalid_pet_type", "Pet type must be dog or cat.", string(PetDog), string(PetCat))
}
