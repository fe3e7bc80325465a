package appointment

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/BruksfildServices01/petspa-booking/internal/audit"
	domain "github.com/BruksfildServices01/petspa-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
	"github.com/BruksfildServices01/petspa-booking/internal/validators"
)

// DetailsInput is a partial update; nil fields are left alone. Date and
// time are changed through Reschedule only.
type DetailsInput struct {
	PetName  *string
	PetType  *string
	PetBreed *string
	PetSize  *string
	PetNotes *string

	FullName    *string
	PhoneNumber *string
	Email       *string
}

type UpdateDetails struct {
	Deps
}

func NewUpdateDetails(d Deps) *UpdateDetails {
	return &UpdateDetails{Deps: d}
}

func (uc *UpdateDetails) Execute(
	ctx context.Context,
	appointmentID uint,
	in DetailsInput,
) (*models.Appointment, error) {

	if err := validateDetails(in); err != nil {
		return nil, err
	}

	var (
		ap      *models.Appointment
		changed []string
	)
	err := uc.Repo.Transaction(ctx, func(ctx context.Context) error {
		var err error
		ap, err = uc.Repo.GetAppointmentForUpdate(ctx, appointmentID)
		if err != nil {
			return err
		}

		changed = applyDetails(ap, in)
		if len(changed) == 0 {
			return nil
		}
		if err := uc.Repo.UpdateAppointment(ctx, ap); err != nil {
			return fmt.Errorf("update appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(changed) > 0 {
		uc.auditor().Dispatch(audit.Event{
			Action:   audit.ActionAppointmentUpdated,
			Entity:   "appointment",
			EntityID: ap.Code(),
			Metadata: map[string]any{"fields": changed},
		})
	}

	return ap, nil
}

func validateDetails(in DetailsInput) error {
	var empty []string
	for name, v := range map[string]*string{
		"pet_name":     in.PetName,
		"full_name":    in.FullName,
		"phone_number": in.PhoneNumber,
	} {
		if v != nil && strings.TrimSpace(*v) == "" {
			empty = append(empty, name)
		}
	}
	if len(empty) > 0 {
		sort.Strings(empty)
		return httperr.Validation("missing_required_fields", "Required fields cannot be emptied.", empty...)
	}

	if in.PetType != nil {
		if _, err := domain.ParsePetType(strings.ToLower(strings.TrimSpace(*in.PetType))); err != nil {
			return err
		}
	}
	if in.PhoneNumber != nil && !validators.IsPhoneValid(*in.PhoneNumber) {
		return httperr.Validation("invalid_phone", "Phone number is not valid.", "phone_number")
	}
	if in.Email != nil {
		if e := strings.TrimSpace(*in.Email); e != "" && !validators.IsEmailValid(e) {
			return httperr.Validation("invalid_email", "Email address is not valid.", "email")
		}
	}
	return nil
}

func applyDetails(ap *models.Appointment, in DetailsInput) []string {
	var changed []string
	set := func(name string, dst *string, v *string, transform func(string) string) {
		if v == nil {
			return
		}
		next := transform(strings.TrimSpace(*v))
		if next != *dst {
			*dst = next
			changed = append(changed, name)
		}
	}
	same := func(s string) string { return s }

	set("pet_name", &ap.PetName, in.PetName, same)
	set("pet_type", &ap.PetType, in.PetType, strings.ToLower)
	set("pet_breed", &ap.PetBreed, in.PetBreed, same)
	set("pet_size", &ap.PetSize, in.PetSize, same)
	set("pet_notes", &ap.PetNotes, in.PetNotes, same)
	set("full_name", &ap.FullName, in.FullName, same)
	set("phone_number", &ap.PhoneNumber, in.PhoneNumber, same)
	set("email", &ap.Email, in.Email, same)
	return changed
}
