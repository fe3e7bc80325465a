package appointment

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/petspa-booking/internal/audit"
	domain "github.com/BruksfildServices01/petspa-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

type RestoreAppointment struct {
	Deps
}

func NewRestoreAppointment(d Deps) *RestoreAppointment {
	return &RestoreAppointment{Deps: d}
}

// Execute brings a cancelled, still upcoming appointment back to pending
// if its slot has a seat left.
func (uc *RestoreAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap *models.Appointment
	err := uc.Repo.Transaction(ctx, func(ctx context.Context) error {
		var err error
		ap, err = uc.Repo.GetAppointmentForUpdate(ctx, appointmentID)
		if err != nil {
			return err
		}

		at, err := uc.Clock.At(ap.AppointmentDate, ap.AppointmentTime)
		if err != nil {
			return fmt.Errorf("appointment %d: %w", ap.ID, err)
		}
		if err := domain.CanRestore(ap, at, uc.Clock.Now()); err != nil {
			return err
		}

		if _, err := uc.reserveSeat(ctx, ap.AppointmentDate, ap.AppointmentTime, ap.ID); err != nil {
			return err
		}

		domain.Restore(ap)
		if err := uc.Repo.UpdateAppointment(ctx, ap); err != nil {
			return fmt.Errorf("update appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.auditor().Dispatch(audit.Event{
		Action:   audit.ActionRestored,
		Entity:   "appointment",
		EntityID: ap.Code(),
	})

	return ap, nil
}
