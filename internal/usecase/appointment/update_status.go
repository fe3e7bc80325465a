package appointment

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/petspa-booking/internal/audit"
	domain "github.com/BruksfildServices01/petspa-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

// UpdateStatus lets staff set any of the four statuses. Leaving
// cancelled takes a seat again, so it goes through the capacity check.
type UpdateStatus struct {
	Deps
}

func NewUpdateStatus(d Deps) *UpdateStatus {
	return &UpdateStatus{Deps: d}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	appointmentID uint,
	status string,
) (*models.Appointment, error) {

	to, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	var (
		ap   *models.Appointment
		from domain.Status
	)
	err = uc.Repo.Transaction(ctx, func(ctx context.Context) error {
		ap, err = uc.Repo.GetAppointmentForUpdate(ctx, appointmentID)
		if err != nil {
			return err
		}

		from = domain.Status(ap.Status)
		if domain.NeedsSeat(from, to) {
			if _, err := uc.reserveSeat(ctx, ap.AppointmentDate, ap.AppointmentTime, ap.ID); err != nil {
				return err
			}
		}

		ap.Status = string(to)
		if err := uc.Repo.UpdateAppointment(ctx, ap); err != nil {
			return fmt.Errorf("update appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.auditor().Dispatch(audit.Event{
		Action:   audit.ActionStatusChanged,
		Entity:   "appointment",
		EntityID: ap.Code(),
		Metadata: map[string]any{"from": from, "to": to},
	})

	return ap, nil
}
