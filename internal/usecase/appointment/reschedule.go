package appointment

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/petspa-booking/internal/audit"
	domain "github.com/BruksfildServices01/petspa-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
	"github.com/BruksfildServices01/petspa-booking/internal/notification"
	"github.com/BruksfildServices01/petspa-booking/internal/validators"
)

// Reschedule moves an appointment to a new date and slot and confirms
// it. The new slot must have a seat; the appointment does not count
// against itself when only the date or nothing changes.
type Reschedule struct {
	Deps
}

func NewReschedule(d Deps) *Reschedule {
	return &Reschedule{Deps: d}
}

func (uc *Reschedule) Execute(
	ctx context.Context,
	appointmentID uint,
	date string,
	clock string,
) (*models.Appointment, error) {

	if !validators.IsDate(date) {
		return nil, httperr.Validation("invalid_date", "Date must use the YYYY-MM-DD format.", "date")
	}
	slotTime, err := validators.NormalizeStrictTime(clock)
	if err != nil {
		return nil, httperr.Validation("invalid_time", "Time must use the HH:MM or HH:MM:SS format.", "time")
	}

	at, err := uc.Clock.At(date, slotTime)
	if err != nil {
		return nil, httperr.Validation("invalid_date", "Date must use the YYYY-MM-DD format.", "date")
	}
	if !at.After(uc.Clock.Now()) {
		return nil, httperr.Validation("appointment_in_past", "The new appointment time has already passed.", "date", "time")
	}

	var (
		ap       *models.Appointment
		previous string
	)
	err = uc.Repo.Transaction(ctx, func(ctx context.Context) error {
		ap, err = uc.Repo.GetAppointmentForUpdate(ctx, appointmentID)
		if err != nil {
			return err
		}
		previous = ap.AppointmentDate + " " + ap.AppointmentTime

		if _, err := uc.reserveSeat(ctx, date, slotTime, ap.ID); err != nil {
			return err
		}

		domain.Reschedule(ap, date, slotTime)
		if err := uc.Repo.UpdateAppointment(ctx, ap); err != nil {
			return fmt.Errorf("update appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.auditor().Dispatch(audit.Event{
		Action:   audit.ActionRescheduled,
		Entity:   "appointment",
		EntityID: ap.Code(),
		Metadata: map[string]any{
			"from": previous,
			"to":   ap.AppointmentDate + " " + ap.AppointmentTime,
		},
	})
	notification.Send(uc.Notifier, notification.KindRescheduled, ap)

	return ap, nil
}
