package appointment

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/petspa-booking/internal/audit"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

// DeleteAppointment hard-deletes an appointment and its service lines.
// Ledger rows are kept.
type DeleteAppointment struct {
	Deps
}

func NewDeleteAppointment(d Deps) *DeleteAppointment {
	return &DeleteAppointment{Deps: d}
}

func (uc *DeleteAppointment) Execute(
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
		if err := uc.Repo.DeleteAppointment(ctx, ap.ID); err != nil {
			return fmt.Errorf("delete appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.auditor().Dispatch(audit.Event{
		Action:   audit.ActionDeleted,
		Entity:   "appointment",
		EntityID: ap.Code(),
		Metadata: map[string]any{
			"date":      ap.AppointmentDate,
			"time":      ap.AppointmentTime,
			"full_name": ap.FullName,
			"total":     ap.TotalAmount,
		},
	})

	return ap, nil
}
