package appointment

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/petspa-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

// Execute returns the appointment with its services and its payments,
// newest first.
func (uc *GetAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, []models.Payment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, nil, err
	}

	payments, err := uc.repo.ListPayments(ctx, ap.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list payments: %w", err)
	}
	return ap, payments, nil
}
