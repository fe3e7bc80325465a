package payment

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

type ListPayments struct {
	Deps
}

func NewListPayments(d Deps) *ListPayments {
	return &ListPayments{Deps: d}
}

// Execute returns the ledger of an appointment, newest first.
func (uc *ListPayments) Execute(ctx context.Context, appointmentID uint) ([]models.Payment, error) {
	if _, err := uc.Repo.GetAppointment(ctx, appointmentID); err != nil {
		return nil, err
	}

	payments, err := uc.Repo.ListPayments(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}
