package appointment

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/petspa-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
	"github.com/BruksfildServices01/petspa-booking/internal/validators"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, int64, domain.ListFilter, error) {

	if f.Status != "" {
		if _, err := domain.ParseStatus(f.Status); err != nil {
			return nil, 0, f, err
		}
	}
	if f.PaymentStatus != "" {
		if _, err := domain.ParsePaymentStatus(f.PaymentStatus); err != nil {
			return nil, 0, f, err
		}
	}
	if f.FromDate != "" && !validators.IsDate(f.FromDate) {
		return nil, 0, f, httperr.Validation("invalid_date", "from_date must use the YYYY-MM-DD format.", "from_date")
	}
	if f.ToDate != "" && !validators.IsDate(f.ToDate) {
		return nil, 0, f, httperr.Validation("invalid_date", "to_date must use the YYYY-MM-DD format.", "to_date")
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}

	apps, total, err := uc.repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, 0, f, fmt.Errorf("list appointments: %w", err)
	}
	return apps, total, f, nil
}
