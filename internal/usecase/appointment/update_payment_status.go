package appointment

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/petspa-booking/internal/audit"
	domain "github.com/BruksfildServices01/petspa-booking/internal/domain/appointment"
	dompay "github.com/BruksfildServices01/petspa-booking/internal/domain/payment"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

const manualSettlementNote = "Completed when staff marked the appointment as paid"

// UpdatePaymentStatus is how staff confirm cash payments. Marking an
// appointment paid also completes enough of its ledger to cover the
// total, so a paid appointment always has the completed rows to show
// for it.
type UpdatePaymentStatus struct {
	Deps
}

func NewUpdatePaymentStatus(d Deps) *UpdatePaymentStatus {
	return &UpdatePaymentStatus{Deps: d}
}

func (uc *UpdatePaymentStatus) Execute(
	ctx context.Context,
	appointmentID uint,
	status string,
) (*models.Appointment, error) {

	to, err := domain.ParsePaymentStatus(status)
	if err != nil {
		return nil, err
	}

	var (
		ap   *models.Appointment
		from string
	)
	err = uc.Repo.Transaction(ctx, func(ctx context.Context) error {
		ap, err = uc.Repo.GetAppointmentForUpdate(ctx, appointmentID)
		if err != nil {
			return err
		}
		from = ap.PaymentStatus

		if to == domain.PaymentPaid {
			if err := uc.settleLedger(ctx, ap); err != nil {
				return err
			}
		}

		ap.PaymentStatus = string(to)
		if err := uc.Repo.UpdateAppointment(ctx, ap); err != nil {
			return fmt.Errorf("update appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.auditor().Dispatch(audit.Event{
		Action:   audit.ActionPaymentStatusChanged,
		Entity:   "appointment",
		EntityID: ap.Code(),
		Metadata: map[string]any{"from": from, "to": to},
	})

	return ap, nil
}

func (uc *UpdatePaymentStatus) settleLedger(ctx context.Context, ap *models.Appointment) error {
	payments, err := uc.Repo.ListPayments(ctx, ap.ID)
	if err != nil {
		return fmt.Errorf("list payments: %w", err)
	}

	updated, extra := dompay.CoverTotal(ap, payments, uc.Clock.Now(), manualSettlementNote)
	for i := range updated {
		if err := uc.Repo.UpdatePayment(ctx, &updated[i]); err != nil {
			return fmt.Errorf("complete payment %d: %w", updated[i].ID, err)
		}
	}
	if extra != nil {
		if err := uc.Repo.CreatePayment(ctx, extra); err != nil {
			return fmt.Errorf("create settlement payment: %w", err)
		}
		uc.Metrics.PaymentRecorded(extra.PaymentMethod)
	}
	return nil
}
