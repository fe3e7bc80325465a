package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/petspa-booking/internal/audit"
	apdomain "github.com/BruksfildServices01/petspa-booking/internal/domain/appointment"
	domain "github.com/BruksfildServices01/petspa-booking/internal/domain/payment"
	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
	"github.com/BruksfildServices01/petspa-booking/internal/notification"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreatePaymentInput struct {
	AppointmentID uint
	Amount        int64
	Method        string
	TransactionID string
	Status        string
	Notes         string
}

type Recorded struct {
	Payment     *models.Payment
	Appointment *models.Appointment
}

// ======================================================
// USE CASE
// ======================================================

type CreatePayment struct {
	Deps
}

func NewCreatePayment(d Deps) *CreatePayment {
	return &CreatePayment{Deps: d}
}

func (uc *CreatePayment) Execute(ctx context.Context, in CreatePaymentInput) (*Recorded, error) {
	if in.Amount <= 0 {
		return nil, httperr.Validation("invalid_amount", "Amount must be greater than zero.", "amount")
	}
	method, err := domain.ParseMethod(in.Method)
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}
	txnID := strings.TrimSpace(in.TransactionID)

	var (
		out      Recorded
		previous string
		paidNow  bool
	)
	err = uc.Repo.Transaction(ctx, func(ctx context.Context) error {
		ap, err := uc.Repo.GetAppointmentForUpdate(ctx, in.AppointmentID)
		if err != nil {
			return err
		}

		if in.Amount > ap.TotalAmount {
			return httperr.Conflict("amount_exceeds_total", "Payment amount exceeds the appointment total.")
		}

		if txnID != "" {
			dup, err := uc.Repo.FindPaymentByTransactionID(ctx, txnID)
			if err != nil {
				return fmt.Errorf("find payment by transaction: %w", err)
			}
			if dup != nil {
				return httperr.Conflict("duplicate_transaction", "A payment with this transaction id already exists.")
			}
		}

		p := &models.Payment{
			AppointmentID: ap.ID,
			Amount:        in.Amount,
			PaymentMethod: string(method),
			Status:        string(status),
			Notes:         strings.TrimSpace(in.Notes),
			PaymentDate:   uc.Clock.Now(),
		}
		if txnID != "" {
			p.TransactionID = &txnID
		}

		previous = ap.PaymentMethod
		if previous != string(method) {
			ap.PaymentMethod = string(method)
			p.Notes = domain.AppendNote(p.Notes, methodChangeNote(previous, string(method)))
		}

		wasPaid := ap.PaymentStatus == string(apdomain.PaymentPaid)
		apdomain.SettlePayment(ap, in.Amount, method.IsOnline())
		if ap.PaymentStatus == string(apdomain.PaymentPaid) {
			// a paid appointment is always backed by a completed row
			p.Status = string(domain.StatusCompleted)
			paidNow = !wasPaid
		}

		if err := uc.Repo.CreatePayment(ctx, p); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		if err := uc.Repo.UpdateAppointment(ctx, ap); err != nil {
			return fmt.Errorf("update appointment: %w", err)
		}

		out = Recorded{Payment: p, Appointment: ap}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.Metrics.PaymentRecorded(out.Payment.PaymentMethod)
	uc.auditor().Dispatch(audit.Event{
		Action:   audit.ActionPaymentRecorded,
		Entity:   "payment",
		EntityID: out.Payment.Code(),
		Metadata: map[string]any{
			"appointment": out.Appointment.Code(),
			"amount":      out.Payment.Amount,
			"method":      out.Payment.PaymentMethod,
		},
	})

	switch {
	case previous == string(domain.MethodEWallet) && method == domain.MethodCash:
		notification.Send(uc.Notifier, notification.KindMethodChanged, out.Appointment)
	case paidNow:
		notification.Send(uc.Notifier, notification.KindPaymentReceived, out.Appointment)
	}

	return &out, nil
}
