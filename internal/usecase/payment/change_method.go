package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/petspa-booking/internal/audit"
	domain "github.com/BruksfildServices01/petspa-booking/internal/domain/payment"
	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
	"github.com/BruksfildServices01/petspa-booking/internal/notification"
)

// ChangeMethod switches how an appointment will be paid. The latest
// ledger row follows the change in place; a completed row is history
// and is never rewritten, so any balance left opens a new pending row.
type ChangeMethod struct {
	Deps
}

func NewChangeMethod(d Deps) *ChangeMethod {
	return &ChangeMethod{Deps: d}
}

func (uc *ChangeMethod) Execute(
	ctx context.Context,
	appointmentID uint,
	methodName string,
	transactionID string,
) (*models.Appointment, error) {

	method, err := domain.ParseMethod(methodName)
	if err != nil {
		return nil, err
	}
	txnID := strings.TrimSpace(transactionID)

	var (
		ap       *models.Appointment
		previous string
	)
	err = uc.Repo.Transaction(ctx, func(ctx context.Context) error {
		ap, err = uc.Repo.GetAppointmentForUpdate(ctx, appointmentID)
		if err != nil {
			return err
		}
		previous = ap.PaymentMethod
		ap.PaymentMethod = string(method)

		if txnID != "" {
			dup, err := uc.Repo.FindPaymentByTransactionID(ctx, txnID)
			if err != nil {
				return fmt.Errorf("find payment by transaction: %w", err)
			}
			if dup != nil {
				return httperr.Conflict("duplicate_transaction", "A payment with this transaction id already exists.")
			}
		}

		latest, err := uc.Repo.LatestPayment(ctx, ap.ID)
		if err != nil {
			return fmt.Errorf("latest payment: %w", err)
		}

		note := methodChangeNote(previous, string(method))
		switch {
		case latest == nil:
			if err := uc.openPending(ctx, ap.ID, ap.TotalAmount, method, txnID, note); err != nil {
				return err
			}

		case domain.Status(latest.Status) == domain.StatusCompleted:
			// completed rows are history; the balance, if any, gets a
			// new pending row in the new method
			payments, err := uc.Repo.ListPayments(ctx, ap.ID)
			if err != nil {
				return fmt.Errorf("list payments: %w", err)
			}
			if due := ap.TotalAmount - domain.CompletedTotal(payments); due > 0 {
				if err := uc.openPending(ctx, ap.ID, due, method, txnID, note); err != nil {
					return err
				}
			}

		default:
			latest.PaymentMethod = string(method)
			if method.IsOnline() {
				latest.Status = string(domain.StatusPending)
			}
			latest.Notes = domain.AppendNote(latest.Notes, note)
			if txnID != "" {
				latest.TransactionID = &txnID
			}
			if err := uc.Repo.UpdatePayment(ctx, latest); err != nil {
				return fmt.Errorf("update payment: %w", err)
			}
		}

		if err := uc.Repo.UpdateAppointment(ctx, ap); err != nil {
			return fmt.Errorf("update appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.auditor().Dispatch(audit.Event{
		Action:   audit.ActionPaymentMethodChanged,
		Entity:   "appointment",
		EntityID: ap.Code(),
		Metadata: map[string]any{"from": previous, "to": method},
	})

	if previous == string(domain.MethodEWallet) && method == domain.MethodCash {
		notification.Send(uc.Notifier, notification.KindMethodChanged, ap)
	}

	return ap, nil
}

func (uc *ChangeMethod) openPending(
	ctx context.Context,
	appointmentID uint,
	amount int64,
	method domain.Method,
	txnID string,
	note string,
) error {
	p := &models.Payment{
		AppointmentID: appointmentID,
		Amount:        amount,
		PaymentMethod: string(method),
		Status:        string(domain.StatusPending),
		Notes:         note,
		PaymentDate:   uc.Clock.Now(),
	}
	if txnID != "" {
		p.TransactionID = &txnID
	}
	if err := uc.Repo.CreatePayment(ctx, p); err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}
