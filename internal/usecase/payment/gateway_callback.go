package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/petspa-booking/internal/audit"
	apdomain "github.com/BruksfildServices01/petspa-booking/internal/domain/appointment"
	domain "github.com/BruksfildServices01/petspa-booking/internal/domain/payment"
	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/infra/vnpay"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
	"github.com/BruksfildServices01/petspa-booking/internal/notification"
)

// ErrRecordingFailed means the gateway charged the customer but the
// ledger could not be written. It must not be reported as a failed
// payment.
var ErrRecordingFailed = errors.New("payment succeeded at the gateway but could not be recorded")

var errCallbackInProgress = httperr.Conflict(
	"callback_in_progress",
	"This transaction is still being processed, retry shortly.",
)

type CallbackResult struct {
	Success       bool   `json:"success"`
	Duplicate     bool   `json:"duplicate,omitempty"`
	ResponseCode  string `json:"response_code"`
	AppointmentID uint   `json:"appointment_id"`
	PaymentID     uint   `json:"payment_id,omitempty"`
	Amount        int64  `json:"amount"`
	TransactionID string `json:"transaction_id"`
}

type GatewayCallback struct {
	Deps
}

func NewGatewayCallback(d Deps) *GatewayCallback {
	return &GatewayCallback{Deps: d}
}

func (uc *GatewayCallback) Execute(ctx context.Context, params map[string]string) (*CallbackResult, error) {

	// --------------------------------------------------
	// 1. Signature and payload, before touching anything
	// --------------------------------------------------
	if uc.Gateway == nil || !uc.Gateway.Verify(params) {
		uc.Metrics.GatewayCallback("invalid_signature")
		return nil, httperr.Integrity("invalid_signature", "Invalid payment signature.")
	}

	cb, err := vnpay.ParseCallback(params)
	if err != nil {
		uc.Metrics.GatewayCallback("invalid_payload")
		return nil, httperr.Integrity("invalid_amount", "Gateway amount is not a number.")
	}

	appointmentID, ok := domain.AppointmentIDFromOrderInfo(cb.OrderInfo)
	if !ok {
		uc.Metrics.GatewayCallback("invalid_payload")
		return nil, httperr.Integrity("invalid_order_info", "Order information does not reference an appointment.")
	}

	res := &CallbackResult{
		ResponseCode:  cb.ResponseCode,
		AppointmentID: appointmentID,
		Amount:        cb.Amount,
		TransactionID: cb.TransactionID(),
	}

	// --------------------------------------------------
	// 2. Declined at the gateway: report, change nothing
	// --------------------------------------------------
	if !cb.Succeeded() {
		uc.Metrics.GatewayCallback("declined")
		return res, nil
	}

	log := uc.Log.With().
		Str("transaction_id", res.TransactionID).
		Uint("appointment_id", appointmentID).
		Logger()

	// --------------------------------------------------
	// 3. In-flight guard
	// --------------------------------------------------
	if uc.Guard != nil {
		acquired, err := uc.Guard.Acquire(ctx, res.TransactionID)
		switch {
		case err != nil:
			// the ledger still rejects duplicates on its own
			log.Warn().Err(err).Msg("callback guard unavailable")
		case !acquired:
			return uc.inFlight(ctx, res)
		}
	}

	// --------------------------------------------------
	// 4. Ledger + appointment, atomically
	// --------------------------------------------------
	var ap *models.Appointment
	err = uc.Repo.Transaction(ctx, func(ctx context.Context) error {
		ap, err = uc.Repo.GetAppointmentForUpdate(ctx, appointmentID)
		if err != nil {
			return err
		}

		existing, err := uc.Repo.FindPaymentByTransactionID(ctx, res.TransactionID)
		if err != nil {
			return err
		}
		if existing != nil {
			res.Duplicate = true
			res.PaymentID = existing.ID
			return nil
		}

		p, err := uc.applyPayment(ctx, ap, cb, res.TransactionID)
		if err != nil {
			return err
		}
		res.PaymentID = p.ID

		if cb.Amount >= ap.TotalAmount {
			ap.PaymentStatus = string(apdomain.PaymentPaid)
		}
		ap.Status = string(apdomain.StatusConfirmed)
		ap.PaymentMethod = string(domain.MethodEWallet)
		return uc.Repo.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		if uc.Guard != nil {
			if rerr := uc.Guard.Release(ctx, res.TransactionID); rerr != nil {
				log.Warn().Err(rerr).Msg("callback guard release failed")
			}
		}
		if httperr.KindOf(err) != "" {
			uc.Metrics.GatewayCallback("rejected")
			return nil, err
		}
		uc.Metrics.GatewayCallback("recording_failed")
		log.Error().Err(err).Int64("amount", cb.Amount).Msg("gateway payment could not be recorded")
		return nil, fmt.Errorf("%w: %v", ErrRecordingFailed, err)
	}

	res.Success = true
	if res.Duplicate {
		uc.Metrics.GatewayCallback("duplicate")
		return res, nil
	}

	// --------------------------------------------------
	// 5. Side effects, never fatal
	// --------------------------------------------------
	uc.Metrics.GatewayCallback("applied")
	uc.Metrics.PaymentRecorded(string(domain.MethodEWallet))
	uc.auditor().Dispatch(audit.Event{
		Action:   audit.ActionGatewayCallback,
		Entity:   "payment",
		EntityID: models.FormatCode(models.PrefixPayment, res.PaymentID),
		Metadata: map[string]any{
			"appointment":    ap.Code(),
			"transaction_id": res.TransactionID,
			"amount":         cb.Amount,
			"bank_code":      cb.BankCode,
			"pay_date":       cb.PayDate,
		},
	})
	notification.Send(uc.Notifier, notification.KindPaymentReceived, ap)

	return res, nil
}

// applyPayment completes the pending e-wallet placeholder of the
// appointment when there is one, and inserts a completed row otherwise.
// inFlight answers a delivery whose transaction another request is
// still processing. It is only a duplicate once the ledger holds the
// row; until then the gateway must retry.
func (uc *GatewayCallback) inFlight(ctx context.Context, res *CallbackResult) (*CallbackResult, error) {
	existing, err := uc.Repo.FindPaymentByTransactionID(ctx, res.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordingFailed, err)
	}
	if existing == nil {
		uc.Metrics.GatewayCallback("in_progress")
		return nil, errCallbackInProgress
	}

	uc.Metrics.GatewayCallback("duplicate")
	res.Success, res.Duplicate = true, true
	res.PaymentID = existing.ID
	return res, nil
}

func (uc *GatewayCallback) applyPayment(
	ctx context.Context,
	ap *models.Appointment,
	cb vnpay.Callback,
	transactionID string,
) (*models.Payment, error) {

	note := fmt.Sprintf("VNPAY transaction %s, bank %s, paid at %s", transactionID, cb.BankCode, cb.PayDate)

	p, err := uc.Repo.FindPendingPayment(ctx, ap.ID, domain.MethodEWallet)
	if err != nil {
		return nil, err
	}

	if p != nil {
		p.TransactionID = &transactionID
		p.Amount = cb.Amount
		p.Status = string(domain.StatusCompleted)
		p.PaymentDate = uc.Clock.Now()
		p.Notes = domain.AppendNote(p.Notes, note)
		if err := uc.Repo.UpdatePayment(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	}

	p = &models.Payment{
		AppointmentID: ap.ID,
		Amount:        cb.Amount,
		PaymentMethod: string(domain.MethodEWallet),
		TransactionID: &transactionID,
		Status:        string(domain.StatusCompleted),
		Notes:         note,
		PaymentDate:   uc.Clock.Now(),
	}
	if err := uc.Repo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
