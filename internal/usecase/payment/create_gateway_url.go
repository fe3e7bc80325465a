package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/petspa-booking/internal/audit"
	apdomain "github.com/BruksfildServices01/petspa-booking/internal/domain/appointment"
	domain "github.com/BruksfildServices01/petspa-booking/internal/domain/payment"
	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/infra/vnpay"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

type GatewayURL struct {
	URL       string          `json:"payment_url"`
	TxnRef    string          `json:"txn_ref"`
	ExpiresAt time.Time       `json:"expires_at"`
	Payment   *models.Payment `json:"payment"`
}

// CreateGatewayURL signs a VNPAY redirect for the appointment total and
// keeps one pending e-wallet row as the placeholder the callback
// completes.
type CreateGatewayURL struct {
	Deps
}

func NewCreateGatewayURL(d Deps) *CreateGatewayURL {
	return &CreateGatewayURL{Deps: d}
}

func (uc *CreateGatewayURL) Execute(
	ctx context.Context,
	appointmentID uint,
	clientIP string,
	bankCode string,
) (*GatewayURL, error) {

	if uc.Gateway == nil {
		return nil, httperr.Conflict("gateway_not_configured", "Online payment is not available.")
	}

	var (
		out      GatewayURL
		previous string
	)
	err := uc.Repo.Transaction(ctx, func(ctx context.Context) error {
		ap, err := uc.Repo.GetAppointmentForUpdate(ctx, appointmentID)
		if err != nil {
			return err
		}
		if ap.PaymentStatus == string(apdomain.PaymentPaid) {
			return httperr.Conflict("already_paid", "This appointment is already paid.")
		}
		if ap.Status == string(apdomain.StatusCancelled) {
			return httperr.Conflict("appointment_cancelled", "Cancelled appointments cannot be paid.")
		}

		link, err := uc.Gateway.BuildPaymentURL(vnpay.PaymentRequest{
			Amount:    ap.TotalAmount,
			OrderInfo: domain.OrderInfo(ap),
			ClientIP:  clientIP,
			BankCode:  bankCode,
		})
		if errors.Is(err, vnpay.ErrNotConfigured) {
			return httperr.Conflict("gateway_not_configured", "Online payment is not available.")
		}
		if err != nil {
			return fmt.Errorf("build payment url: %w", err)
		}

		p, err := uc.Repo.FindPendingPayment(ctx, ap.ID, domain.MethodEWallet)
		if err != nil {
			return fmt.Errorf("find pending payment: %w", err)
		}
		if p == nil {
			p = &models.Payment{
				AppointmentID: ap.ID,
				Amount:        ap.TotalAmount,
				PaymentMethod: string(domain.MethodEWallet),
				Status:        string(domain.StatusPending),
				Notes:         "VNPAY checkout " + link.TxnRef,
				PaymentDate:   uc.Clock.Now(),
			}
			if err := uc.Repo.CreatePayment(ctx, p); err != nil {
				return fmt.Errorf("create payment: %w", err)
			}
		}

		previous = ap.PaymentMethod
		if previous != string(domain.MethodEWallet) {
			ap.PaymentMethod = string(domain.MethodEWallet)
			if err := uc.Repo.UpdateAppointment(ctx, ap); err != nil {
				return fmt.Errorf("update appointment: %w", err)
			}
		}

		out = GatewayURL{URL: link.URL, TxnRef: link.TxnRef, ExpiresAt: link.ExpiresAt, Payment: p}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if previous != string(domain.MethodEWallet) {
		uc.auditor().Dispatch(audit.Event{
			Action:   audit.ActionPaymentMethodChanged,
			Entity:   "appointment",
			EntityID: models.FormatCode(models.PrefixAppointment, appointmentID),
			Metadata: map[string]any{"from": previous, "to": domain.MethodEWallet},
		})
	}

	return &out, nil
}
