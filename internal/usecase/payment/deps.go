package payment

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/petspa-booking/internal/audit"
	domain "github.com/BruksfildServices01/petspa-booking/internal/domain/payment"
	"github.com/BruksfildServices01/petspa-booking/internal/infra/vnpay"
	"github.com/BruksfildServices01/petspa-booking/internal/metrics"
	"github.com/BruksfildServices01/petspa-booking/internal/notification"
	"github.com/BruksfildServices01/petspa-booking/internal/timezone"
)

// CallbackGuard keeps two deliveries of one gateway transaction from
// being processed at the same time.
type CallbackGuard interface {
	Acquire(ctx context.Context, transactionID string) (bool, error)
	Release(ctx context.Context, transactionID string) error
}

// Deps are the collaborators shared by the payment use cases. Audit,
// Notifier, Metrics and Guard may be left nil.
type Deps struct {
	Repo     domain.Repository
	Gateway  *vnpay.Client
	Guard    CallbackGuard
	Audit    audit.Auditor
	Notifier notification.Notifier
	Metrics  *metrics.Metrics
	Clock    timezone.Clock
	Log      zerolog.Logger
}

func (d Deps) auditor() audit.Auditor {
	if d.Audit == nil {
		return audit.Nop{}
	}
	return d.Audit
}

func methodChangeNote(from, to string) string {
	return "Payment method changed from " + domain.Label(from) + " to " + domain.Label(to)
}
