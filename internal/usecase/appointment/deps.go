package appointment

import (
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/petspa-booking/internal/audit"
	domain "github.com/BruksfildServices01/petspa-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/petspa-booking/internal/metrics"
	"github.com/BruksfildServices01/petspa-booking/internal/notification"
	"github.com/BruksfildServices01/petspa-booking/internal/timezone"
)

// Deps are the collaborators shared by the appointment use cases.
// Audit, Notifier and Metrics may be left nil.
type Deps struct {
	Repo     domain.Repository
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
