package payment

import (
	"context"

	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error

	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	GetAppointmentForUpdate(ctx context.Context, id uint) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	CreatePayment(ctx context.Context, p *models.Payment) error
	UpdatePayment(ctx context.Context, p *models.Payment) error

	// LatestPayment is the most recent payment row by payment date,
	// then id. Nil when the appointment has none.
	LatestPayment(ctx context.Context, appointmentID uint) (*models.Payment, error)
	FindPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)

	// FindPendingPayment returns the newest pending row of the given
	// method with no transaction id attached yet.
	FindPendingPayment(ctx context.Context, appointmentID uint, method Method) (*models.Payment, error)

	ListPayments(ctx context.Context, appointmentID uint) ([]models.Payment, error)
}
