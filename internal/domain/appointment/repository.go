package appointment

import (
	"context"

	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

type ListFilter struct {
	Status        string
	PaymentStatus string
	FromDate      string
	ToDate        string
	Page          int
	Limit         int
}

type SearchBy string

const (
	SearchByPhone     SearchBy = "phone"
	SearchByEmail     SearchBy = "email"
	SearchByBookingID SearchBy = "booking_id"
)

type Repository interface {
	// Transaction runs fn in one store transaction. Every repository
	// call made with the ctx passed to fn joins that transaction.
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error

	// -------- Slots / capacity --------
	GetActiveSlotByTime(ctx context.Context, slotTime string) (*models.TimeSlot, error)
	ListActiveSlots(ctx context.Context) ([]models.TimeSlot, error)

	// LockSlotDate takes the per-slot-per-date write lock for the
	// current transaction.
	LockSlotDate(ctx context.Context, date, slotTime string) error

	// CountBooked counts non-cancelled appointments at date/slotTime,
	// ignoring excludeID when it is not zero.
	CountBooked(ctx context.Context, date, slotTime string, excludeID uint) (int, error)

	// CountBookedByTime groups non-cancelled appointments of a date by time.
	CountBookedByTime(ctx context.Context, date string) (map[string]int, error)

	// -------- Catalog --------
	ListServicesByIDs(ctx context.Context, ids []uint) ([]models.SpaService, error)

	// -------- Appointment --------
	CreateAppointment(ctx context.Context, ap *models.Appointment, services []models.AppointmentService) error
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	GetAppointmentForUpdate(ctx context.Context, id uint) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	DeleteAppointment(ctx context.Context, id uint) error

	ListAppointments(ctx context.Context, f ListFilter) ([]models.Appointment, int64, error)
	SearchAppointments(ctx context.Context, by SearchBy, value string) ([]models.Appointment, error)

	// -------- Ledger --------
	ListPayments(ctx context.Context, appointmentID uint) ([]models.Payment, error)
	CreatePayment(ctx context.Context, p *models.Payment) error
	UpdatePayment(ctx context.Context, p *models.Payment) error
}
