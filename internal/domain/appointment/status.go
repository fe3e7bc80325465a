package appointment

import "github.com/BruksfildServices01/petspa-booking/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var validStatuses = []string{
	string(StatusPending),
	string(StatusConfirmed),
	string(StatusCompleted),
	string(StatusCancelled),
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", httperr.Validation("invalid_status", "Status must be one of the valid values.", validStatuses...)
}

// OccupiesSlot reports whether an appointment in this status counts
// against the capacity of its slot.
func (s Status) OccupiesSlot() bool {
	return s != StatusCancelled
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Payment Status
// ===============================

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPaid:
		return PaymentStatus(s), nil
	}
	return "", httperr.Validation(
		"invalid_payment_status",
		"Payment status must be one of the valid values.",
		string(PaymentPending), string(PaymentPaid),
	)
}
