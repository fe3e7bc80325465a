package appointment

import (
	"time"

	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// CanRestore checks the two restore guards that do not need the store:
// the appointment is cancelled and still in the future. Capacity is
// checked by the caller under the slot lock.
func CanRestore(ap *models.Appointment, at, now time.Time) error {
	if Status(ap.Status) != StatusCancelled {
		return httperr.Conflict("not_cancelled", "Only cancelled appointments can be restored.")
	}
	if !at.After(now) {
		return httperr.Conflict("appointment_in_past", "The appointment time has already passed.")
	}
	return nil
}

func Restore(ap *models.Appointment) {
	ap.Status = string(StatusPending)
}

// Reschedule moves the appointment and re-confirms it.
func Reschedule(ap *models.Appointment, date, slotTime string) {
	ap.AppointmentDate = date
	ap.AppointmentTime = slotTime
	ap.Status = string(StatusConfirmed)
}

// NeedsSeat reports whether moving from one status to another makes the
// appointment start occupying its slot again.
func NeedsSeat(from, to Status) bool {
	return !from.OccupiesSlot() && to.OccupiesSlot()
}

// SettlePayment applies a payment covering amount to the appointment.
// Cash stays pending until staff confirm it by hand; any other method
// marks the appointment paid and confirmed.
func SettlePayment(ap *models.Appointment, amount int64, online bool) {
	if amount < ap.TotalAmount {
		return
	}
	if !online {
		ap.PaymentStatus = string(PaymentPending)
		return
	}
	ap.PaymentStatus = string(PaymentPaid)
	ap.Status = string(StatusConfirmed)
}
