package payment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

func CompletedTotal(payments []models.Payment) int64 {
	var sum int64
	for _, p := range payments {
		if Status(p.Status) == StatusCompleted {
			sum += p.Amount
		}
	}
	return sum
}

// CoverTotal brings the completed sum of the ledger up to the
// appointment total. Pending rows are completed newest first; when they
// are not enough, extra holds a new completed row for the difference.
func CoverTotal(
	ap *models.Appointment,
	payments []models.Payment,
	now time.Time,
	note string,
) (updated []models.Payment, extra *models.Payment) {

	covered := CompletedTotal(payments)
	for _, p := range payments {
		if covered >= ap.TotalAmount {
			break
		}
		if Status(p.Status) != StatusPending {
			continue
		}
		p.Status = string(StatusCompleted)
		p.Notes = AppendNote(p.Notes, note)
		covered += p.Amount
		updated = append(updated, p)
	}

	if covered < ap.TotalAmount {
		extra = &models.Payment{
			AppointmentID: ap.ID,
			Amount:        ap.TotalAmount - covered,
			PaymentMethod: ap.PaymentMethod,
			Status:        string(StatusCompleted),
			Notes:         note,
			PaymentDate:   now,
		}
	}
	return updated, extra
}

// AppendNote adds one line to the free-text audit trail of a row.
func AppendNote(notes, line string) string {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return line
	}
	return notes + "\n" + line
}
