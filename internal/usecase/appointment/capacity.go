package appointment

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/petspa-booking/internal/audit"
	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

var (
	ErrSlotFull        = httperr.Conflict("slot_full", "This time slot is fully booked.")
	ErrSlotUnavailable = httperr.Conflict("slot_unavailable", "No active time slot at this time.")
)

// reserveSeat must run inside Repo.Transaction. It takes the lock of the
// slot on date and fails when the slot has no seat left. excludeID is
// the appointment being moved or restored, which never counts against
// itself.
func (d Deps) reserveSeat(
	ctx context.Context,
	date string,
	slotTime string,
	excludeID uint,
) (*models.TimeSlot, error) {

	slot, err := d.Repo.GetActiveSlotByTime(ctx, slotTime)
	if err != nil {
		if httperr.KindOf(err) == httperr.KindNotFound {
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("get slot: %w", err)
	}

	if err := d.Repo.LockSlotDate(ctx, date, slot.SlotTime); err != nil {
		return nil, fmt.Errorf("lock slot %s %s: %w", date, slot.SlotTime, err)
	}

	booked, err := d.Repo.CountBooked(ctx, date, slot.SlotTime, excludeID)
	if err != nil {
		return nil, fmt.Errorf("count booked: %w", err)
	}

	if booked >= slot.MaxCapacity {
		d.Metrics.CapacityRejected()
		d.auditor().Dispatch(audit.Event{
			Action:   audit.ActionCapacityRejected,
			Entity:   "time_slot",
			EntityID: slot.Code(),
			Metadata: map[string]any{
				"date":     date,
				"time":     slot.SlotTime,
				"capacity": slot.MaxCapacity,
				"booked":   booked,
			},
		})
		return nil, ErrSlotFull
	}

	return slot, nil
}
