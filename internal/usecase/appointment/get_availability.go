package appointment

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/petspa-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/validators"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute is computed from committed rows on every call; nothing is cached.
func (uc *GetAvailability) Execute(ctx context.Context, date string) (domain.Availability, error) {
	if !validators.IsDate(date) {
		return nil, httperr.Validation("invalid_date", "Date must use the YYYY-MM-DD format.", "date")
	}

	slots, err := uc.repo.ListActiveSlots(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active slots: %w", err)
	}

	booked, err := uc.repo.CountBookedByTime(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("count booked: %w", err)
	}

	out := make(domain.Availability, len(slots))
	for _, slot := range slots {
		key := validators.ShortTime(slot.SlotTime)
		if _, seen := out[key]; seen {
			continue
		}
		out[key] = domain.NewSlotAvailability(
			slot.ID,
			slot.SlotTime,
			slot.MaxCapacity,
			booked[slot.SlotTime],
		)
	}
	return out, nil
}
