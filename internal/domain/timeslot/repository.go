package timeslot

import (
	"context"

	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

type ListFilter struct {
	Active   *bool
	FromTime string
	ToTime   string
	Search   string
	Page     int
	Limit    int
	Sort     string
}

type Repository interface {
	ListSlots(ctx context.Context, f ListFilter) ([]models.TimeSlot, int64, error)
	GetSlot(ctx context.Context, id uint) (*models.TimeSlot, error)
	CreateSlot(ctx context.Context, slot *models.TimeSlot) error
	UpdateSlot(ctx context.Context, slot *models.TimeSlot) error
	DeleteSlot(ctx context.Context, id uint) error

	// ActiveSlotExists reports whether another active slot uses slotTime.
	ActiveSlotExists(ctx context.Context, slotTime string, excludeID uint) (bool, error)

	// CountUpcomingAt counts non-cancelled appointments on or after
	// fromDate at slotTime.
	CountUpcomingAt(ctx context.Context, slotTime, fromDate string) (int64, error)
}
