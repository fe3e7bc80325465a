package timeslot

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/BruksfildServices01/petspa-booking/internal/audit"
	domain "github.com/BruksfildServices01/petspa-booking/internal/domain/timeslot"
	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
	"github.com/BruksfildServices01/petspa-booking/internal/timezone"
	"github.com/BruksfildServices01/petspa-booking/internal/validators"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

var errDuplicate = httperr.Conflict("duplicate_slot_time", "An active time slot already exists at this time.")

// Registry manages the bookable times of day.
type Registry struct {
	repo  domain.Repository
	audit audit.Auditor
	clock timezone.Clock
}

func NewRegistry(repo domain.Repository, auditor audit.Auditor, clock timezone.Clock) *Registry {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &Registry{repo: repo, audit: auditor, clock: clock}
}

// ======================================================
// READ
// ======================================================

func (r *Registry) List(ctx context.Context, f domain.ListFilter) ([]models.TimeSlot, int64, domain.ListFilter, error) {
	var err error
	if f.FromTime != "" {
		if f.FromTime, err = validators.NormalizeTimeOfDay(f.FromTime); err != nil {
			return nil, 0, f, httperr.Validation("invalid_time", "from_time must be a time of day.", "from_time")
		}
	}
	if f.ToTime != "" {
		if f.ToTime, err = validators.NormalizeTimeOfDay(f.ToTime); err != nil {
			return nil, 0, f, httperr.Validation("invalid_time", "to_time must be a time of day.", "to_time")
		}
	}
	if f.Sort != "" {
		if _, ok := domain.SortColumns[f.Sort]; !ok {
			return nil, 0, f, httperr.Validation("invalid_sort", "Unsupported sort.", sortKeys()...)
		}
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}

	slots, total, err := r.repo.ListSlots(ctx, f)
	if err != nil {
		return nil, 0, f, fmt.Errorf("list slots: %w", err)
	}
	return slots, total, f, nil
}

func (r *Registry) Get(ctx context.Context, id uint) (*models.TimeSlot, error) {
	return r.repo.GetSlot(ctx, id)
}

// ======================================================
// WRITE
// ======================================================

type CreateInput struct {
	Time        string
	MaxCapacity int
	// nil means active
	IsActive *bool
}

func (r *Registry) Create(ctx context.Context, in CreateInput) (*models.TimeSlot, error) {
	if strings.TrimSpace(in.Time) == "" {
		return nil, httperr.Validation("missing_required_fields", "Time slot and capacity are required.", "time_slot", "max_capacity")
	}
	slotTime, err := validators.NormalizeTimeOfDay(in.Time)
	if err != nil {
		return nil, httperr.Validation("invalid_time", "Time slot must be HH, HH:MM or HH:MM:SS.", "time_slot")
	}
	if in.MaxCapacity <= 0 {
		return nil, httperr.Validation("invalid_capacity", "Maximum capacity must be greater than zero.", "max_capacity")
	}

	slot := &models.TimeSlot{
		SlotTime:    slotTime,
		MaxCapacity: in.MaxCapacity,
		IsActive:    in.IsActive == nil || *in.IsActive,
	}

	if slot.IsActive {
		exists, err := r.repo.ActiveSlotExists(ctx, slotTime, 0)
		if err != nil {
			return nil, fmt.Errorf("check duplicate slot: %w", err)
		}
		if exists {
			return nil, errDuplicate
		}
	}

	if err := r.repo.CreateSlot(ctx, slot); err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}

	r.audit.Dispatch(audit.Event{
		Action:   audit.ActionTimeSlotCreated,
		Entity:   "time_slot",
		EntityID: slot.Code(),
		Metadata: map[string]any{"time": slot.SlotTime, "capacity": slot.MaxCapacity},
	})
	return slot, nil
}

type UpdateInput struct {
	Time        *string
	MaxCapacity *int
	IsActive    *bool
}

func (r *Registry) Update(ctx context.Context, id uint, in UpdateInput) (*models.TimeSlot, error) {
	slot, err := r.repo.GetSlot(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Time != nil {
		slotTime, err := validators.NormalizeTimeOfDay(*in.Time)
		if err != nil {
			return nil, httperr.Validation("invalid_time", "Time slot must be HH, HH:MM or HH:MM:SS.", "time_slot")
		}
		slot.SlotTime = slotTime
	}
	if in.MaxCapacity != nil {
		if *in.MaxCapacity <= 0 {
			return nil, httperr.Validation("invalid_capacity", "Maximum capacity must be greater than zero.", "max_capacity")
		}
		slot.MaxCapacity = *in.MaxCapacity
	}
	if in.IsActive != nil {
		slot.IsActive = *in.IsActive
	}

	if slot.IsActive {
		exists, err := r.repo.ActiveSlotExists(ctx, slot.SlotTime, slot.ID)
		if err != nil {
			return nil, fmt.Errorf("check duplicate slot: %w", err)
		}
		if exists {
			return nil, errDuplicate
		}
	}

	if err := r.repo.UpdateSlot(ctx, slot); err != nil {
		return nil, fmt.Errorf("update slot: %w", err)
	}

	r.audit.Dispatch(audit.Event{
		Action:   audit.ActionTimeSlotUpdated,
		Entity:   "time_slot",
		EntityID: slot.Code(),
		Metadata: map[string]any{"time": slot.SlotTime, "capacity": slot.MaxCapacity, "active": slot.IsActive},
	})
	return slot, nil
}

// Delete refuses while upcoming, non-cancelled appointments still use
// the slot's time of day. Deactivate the slot to stop new bookings.
func (r *Registry) Delete(ctx context.Context, id uint) error {
	slot, err := r.repo.GetSlot(ctx, id)
	if err != nil {
		return err
	}

	upcoming, err := r.repo.CountUpcomingAt(ctx, slot.SlotTime, r.clock.Today())
	if err != nil {
		return fmt.Errorf("count upcoming appointments: %w", err)
	}
	if upcoming > 0 {
		return httperr.Conflict(
			"slot_has_future_appointments",
			fmt.Sprintf("%d upcoming appointment(s) still use this time slot.", upcoming),
		)
	}

	if err := r.repo.DeleteSlot(ctx, slot.ID); err != nil {
		return err
	}

	r.audit.Dispatch(audit.Event{
		Action:   audit.ActionTimeSlotDeleted,
		Entity:   "time_slot",
		EntityID: slot.Code(),
		Metadata: map[string]any{"time": slot.SlotTime},
	})
	return nil
}

func sortKeys() []string {
	keys := make([]string, 0, len(domain.SortColumns))
	for k := range domain.SortColumns {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
