package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	apdomain "github.com/BruksfildServices01/petspa-booking/internal/domain/appointment"
	domain "github.com/BruksfildServices01/petspa-booking/internal/domain/timeslot"
	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

type TimeSlotGormRepository struct {
	base
}

func NewTimeSlotGormRepository(db *gorm.DB) *TimeSlotGormRepository {
	return &TimeSlotGormRepository{base: base{db: db}}
}

func (r *TimeSlotGormRepository) ListSlots(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.TimeSlot, int64, error) {

	q := r.conn(ctx).Model(&models.TimeSlot{})

	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}
	if f.FromTime != "" {
		q = q.Where("slot_time >= ?", f.FromTime)
	}
	if f.ToTime != "" {
		q = q.Where("slot_time <= ?", f.ToTime)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q = q.Where("slot_time LIKE ?", "%"+s+"%")
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var slots []models.TimeSlot
	if err := q.
		Order(domain.OrderClause(f.Sort)).
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&slots).Error; err != nil {
		return nil, 0, err
	}
	return slots, total, nil
}

func (r *TimeSlotGormRepository) GetSlot(ctx context.Context, id uint) (*models.TimeSlot, error) {
	var slot models.TimeSlot
	if err := r.conn(ctx).First(&slot, id).Error; err != nil {
		return nil, notFound(err, "time_slot_not_found", "Time slot not found.")
	}
	return &slot, nil
}

func (r *TimeSlotGormRepository) CreateSlot(ctx context.Context, slot *models.TimeSlot) error {
	return r.conn(ctx).Create(slot).Error
}

func (r *TimeSlotGormRepository) UpdateSlot(ctx context.Context, slot *models.TimeSlot) error {
	return r.conn(ctx).Save(slot).Error
}

func (r *TimeSlotGormRepository) DeleteSlot(ctx context.Context, id uint) error {
	res := r.conn(ctx).Delete(&models.TimeSlot{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("time_slot_not_found", "Time slot not found.")
	}
	return nil
}

func (r *TimeSlotGormRepository) ActiveSlotExists(
	ctx context.Context,
	slotTime string,
	excludeID uint,
) (bool, error) {

	q := r.conn(ctx).
		Model(&models.TimeSlot{}).
		Where("slot_time = ? AND is_active = ?", slotTime, true)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *TimeSlotGormRepository) CountUpcomingAt(
	ctx context.Context,
	slotTime string,
	fromDate string,
) (int64, error) {

	var count int64
	if err := r.conn(ctx).
		Model(&models.Appointment{}).
		Where(
			"appointment_time = ? AND appointment_date >= ? AND status <> ?",
			slotTime, fromDate, string(apdomain.StatusCancelled),
		).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Compile-time check
var _ domain.Repository = (*TimeSlotGormRepository)(nil)
