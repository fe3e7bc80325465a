package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/petspa-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

type AppointmentGormRepository struct {
	base
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{base: base{db: db}}
}

// --------------------------------------------------
// Slots / capacity
// --------------------------------------------------

func (r *AppointmentGormRepository) GetActiveSlotByTime(
	ctx context.Context,
	slotTime string,
) (*models.TimeSlot, error) {

	var slot models.TimeSlot
	if err := r.conn(ctx).
		Where("slot_time = ? AND is_active = ?", slotTime, true).
		Order("id ASC").
		First(&slot).Error; err != nil {
		return nil, notFound(err, "slot_unavailable", "No active time slot at this time.")
	}
	return &slot, nil
}

func (r *AppointmentGormRepository) ListActiveSlots(ctx context.Context) ([]models.TimeSlot, error) {
	var slots []models.TimeSlot
	if err := r.conn(ctx).
		Where("is_active = ?", true).
		Order("slot_time ASC, id ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *AppointmentGormRepository) LockSlotDate(
	ctx context.Context,
	date string,
	slotTime string,
) error {

	db := r.conn(ctx)

	lock := models.SlotLock{SlotDate: date, SlotTime: slotTime}
	if err := db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&lock).Error; err != nil {
		return err
	}

	return forUpdate(db).
		Where("slot_date = ? AND slot_time = ?", date, slotTime).
		First(&lock).Error
}

func (r *AppointmentGormRepository) CountBooked(
	ctx context.Context,
	date string,
	slotTime string,
	excludeID uint,
) (int, error) {

	q := r.conn(ctx).
		Model(&models.Appointment{}).
		Where(
			"appointment_date = ? AND appointment_time = ? AND status <> ?",
			date, slotTime, string(domain.StatusCancelled),
		)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *AppointmentGormRepository) CountBookedByTime(
	ctx context.Context,
	date string,
) (map[string]int, error) {

	var rows []struct {
		AppointmentTime string
		Booked          int64
	}
	if err := r.conn(ctx).
		Model(&models.Appointment{}).
		Select("appointment_time, COUNT(*) AS booked").
		Where("appointment_date = ? AND status <> ?", date, string(domain.StatusCancelled)).
		Group("appointment_time").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.AppointmentTime] = int(row.Booked)
	}
	return out, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) ListServicesByIDs(
	ctx context.Context,
	ids []uint,
) ([]models.SpaService, error) {

	var services []models.SpaService
	if len(ids) == 0 {
		return services, nil
	}
	if err := r.conn(ctx).
		Where("id IN ?", ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	services []models.AppointmentService,
) error {

	db := r.conn(ctx)
	if err := db.Omit(clause.Associations).Create(ap).Error; err != nil {
		return err
	}

	for i := range services {
		services[i].AppointmentID = ap.ID
	}
	if len(services) > 0 {
		if err := db.Create(&services).Error; err != nil {
			return err
		}
	}

	ap.Services = services
	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(ctx context.Context, id uint) error {
	db := r.conn(ctx)

	if err := db.
		Where("appointment_id = ?", id).
		Delete(&models.AppointmentService{}).Error; err != nil {
		return err
	}

	res := db.Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("appointment_not_found", "Appointment not found.")
	}
	return nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, int64, error) {

	q := r.conn(ctx).Model(&models.Appointment{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PaymentStatus != "" {
		q = q.Where("payment_status = ?", f.PaymentStatus)
	}
	if f.FromDate != "" {
		q = q.Where("appointment_date >= ?", f.FromDate)
	}
	if f.ToDate != "" {
		q = q.Where("appointment_date <= ?", f.ToDate)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.Appointment
	if err := q.
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("appointment_date ASC, appointment_time ASC, id ASC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

func (r *AppointmentGormRepository) SearchAppointments(
	ctx context.Context,
	by domain.SearchBy,
	value string,
) ([]models.Appointment, error) {

	q := r.conn(ctx).
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })

	switch by {
	case domain.SearchByPhone:
		q = q.Where("phone_number = ?", strings.TrimSpace(value))
	case domain.SearchByEmail:
		q = q.Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(value)))
	case domain.SearchByBookingID:
		id, ok := models.ParseCode(models.PrefixAppointment, value)
		if !ok {
			return []models.Appointment{}, nil
		}
		q = q.Where("id = ?", id)
	default:
		return nil, httperr.Validation("invalid_search", "Search by phone, email or booking_id.", "phone", "email", "booking_id")
	}

	var apps []models.Appointment
	if err := q.
		Order("appointment_date DESC, appointment_time DESC, id DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
