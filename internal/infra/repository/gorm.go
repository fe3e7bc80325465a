package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

type txKey struct{}

// base carries the connection and joins transactions started through
// Transaction: calls made with the ctx handed to fn run on the tx.
type base struct {
	db *gorm.DB
}

func (r base) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r base) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// forUpdate adds FOR UPDATE where the dialect has row locks. SQLite
// serialises writers on its own.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

func notFound(err error, code, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFound(code, message)
	}
	return err
}

// --------------------------------------------------
// Appointment and ledger helpers shared by both repositories
// --------------------------------------------------

func (r base) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var ap models.Appointment
	if err := r.conn(ctx).
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&ap, id).Error; err != nil {
		return nil, notFound(err, "appointment_not_found", "Appointment not found.")
	}
	return &ap, nil
}

func (r base) GetAppointmentForUpdate(ctx context.Context, id uint) (*models.Appointment, error) {
	var ap models.Appointment
	if err := forUpdate(r.conn(ctx)).First(&ap, id).Error; err != nil {
		return nil, notFound(err, "appointment_not_found", "Appointment not found.")
	}

	if err := r.conn(ctx).
		Where("appointment_id = ?", ap.ID).
		Order("id ASC").
		Find(&ap.Services).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r base) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	return r.conn(ctx).Omit(clause.Associations).Save(ap).Error
}

func (r base) ListPayments(ctx context.Context, appointmentID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.conn(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("payment_date DESC, id DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r base) CreatePayment(ctx context.Context, p *models.Payment) error {
	return r.conn(ctx).Create(p).Error
}

func (r base) UpdatePayment(ctx context.Context, p *models.Payment) error {
	return r.conn(ctx).Save(p).Error
}
