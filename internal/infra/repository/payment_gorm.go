package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/petspa-booking/internal/domain/payment"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

type PaymentGormRepository struct {
	base
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{base: base{db: db}}
}

func (r *PaymentGormRepository) LatestPayment(
	ctx context.Context,
	appointmentID uint,
) (*models.Payment, error) {

	var p models.Payment
	err := r.conn(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("payment_date DESC, id DESC").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentGormRepository) FindPaymentByTransactionID(
	ctx context.Context,
	transactionID string,
) (*models.Payment, error) {

	var p models.Payment
	err := r.conn(ctx).
		Where("transaction_id = ?", transactionID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentGormRepository) FindPendingPayment(
	ctx context.Context,
	appointmentID uint,
	method domain.Method,
) (*models.Payment, error) {

	var p models.Payment
	err := r.conn(ctx).
		Where(
			"appointment_id = ? AND payment_method = ? AND status = ? AND transaction_id IS NULL",
			appointmentID, string(method), string(domain.StatusPending),
		).
		Order("payment_date DESC, id DESC").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Compile-time check
var _ domain.Repository = (*PaymentGormRepository)(nil)
