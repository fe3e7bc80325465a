package models

import "time"

type Payment struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index;not null" json:"appointment_id"`

	Amount        int64   `gorm:"not null" json:"amount"`
	PaymentMethod string  `gorm:"size:20;not null" json:"payment_method"`
	TransactionID *string `gorm:"size:100;uniqueIndex" json:"transaction_id"`
	Status        string  `gorm:"size:20;not null" json:"status"`
	Notes         string  `gorm:"type:text" json:"notes"`

	PaymentDate time.Time `gorm:"index" json:"payment_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Payment) TableName() string { return "spa_payments" }

func (p Payment) Code() string { return FormatCode(PrefixPayment, p.ID) }
