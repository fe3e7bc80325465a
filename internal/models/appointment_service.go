package models

import "time"

// AppointmentService keeps the price the service had when it was booked.
type AppointmentService struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index;not null" json:"appointment_id"`

	ServiceID   uint   `gorm:"not null" json:"service_id"`
	ServiceName string `gorm:"size:100" json:"service_name"`
	Price       int64  `gorm:"not null" json:"price"`

	CreatedAt time.Time `json:"created_at"`
}

func (AppointmentService) TableName() string { return "spa_appointment_services" }

func (s AppointmentService) Code() string { return FormatCode(PrefixAppointmentService, s.ID) }
