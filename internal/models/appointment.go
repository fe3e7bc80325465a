package models

import "time"

// Appointment dates and times are plain strings ("2006-01-02" and
// "15:04:05") so the store never shifts them across timezones.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *uint `gorm:"index" json:"user_id"`

	PetName  string `gorm:"size:100;not null" json:"pet_name"`
	PetType  string `gorm:"size:10;not null" json:"pet_type"`
	PetBreed string `gorm:"size:100" json:"pet_breed"`
	PetSize  string `gorm:"size:20" json:"pet_size"`
	PetNotes string `gorm:"type:text" json:"pet_notes"`

	AppointmentDate string `gorm:"size:10;not null;index:idx_spa_appointments_slot,priority:1" json:"appointment_date"`
	AppointmentTime string `gorm:"size:8;not null;index:idx_spa_appointments_slot,priority:2" json:"appointment_time"`

	FullName    string `gorm:"size:100;not null" json:"full_name"`
	PhoneNumber string `gorm:"size:20;not null;index" json:"phone_number"`
	Email       string `gorm:"size:100;index" json:"email"`

	TotalAmount int64 `gorm:"not null" json:"total_amount"`

	Status        string `gorm:"size:20;not null" json:"status"`
	PaymentStatus string `gorm:"size:20;not null" json:"payment_status"`
	PaymentMethod string `gorm:"size:20;not null" json:"payment_method"`

	Services []AppointmentService `gorm:"foreignKey:AppointmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Appointment) TableName() string { return "spa_appointments" }

func (a Appointment) Code() string { return FormatCode(PrefixAppointment, a.ID) }
