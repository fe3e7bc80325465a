package models

import "time"

type TimeSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// HH:MM:SS, no date component
	SlotTime    string `gorm:"size:8;not null;index" json:"time_slot"`
	MaxCapacity int    `gorm:"not null" json:"max_capacity"`
	IsActive    bool   `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TimeSlot) TableName() string { return "spa_time_slots" }

func (s TimeSlot) Code() string { return FormatCode(PrefixTimeSlot, s.ID) }
