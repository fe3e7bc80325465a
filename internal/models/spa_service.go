package models

import "time"

type SpaService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	DurationMin int    `json:"duration_min"`
	Price       int64  `gorm:"not null" json:"price"`
	Active      bool   `gorm:"not null" json:"active"`

	// empty means any pet type
	PetType string `gorm:"size:10" json:"pet_type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SpaService) TableName() string { return "spa_services" }
