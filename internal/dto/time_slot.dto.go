package dto

import (
	"time"

	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

type TimeSlotDTO struct {
	ID          uint      `json:"id"`
	Code        string    `json:"code"`
	TimeSlot    string    `json:"time_slot"`
	MaxCapacity int       `json:"max_capacity"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func TimeSlot(s *models.TimeSlot) TimeSlotDTO {
	return TimeSlotDTO{
		ID:          s.ID,
		Code:        s.Code(),
		TimeSlot:    s.SlotTime,
		MaxCapacity: s.MaxCapacity,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func TimeSlots(list []models.TimeSlot) []TimeSlotDTO {
	out := make([]TimeSlotDTO, 0, len(list))
	for i := range list {
		out = append(out, TimeSlot(&list[i]))
	}
	return out
}
