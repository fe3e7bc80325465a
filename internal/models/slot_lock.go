package models

import "time"

// SlotLock is the row writers lock before counting the bookings of one
// slot on one date. It carries no data of its own.
type SlotLock struct {
	SlotDate  string `gorm:"primaryKey;size:10"`
	SlotTime  string `gorm:"primaryKey;size:8"`
	CreatedAt time.Time
}

func (SlotLock) TableName() string { return "spa_slot_locks" }
