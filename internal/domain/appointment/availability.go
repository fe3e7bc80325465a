package appointment

// SlotAvailability is the computed state of one slot on one date.
// Remaining is not clamped and goes negative when a slot was overbooked
// by manual edits.
type SlotAvailability struct {
	SlotID    uint   `json:"slot_id"`
	TimeSlot  string `json:"time_slot"`
	Capacity  int    `json:"capacity"`
	Booked    int    `json:"booked"`
	Remaining int    `json:"remaining"`
}

// Availability is keyed by HH:MM.
type Availability map[string]SlotAvailability

func NewSlotAvailability(slotID uint, slotTime string, capacity, booked int) SlotAvailability {
	return SlotAvailability{
		SlotID:    slotID,
		TimeSlot:  slotTime,
		Capacity:  capacity,
		Booked:    booked,
		Remaining: capacity - booked,
	}
}
