package models

import "time"

// Appointment is a confirmed technician visit. The ID is the external calendar
// event id when the write reached the calendar, or a locally generated
// "local-" id when the appointment only lives in the fallback store.
// Appointments are never mutated after creation.
type Appointment struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// BusyInterval is a period during which the technician calendar is
// unavailable, regardless of source. Bounds are half-open: [Start, End).
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BlockedSlot is an administrator-created marker withholding a slot from
// availability. Identity is the external calendar event id.
type BlockedSlot struct {
	EventID string    `json:"eventId"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Reason  string    `json:"reason"`
}
