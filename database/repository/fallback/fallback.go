package fallback

import (
	"time"

	"techvisit/models"
)

// Store is the process-lifetime substitute for the external calendar, used
// when the calendar is unreachable or unauthorized. Append-only: records are
// never mutated or deleted, and nothing is reconciled back into the external
// calendar. All contents are lost on restart.
type Store interface {
	// Append records an appointment.
	Append(appt models.Appointment)
	// ListInRange returns appointments overlapping [start, end).
	ListInRange(start, end time.Time) []models.Appointment
	// ListAll returns every recorded appointment in insertion order.
	ListAll() []models.Appointment
}
