package schedule

import (
	"time"

	"techvisit/models"
)

// Overlaps reports whether the slot [slotStart, slotEnd) intersects any busy
// interval. Intervals are half-open, so a slot ending exactly when a busy
// interval starts does not count as overlap.
func Overlaps(slotStart, slotEnd time.Time, busy []models.BusyInterval) bool {
	for _, b := range busy {
		if slotStart.Before(b.End) && slotEnd.After(b.Start) {
			return true
		}
	}
	return false
}
