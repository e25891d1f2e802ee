package schedule

import "time"

// Business hours for technician visits. Monday through Thursday runs 9:00 to
// 18:00 with the 14:00-15:00 lunch hour withheld; Friday runs 9:00 to 14:00.
// Weekends are closed. Every bookable slot is exactly one hour, aligned to
// the hour boundary.
const (
	OpeningHour       = 9
	ClosingHour       = 18
	FridayClosingHour = 14
	LunchHour         = 14

	// SlotDuration is the fixed length of a bookable slot.
	SlotDuration = time.Hour
)

// GenerateSlots enumerates candidate slot start instants for the date range
// [start, end), evaluated in loc. Days are walked in 24-hour steps from the
// range start; each working day contributes its full set of hourly slots.
// Purely a function of its inputs: the same range always yields the same
// ascending sequence.
func GenerateSlots(start, end time.Time, loc *time.Location) []time.Time {
	var slots []time.Time
	for day := start.In(loc); day.Before(end.In(loc)); day = day.AddDate(0, 0, 1) {
		weekday := day.Weekday()
		if weekday == time.Saturday || weekday == time.Sunday {
			continue
		}

		closing := ClosingHour
		if weekday == time.Friday {
			closing = FridayClosingHour
		}

		for hour := OpeningHour; hour < closing; hour++ {
			if weekday != time.Friday && hour == LunchHour {
				continue
			}
			slots = append(slots, time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, loc))
		}
	}
	return slots
}
