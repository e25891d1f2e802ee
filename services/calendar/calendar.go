package calendar

import (
	"context"
	"errors"
	"time"

	gcal "google.golang.org/api/calendar/v3"

	"techvisit/models"
)

// ErrNotAuthorized is returned when no OAuth tokens are available for the
// external calendar. Read paths treat it as "no external data"; write paths
// surface it to the caller.
var ErrNotAuthorized = errors.New("google calendar: not authorized")

// Service is the gateway to the external calendar. The scheduling core only
// consults and mutates the calendar through this interface; the OAuth flow
// and wire format stay behind it.
type Service interface {
	// Authorized reports whether a usable OAuth session exists.
	Authorized() bool
	// FreeBusy returns the busy intervals of calendarID within [timeMin, timeMax).
	FreeBusy(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]models.BusyInterval, error)
	// InsertEvent creates an event and returns it with its assigned id.
	InsertEvent(ctx context.Context, calendarID string, event *gcal.Event) (*gcal.Event, error)
	// DeleteEvent removes an event by id.
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
	// ListEvents returns singly-expanded events in [timeMin, timeMax) ordered by
	// start time. A non-empty query restricts results to matching events.
	ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time, query string) ([]*gcal.Event, error)
}
