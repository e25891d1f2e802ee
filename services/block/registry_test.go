package block

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"

	"techvisit/database/repository/fallback"
	"techvisit/models"
	calendarSvc "techvisit/services/calendar"
	"techvisit/services/schedule"
)

// fakeCalendar keeps inserted events in memory and serves free/busy and list
// queries from them, so block/unblock round-trips behave like the real thing.
type fakeCalendar struct {
	events    map[string]*gcal.Event
	nextID    int
	insertErr error
	deleteErr error
	listErr   error
}

func newFakeCalendar() *fakeCalendar {
	return &fakeCalendar{events: make(map[string]*gcal.Event)}
}

func (f *fakeCalendar) Authorized() bool { return true }

func (f *fakeCalendar) FreeBusy(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]models.BusyInterval, error) {
	var busy []models.BusyInterval
	for _, ev := range f.events {
		start, _ := time.Parse(time.RFC3339, ev.Start.DateTime)
		end, _ := time.Parse(time.RFC3339, ev.End.DateTime)
		if start.Before(timeMax) && end.After(timeMin) {
			busy = append(busy, models.BusyInterval{Start: start, End: end})
		}
	}
	return busy, nil
}

func (f *fakeCalendar) InsertEvent(ctx context.Context, calendarID string, event *gcal.Event) (*gcal.Event, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.nextID++
	created := *event
	created.Id = fmt.Sprintf("evt-%d", f.nextID)
	f.events[created.Id] = &created
	return &created, nil
}

func (f *fakeCalendar) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.events[eventID]; !ok {
		return &googleapi.Error{Code: 404, Message: "Not Found"}
	}
	delete(f.events, eventID)
	return nil
}

func (f *fakeCalendar) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time, query string) ([]*gcal.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*gcal.Event
	for _, ev := range f.events {
		out = append(out, ev)
	}
	return out, nil
}

func newRegistry(cal calendarSvc.Service) *DefaultRegistry {
	return &DefaultRegistry{
		Calendar:   cal,
		CalendarID: "admin@alfredsmart.com",
		Timezone:   "America/Mexico_City",
		Logger:     zap.NewNop(),
	}
}

var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestBlockCreatesSentinelEvent(t *testing.T) {
	cal := newFakeCalendar()
	reg := newRegistry(cal)

	slot := monday.Add(10 * time.Hour)
	eventID, err := reg.Block(context.Background(), slot, "mantenimiento")
	require.NoError(t, err)
	require.NotEmpty(t, eventID)

	ev := cal.events[eventID]
	require.NotNil(t, ev)
	assert.Equal(t, BlockSummary, ev.Summary)
	assert.Equal(t, "mantenimiento", ev.Description)
	assert.Equal(t, slot.Format(time.RFC3339), ev.Start.DateTime)
	assert.Equal(t, slot.Add(time.Hour).Format(time.RFC3339), ev.End.DateTime)
}

func TestBlockDefaultsReason(t *testing.T) {
	cal := newFakeCalendar()
	reg := newRegistry(cal)

	eventID, err := reg.Block(context.Background(), monday.Add(9*time.Hour), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultBlockReason, cal.events[eventID].Description)
}

func TestBlockZeroInstantRejected(t *testing.T) {
	reg := newRegistry(newFakeCalendar())

	_, err := reg.Block(context.Background(), time.Time{}, "x")
	var regErr *RegistryError
	require.ErrorAs(t, err, &regErr)
}

func TestUnblockEmptyIDRejected(t *testing.T) {
	reg := newRegistry(newFakeCalendar())

	err := reg.Unblock(context.Background(), "")
	var regErr *RegistryError
	require.ErrorAs(t, err, &regErr)
}

func TestUnblockUnknownIDSurfacesError(t *testing.T) {
	reg := newRegistry(newFakeCalendar())

	err := reg.Unblock(context.Background(), "evt-missing")
	require.Error(t, err, "deleting an unknown marker must not be silently ignored")
}

func TestListBlockedFiltersSentinel(t *testing.T) {
	cal := newFakeCalendar()
	reg := newRegistry(cal)

	_, err := reg.Block(context.Background(), monday.Add(9*time.Hour), "obras")
	require.NoError(t, err)

	// A regular appointment must not show up as blocked.
	_, err = cal.InsertEvent(context.Background(), "admin@alfredsmart.com", &gcal.Event{
		Summary: "Cita Técnica - Ana",
		Start:   &gcal.EventDateTime{DateTime: monday.Add(11 * time.Hour).Format(time.RFC3339)},
		End:     &gcal.EventDateTime{DateTime: monday.Add(12 * time.Hour).Format(time.RFC3339)},
	})
	require.NoError(t, err)

	blocked, err := reg.ListBlocked(context.Background(), monday, monday.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, blocked, 1)
	assert.Equal(t, "obras", blocked[0].Reason)
	assert.Equal(t, monday.Add(9*time.Hour), blocked[0].Start)
	assert.Equal(t, monday.Add(10*time.Hour), blocked[0].End)
}

func TestBlockUnblockRestoresAvailability(t *testing.T) {
	cal := newFakeCalendar()
	reg := newRegistry(cal)
	resolver := &schedule.DefaultAvailabilityService{
		Calendar:   cal,
		Store:      fallback.NewMemoryStore(),
		CalendarID: "admin@alfredsmart.com",
		Location:   time.UTC,
		Logger:     zap.NewNop(),
	}

	ctx := context.Background()
	slot := monday.Add(11 * time.Hour)
	slotISO := slot.Format(time.RFC3339)
	rangeEnd := monday.AddDate(0, 0, 1)

	slots, err := resolver.AvailableSlots(ctx, monday, rangeEnd)
	require.NoError(t, err)
	require.Contains(t, slots, slotISO)

	eventID, err := reg.Block(ctx, slot, "")
	require.NoError(t, err)

	slots, err = resolver.AvailableSlots(ctx, monday, rangeEnd)
	require.NoError(t, err)
	require.NotContains(t, slots, slotISO)

	require.NoError(t, reg.Unblock(ctx, eventID))

	slots, err = resolver.AvailableSlots(ctx, monday, rangeEnd)
	require.NoError(t, err)
	assert.Contains(t, slots, slotISO)
}

func TestDuplicateBlocksBothKept(t *testing.T) {
	cal := newFakeCalendar()
	reg := newRegistry(cal)

	ctx := context.Background()
	slot := monday.Add(13 * time.Hour)

	first, err := reg.Block(ctx, slot, "")
	require.NoError(t, err)
	second, err := reg.Block(ctx, slot, "")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	blocked, err := reg.ListBlocked(ctx, monday, monday.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, blocked, 2)
}
