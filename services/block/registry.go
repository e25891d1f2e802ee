package block

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"

	"techvisit/models"
	calendarSvc "techvisit/services/calendar"
	"techvisit/utils"
)

// BlockSummary is the sentinel event title identifying administrator blocks
// on the external calendar.
const BlockSummary = "BLOQUEADO"

// DefaultBlockReason is stored when the administrator gives no reason.
const DefaultBlockReason = "Franja bloqueada por el administrador"

// blockColorID renders block markers red in calendar UIs.
const blockColorID = "11"

// Registry manages administrator block markers. Blocked slots behave as busy
// intervals for availability and are separately listable for unblocking.
type Registry interface {
	// Block withholds the 1-hour slot starting at instant and returns the
	// marker's event id.
	Block(ctx context.Context, instant time.Time, reason string) (string, error)
	// Unblock deletes a marker by event id. Unknown ids surface an error.
	Unblock(ctx context.Context, eventID string) error
	// ListBlocked returns the markers within [start, end) ascending by start.
	ListBlocked(ctx context.Context, start, end time.Time) ([]models.BlockedSlot, error)
}

// DefaultRegistry stores markers as sentinel-titled events on the external
// calendar. There is no locking across administrators: concurrent blocks of
// the same slot both succeed and the calendar keeps both markers.
type DefaultRegistry struct {
	Calendar   calendarSvc.Service
	CalendarID string
	Timezone   string
	Logger     *zap.Logger
	Cache      *redis.Client
}

func (r *DefaultRegistry) Block(ctx context.Context, instant time.Time, reason string) (string, error) {
	if instant.IsZero() {
		return "", NewValidationError("dateTime is required")
	}
	if reason == "" {
		reason = DefaultBlockReason
	}
	end := instant.Add(time.Hour)

	event := &gcal.Event{
		Summary:     BlockSummary,
		Description: reason,
		Start:       &gcal.EventDateTime{DateTime: instant.UTC().Format(time.RFC3339), TimeZone: r.Timezone},
		End:         &gcal.EventDateTime{DateTime: end.UTC().Format(time.RFC3339), TimeZone: r.Timezone},
		ColorId:     blockColorID,
	}

	created, err := r.Calendar.InsertEvent(ctx, r.CalendarID, event)
	if err != nil {
		return "", fmt.Errorf("block slot at %s: %w", instant.UTC().Format(time.RFC3339), err)
	}

	r.Logger.Info("Slot blocked",
		zap.String("eventId", created.Id),
		zap.Time("start", instant),
		zap.String("reason", reason))
	utils.FlushAvailabilityCache(ctx, r.Cache)
	return created.Id, nil
}

func (r *DefaultRegistry) Unblock(ctx context.Context, eventID string) error {
	if eventID == "" {
		return NewValidationError("eventId is required")
	}
	if err := r.Calendar.DeleteEvent(ctx, r.CalendarID, eventID); err != nil {
		return fmt.Errorf("unblock %s: %w", eventID, err)
	}
	r.Logger.Info("Slot unblocked", zap.String("eventId", eventID))
	utils.FlushAvailabilityCache(ctx, r.Cache)
	return nil
}

func (r *DefaultRegistry) ListBlocked(ctx context.Context, start, end time.Time) ([]models.BlockedSlot, error) {
	events, err := r.Calendar.ListEvents(ctx, r.CalendarID, start, end, BlockSummary)
	if err != nil {
		return nil, fmt.Errorf("list blocked slots: %w", err)
	}

	blocked := make([]models.BlockedSlot, 0, len(events))
	for _, ev := range events {
		// The query is full-text, so re-check the sentinel title.
		if ev.Summary != BlockSummary {
			continue
		}
		slot := models.BlockedSlot{
			EventID: ev.Id,
			Reason:  ev.Description,
		}
		if ev.Start != nil {
			if t, err := time.Parse(time.RFC3339, ev.Start.DateTime); err == nil {
				slot.Start = t.UTC()
			}
		}
		if ev.End != nil {
			if t, err := time.Parse(time.RFC3339, ev.End.DateTime); err == nil {
				slot.End = t.UTC()
			}
		}
		blocked = append(blocked, slot)
	}
	return blocked, nil
}
