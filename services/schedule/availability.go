package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"techvisit/database/repository/fallback"
	"techvisit/models"
	calendarSvc "techvisit/services/calendar"
	"techvisit/utils"
)

// AvailabilityService computes the open slots for a date range.
type AvailabilityService interface {
	AvailableSlots(ctx context.Context, start, end time.Time) ([]string, error)
}

// DefaultAvailabilityService merges busy intervals from the external calendar
// and the local fallback store, then filters the generated business-hour
// slots against them. External-calendar failures degrade to local-only data;
// the service never fails an availability request for integration reasons.
type DefaultAvailabilityService struct {
	Calendar   calendarSvc.Service
	Store      fallback.Store
	CalendarID string
	Location   *time.Location
	Logger     *zap.Logger

	// Cache is optional; nil disables caching.
	Cache    *redis.Client
	CacheTTL time.Duration
}

func (s *DefaultAvailabilityService) AvailableSlots(ctx context.Context, start, end time.Time) ([]string, error) {
	cacheKey := fmt.Sprintf("%s%s:%s",
		utils.AvailabilityCachePrefix,
		start.UTC().Format(time.RFC3339),
		end.UTC().Format(time.RFC3339),
	)
	if cached, ok := s.cacheGet(ctx, cacheKey); ok {
		return cached, nil
	}

	busy := s.busyIntervals(ctx, start, end)

	available := make([]string, 0)
	for _, slotStart := range GenerateSlots(start, end, s.Location) {
		slotEnd := slotStart.Add(SlotDuration)
		if Overlaps(slotStart, slotEnd, busy) {
			continue
		}
		available = append(available, slotStart.UTC().Format(time.RFC3339))
	}

	s.cacheSet(ctx, cacheKey, available)
	return available, nil
}

// busyIntervals gathers busy time from both sources. Order is irrelevant;
// the merged set only feeds overlap tests.
func (s *DefaultAvailabilityService) busyIntervals(ctx context.Context, start, end time.Time) []models.BusyInterval {
	var busy []models.BusyInterval

	external, err := s.Calendar.FreeBusy(ctx, s.CalendarID, start, end)
	switch {
	case errors.Is(err, calendarSvc.ErrNotAuthorized):
		s.Logger.Info("Calendar not authorized, computing availability from local appointments only")
	case err != nil:
		s.Logger.Error("Free/busy query failed, degrading to local appointments", zap.Error(err))
	default:
		busy = append(busy, external...)
	}

	for _, appt := range s.Store.ListInRange(start, end) {
		busy = append(busy, models.BusyInterval{Start: appt.Start, End: appt.End})
	}
	return busy
}

func (s *DefaultAvailabilityService) cacheGet(ctx context.Context, key string) ([]string, bool) {
	if s.Cache == nil {
		return nil, false
	}
	data, err := s.Cache.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var slots []string
	if err := json.Unmarshal([]byte(data), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (s *DefaultAvailabilityService) cacheSet(ctx context.Context, key string, slots []string) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, data, s.CacheTTL).Err(); err != nil {
		s.Logger.Warn("Failed to cache availability", zap.Error(err))
	}
}
