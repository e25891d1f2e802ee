package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"

	"techvisit/database/repository/fallback"
	"techvisit/models"
	calendarSvc "techvisit/services/calendar"
	"techvisit/services/notification"
	"techvisit/utils"
)

// localIDPrefix marks appointment ids that were generated locally because the
// write never reached the external calendar.
const localIDPrefix = "local-"

// defaultListWindow bounds the events listing when the caller gives no range.
const defaultListWindow = 30 * 24 * time.Hour

// Service handles appointment submission, administrator manual events, and
// the combined events listing.
type Service interface {
	// Book validates and records a customer appointment, returning its id.
	// Calendar integration failures fall back to local storage; the request
	// still succeeds.
	Book(ctx context.Context, in models.BookingInput) (string, error)
	// CreateManualEvent writes an administrator event with free-form bounds.
	// There is no fallback: external failures surface.
	CreateManualEvent(ctx context.Context, in models.ManualEventInput) (*gcal.Event, error)
	// ListEvents returns calendar events in [timeMin, timeMax), degrading to
	// the fallback store when the calendar cannot be read.
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]models.Appointment, error)
}

// DefaultService is the production implementation.
type DefaultService struct {
	Calendar   calendarSvc.Service
	Store      fallback.Store
	Notifier   notification.Service
	CalendarID string
	Timezone   string
	Logger     *zap.Logger
	Cache      *redis.Client

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

func (s *DefaultService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s *DefaultService) Book(ctx context.Context, in models.BookingInput) (string, error) {
	if err := validateBooking(in); err != nil {
		return "", err
	}

	start, err := utils.ParseInstant(in.DateTime)
	if err != nil {
		return "", newValidationError("dateTime", err.Error())
	}
	end := start.Add(time.Hour)

	summary := fmt.Sprintf("Cita Técnica - %s", in.Name)
	description := fmt.Sprintf("Cliente: %s\nEmail: %s\nTeléfono: %s\nDescripción: %s",
		in.Name, in.Email, in.Phone, in.Description)

	appt := models.Appointment{
		Summary:     summary,
		Description: description,
		Start:       start,
		End:         end,
	}

	eventID := s.writeBooking(ctx, appt)
	utils.FlushAvailabilityCache(ctx, s.Cache)

	if err := s.Notifier.SendBookingConfirmation(ctx, in.Email, in.Name, start); err != nil {
		s.Logger.Warn("Booking confirmation failed", zap.Error(err))
	}
	return eventID, nil
}

// writeBooking attempts the external insert and falls back to the local
// store. On external success a shadow copy is appended too, so the booking is
// visible immediately without waiting for external reads.
func (s *DefaultService) writeBooking(ctx context.Context, appt models.Appointment) string {
	if s.Calendar.Authorized() {
		event := &gcal.Event{
			Summary:     appt.Summary,
			Description: appt.Description,
			Start:       &gcal.EventDateTime{DateTime: appt.Start.UTC().Format(time.RFC3339), TimeZone: s.Timezone},
			End:         &gcal.EventDateTime{DateTime: appt.End.UTC().Format(time.RFC3339), TimeZone: s.Timezone},
		}
		created, err := s.Calendar.InsertEvent(ctx, s.CalendarID, event)
		if err == nil {
			appt.ID = created.Id
			s.Store.Append(appt)
			s.Logger.Info("Appointment created on external calendar", zap.String("eventId", appt.ID))
			return appt.ID
		}
		s.Logger.Error("Calendar insert failed, storing appointment locally", zap.Error(err))
	} else {
		s.Logger.Info("Calendar not authorized, storing appointment locally")
	}

	appt.ID = fmt.Sprintf("%s%d", localIDPrefix, s.clock().UnixNano())
	s.Store.Append(appt)
	return appt.ID
}

func (s *DefaultService) CreateManualEvent(ctx context.Context, in models.ManualEventInput) (*gcal.Event, error) {
	if in.Title == "" {
		return nil, newValidationError("title", "required")
	}
	start, err := utils.ParseInstant(in.StartDateTime)
	if err != nil {
		return nil, newValidationError("startDateTime", err.Error())
	}
	end, err := utils.ParseInstant(in.EndDateTime)
	if err != nil {
		return nil, newValidationError("endDateTime", err.Error())
	}

	event := &gcal.Event{
		Summary:     in.Title,
		Description: composeManualDescription(in),
		Start:       &gcal.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: s.Timezone},
		End:         &gcal.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: s.Timezone},
	}

	created, err := s.Calendar.InsertEvent(ctx, s.CalendarID, event)
	if err != nil {
		return nil, fmt.Errorf("create manual event: %w", err)
	}
	s.Logger.Info("Manual event created", zap.String("eventId", created.Id))
	utils.FlushAvailabilityCache(ctx, s.Cache)
	return created, nil
}

func (s *DefaultService) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]models.Appointment, error) {
	now := s.clock()
	if timeMin.IsZero() {
		timeMin = now
	}
	if timeMax.IsZero() {
		timeMax = now.Add(defaultListWindow)
	}

	events, err := s.Calendar.ListEvents(ctx, s.CalendarID, timeMin, timeMax, "")
	if err != nil {
		s.Logger.Warn("Calendar list failed, serving fallback store", zap.Error(err))
		return s.Store.ListAll(), nil
	}

	appts := make([]models.Appointment, 0, len(events))
	for _, ev := range events {
		a := models.Appointment{
			ID:          ev.Id,
			Summary:     ev.Summary,
			Description: ev.Description,
		}
		if ev.Start != nil {
			if t, err := time.Parse(time.RFC3339, ev.Start.DateTime); err == nil {
				a.Start = t.UTC()
			}
		}
		if ev.End != nil {
			if t, err := time.Parse(time.RFC3339, ev.End.DateTime); err == nil {
				a.End = t.UTC()
			}
		}
		appts = append(appts, a)
	}
	return appts, nil
}

func validateBooking(in models.BookingInput) error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", in.Name},
		{"email", in.Email},
		{"phone", in.Phone},
		{"description", in.Description},
		{"dateTime", in.DateTime},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return newValidationError(f.name, "required")
		}
	}
	return nil
}

func composeManualDescription(in models.ManualEventInput) string {
	desc := in.Description
	if in.TechnicianName != "" {
		desc += "\nTécnico: " + in.TechnicianName
	}
	if in.ClientName != "" {
		desc += "\nCliente: " + in.ClientName
	}
	if in.ClientEmail != "" {
		desc += "\nEmail: " + in.ClientEmail
	}
	if in.ClientPhone != "" {
		desc += "\nTeléfono: " + in.ClientPhone
	}
	return strings.TrimSpace(desc)
}
