package calendar

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"techvisit/models"
)

// GoogleService implements Service against the Google Calendar v3 API using a
// file-persisted OAuth session. A missing credentials file does not fail
// construction: the service simply reports unauthorized until the consent
// flow completes.
type GoogleService struct {
	conf   *oauth2.Config
	tokens *TokenStore
	logger *zap.Logger
}

// NewGoogleService builds the gateway from the OAuth client credentials file
// and the token file maintained by the consent-flow callback.
func NewGoogleService(credentialsPath, tokenPath, redirectURL string, logger *zap.Logger) *GoogleService {
	svc := &GoogleService{
		tokens: NewTokenStore(tokenPath, logger),
		logger: logger,
	}

	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		logger.Warn("Google OAuth credentials unavailable, calendar integration disabled",
			zap.String("path", credentialsPath), zap.Error(err))
		return svc
	}
	conf, err := google.ConfigFromJSON(data, gcal.CalendarScope)
	if err != nil {
		logger.Warn("Failed to parse Google OAuth credentials", zap.Error(err))
		return svc
	}
	conf.RedirectURL = redirectURL
	svc.conf = conf
	return svc
}

// Authorized reports whether an OAuth session exists.
func (s *GoogleService) Authorized() bool {
	return s.conf != nil && s.tokens.Token() != nil
}

// AuthURL returns the consent URL for connecting the technician calendar.
// Offline access is requested so refresh tokens are issued.
func (s *GoogleService) AuthURL(state string) (string, error) {
	if s.conf == nil {
		return "", ErrNotAuthorized
	}
	return s.conf.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

// Exchange trades the consent-flow code for tokens and persists them.
func (s *GoogleService) Exchange(ctx context.Context, code string) error {
	if s.conf == nil {
		return ErrNotAuthorized
	}
	tok, err := s.conf.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}
	s.tokens.Save(tok)
	return nil
}

// api builds an API client for the current session. Refresh happens inside
// the token source before the call goes out; refreshed tokens are persisted.
func (s *GoogleService) api(ctx context.Context) (*gcal.Service, error) {
	tok := s.tokens.Token()
	if s.conf == nil || tok == nil {
		return nil, ErrNotAuthorized
	}
	src := &persistingTokenSource{
		src:   s.conf.TokenSource(ctx, tok),
		store: s.tokens,
	}
	return gcal.NewService(ctx, option.WithTokenSource(src))
}

func (s *GoogleService) FreeBusy(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]models.BusyInterval, error) {
	svc, err := s.api(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Freebusy.Query(&gcal.FreeBusyRequest{
		TimeMin: timeMin.UTC().Format(time.RFC3339),
		TimeMax: timeMax.UTC().Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: calendarID}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query: %w", err)
	}

	var busy []models.BusyInterval
	if cal, ok := resp.Calendars[calendarID]; ok {
		for _, period := range cal.Busy {
			start, err := time.Parse(time.RFC3339, period.Start)
			if err != nil {
				s.logger.Warn("Skipping unparseable busy period", zap.String("start", period.Start))
				continue
			}
			end, err := time.Parse(time.RFC3339, period.End)
			if err != nil {
				s.logger.Warn("Skipping unparseable busy period", zap.String("end", period.End))
				continue
			}
			busy = append(busy, models.BusyInterval{Start: start.UTC(), End: end.UTC()})
		}
	}
	return busy, nil
}

func (s *GoogleService) InsertEvent(ctx context.Context, calendarID string, event *gcal.Event) (*gcal.Event, error) {
	svc, err := s.api(ctx)
	if err != nil {
		return nil, err
	}
	created, err := svc.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return created, nil
}

func (s *GoogleService) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	svc, err := s.api(ctx)
	if err != nil {
		return err
	}
	if err := svc.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete event %s: %w", eventID, err)
	}
	return nil
}

func (s *GoogleService) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time, query string) ([]*gcal.Event, error) {
	svc, err := s.api(ctx)
	if err != nil {
		return nil, err
	}
	call := svc.Events.List(calendarID).
		TimeMin(timeMin.UTC().Format(time.RFC3339)).
		TimeMax(timeMax.UTC().Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")
	if query != "" {
		call = call.Q(query)
	}
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return resp.Items, nil
}
