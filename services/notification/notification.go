package notification

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Service defines methods for customer notifications.
type Service interface {
	SendBookingConfirmation(ctx context.Context, email, name string, start time.Time) error
}

// EmailPlaceholder is the current implementation: confirmation delivery is
// not wired to a mail provider yet, so it only records the intent.
type EmailPlaceholder struct {
	Logger *zap.Logger
}

func (s *EmailPlaceholder) SendBookingConfirmation(ctx context.Context, email, name string, start time.Time) error {
	s.Logger.Info("Booking confirmation email (placeholder, not delivered)",
		zap.String("to", email),
		zap.String("name", name),
		zap.Time("start", start))
	return nil
}
