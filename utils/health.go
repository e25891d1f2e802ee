package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// AuthorizedChecker reports whether the external calendar session is live.
type AuthorizedChecker interface {
	Authorized() bool
}

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Redis     bool      `json:"redis"`
	Calendar  bool      `json:"calendar"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory state.
func StartHealthMonitor(cacheClient *redis.Client, calendar AuthorizedChecker) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			redisHealthy := false
			if cacheClient != nil {
				redisHealthy = cacheClient.Ping(ctx).Err() == nil
			}

			calendarHealthy := calendar != nil && calendar.Authorized()

			healthMu.Lock()
			currentHealth = HealthStatus{
				Redis:     redisHealthy,
				Calendar:  calendarHealthy,
				CheckedAt: time.Now(),
			}
			healthMu.Unlock()
		}
	}()
}
