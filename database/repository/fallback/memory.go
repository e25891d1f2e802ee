package fallback

import (
	"sync"
	"time"

	"techvisit/models"
)

// MemoryStore is the in-memory Store implementation. A mutex guards the slice
// so concurrent request handlers can append safely.
type MemoryStore struct {
	mu    sync.RWMutex
	appts []models.Appointment
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(appt models.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appts = append(s.appts, appt)
}

func (s *MemoryStore) ListInRange(start, end time.Time) []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Appointment
	for _, a := range s.appts {
		if a.Start.Before(end) && a.End.After(start) {
			out = append(out, a)
		}
	}
	return out
}

func (s *MemoryStore) ListAll() []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Appointment, len(s.appts))
	copy(out, s.appts)
	return out
}
