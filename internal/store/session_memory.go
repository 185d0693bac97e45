package store

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/user-directory/models"
)

type memorySessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	now      func() time.Time
}

// NewMemorySessionRegistry returns a [SessionRegistry] held in process memory.
func NewMemorySessionRegistry() SessionRegistry {
	return newMemorySessionRegistry(time.Now)
}

func newMemorySessionRegistry(now func() time.Time) *memorySessionRegistry {
	return &memorySessionRegistry{
		sessions: make(map[string]models.Session),
		now:      now,
	}
}

func (r *memorySessionRegistry) Register(ctx context.Context, session models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.TokenID] = session
	return nil
}

func (r *memorySessionRegistry) Lookup(ctx context.Context, tokenID string) (models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[tokenID]
	if !ok {
		return models.Session{}, ErrNotFound
	}
	if session.IsExpired(r.now()) {
		delete(r.sessions, tokenID)
		return models.Session{}, ErrNotFound
	}
	return session, nil
}

func (r *memorySessionRegistry) Revoke(ctx context.Context, tokenID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, tokenID)
	return nil
}

func (r *memorySessionRegistry) PurgeExpired(ctx context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	purged := 0
	for id, session := range r.sessions {
		if session.IsExpired(now) {
			delete(r.sessions, id)
			purged++
		}
	}
	return purged, nil
}
