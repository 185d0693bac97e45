package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/user-directory/internal/logger"
	"github.com/MKhiriev/user-directory/models"
)

// memoryUserStore keeps users in process memory. IDs start at 1 and users are
// never deleted, so users[id-1] is the user with that id.
type memoryUserStore struct {
	mu      sync.RWMutex
	users   []models.User
	byEmail map[string]int64
	now     func() time.Time
	logger  *logger.Logger
}

// NewMemoryUserStore returns an in-memory [UserStore].
func NewMemoryUserStore(log *logger.Logger) UserStore {
	return newMemoryUserStore(time.Now, log)
}

func newMemoryUserStore(now func() time.Time, log *logger.Logger) *memoryUserStore {
	return &memoryUserStore{
		users:   make([]models.User, 0),
		byEmail: make(map[string]int64),
		now:     now,
		logger:  log,
	}
}

func emailKey(email string) string {
	return strings.ToLower(email)
}

func (m *memoryUserStore) Create(ctx context.Context, name, email, passwordHash string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := emailKey(email)
	if _, taken := m.byEmail[key]; taken {
		return models.User{}, ErrDuplicateEmail
	}

	now := m.timestamp()
	user := models.User{
		ID:           int64(len(m.users)) + 1,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	m.users = append(m.users, user)
	m.byEmail[key] = user.ID

	return user, nil
}

func (m *memoryUserStore) Fetch(ctx context.Context, id int64) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.get(id)
}

func (m *memoryUserStore) FetchByEmail(ctx context.Context, email string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[emailKey(email)]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return m.get(id)
}

func (m *memoryUserStore) Update(ctx context.Context, id int64, update models.UserUpdate) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, err := m.get(id)
	if err != nil {
		return models.User{}, err
	}
	if update.IsEmpty() {
		return current, nil
	}

	oldKey := emailKey(current.Email)
	if update.Email != nil {
		newKey := emailKey(*update.Email)
		if owner, taken := m.byEmail[newKey]; taken && owner != id {
			return models.User{}, ErrDuplicateEmail
		}
	}

	updated := update.Apply(current)
	updated.UpdatedAt = m.timestamp()

	if newKey := emailKey(updated.Email); newKey != oldKey {
		delete(m.byEmail, oldKey)
		m.byEmail[newKey] = id
	}
	m.users[id-1] = updated

	return updated, nil
}

func (m *memoryUserStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.users), nil
}

func (m *memoryUserStore) Page(ctx context.Context, index, size int) (models.Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	page := models.NewPage(index, size, len(m.users))
	if !page.InRange() {
		return page, nil
	}

	start := page.Offset()
	end := min(start+page.Size, len(m.users))
	page.Users = append(page.Users, m.users[start:end]...)

	return page, nil
}

func (m *memoryUserStore) get(id int64) (models.User, error) {
	if id < 1 || id > int64(len(m.users)) {
		return models.User{}, ErrNotFound
	}
	return m.users[id-1], nil
}

// timestamp returns the current time, never earlier than the last one handed
// out. Callers must hold the write lock.
func (m *memoryUserStore) timestamp() time.Time {
	now := m.now()
	if n := len(m.users); n > 0 {
		if last := m.users[n-1].UpdatedAt; now.Before(last) {
			return last
		}
	}
	return now
}
