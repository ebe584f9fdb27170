// Package session holds authenticated gateway sessions. The in-memory map is
// the single source of truth; the durable store is hydrated once at boot and
// mirrored on every write, never read back during operation.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shopgate/internal/domain"
)

// ErrNotFound means the presented session token is unknown or was destroyed.
var ErrNotFound = errors.New("session not found")

// Manager owns the live session set.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	store    Store
	logger   *zap.Logger
}

// NewManager hydrates the session set from the store.
func NewManager(store Store, logger *zap.Logger) (*Manager, error) {
	persisted, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("hydrate sessions: %w", err)
	}

	sessions := make(map[string]domain.Session, len(persisted))
	for _, s := range persisted {
		sessions[s.ID] = s
	}
	logger.Info("Session store hydrated", zap.Int("sessions", len(sessions)))

	return &Manager{sessions: sessions, store: store, logger: logger}, nil
}

// Create opens a session for the user and writes through to the store.
func (m *Manager) Create(token string, user domain.User) (domain.Session, error) {
	session := domain.Session{
		ID:        uuid.New().String(),
		Token:     token,
		User:      user,
		CreatedAt: time.Now().UTC(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	if err := m.persistLocked(); err != nil {
		delete(m.sessions, session.ID)
		return domain.Session{}, err
	}
	return session, nil
}

// Get resolves a session by its identifier.
func (m *Manager) Get(id string) (domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	if !ok {
		return domain.Session{}, ErrNotFound
	}
	return session, nil
}

// Destroy removes a session. Destroying an unknown session is a no-op.
func (m *Manager) Destroy(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return nil
	}
	delete(m.sessions, id)
	return m.persistLocked()
}

func (m *Manager) persistLocked() error {
	snapshot := make([]domain.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		snapshot = append(snapshot, s)
	}
	if err := m.store.Save(snapshot); err != nil {
		return fmt.Errorf("persist sessions: %w", err)
	}
	return nil
}
