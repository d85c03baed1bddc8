package session

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/tapestry"
	"github.com/aretw0/tapestry/internal/logging"
	"github.com/aretw0/tapestry/pkg/domain"
	"github.com/aretw0/tapestry/pkg/ports"
	"github.com/google/uuid"
)

// DefaultLockTTL bounds how long a crashed replica can hold a session.
const DefaultLockTTL = 30 * time.Second

// Factory builds the engine of a new session.
type Factory func(ctx context.Context, sessionID string) (*tapestry.Engine, error)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	factory Factory

	mu       sync.Mutex            // Global lock for the maps
	locks    map[string]*lockEntry // Map of active locks
	sessions map[string]*tapestry.Engine

	locker    ports.DistributedLocker // Optional distributed locker
	publisher ports.EventPublisher    // Optional session open/close announcements
	lockTTL   time.Duration
	logger    *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithPublisher announces opened and closed sessions.
func WithPublisher(p ports.EventPublisher) Option {
	return func(m *Manager) {
		m.publisher = p
	}
}

// WithLockTTL sets the TTL of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Session Manager that builds engines with factory.
func NewManager(factory Factory, opts ...Option) *Manager {
	m := &Manager{
		factory:  factory,
		locks:    make(map[string]*lockEntry),
		sessions: make(map[string]*tapestry.Engine),
		lockTTL:  DefaultLockTTL,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// StoryFactory returns a Factory that starts every session on a private
// copy of story, tagged with its session id.
func StoryFactory(story *domain.Story, opts ...tapestry.Option) Factory {
	return func(ctx context.Context, sessionID string) (*tapestry.Engine, error) {
		all := append(slices.Clone(opts), tapestry.WithStory(story), tapestry.WithSessionID(sessionID))
		return tapestry.New(ctx, "", all...)
	}
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

func (m *Manager) lookup(sessionID string) (*tapestry.Engine, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	eng, ok := m.sessions[sessionID]
	return eng, ok
}

// Open returns the session's engine, creating it on first use.
// An empty id opens a new session with a random id.
func (m *Manager) Open(ctx context.Context, sessionID string) (string, *tapestry.Engine, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	var eng *tapestry.Engine
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		if existing, ok := m.lookup(sessionID); ok {
			eng = existing
			return nil
		}

		created, err := m.factory(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("failed to initialize session: %w", err)
		}

		m.mu.Lock()
		m.sessions[sessionID] = created
		m.mu.Unlock()

		m.logger.Debug("session opened", "session_id", sessionID)
		m.announce(ctx, domain.EventSessionOpen, sessionID)
		eng = created
		return nil
	})
	return sessionID, eng, err
}

// Do runs fn against the session's engine while holding the session lock.
func (m *Manager) Do(ctx context.Context, sessionID string, fn func(context.Context, *tapestry.Engine) error) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		eng, ok := m.lookup(sessionID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
		}
		return fn(ctx, eng)
	})
}

// Snapshot returns the current screen of a session.
func (m *Manager) Snapshot(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	var snap domain.Snapshot
	err := m.Do(ctx, sessionID, func(_ context.Context, eng *tapestry.Engine) error {
		snap = eng.Snapshot()
		return nil
	})
	return snap, err
}

// Close forgets a session. Closing an unknown session is not an error.
func (m *Manager) Close(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		m.mu.Lock()
		_, existed := m.sessions[sessionID]
		delete(m.sessions, sessionID)
		m.mu.Unlock()
		if existed {
			m.logger.Debug("session closed", "session_id", sessionID)
			m.announce(ctx, domain.EventSessionClose, sessionID)
		}
		return nil
	})
}

func (m *Manager) announce(ctx context.Context, t domain.EventType, sessionID string) {
	if m.publisher == nil {
		return
	}
	evt := domain.SessionEvent{EventBase: domain.EventBase{Timestamp: time.Now(), Type: t, SessionID: sessionID}}
	if err := m.publisher.Publish(ctx, sessionID, evt); err != nil {
		m.logger.Warn("session event not published", "type", t, "session_id", sessionID, "err", err)
	}
}

// List returns the open session ids, sorted.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.sessions))
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	// Distributed Locking
	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
