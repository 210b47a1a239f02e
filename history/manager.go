package history

import (
	"context"
	"log/slog"
	"sync"

	"github.com/poiesic/siesta/storage"
)

// Manager hands out one History instance per user, creating it on first use.
// Concurrent Get calls for the same user receive the same instance.
type Manager struct {
	mu        sync.Mutex
	histories map[string]*History
	store     storage.HistoryStore
	logger    *slog.Logger
}

// ManagerOption is a functional option for configuring a Manager.
type ManagerOption func(*Manager) error

// WithManagerStore sets the durable backing store shared by all histories.
func WithManagerStore(store storage.HistoryStore) ManagerOption {
	return func(m *Manager) error {
		m.store = store
		return nil
	}
}

// WithManagerLogger sets the logger. A nil logger falls back to the default.
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewManager creates a history manager.
func NewManager(opts ...ManagerOption) (*Manager, error) {
	m := &Manager{
		histories: make(map[string]*History),
		logger:    slog.Default().With("component", "history-manager"),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Get returns the history for the given user ID, creating it if needed.
// The ID is sanitized before use, so equivalent raw IDs map to the same
// history.
func (m *Manager) Get(ctx context.Context, userID string) (*History, error) {
	userKey := SanitizeUserID(userID)
	if userKey == "" {
		return nil, ErrEmptyUserKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if h, ok := m.histories[userKey]; ok {
		return h, nil
	}

	opts := []Option{WithLogger(m.logger)}
	if m.store != nil {
		opts = append(opts, WithStore(m.store))
	}

	h, err := NewHistory(ctx, userKey, opts...)
	if err != nil {
		return nil, err
	}

	m.histories[userKey] = h
	m.logger.Debug("created history", "user", userKey)
	return h, nil
}

// Create installs a fresh, empty history for the given user ID, discarding
// any cached instance and any persisted messages for the sanitized key.
func (m *Manager) Create(ctx context.Context, userID string) (*History, error) {
	userKey := SanitizeUserID(userID)
	if userKey == "" {
		return nil, ErrEmptyUserKey
	}

	if m.store != nil {
		if err := m.store.DeleteMessages(ctx, userKey); err != nil {
			return nil, err
		}
	}

	opts := []Option{WithLogger(m.logger)}
	if m.store != nil {
		opts = append(opts, WithStore(m.store))
	}

	h, err := NewHistory(ctx, userKey, opts...)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.histories[userKey] = h
	m.mu.Unlock()

	m.logger.Debug("reset history", "user", userKey)
	return h, nil
}

// Delete removes a user's history from the cache and the store.
func (m *Manager) Delete(ctx context.Context, userID string) error {
	userKey := SanitizeUserID(userID)
	if userKey == "" {
		return ErrEmptyUserKey
	}

	m.mu.Lock()
	delete(m.histories, userKey)
	m.mu.Unlock()

	if m.store == nil {
		return nil
	}
	return m.store.DeleteMessages(ctx, userKey)
}

// ListUserKeys enumerates user keys with conversations, merging the in-memory
// cache with the store.
func (m *Manager) ListUserKeys(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var keys []string

	m.mu.Lock()
	for key := range m.histories {
		seen[key] = true
		keys = append(keys, key)
	}
	m.mu.Unlock()

	if m.store != nil {
		stored, err := m.store.ListUserKeys(ctx)
		if err != nil {
			return nil, err
		}
		for _, key := range stored {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}

	return keys, nil
}

// SanitizeUserID reduces an arbitrary user identifier to a storage-safe key.
// Letters, digits, '-' and '_' pass through; every other rune becomes '_'.
// This keeps the key safe to embed in storage key paths.
func SanitizeUserID(userID string) string {
	if userID == "" {
		return ""
	}

	runes := []rune(userID)
	out := make([]rune, len(runes))
	for i, r := range runes {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out[i] = r
		default:
			out[i] = '_'
		}
	}
	return string(out)
}
