package history

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/poiesic/siesta/core"
	"github.com/poiesic/siesta/storage"
)

// History holds one user's conversation in arrival order.
// It is the in-memory working copy; a HistoryStore, when configured,
// keeps a durable mirror that survives restarts.
// All methods are safe for concurrent use.
type History struct {
	mu       sync.Mutex
	userKey  string
	messages []core.Message
	store    storage.HistoryStore
	logger   *slog.Logger
}

// Option is a functional option for configuring a History.
type Option func(*History) error

// WithStore sets the durable backing store. When set, the constructor loads
// the stored log and mutations are persisted best effort.
func WithStore(store storage.HistoryStore) Option {
	return func(h *History) error {
		h.store = store
		return nil
	}
}

// WithLogger sets the logger. A nil logger falls back to the default.
func WithLogger(logger *slog.Logger) Option {
	return func(h *History) error {
		if logger == nil {
			logger = slog.Default()
		}
		h.logger = logger
		return nil
	}
}

// NewHistory creates a conversation history for the given user key.
// The key must already be sanitized; use SanitizeUserID at the boundary.
// If a store is configured, previously persisted messages are loaded; a load
// failure is logged and the history starts empty rather than failing.
func NewHistory(ctx context.Context, userKey string, opts ...Option) (*History, error) {
	if userKey == "" {
		return nil, ErrEmptyUserKey
	}

	h := &History{
		userKey: userKey,
		logger:  slog.Default().With("component", "history"),
	}

	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, err
		}
	}

	if h.store != nil {
		records, err := h.store.GetMessages(ctx, userKey)
		if err != nil {
			h.logger.Warn("failed to load stored history, starting empty",
				"user", userKey, "err", err)
		} else {
			for _, record := range records {
				h.messages = append(h.messages, record.Message())
			}
		}
	}

	return h, nil
}

// UserKey returns the user key this history belongs to.
func (h *History) UserKey() string {
	return h.userKey
}

// AddUser appends a user message.
func (h *History) AddUser(ctx context.Context, content string) {
	h.add(ctx, core.RoleUser, content)
}

// AddAssistant appends an assistant message.
func (h *History) AddAssistant(ctx context.Context, content string) {
	h.add(ctx, core.RoleAssistant, content)
}

// AddSystem appends a system message.
func (h *History) AddSystem(ctx context.Context, content string) {
	h.add(ctx, core.RoleSystem, content)
}

// add appends the message in memory and persists it best effort.
// A persistence failure never loses the in-memory message.
func (h *History) add(ctx context.Context, role core.Role, content string) {
	h.mu.Lock()
	h.messages = append(h.messages, core.Message{Role: role, Content: content})
	h.mu.Unlock()

	if h.store == nil {
		return
	}
	_, err := h.store.AppendMessages(ctx, h.userKey,
		&core.MessageRecord{Role: role, Content: content})
	if err != nil {
		h.logger.Warn("failed to persist message", "user", h.userKey, "err", err)
	}
}

// Messages returns a copy of the full conversation in arrival order.
func (h *History) Messages() []core.Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]core.Message{}, h.messages...)
}

// LastMessages returns a copy of the most recent n messages in arrival order.
// If n exceeds the history length, the full history is returned.
func (h *History) LastMessages(n int) []core.Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n <= 0 {
		return []core.Message{}
	}
	start := len(h.messages) - n
	if start < 0 {
		start = 0
	}
	return append([]core.Message{}, h.messages[start:]...)
}

// Len returns the number of messages in the history.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.messages)
}

// RenderForPrompt renders the most recent n messages as prompt text.
// Each message is formatted as "ROLE: content" with the role uppercased,
// joined by newlines. Returns an empty string for an empty history.
func (h *History) RenderForPrompt(n int) string {
	messages := h.LastMessages(n)

	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, strings.ToUpper(string(msg.Role))+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}

// Clear discards the conversation both in memory and in the store.
func (h *History) Clear(ctx context.Context) error {
	h.mu.Lock()
	h.messages = nil
	h.mu.Unlock()

	if h.store == nil {
		return nil
	}
	return h.store.DeleteMessages(ctx, h.userKey)
}
