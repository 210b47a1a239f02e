package interaction

import (
	"context"
	"log/slog"

	"github.com/poiesic/siesta/core"
	"github.com/poiesic/siesta/storage"
)

// Recorder persists question/answer audit records.
// Recording is best effort: implementations log failures instead of
// returning them, so a broken audit log never breaks a conversation.
type Recorder interface {
	// Record persists one interaction.
	Record(ctx context.Context, record *core.Interaction)
}

// StoreRecorder implements Recorder over a storage.InteractionStore.
type StoreRecorder struct {
	store  storage.InteractionStore
	logger *slog.Logger
}

var _ Recorder = (*StoreRecorder)(nil)

// NewStoreRecorder creates a recorder backed by the given store.
func NewStoreRecorder(store storage.InteractionStore) (*StoreRecorder, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	return &StoreRecorder{
		store:  store,
		logger: slog.Default().With("component", "interaction-recorder"),
	}, nil
}

// Record persists the interaction, logging on failure.
func (r *StoreRecorder) Record(ctx context.Context, record *core.Interaction) {
	if _, err := r.store.AddInteractions(ctx, record); err != nil {
		r.logger.Warn("failed to record interaction",
			"user", record.UserID, "tool", record.Tool, "err", err)
	}
}

// Recent retrieves the N most recent interactions, newest first.
func (r *StoreRecorder) Recent(ctx context.Context, limit int) ([]*core.Interaction, error) {
	return r.store.RecentInteractions(ctx, limit)
}

// NopRecorder discards every interaction. Useful when no audit log is
// configured.
type NopRecorder struct{}

var _ Recorder = (*NopRecorder)(nil)

// NewNopRecorder creates a recorder that discards everything.
func NewNopRecorder() *NopRecorder {
	return &NopRecorder{}
}

// Record discards the interaction.
func (r *NopRecorder) Record(ctx context.Context, record *core.Interaction) {}
