package storage

import (
	"context"

	"github.com/poiesic/siesta/core"
)

// HistoryStore persists per-user conversation message logs.
// The user key is an opaque, already-sanitized identifier; stores never
// interpret it. Implementations must be thread-safe.
type HistoryStore interface {
	// AppendMessages appends one or more message records to a user's log.
	// Sets InsertedAt if not already set. Arrival order is preserved.
	// Returns the records with timestamps populated.
	AppendMessages(ctx context.Context, userKey string, records ...*core.MessageRecord) ([]*core.MessageRecord, error)

	// GetMessages retrieves a user's full message log in arrival order.
	// Returns an empty slice if the user has no stored messages.
	GetMessages(ctx context.Context, userKey string) ([]*core.MessageRecord, error)

	// DeleteMessages removes a user's entire message log.
	// Removing an absent log is not an error.
	DeleteMessages(ctx context.Context, userKey string) error

	// ListUserKeys enumerates the user keys that have stored messages.
	ListUserKeys(ctx context.Context) ([]string, error)

	// Close closes the store and releases resources.
	Close() error
}

// VectorStore persists embedded document chunks and serves similarity search.
// Implementations must be thread-safe.
type VectorStore interface {
	// UpsertChunks replaces a source's chunk set with the given records.
	// Any chunks from a prior ingestion of the source are removed first, so
	// a shrinking chunk count leaves no orphans. Chunk keys derive from the
	// stable ID "{source}_{index}", making the operation idempotent.
	UpsertChunks(ctx context.Context, source string, records []*core.ChunkRecord) error

	// DeleteSource removes all chunks stored for a source.
	// Removing an absent source is not an error.
	DeleteSource(ctx context.Context, source string) error

	// Search finds the chunks most similar to the given vector.
	// Returns up to limit results ordered by descending score; ties keep
	// chunk insertion order. An empty index yields an empty result, not an
	// error.
	Search(ctx context.Context, vector []float32, limit int) ([]*core.ScoredChunk, error)

	// SourceChunks retrieves the chunk records stored for a source in index
	// order. Returns an empty slice for an unknown source.
	SourceChunks(ctx context.Context, source string) ([]*core.ChunkRecord, error)

	// Sources enumerates the source identifiers with stored chunks.
	Sources(ctx context.Context) ([]string, error)

	// Close closes the store and releases resources.
	Close() error
}

// InteractionStore persists the durable interaction log. Writers treat it as
// best effort; a failed write never affects the turn that produced it.
type InteractionStore interface {
	// AddInteractions appends interaction records.
	// Sets CreatedAt if not already set.
	AddInteractions(ctx context.Context, records ...*core.Interaction) ([]*core.Interaction, error)

	// RecentInteractions retrieves the N most recent interactions, newest
	// first.
	RecentInteractions(ctx context.Context, limit int) ([]*core.Interaction, error)

	// Close closes the store and releases resources.
	Close() error
}
