package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ChatModel generates chat completions, optionally with tool calls.
// Implementations must be thread-safe for concurrent use.
type ChatModel interface {
	// Complete generates a completion for the given conversation.
	// When opts.Tools is non-empty the model may return tool calls instead
	// of (or alongside) text content.
	Complete(ctx context.Context, messages []Message, opts CompleteOptions) (*Completion, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages the embedder and the chat models,
// ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// ChatModel returns the primary conversational model.
	// The returned ChatModel is safe for concurrent use.
	ChatModel() ChatModel

	// Classifier returns the small, fast model used for intent routing.
	// It may be backed by a different host and model than ChatModel.
	Classifier() ChatModel

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
