package retrieval

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/siesta/ai"
	"github.com/poiesic/siesta/storage"
)

const defaultTopK = 4

// Result is the knowledge gathered for one query.
type Result struct {
	// Context holds the retrieved chunk texts in descending relevance,
	// separated by blank lines. Empty when nothing relevant was found.
	Context string

	// Sources lists the normalized, distinct origins of the retrieved
	// chunks in first-appearance order.
	Sources []string
}

// Empty reports whether nothing relevant was retrieved.
func (r *Result) Empty() bool {
	return r.Context == ""
}

// Retriever answers queries with relevant chunks from the vector store.
type Retriever struct {
	embedder ai.Embedder
	vectors  storage.VectorStore
	topK     int
	minScore float32
	logger   *slog.Logger
}

// Option is a functional option for configuring a Retriever.
type Option func(*Retriever) error

// WithTopK sets the maximum number of chunks retrieved per query.
// Default is 4.
func WithTopK(k int) Option {
	return func(r *Retriever) error {
		if k > 0 {
			r.topK = k
		}
		return nil
	}
}

// WithMinScore drops chunks scoring below the threshold.
// Default is 0, keeping everything the store returns.
func WithMinScore(score float32) Option {
	return func(r *Retriever) error {
		r.minScore = score
		return nil
	}
}

// WithLogger sets the logger. A nil logger falls back to the default.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRetriever creates a retriever over the given embedder and vector store.
func NewRetriever(embedder ai.Embedder, vectors storage.VectorStore, opts ...Option) (*Retriever, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if vectors == nil {
		return nil, ErrVectorStoreRequired
	}

	r := &Retriever{
		embedder: embedder,
		vectors:  vectors,
		topK:     defaultTopK,
		logger:   slog.Default().With("component", "retrieval"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Retrieve finds the chunks most relevant to the query and assembles them
// into prompt-ready context. An empty index yields an empty Result, not an
// error; an embedding failure is returned so the caller can degrade.
func (r *Retriever) Retrieve(ctx context.Context, query string) (*Result, error) {
	if strings.TrimSpace(query) == "" {
		return &Result{}, nil
	}

	vector, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		r.logger.Error("failed to embed query", "err", err)
		return nil, err
	}
	if len(vector) == 0 {
		return &Result{}, nil
	}

	scored, err := r.vectors.Search(ctx, vector, r.topK)
	if err != nil {
		r.logger.Error("vector search failed", "err", err)
		return nil, err
	}

	texts := make([]string, 0, len(scored))
	seen := make(map[string]bool)
	var sources []string

	for _, hit := range scored {
		if hit.Score < r.minScore {
			continue
		}
		texts = append(texts, hit.Record.Text)

		source := NormalizeSource(hit.Record.Source)
		if !seen[source] {
			seen[source] = true
			sources = append(sources, source)
		}
	}

	r.logger.Debug("retrieved context", "query_length", len(query),
		"chunks", len(texts), "sources", len(sources))

	return &Result{
		Context: strings.Join(texts, "\n\n"),
		Sources: sources,
	}, nil
}

// NormalizeSource converts a stored chunk source to a citable reference.
// Absolute http(s) URLs pass through; anything else is treated as a
// site-relative path and given a leading slash.
func NormalizeSource(source string) string {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return source
	}
	return "/" + strings.TrimPrefix(source, "/")
}
