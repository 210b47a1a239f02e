package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/siesta/ai"
	"github.com/poiesic/siesta/core"
	"github.com/poiesic/siesta/storage"
)

// Document is a unit of ingestable content.
type Document struct {
	// Source identifies the document, e.g. a relative page path. It becomes
	// the chunk source and must be stable across re-ingestions.
	Source string

	// Text is the cleaned plain-text content.
	Text string
}

// Result reports the outcome of ingesting one document.
type Result struct {
	Source string
	Chunks int
	Err    error
}

// Pipeline orchestrates splitting, embedding and storing documents.
// Batch ingestion runs on a worker pool; a failing document never aborts
// the rest of the batch.
type Pipeline struct {
	vectors  storage.VectorStore
	embedder ai.Embedder
	splitter *Splitter
	pool     *ants.Pool
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent ingestion.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithSplitter sets a custom splitter.
// Default uses 1000-character chunks with 200-character overlap.
func WithSplitter(splitter *Splitter) Option {
	return func(p *Pipeline) error {
		if splitter != nil {
			p.splitter = splitter
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(vectors storage.VectorStore, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if vectors == nil {
		return nil, ErrVectorStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		vectors:  vectors,
		embedder: embedder,
		splitter: NewSplitter(),
		pool:     pool,
		logger:   slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// IngestDocument splits, embeds and stores a single document.
// Returns the number of chunks stored. Ingesting the same source again
// replaces its chunk set wholesale.
func (p *Pipeline) IngestDocument(ctx context.Context, doc Document) (int, error) {
	if doc.Source == "" {
		return 0, ErrEmptySource
	}

	chunks, err := p.splitter.Split(doc.Source, doc.Text)
	if err != nil {
		return 0, err
	}

	if len(chunks) == 0 {
		p.logger.Warn("document produced no chunks", "source", doc.Source)
		// An empty document still clears any previously stored chunks
		return 0, p.vectors.UpsertChunks(ctx, doc.Source, nil)
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, err
	}
	if len(vectors) != len(chunks) {
		return 0, ErrEmbeddingMismatch
	}

	records := make([]*core.ChunkRecord, len(chunks))
	for i, chunk := range chunks {
		records[i] = &core.ChunkRecord{
			Source: chunk.Source,
			Index:  chunk.Index,
			Text:   chunk.Text,
			Vector: vectors[i],
		}
	}

	if err := p.vectors.UpsertChunks(ctx, doc.Source, records); err != nil {
		return 0, err
	}

	p.logger.Info("document ingested", "source", doc.Source, "chunks", len(records))
	return len(records), nil
}

// IngestDocuments ingests a batch of documents concurrently.
// Results are returned in input order. A failure on one document is recorded
// in its Result and does not affect the others.
func (p *Pipeline) IngestDocuments(ctx context.Context, docs []Document) []Result {
	results := make([]Result, len(docs))

	var wg sync.WaitGroup
	for i, doc := range docs {
		i, doc := i, doc
		wg.Add(1)

		err := p.pool.Submit(func() {
			defer wg.Done()
			chunks, err := p.IngestDocument(ctx, doc)
			results[i] = Result{Source: doc.Source, Chunks: chunks, Err: err}
			if err != nil {
				p.logger.Error("document ingestion failed", "source", doc.Source, "err", err)
			}
		})
		if err != nil {
			wg.Done()
			results[i] = Result{Source: doc.Source, Err: err}
		}
	}
	wg.Wait()

	return results
}

// Reembed regenerates the vectors of every stored chunk with the current
// embedding model, keeping texts and stable IDs intact. Use after switching
// embedding models.
func (p *Pipeline) Reembed(ctx context.Context) error {
	sources, err := p.vectors.Sources(ctx)
	if err != nil {
		return err
	}

	for _, source := range sources {
		records, err := p.vectors.SourceChunks(ctx, source)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			continue
		}

		texts := make([]string, len(records))
		for i, record := range records {
			texts[i] = record.Text
		}

		vectors, err := p.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return err
		}
		if len(vectors) != len(records) {
			return ErrEmbeddingMismatch
		}

		for i := range records {
			records[i].Vector = vectors[i]
		}

		if err := p.vectors.UpsertChunks(ctx, source, records); err != nil {
			return err
		}

		p.logger.Info("source re-embedded", "source", source, "chunks", len(records))
	}

	return nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
