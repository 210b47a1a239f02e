// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package siesta

import (
	"context"
	"log/slog"

	"github.com/poiesic/siesta/ai"
	"github.com/poiesic/siesta/ai/openai"
	"github.com/poiesic/siesta/cleaner"
	"github.com/poiesic/siesta/core"
	"github.com/poiesic/siesta/history"
	"github.com/poiesic/siesta/ingestion"
	"github.com/poiesic/siesta/interaction"
	"github.com/poiesic/siesta/orchestrator"
	"github.com/poiesic/siesta/retrieval"
	"github.com/poiesic/siesta/router"
	"github.com/poiesic/siesta/storage"
	"github.com/poiesic/siesta/storage/badger"
)

// Assistant is the assembled engine: storage, models, retrieval,
// routing and the conversation orchestrator behind one handle.
type Assistant struct {
	backend      *badger.Backend
	histories    *history.Manager
	vectors      storage.VectorStore
	interactions storage.InteractionStore
	provider     ai.Provider
	retriever    *retrieval.Retriever
	recorder     *interaction.StoreRecorder
	engine       *orchestrator.Orchestrator
	pipeline     *ingestion.Pipeline
	logger       *slog.Logger
}

// Option configures an Assistant.
type Option func(*assistantOptions)

type assistantOptions struct {
	aiConfig    *ai.Config
	provider    ai.Provider
	recommender orchestrator.Recommender
	catalog     orchestrator.Catalog
	cleaner     cleaner.Cleaner
	topK        int
	minScore    float32
	inMemory    bool
	logger      *slog.Logger
}

// WithAIConfig sets the model endpoints and names.
// Ignored when WithProvider is also given.
func WithAIConfig(config *ai.Config) Option {
	return func(o *assistantOptions) {
		o.aiConfig = config
	}
}

// WithProvider replaces the default OpenAI-compatible provider, for
// example with a mock in tests.
func WithProvider(provider ai.Provider) Option {
	return func(o *assistantOptions) {
		o.provider = provider
	}
}

// WithRecommender sets the mattress recommendation backend.
func WithRecommender(recommender orchestrator.Recommender) Option {
	return func(o *assistantOptions) {
		o.recommender = recommender
	}
}

// WithCatalog sets the product catalog search backend.
func WithCatalog(catalog orchestrator.Catalog) Option {
	return func(o *assistantOptions) {
		o.catalog = catalog
	}
}

// WithCleaner sets the product page cleaner.
func WithCleaner(c cleaner.Cleaner) Option {
	return func(o *assistantOptions) {
		o.cleaner = c
	}
}

// WithTopK sets how many chunks retrieval returns per question.
func WithTopK(k int) Option {
	return func(o *assistantOptions) {
		o.topK = k
	}
}

// WithMinScore sets the retrieval similarity floor.
func WithMinScore(score float32) Option {
	return func(o *assistantOptions) {
		o.minScore = score
	}
}

// WithInMemoryStorage keeps all data in memory. Intended for tests.
func WithInMemoryStorage() Option {
	return func(o *assistantOptions) {
		o.inMemory = true
	}
}

// WithAssistantLogger sets the logger shared by all components.
func WithAssistantLogger(logger *slog.Logger) Option {
	return func(o *assistantOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New opens the data directory and assembles the full assistant.
func New(dataDir string, opts ...Option) (*Assistant, error) {
	options := &assistantOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(dataDir, options.inMemory)
	if err != nil {
		return nil, err
	}

	historyStore, err := badger.NewHistoryStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	vectors, err := badger.NewVectorStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	interactions, err := badger.NewInteractionStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	a := &Assistant{
		backend:      backend,
		vectors:      vectors,
		interactions: interactions,
		provider:     provider,
		logger:       options.logger,
	}

	a.histories, err = history.NewManager(
		history.WithManagerStore(historyStore),
		history.WithManagerLogger(options.logger),
	)
	if err != nil {
		a.Close()
		return nil, err
	}

	retrieverOpts := []retrieval.Option{retrieval.WithLogger(options.logger)}
	if options.topK > 0 {
		retrieverOpts = append(retrieverOpts, retrieval.WithTopK(options.topK))
	}
	if options.minScore > 0 {
		retrieverOpts = append(retrieverOpts, retrieval.WithMinScore(options.minScore))
	}
	a.retriever, err = retrieval.NewRetriever(provider.Embedder(), vectors, retrieverOpts...)
	if err != nil {
		a.Close()
		return nil, err
	}

	rtr, err := router.NewRouter(provider.Classifier(), router.WithLogger(options.logger))
	if err != nil {
		a.Close()
		return nil, err
	}

	toolboxOpts := []orchestrator.ToolboxOption{orchestrator.WithToolboxLogger(options.logger)}
	if options.recommender != nil {
		toolboxOpts = append(toolboxOpts, orchestrator.WithRecommender(options.recommender))
	}
	if options.catalog != nil {
		toolboxOpts = append(toolboxOpts, orchestrator.WithCatalog(options.catalog))
	}
	if options.cleaner != nil {
		toolboxOpts = append(toolboxOpts, orchestrator.WithCleaner(options.cleaner))
	}
	toolbox, err := orchestrator.NewToolbox(a.retriever, toolboxOpts...)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.recorder, err = interaction.NewStoreRecorder(interactions)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.engine, err = orchestrator.NewOrchestrator(a.histories, rtr, provider.ChatModel(), toolbox,
		orchestrator.WithRecorder(a.recorder),
		orchestrator.WithLogger(options.logger),
	)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.pipeline, err = ingestion.NewPipeline(vectors, provider.Embedder(), ingestion.WithLogger(options.logger))
	if err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

// Ask runs one conversation turn.
func (a *Assistant) Ask(ctx context.Context, req *orchestrator.Request) (*orchestrator.Response, error) {
	return a.engine.Respond(ctx, req)
}

// Ingest splits, embeds and stores documents in the knowledge base.
// Results come back in input order, one per document.
func (a *Assistant) Ingest(ctx context.Context, docs []ingestion.Document) []ingestion.Result {
	return a.pipeline.IngestDocuments(ctx, docs)
}

// Reembed recomputes the vectors of every stored chunk. Run it after
// changing the embedding model.
func (a *Assistant) Reembed(ctx context.Context) error {
	return a.pipeline.Reembed(ctx)
}

// NewFetcher creates a page fetcher for the given site, for feeding
// Ingest with live content.
func (a *Assistant) NewFetcher(baseURL string) (*ingestion.Fetcher, error) {
	return ingestion.NewFetcher(baseURL, ingestion.WithFetcherLogger(a.logger))
}

// Users lists the user keys that have conversation history.
func (a *Assistant) Users(ctx context.Context) ([]string, error) {
	return a.histories.ListUserKeys(ctx)
}

// ClearHistory removes a user's conversation.
func (a *Assistant) ClearHistory(ctx context.Context, userID string) error {
	return a.histories.Delete(ctx, userID)
}

// RecentInteractions returns the latest recorded exchanges, newest first.
func (a *Assistant) RecentInteractions(ctx context.Context, limit int) ([]*core.Interaction, error) {
	return a.recorder.Recent(ctx, limit)
}

// Vectors exposes the underlying vector store.
func (a *Assistant) Vectors() storage.VectorStore {
	return a.vectors
}

// Close releases the models, worker pools and storage.
func (a *Assistant) Close() error {
	if a.engine != nil {
		a.engine.Release()
	}
	if a.pipeline != nil {
		a.pipeline.Release()
	}

	if a.provider != nil {
		if err := a.provider.Close(); err != nil {
			a.logger.Error("error closing AI provider", "err", err)
		}
	}

	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing storage backend", "err", err)
		return err
	}
	return nil
}
