package orchestrator

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/poiesic/siesta/ai"
	"github.com/poiesic/siesta/cleaner"
	"github.com/poiesic/siesta/core"
	"github.com/poiesic/siesta/retrieval"
)

// Tool names exposed to the model.
const (
	ToolRecommendMattress = "recommend_mattress"
	ToolSearchCatalog     = "search_catalog"
	ToolProductSheet      = "product_sheet"
	ToolGeneralInfo       = "general_info"
)

// Recommender produces a mattress recommendation from a sleeper profile.
type Recommender interface {
	Recommend(ctx context.Context, args RecommendArgs) (string, error)
}

// Catalog searches the product catalog and returns a textual result list.
type Catalog interface {
	Search(ctx context.Context, query string) (string, error)
}

// RecommendArgs is the sleeper profile the model fills in.
type RecommendArgs struct {
	Sex               string  `json:"sex"`
	HeightCM          float64 `json:"height_cm"`
	WeightKG          float64 `json:"weight_kg"`
	SleepsInPairs     bool    `json:"sleeps_in_pairs"`
	PriorDiscomfort   string  `json:"prior_discomfort"`
	PreferredMaterial string  `json:"preferred_material"`
}

// SearchArgs carries a free-text catalog query.
type SearchArgs struct {
	Query string `json:"query"`
}

// GeneralInfoArgs carries the question to answer from the knowledge base.
type GeneralInfoArgs struct {
	Question string `json:"question"`
}

// ToolContext carries per-request state tools may need beyond their
// model-provided arguments.
type ToolContext struct {
	UserID      string
	Question    string
	PageHTML    string
	ProductURL  string
	ProductName string
}

// Toolbox owns the tools the model can call, selects which of them each
// intent may see, and executes dispatched calls.
type Toolbox struct {
	retriever   *retrieval.Retriever
	recommender Recommender
	catalog     Catalog
	cleaner     cleaner.Cleaner
	logger      *slog.Logger
}

// ToolboxOption is a functional option for configuring a Toolbox.
type ToolboxOption func(*Toolbox) error

// WithRecommender sets the recommendation engine.
// Without one, the recommendation tool answers with default product copy.
func WithRecommender(recommender Recommender) ToolboxOption {
	return func(t *Toolbox) error {
		t.recommender = recommender
		return nil
	}
}

// WithCatalog sets the catalog search backend.
// Without one, catalog queries fall back to knowledge-base retrieval.
func WithCatalog(catalog Catalog) ToolboxOption {
	return func(t *Toolbox) error {
		t.catalog = catalog
		return nil
	}
}

// WithCleaner sets the HTML cleaner used by the product sheet tool.
// Default is the markdown cleaner.
func WithCleaner(c cleaner.Cleaner) ToolboxOption {
	return func(t *Toolbox) error {
		if c != nil {
			t.cleaner = c
		}
		return nil
	}
}

// WithToolboxLogger sets the logger. A nil logger falls back to the default.
func WithToolboxLogger(logger *slog.Logger) ToolboxOption {
	return func(t *Toolbox) error {
		if logger == nil {
			logger = slog.Default()
		}
		t.logger = logger
		return nil
	}
}

// NewToolbox creates a toolbox over the given retriever.
func NewToolbox(retriever *retrieval.Retriever, opts ...ToolboxOption) (*Toolbox, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}

	t := &Toolbox{
		retriever: retriever,
		cleaner:   cleaner.NewMarkdownCleaner(),
		logger:    slog.Default().With("component", "toolbox"),
	}

	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Definitions returns the tools the model may call for the given intent.
// Narrow toolsets keep small models from wandering into the wrong tool.
func (t *Toolbox) Definitions(intent core.Intent) []ai.ToolDefinition {
	switch intent {
	case core.IntentRecommend:
		return []ai.ToolDefinition{recommendMattressDef, generalInfoDef}
	case core.IntentSearch:
		return []ai.ToolDefinition{searchCatalogDef, generalInfoDef}
	case core.IntentProductSheet:
		return []ai.ToolDefinition{productSheetDef, generalInfoDef}
	default:
		return []ai.ToolDefinition{generalInfoDef}
	}
}

// Dispatch executes the named tool and returns its textual result.
// It never returns an error: tool failures are logged and answered with
// safe copy so the conversation continues.
func (t *Toolbox) Dispatch(ctx context.Context, name, arguments string, toolCtx ToolContext) string {
	switch name {
	case ToolRecommendMattress:
		return t.recommendMattress(ctx, arguments)
	case ToolSearchCatalog:
		return t.searchCatalog(ctx, arguments, toolCtx)
	case ToolProductSheet:
		return t.productSheet(toolCtx)
	case ToolGeneralInfo:
		return t.generalInfo(ctx, arguments, toolCtx)
	default:
		t.logger.Warn("model requested unknown tool", "tool", name)
		return unknownToolReply
	}
}

func (t *Toolbox) recommendMattress(ctx context.Context, arguments string) string {
	var args RecommendArgs
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		t.logger.Warn("malformed recommendation arguments", "err", err)
	}

	if t.recommender == nil {
		return defaultRecommendation
	}

	result, err := t.recommender.Recommend(ctx, args)
	if err != nil {
		t.logger.Error("recommendation failed", "err", err)
		return fallbackReply
	}
	if strings.TrimSpace(result) == "" {
		return defaultRecommendation
	}
	return result
}

func (t *Toolbox) searchCatalog(ctx context.Context, arguments string, toolCtx ToolContext) string {
	var args SearchArgs
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		t.logger.Warn("malformed search arguments", "err", err)
	}
	query := strings.TrimSpace(args.Query)
	if query == "" {
		query = toolCtx.Question
	}

	if t.catalog != nil {
		result, err := t.catalog.Search(ctx, query)
		if err != nil {
			t.logger.Error("catalog search failed", "query", query, "err", err)
			return fallbackReply
		}
		if strings.TrimSpace(result) == "" {
			return noResultsReply
		}
		return result
	}

	// No catalog backend; fall back to the knowledge base
	return t.generalInfo(ctx, "", ToolContext{Question: query})
}

func (t *Toolbox) productSheet(toolCtx ToolContext) string {
	if strings.TrimSpace(toolCtx.PageHTML) == "" {
		return noResultsReply
	}

	text, err := t.cleaner.Clean(toolCtx.PageHTML)
	if err != nil {
		t.logger.Error("failed to clean product page", "url", toolCtx.ProductURL, "err", err)
		return fallbackReply
	}
	if text == "" {
		return noResultsReply
	}
	return text
}

func (t *Toolbox) generalInfo(ctx context.Context, arguments string, toolCtx ToolContext) string {
	var args GeneralInfoArgs
	if arguments != "" {
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			t.logger.Warn("malformed general info arguments", "err", err)
		}
	}
	question := strings.TrimSpace(args.Question)
	if question == "" {
		question = toolCtx.Question
	}

	result, err := t.retriever.Retrieve(ctx, question)
	if err != nil {
		t.logger.Error("knowledge retrieval failed", "err", err)
		return fallbackReply
	}
	if result.Empty() {
		return noResultsReply
	}

	var b strings.Builder
	b.WriteString(result.Context)
	if len(result.Sources) > 0 {
		b.WriteString("\n\nFuentes: ")
		b.WriteString(strings.Join(result.Sources, ", "))
	}
	return b.String()
}

// Tool schemas shown to the model.
var (
	recommendMattressDef = ai.ToolDefinition{
		Name:        ToolRecommendMattress,
		Description: "Recomienda un colchón a partir del perfil del durmiente. Úsala cuando el cliente pida consejo sobre qué colchón comprar.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"sex":                map[string]any{"type": "string", "description": "Sexo del durmiente si lo ha mencionado"},
				"height_cm":          map[string]any{"type": "number", "description": "Altura en centímetros"},
				"weight_kg":          map[string]any{"type": "number", "description": "Peso en kilogramos"},
				"sleeps_in_pairs":    map[string]any{"type": "boolean", "description": "Si duerme en pareja"},
				"prior_discomfort":   map[string]any{"type": "string", "description": "Molestias al dormir: espalda, cervicales, calor..."},
				"preferred_material": map[string]any{"type": "string", "description": "Material preferido: viscoelástica, muelles, látex..."},
			},
		},
	}

	searchCatalogDef = ai.ToolDefinition{
		Name:        ToolSearchCatalog,
		Description: "Busca productos y accesorios en el catálogo de la tienda: almohadas, canapés, fundas, toppers.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{"type": "string", "description": "Qué busca el cliente, en pocas palabras"},
			},
			"required": []string{"query"},
		},
	}

	productSheetDef = ai.ToolDefinition{
		Name:        ToolProductSheet,
		Description: "Consulta la ficha del producto que el cliente está viendo ahora mismo: precio, medidas, materiales.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}

	generalInfoDef = ai.ToolDefinition{
		Name:        ToolGeneralInfo,
		Description: "Responde preguntas sobre la tienda y sus servicios: envíos, devoluciones, garantías, formas de pago y consejos de descanso.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string", "description": "La pregunta del cliente"},
			},
			"required": []string{"question"},
		},
	}
)
