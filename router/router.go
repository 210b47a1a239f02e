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


package router

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/poiesic/siesta/ai"
	"github.com/poiesic/siesta/core"
)

const (
	classifyMaxTokens = 24
	classifyAttempts  = 3
)

// Context carries page state that biases classification.
type Context struct {
	// ViewingProduct is true when the user is on a product page.
	ViewingProduct bool

	// ProductName is the product being viewed, when known.
	ProductName string

	// URL is the page the user is on.
	URL string
}

// decision is the structure the routing model must emit.
type decision struct {
	Intent string `json:"intent"`
}

// Router classifies user messages into intents using a small, fast model.
// Classification is advisory: any failure degrades to core.IntentGeneral
// rather than surfacing an error to the conversation.
type Router struct {
	classifier ai.ChatModel
	logger     *slog.Logger
}

// Option is a functional option for configuring a Router.
type Option func(*Router) error

// WithLogger sets the logger. A nil logger falls back to the default.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRouter creates a router over the given classification model.
func NewRouter(classifier ai.ChatModel, opts ...Option) (*Router, error) {
	if classifier == nil {
		return nil, ErrClassifierRequired
	}

	r := &Router{
		classifier: classifier,
		logger:     slog.Default().With("component", "router"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Classify determines the intent of a user message.
// recentDialogue is the rendered tail of the conversation, used to resolve
// follow-ups ("¿y el otro?"). Never returns an error: a model failure,
// malformed JSON after retries, or an unknown label all map to
// core.IntentGeneral.
func (r *Router) Classify(ctx context.Context, message, recentDialogue string, pageCtx Context) core.Intent {
	messages := []ai.Message{
		{Role: ai.RoleSystem, Content: buildClassifyPrompt(pageCtx)},
		{Role: ai.RoleUser, Content: buildClassifyInput(message, recentDialogue)},
	}
	opts := ai.CompleteOptions{
		Temperature: 0.0,
		JSONMode:    true,
		MaxTokens:   classifyMaxTokens,
	}

	for attempt := 0; attempt < classifyAttempts; attempt++ {
		completion, err := r.classifier.Complete(ctx, messages, opts)
		if err != nil {
			r.logger.Warn("classifier call failed, assuming general intent",
				"attempt", attempt+1, "err", err)
			return core.IntentGeneral
		}

		result, err := parseDecision(completion.Content)
		if err != nil {
			r.logger.Warn("error parsing classifier response",
				"attempt", attempt+1,
				"response", completion.Content,
				"err", err)
			continue
		}

		intent := core.ParseIntent(result.Intent)
		r.logger.Debug("message classified", "label", result.Intent, "intent", intent.String())
		return intent
	}

	r.logger.Warn("classifier returned malformed JSON after retries, assuming general intent")
	return core.IntentGeneral
}

// Small models in JSON mode sometimes drop the opening quote of an object
// key, emitting {intent": "X"}. The key body is still intact, so reinserting
// the quote makes the output parseable.
var bareKey = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)":`)

// parseDecision extracts the classifier's decision from raw model output,
// tolerating markdown code fences and a missing opening key quote.
func parseDecision(raw string) (decision, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	text = bareKey.ReplaceAllString(text, `$1"$2":`)

	var d decision
	if err := json.Unmarshal([]byte(text), &d); err != nil {
		return decision{}, err
	}
	return d, nil
}

// buildClassifyPrompt builds the system prompt with the closed label set.
func buildClassifyPrompt(pageCtx Context) string {
	var b strings.Builder
	b.WriteString("Eres un clasificador de intenciones para el asistente de una tienda de colchones y descanso.\n")
	b.WriteString("Clasifica el último mensaje del usuario en exactamente una de estas categorías:\n\n")
	b.WriteString("- RECOMMEND: pide una recomendación de colchón o describe cómo duerme para que le aconsejen\n")
	b.WriteString("- SEARCH: busca productos o accesorios concretos en el catálogo (almohadas, canapés, fundas...)\n")
	b.WriteString("- PRODUCT_SHEET: pregunta por el producto que está viendo ahora mismo (precio, medidas, materiales)\n")
	b.WriteString("- GENERAL: pregunta sobre envíos, devoluciones, garantías, pagos o la tienda\n")
	b.WriteString("- BRAND_GENERAL: pregunta general sobre marcas o el mundo del descanso\n")
	b.WriteString("- OFF_TOPIC: no tiene ninguna relación con el descanso ni con la tienda\n\n")

	if pageCtx.ViewingProduct {
		b.WriteString("El usuario está viendo un producto")
		if pageCtx.ProductName != "" {
			fmt.Fprintf(&b, ": %q", pageCtx.ProductName)
		}
		b.WriteString(". Preguntas sobre \"este colchón\" o \"este producto\" son PRODUCT_SHEET.\n\n")
	}

	b.WriteString(`Responde solo con JSON: {"intent": "CATEGORIA"}`)
	return b.String()
}

// buildClassifyInput combines the recent dialogue with the new message.
func buildClassifyInput(message, recentDialogue string) string {
	if recentDialogue == "" {
		return message
	}
	return "Conversación reciente:\n" + recentDialogue + "\n\nMensaje a clasificar: " + message
}
