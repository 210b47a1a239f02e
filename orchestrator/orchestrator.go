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


package orchestrator

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/siesta/ai"
	"github.com/poiesic/siesta/core"
	"github.com/poiesic/siesta/history"
	"github.com/poiesic/siesta/interaction"
	"github.com/poiesic/siesta/retrieval"
	"github.com/poiesic/siesta/router"
)

const (
	defaultHistoryWindow = 12
	routerWindow         = 6
	primaryTemperature   = 0.7
)

// Request is one user turn entering the engine.
type Request struct {
	// UserID identifies the visitor. Sanitized before use.
	UserID string

	// Message is the user's question.
	Message string

	// URL and Domain locate the page the user is on.
	URL    string
	Domain string

	// ProductName is set when the user is viewing a product page.
	ProductName string

	// PageHTML is the raw HTML of the current page, used by the product
	// sheet tool.
	PageHTML string
}

// Response is the assistant's answer for one turn.
type Response struct {
	Answer  string
	Intent  core.Intent
	Tool    string
	Sources []string
}

// Orchestrator runs a full conversation turn, from classification through
// model and tool calls to the persisted exchange.
type Orchestrator struct {
	histories     *history.Manager
	router        *router.Router
	chat          ai.ChatModel
	toolbox       *Toolbox
	recorder      interaction.Recorder
	pool          *ants.Pool
	historyWindow int
	logger        *slog.Logger
}

// Option is a functional option for configuring an Orchestrator.
type Option func(*Orchestrator) error

// WithRecorder sets the interaction recorder.
// Default discards interactions.
func WithRecorder(recorder interaction.Recorder) Option {
	return func(o *Orchestrator) error {
		if recorder != nil {
			o.recorder = recorder
		}
		return nil
	}
}

// WithHistoryWindow sets how many recent messages are replayed to the
// primary model. Default is 12.
func WithHistoryWindow(n int) Option {
	return func(o *Orchestrator) error {
		if n > 0 {
			o.historyWindow = n
		}
		return nil
	}
}

// WithPoolSize sets the worker pool size for background persistence.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(o *Orchestrator) error {
		if size < 1 {
			size = 1
		}

		if o.pool != nil {
			o.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		o.pool = pool
		return nil
	}
}

// WithLogger sets the logger. A nil logger falls back to the default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOrchestrator creates the conversation engine.
func NewOrchestrator(histories *history.Manager, rtr *router.Router, chat ai.ChatModel, toolbox *Toolbox, opts ...Option) (*Orchestrator, error) {
	if histories == nil {
		return nil, ErrHistoryManagerRequired
	}
	if rtr == nil {
		return nil, ErrRouterRequired
	}
	if chat == nil {
		return nil, ErrChatModelRequired
	}
	if toolbox == nil {
		return nil, ErrToolboxRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		histories:     histories,
		router:        rtr,
		chat:          chat,
		toolbox:       toolbox,
		recorder:      interaction.NewNopRecorder(),
		pool:          pool,
		historyWindow: defaultHistoryWindow,
		logger:        slog.Default().With("component", "orchestrator"),
	}

	for _, opt := range opts {
		if optErr := opt(o); optErr != nil {
			o.Release()
			return nil, optErr
		}
	}

	return o, nil
}

// Respond runs one conversation turn.
// Whatever goes wrong mid-turn, the user receives an answer: model and tool
// failures degrade to safe copy, and a panic inside the turn is recovered
// into the fallback reply.
func (o *Orchestrator) Respond(ctx context.Context, req *Request) (resp *Response, err error) {
	if err := core.ValidateRequest(req.UserID, req.Message); err != nil {
		return nil, err
	}

	// Declared before the recover handler so a recovered turn can still
	// append its fallback reply to the conversation.
	var hist *history.History

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("recovered panic during turn", "user", req.UserID, "panic", r)
			resp = &Response{Answer: fallbackReply, Intent: core.IntentGeneral}
			err = nil
			if hist != nil {
				hist.AddAssistant(ctx, resp.Answer)
			}
			o.record(req, resp, true)
		}
	}()

	hist, err = o.histories.Get(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	// Render the routing window before appending the new message so the
	// message appears exactly once in the classifier input.
	recentDialogue := hist.RenderForPrompt(routerWindow)
	hist.AddUser(ctx, req.Message)

	intent := o.router.Classify(ctx, req.Message, recentDialogue, router.Context{
		ViewingProduct: req.ProductName != "" || req.PageHTML != "",
		ProductName:    req.ProductName,
		URL:            req.URL,
	})
	o.logger.Info("turn routed", "user", req.UserID, "intent", intent.String())

	if intent == core.IntentOffTopic {
		resp := &Response{Answer: offTopicReply, Intent: intent}
		hist.AddAssistant(ctx, resp.Answer)
		o.record(req, resp, false)
		return resp, nil
	}

	resp = o.converse(ctx, hist, req, intent)
	hist.AddAssistant(ctx, resp.Answer)
	o.record(req, resp, resp.Answer == fallbackReply)
	return resp, nil
}

// converse performs the model round trips for an on-topic turn.
func (o *Orchestrator) converse(ctx context.Context, hist *history.History, req *Request, intent core.Intent) *Response {
	resp := &Response{Intent: intent}

	retrieved, err := o.toolbox.retriever.Retrieve(ctx, req.Message)
	if err != nil {
		// Degrade to an empty context; the model can still use tools
		o.logger.Warn("retrieval failed, continuing without context", "err", err)
		retrieved = nil
	}

	messages := o.composeMessages(hist, req, retrieved)
	if retrieved != nil {
		resp.Sources = retrieved.Sources
	}

	primary, err := o.chat.Complete(ctx, messages, ai.CompleteOptions{
		Temperature: primaryTemperature,
		Tools:       o.toolbox.Definitions(intent),
	})
	if err != nil {
		o.logger.Error("primary completion failed", "err", err)
		resp.Answer = fallbackReply
		return resp
	}

	if len(primary.ToolCalls) == 0 {
		resp.Answer = strings.TrimSpace(primary.Content)
		if resp.Answer == "" {
			resp.Answer = fallbackReply
		}
		return resp
	}

	// Only the first requested tool runs; extra calls are dropped.
	call := primary.ToolCalls[0]
	if len(primary.ToolCalls) > 1 {
		o.logger.Warn("model requested multiple tools, dispatching first only",
			"dispatched", call.Name, "dropped", len(primary.ToolCalls)-1)
	}
	resp.Tool = call.Name

	result := o.toolbox.Dispatch(ctx, call.Name, call.Arguments, ToolContext{
		UserID:      req.UserID,
		Question:    req.Message,
		PageHTML:    req.PageHTML,
		ProductURL:  req.URL,
		ProductName: req.ProductName,
	})

	messages = append(messages,
		ai.Message{Role: ai.RoleAssistant, ToolCalls: []ai.ToolCall{call}},
		ai.Message{Role: ai.RoleTool, ToolCallID: call.ID, Name: call.Name, Content: result},
	)

	followup, err := o.chat.Complete(ctx, messages, ai.CompleteOptions{
		Temperature: primaryTemperature,
	})
	if err != nil {
		o.logger.Error("followup completion failed", "tool", call.Name, "err", err)
		resp.Answer = fallbackReply
		return resp
	}

	resp.Answer = strings.TrimSpace(followup.Content)
	if resp.Answer == "" {
		resp.Answer = fallbackReply
	}
	return resp
}

// composeMessages assembles the prompt: system framing, the recent
// conversation minus the pending question, and the question itself with
// any retrieved context attached.
func (o *Orchestrator) composeMessages(hist *history.History, req *Request, retrieved *retrieval.Result) []ai.Message {
	messages := []ai.Message{{Role: ai.RoleSystem, Content: systemPrompt}}

	recent := hist.LastMessages(o.historyWindow)
	// The current question was already appended to the history; it is
	// delivered as the final user message instead.
	if n := len(recent); n > 0 && recent[n-1].Role == core.RoleUser && recent[n-1].Content == req.Message {
		recent = recent[:n-1]
	}

	for _, msg := range recent {
		var role ai.Role
		switch msg.Role {
		case core.RoleAssistant:
			role = ai.RoleAssistant
		case core.RoleSystem:
			role = ai.RoleSystem
		default:
			role = ai.RoleUser
		}
		messages = append(messages, ai.Message{Role: role, Content: msg.Content})
	}

	question := req.Message
	if retrieved != nil && !retrieved.Empty() {
		question = "Contexto:\n" + retrieved.Context + "\n\nPregunta: " + req.Message
	}

	return append(messages, ai.Message{Role: ai.RoleUser, Content: question})
}

// record persists the exchange in the background. The turn's context may
// be cancelled by the time the write runs, so persistence gets its own.
func (o *Orchestrator) record(req *Request, resp *Response, isError bool) {
	inter := &core.Interaction{
		UserID:      req.UserID,
		Question:    req.Message,
		Answer:      resp.Answer,
		URL:         req.URL,
		Domain:      req.Domain,
		ProductName: req.ProductName,
		Tool:        resp.Tool,
		IsError:     isError,
		CreatedAt:   time.Now().UTC(),
	}

	err := o.pool.Submit(func() {
		o.recorder.Record(context.Background(), inter)
	})
	if err != nil {
		o.logger.Warn("background record rejected, recording inline", "err", err)
		o.recorder.Record(context.Background(), inter)
	}
}

// Release shuts the background worker pool down. Call when the
// orchestrator is no longer needed.
func (o *Orchestrator) Release() {
	if o.pool != nil {
		o.pool.Release()
	}
}
