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


package openai

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/siesta/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ChatModel implements ai.ChatModel using OpenAI-compatible chat APIs.
type ChatModel struct {
	client  llms.Model
	timeout time.Duration
	logger  *slog.Logger
}

// newChatModel is an internal constructor that returns the concrete type.
// Used by Provider to manage the instances.
func newChatModel(host, model string, timeout time.Duration) (*ChatModel, error) {
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(host),
		openai.WithToken("none"),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, err
	}

	return &ChatModel{
		client:  client,
		timeout: timeout,
		logger:  slog.Default().With("component", "openai-chatmodel", "model", model),
	}, nil
}

// NewChatModel creates a chat model for the conversational endpoint of the
// provided configuration.
//
// Returns ai.ChatModel interface to enforce abstraction.
func NewChatModel(config *ai.Config) (ai.ChatModel, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return newChatModel(config.ChatHost, config.ChatModel, config.RequestTimeout)
}

// Complete generates a completion for the given conversation.
func (m *ChatModel) Complete(ctx context.Context, messages []ai.Message, opts ai.CompleteOptions) (*ai.Completion, error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	content := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		content = append(content, toMessageContent(msg))
	}

	callOpts := []llms.CallOption{llms.WithTemperature(opts.Temperature)}
	if opts.JSONMode {
		callOpts = append(callOpts, llms.WithJSONMode())
	}
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(opts.MaxTokens))
	}
	if len(opts.Tools) > 0 {
		callOpts = append(callOpts, llms.WithTools(toTools(opts.Tools)))
	}

	response, err := m.client.GenerateContent(ctx, content, callOpts...)
	if err != nil {
		m.logger.Error("failed to generate content", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		m.logger.Debug("no choices returned from model")
		return &ai.Completion{}, nil
	}

	choice := response.Choices[0]
	completion := &ai.Completion{Content: choice.Content}
	for _, tc := range choice.ToolCalls {
		if tc.FunctionCall == nil {
			continue
		}
		completion.ToolCalls = append(completion.ToolCalls, ai.ToolCall{
			ID:        tc.ID,
			Name:      tc.FunctionCall.Name,
			Arguments: tc.FunctionCall.Arguments,
		})
	}

	m.logger.Debug("completion generated",
		"content_length", len(completion.Content),
		"tool_calls", len(completion.ToolCalls))

	return completion, nil
}

// toMessageContent converts an ai.Message to the langchaingo representation.
func toMessageContent(msg ai.Message) llms.MessageContent {
	switch msg.Role {
	case ai.RoleSystem:
		return llms.MessageContent{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(msg.Content)},
		}
	case ai.RoleAssistant:
		parts := []llms.ContentPart{}
		if msg.Content != "" {
			parts = append(parts, llms.TextPart(msg.Content))
		}
		for _, tc := range msg.ToolCalls {
			parts = append(parts, llms.ToolCall{
				ID:   tc.ID,
				Type: "function",
				FunctionCall: &llms.FunctionCall{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}
		return llms.MessageContent{Role: llms.ChatMessageTypeAI, Parts: parts}
	case ai.RoleTool:
		return llms.MessageContent{
			Role: llms.ChatMessageTypeTool,
			Parts: []llms.ContentPart{llms.ToolCallResponse{
				ToolCallID: msg.ToolCallID,
				Name:       msg.Name,
				Content:    msg.Content,
			}},
		}
	default:
		return llms.MessageContent{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(msg.Content)},
		}
	}
}

// toTools converts tool definitions to the langchaingo representation.
func toTools(defs []ai.ToolDefinition) []llms.Tool {
	tools := make([]llms.Tool, 0, len(defs))
	for _, def := range defs {
		tools = append(tools, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		})
	}
	return tools
}
