// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.ChatModel,
// and ai.Provider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Scripted completions, returned in order
//	mockChat := mock.NewMockChatModel().Script(
//	    &ai.Completion{ToolCalls: []ai.ToolCall{{ID: "1", Name: "search_catalog"}}},
//	    &ai.Completion{Content: "final answer"},
//	)
//
//	// Custom behavior injection
//	mockChat.CompleteFunc = func(ctx context.Context, messages []ai.Message, opts ai.CompleteOptions) (*ai.Completion, error) {
//	    return &ai.Completion{Content: `{"intent":"GENERAL"}`}, nil
//	}
//
//	// Check call counts
//	count := mockChat.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic unit vectors based on text hash
//   - MockChatModel: Returns a fixed "mock response" completion
//   - MockProvider: Aggregates mock embedder, chat model and classifier
package mock
