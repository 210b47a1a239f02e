package mock

import (
	"context"
	"sync"

	"github.com/poiesic/siesta/ai"
)

// MockChatModel is a test double for ai.ChatModel.
// It allows custom behavior injection via function fields or a scripted
// queue of completions, and records the calls it receives.
type MockChatModel struct {
	// CompleteFunc is called by Complete if set.
	// If nil, the scripted queue or the default response is used.
	CompleteFunc func(ctx context.Context, messages []ai.Message, opts ai.CompleteOptions) (*ai.Completion, error)

	mu        sync.Mutex
	scripted  []*ai.Completion
	calls     []CompleteCall
	callCount int
}

// CompleteCall records the arguments of one Complete invocation.
type CompleteCall struct {
	Messages []ai.Message
	Opts     ai.CompleteOptions
}

// NewMockChatModel creates a mock chat model.
// Note: Returns concrete type to allow test assertions.
func NewMockChatModel() *MockChatModel {
	return &MockChatModel{}
}

// Script enqueues completions to be returned by subsequent Complete calls,
// in order. Once the queue is exhausted the default response is returned.
func (m *MockChatModel) Script(completions ...*ai.Completion) *MockChatModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scripted = append(m.scripted, completions...)
	return m
}

// Complete returns the injected, scripted or default completion.
func (m *MockChatModel) Complete(ctx context.Context, messages []ai.Message, opts ai.CompleteOptions) (*ai.Completion, error) {
	m.mu.Lock()
	m.callCount++
	m.calls = append(m.calls, CompleteCall{Messages: messages, Opts: opts})

	if m.CompleteFunc != nil {
		fn := m.CompleteFunc
		m.mu.Unlock()
		return fn(ctx, messages, opts)
	}

	if len(m.scripted) > 0 {
		next := m.scripted[0]
		m.scripted = m.scripted[1:]
		m.mu.Unlock()
		return next, nil
	}
	m.mu.Unlock()

	return &ai.Completion{Content: "mock response"}, nil
}

// CallCount returns the number of Complete calls received.
func (m *MockChatModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Calls returns the recorded Complete invocations.
func (m *MockChatModel) Calls() []CompleteCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CompleteCall{}, m.calls...)
}

// LastCall returns the most recent Complete invocation, or nil if none.
func (m *MockChatModel) LastCall() *CompleteCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	call := m.calls[len(m.calls)-1]
	return &call
}

// Reset clears recorded calls, the scripted queue and injected functions.
func (m *MockChatModel) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.calls = nil
	m.scripted = nil
	m.CompleteFunc = nil
}
