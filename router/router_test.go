package router

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/siesta/ai"
	"github.com/poiesic/siesta/ai/mock"
	"github.com/poiesic/siesta/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterValidation(t *testing.T) {
	_, err := NewRouter(nil)
	assert.ErrorIs(t, err, ErrClassifierRequired)
}

func TestClassifyLabels(t *testing.T) {
	tests := []struct {
		response string
		expected core.Intent
	}{
		{`{"intent": "RECOMMEND"}`, core.IntentRecommend},
		{`{"intent": "SEARCH"}`, core.IntentSearch},
		{`{"intent": "PRODUCT_SHEET"}`, core.IntentProductSheet},
		{`{"intent": "GENERAL"}`, core.IntentGeneral},
		{`{"intent": "BRAND_GENERAL"}`, core.IntentBrandGeneral},
		{`{"intent": "OFF_TOPIC"}`, core.IntentOffTopic},
		{`{"intent": "recommend"}`, core.IntentRecommend},
		{`{"intent": "INVENTED_LABEL"}`, core.IntentGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.response, func(t *testing.T) {
			classifier := mock.NewMockChatModel().Script(&ai.Completion{Content: tt.response})
			r, err := NewRouter(classifier)
			require.NoError(t, err)

			intent := r.Classify(context.Background(), "mensaje", "", Context{})
			assert.Equal(t, tt.expected, intent)
		})
	}
}

func TestClassifyStripsCodeFences(t *testing.T) {
	classifier := mock.NewMockChatModel().Script(
		&ai.Completion{Content: "```json\n{\"intent\": \"SEARCH\"}\n```"})
	r, err := NewRouter(classifier)
	require.NoError(t, err)

	intent := r.Classify(context.Background(), "busco una almohada", "", Context{})
	assert.Equal(t, core.IntentSearch, intent)
}

func TestClassifyRepairsMissingQuote(t *testing.T) {
	classifier := mock.NewMockChatModel().Script(
		&ai.Completion{Content: `{intent": "RECOMMEND"}`})
	r, err := NewRouter(classifier)
	require.NoError(t, err)

	intent := r.Classify(context.Background(), "¿qué colchón me va bien?", "", Context{})
	assert.Equal(t, core.IntentRecommend, intent)
}

func TestClassifyRetriesMalformedJSON(t *testing.T) {
	classifier := mock.NewMockChatModel().Script(
		&ai.Completion{Content: "no soy json"},
		&ai.Completion{Content: `{"intent": "GENERAL"}`})
	r, err := NewRouter(classifier)
	require.NoError(t, err)

	intent := r.Classify(context.Background(), "¿hacéis envíos?", "", Context{})
	assert.Equal(t, core.IntentGeneral, intent)
	assert.Equal(t, 2, classifier.CallCount())
}

func TestClassifyMalformedAfterRetries(t *testing.T) {
	classifier := mock.NewMockChatModel().Script(
		&ai.Completion{Content: "basura"},
		&ai.Completion{Content: "más basura"},
		&ai.Completion{Content: "todavía basura"})
	r, err := NewRouter(classifier)
	require.NoError(t, err)

	intent := r.Classify(context.Background(), "mensaje", "", Context{})
	assert.Equal(t, core.IntentGeneral, intent)
	assert.Equal(t, 3, classifier.CallCount())
}

func TestClassifyModelFailure(t *testing.T) {
	classifier := mock.NewMockChatModel()
	classifier.CompleteFunc = func(ctx context.Context, messages []ai.Message, opts ai.CompleteOptions) (*ai.Completion, error) {
		return nil, errors.New("model unavailable")
	}
	r, err := NewRouter(classifier)
	require.NoError(t, err)

	intent := r.Classify(context.Background(), "mensaje", "", Context{})
	assert.Equal(t, core.IntentGeneral, intent)
	// No retries on transport errors
	assert.Equal(t, 1, classifier.CallCount())
}

func TestClassifyCallShape(t *testing.T) {
	classifier := mock.NewMockChatModel().Script(&ai.Completion{Content: `{"intent": "GENERAL"}`})
	r, err := NewRouter(classifier)
	require.NoError(t, err)

	r.Classify(context.Background(), "¿hacéis envíos?", "USER: hola\nASSISTANT: hola", Context{})

	call := classifier.LastCall()
	require.NotNil(t, call)

	// Deterministic JSON-mode call with bounded output
	assert.Equal(t, 0.0, call.Opts.Temperature)
	assert.True(t, call.Opts.JSONMode)
	assert.Greater(t, call.Opts.MaxTokens, 0)
	assert.Empty(t, call.Opts.Tools)

	require.Len(t, call.Messages, 2)
	assert.Equal(t, ai.RoleSystem, call.Messages[0].Role)
	assert.Contains(t, call.Messages[1].Content, "Conversación reciente")
	assert.Contains(t, call.Messages[1].Content, "¿hacéis envíos?")
}

func TestClassifyProductContextInPrompt(t *testing.T) {
	classifier := mock.NewMockChatModel().Script(&ai.Completion{Content: `{"intent": "PRODUCT_SHEET"}`})
	r, err := NewRouter(classifier)
	require.NoError(t, err)

	intent := r.Classify(context.Background(), "¿cuánto cuesta este?", "", Context{
		ViewingProduct: true,
		ProductName:    "Colchón Visco Real",
		URL:            "/colchon-visco-real",
	})
	assert.Equal(t, core.IntentProductSheet, intent)

	call := classifier.LastCall()
	require.NotNil(t, call)
	assert.Contains(t, call.Messages[0].Content, "Colchón Visco Real")
}
