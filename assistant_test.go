package siesta

import (
	"context"
	"testing"

	"github.com/poiesic/siesta/ai"
	"github.com/poiesic/siesta/ai/mock"
	"github.com/poiesic/siesta/core"
	"github.com/poiesic/siesta/ingestion"
	"github.com/poiesic/siesta/orchestrator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssistant(t *testing.T) (*Assistant, *mock.MockChatModel, *mock.MockChatModel) {
	t.Helper()

	embedder := mock.NewMockEmbedder()
	chat := mock.NewMockChatModel()
	classifier := mock.NewMockChatModel()

	assistant, err := New("",
		WithInMemoryStorage(),
		WithProvider(mock.NewMockProviderWithServices(embedder, chat, classifier)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { assistant.Close() })

	return assistant, chat, classifier
}

func TestAssistantAsk(t *testing.T) {
	assistant, chat, classifier := newTestAssistant(t)
	ctx := context.Background()

	classifier.Script(&ai.Completion{Content: `{"intent": "GENERAL"}`})
	chat.Script(&ai.Completion{Content: "Hola, ¿en qué puedo ayudarte?"})

	resp, err := assistant.Ask(ctx, &orchestrator.Request{UserID: "web-1", Message: "hola"})
	require.NoError(t, err)
	assert.Equal(t, "Hola, ¿en qué puedo ayudarte?", resp.Answer)
	assert.Equal(t, core.IntentGeneral, resp.Intent)

	users, err := assistant.Users(ctx)
	require.NoError(t, err)
	assert.Contains(t, users, "web-1")
}

func TestAssistantIngestAndAsk(t *testing.T) {
	assistant, chat, classifier := newTestAssistant(t)
	ctx := context.Background()

	results := assistant.Ingest(ctx, []ingestion.Document{
		{Source: "envios.php", Text: "Enviamos en 24 o 48 horas a toda la península."},
		{Source: "garantia.php", Text: "La garantía cubre defectos de fabricación durante 3 años."},
	})
	require.Len(t, results, 2)
	for _, r := range results {
		require.NoError(t, r.Err)
	}

	sources, err := assistant.Vectors().Sources(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"envios.php", "garantia.php"}, sources)

	// The stored knowledge reaches the model as context
	classifier.Script(&ai.Completion{Content: `{"intent": "GENERAL"}`})
	chat.Script(&ai.Completion{Content: "Enviamos en 24 o 48 horas."})

	resp, err := assistant.Ask(ctx, &orchestrator.Request{UserID: "web-1", Message: "Enviamos en 24 o 48 horas a toda la península."})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Sources)
}

func TestAssistantClearHistory(t *testing.T) {
	assistant, chat, classifier := newTestAssistant(t)
	ctx := context.Background()

	classifier.Script(&ai.Completion{Content: `{"intent": "GENERAL"}`})
	chat.Script(&ai.Completion{Content: "hola"})

	_, err := assistant.Ask(ctx, &orchestrator.Request{UserID: "web-1", Message: "hola"})
	require.NoError(t, err)

	require.NoError(t, assistant.ClearHistory(ctx, "web-1"))

	users, err := assistant.Users(ctx)
	require.NoError(t, err)
	assert.NotContains(t, users, "web-1")
}

func TestAssistantReembed(t *testing.T) {
	assistant, _, _ := newTestAssistant(t)
	ctx := context.Background()

	results := assistant.Ingest(ctx, []ingestion.Document{
		{Source: "faq.php", Text: "Preguntas frecuentes sobre colchones y almohadas."},
	})
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	require.NoError(t, assistant.Reembed(ctx))

	sources, err := assistant.Vectors().Sources(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"faq.php"}, sources)
}
