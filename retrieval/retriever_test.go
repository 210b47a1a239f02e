package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/siesta/ai/mock"
	"github.com/poiesic/siesta/core"
	"github.com/poiesic/siesta/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedChunks stores chunks with axis-aligned vectors so tests can steer
// similarity with the query vector.
func seedChunks(t *testing.T, stores *badger.MemoryStores, source string, texts []string, vectors [][]float32) {
	t.Helper()

	records := make([]*core.ChunkRecord, len(texts))
	for i := range texts {
		records[i] = &core.ChunkRecord{
			Source: source,
			Index:  i,
			Text:   texts[i],
			Vector: vectors[i],
		}
	}
	require.NoError(t, stores.Vectors.UpsertChunks(context.Background(), source, records))
}

func queryEmbedder(vector []float32) *mock.MockEmbedder {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return vector, nil
	}
	return embedder
}

func TestRetrieverValidation(t *testing.T) {
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer stores.Close()

	_, err = NewRetriever(nil, stores.Vectors)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewRetriever(mock.NewMockEmbedder(), nil)
	assert.ErrorIs(t, err, ErrVectorStoreRequired)
}

func TestRetrieveOrdersByRelevance(t *testing.T) {
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer stores.Close()

	seedChunks(t, stores, "envios.php",
		[]string{"Sobre envíos", "Sobre devoluciones"},
		[][]float32{{1, 0, 0}, {0, 1, 0}})
	seedChunks(t, stores, "garantia.php",
		[]string{"Sobre garantías"},
		[][]float32{{0.5, 0.5, 0}})

	retriever, err := NewRetriever(queryEmbedder([]float32{1, 0, 0}), stores.Vectors)
	require.NoError(t, err)

	result, err := retriever.Retrieve(context.Background(), "¿cómo son los envíos?")
	require.NoError(t, err)
	require.False(t, result.Empty())

	// Most relevant text first, separated by blank lines
	assert.Equal(t, "Sobre envíos\n\nSobre garantías\n\nSobre devoluciones", result.Context)

	// Distinct sources in first-appearance order, as site-relative paths
	assert.Equal(t, []string{"/envios.php", "/garantia.php"}, result.Sources)
}

func TestRetrieveTopK(t *testing.T) {
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer stores.Close()

	seedChunks(t, stores, "larga.php",
		[]string{"uno", "dos", "tres", "cuatro", "cinco", "seis"},
		[][]float32{{1, 0}, {0.9, 0}, {0.8, 0}, {0.7, 0}, {0.6, 0}, {0.5, 0}})

	retriever, err := NewRetriever(queryEmbedder([]float32{1, 0}), stores.Vectors, WithTopK(2))
	require.NoError(t, err)

	result, err := retriever.Retrieve(context.Background(), "consulta")
	require.NoError(t, err)

	assert.Equal(t, "uno\n\ndos", result.Context)
}

func TestRetrieveMinScore(t *testing.T) {
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer stores.Close()

	seedChunks(t, stores, "mixta.php",
		[]string{"relevante", "irrelevante"},
		[][]float32{{1, 0}, {0.01, 0}})

	retriever, err := NewRetriever(queryEmbedder([]float32{1, 0}), stores.Vectors, WithMinScore(0.5))
	require.NoError(t, err)

	result, err := retriever.Retrieve(context.Background(), "consulta")
	require.NoError(t, err)

	assert.Equal(t, "relevante", result.Context)
	assert.Equal(t, []string{"/mixta.php"}, result.Sources)
}

func TestRetrieveEmptyIndex(t *testing.T) {
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer stores.Close()

	retriever, err := NewRetriever(queryEmbedder([]float32{1, 0}), stores.Vectors)
	require.NoError(t, err)

	result, err := retriever.Retrieve(context.Background(), "consulta")
	require.NoError(t, err)
	assert.True(t, result.Empty())
	assert.Empty(t, result.Sources)
}

func TestRetrieveEmptyQuery(t *testing.T) {
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer stores.Close()

	embedder := mock.NewMockEmbedder()
	retriever, err := NewRetriever(embedder, stores.Vectors)
	require.NoError(t, err)

	result, err := retriever.Retrieve(context.Background(), "   ")
	require.NoError(t, err)
	assert.True(t, result.Empty())

	// No embedding call for a blank query
	assert.Equal(t, 0, embedder.CallCount())
}

func TestRetrieveEmbedFailure(t *testing.T) {
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer stores.Close()

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding service down")
	}

	retriever, err := NewRetriever(embedder, stores.Vectors)
	require.NoError(t, err)

	_, err = retriever.Retrieve(context.Background(), "consulta")
	assert.Error(t, err)
}

func TestNormalizeSource(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"envios.php", "/envios.php"},
		{"/envios.php", "/envios.php"},
		{"http://ejemplo.com/pagina", "http://ejemplo.com/pagina"},
		{"https://ejemplo.com/pagina", "https://ejemplo.com/pagina"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeSource(tt.input))
	}
}
