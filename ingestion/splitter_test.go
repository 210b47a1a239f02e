package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitterBasics(t *testing.T) {
	splitter := NewSplitter(WithChunkSize(50), WithChunkOverlap(10))

	text := "Los colchones viscoelásticos se adaptan al cuerpo.\n\n" +
		"Los colchones de muelles ensacados dan soporte firme.\n\n" +
		"Las almohadas cervicales ayudan con el dolor de cuello."

	chunks, err := splitter.Split("guia.php", text)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for i, chunk := range chunks {
		assert.Equal(t, "guia.php", chunk.Source)
		assert.Equal(t, i, chunk.Index)
		assert.NotEmpty(t, strings.TrimSpace(chunk.Text))
	}
}

func TestSplitterStableIDs(t *testing.T) {
	splitter := NewSplitter(WithChunkSize(50), WithChunkOverlap(0))

	text := "Primer párrafo del documento.\n\nSegundo párrafo del documento."

	first, err := splitter.Split("pagina.php", text)
	require.NoError(t, err)

	second, err := splitter.Split("pagina.php", text)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].StableID(), second[i].StableID())
	}
}

func TestSplitterEmptyText(t *testing.T) {
	splitter := NewSplitter()

	chunks, err := splitter.Split("vacia.php", "   \n\n  ")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestSplitterEmptySource(t *testing.T) {
	splitter := NewSplitter()

	_, err := splitter.Split("", "texto")
	assert.ErrorIs(t, err, ErrEmptySource)
}

func TestSplitterSmallTextSingleChunk(t *testing.T) {
	splitter := NewSplitter()

	chunks, err := splitter.Split("corta.php", "Texto corto.")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, "corta.php_0", chunks[0].StableID())
}
