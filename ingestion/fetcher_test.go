package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<!DOCTYPE html>
<html>
<head><title>Envíos</title><style>body { color: red; }</style></head>
<body>
<nav>Inicio | Colchones | Almohadas</nav>
<div id="content">
<h1>Envíos y entregas</h1>
<p>Envío gratuito en península en 24-48 horas.</p>
<script>trackPage();</script>
</div>
<footer>Copyright</footer>
</body>
</html>`

func TestFetcherFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/envios.php", r.URL.Path)
		w.Write([]byte(testPage))
	}))
	defer server.Close()

	fetcher, err := NewFetcher(server.URL)
	require.NoError(t, err)

	doc, err := fetcher.Fetch(context.Background(), "/envios.php")
	require.NoError(t, err)

	assert.Equal(t, "envios.php", doc.Source)
	assert.Contains(t, doc.Text, "Envío gratuito en península")
	assert.Contains(t, doc.Text, "Envíos y entregas")

	// Non-content elements are stripped
	assert.NotContains(t, doc.Text, "trackPage")
	assert.NotContains(t, doc.Text, "color: red")
	assert.NotContains(t, doc.Text, "Inicio | Colchones")
	assert.NotContains(t, doc.Text, "Copyright")
}

func TestFetcherErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher, err := NewFetcher(server.URL)
	require.NoError(t, err)

	_, err = fetcher.Fetch(context.Background(), "/desaparecida.php")
	assert.Error(t, err)
}

func TestFetcherInvalidBaseURL(t *testing.T) {
	_, err := NewFetcher("not-a-url")
	assert.Error(t, err)
}

func TestFetcherFetchAllSkipsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/rota.php" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(testPage))
	}))
	defer server.Close()

	fetcher, err := NewFetcher(server.URL)
	require.NoError(t, err)

	docs := fetcher.FetchAll(context.Background(), []string{"/a.php", "/rota.php", "/b.php"})
	require.Len(t, docs, 2)
	assert.Equal(t, "a.php", docs[0].Source)
	assert.Equal(t, "b.php", docs[1].Source)
}
