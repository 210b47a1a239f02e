package badger

import (
	"context"
	"fmt"
	"testing"

	"github.com/poiesic/siesta/core"
)

func makeTestChunks(source string, texts []string, vectors [][]float32) []*core.ChunkRecord {
	records := make([]*core.ChunkRecord, len(texts))
	for i, text := range texts {
		records[i] = &core.ChunkRecord{
			Source: source,
			Index:  i,
			Text:   text,
			Vector: vectors[i],
		}
	}
	return records
}

func TestVectorUpsertAndSearch(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	records := makeTestChunks("envios.php",
		[]string{"Envío gratuito en 24-48 horas", "Entrega en domicilio con cita"},
		[][]float32{{1, 0, 0}, {0, 1, 0}})

	if err := stores.Vectors.UpsertChunks(ctx, "envios.php", records); err != nil {
		t.Fatalf("Failed to upsert chunks: %v", err)
	}

	results, err := stores.Vectors.Search(ctx, []float32{0.9, 0.1, 0}, 4)
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	if results[0].Record.Text != "Envío gratuito en 24-48 horas" {
		t.Fatalf("Expected closest chunk first, got '%s'", results[0].Record.Text)
	}

	if results[0].Score <= results[1].Score {
		t.Fatalf("Expected descending scores, got %f then %f", results[0].Score, results[1].Score)
	}
}

func TestVectorSearchEmptyIndex(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	results, err := stores.Vectors.Search(context.Background(), []float32{1, 0, 0}, 4)
	if err != nil {
		t.Fatalf("Search on empty index should not fail: %v", err)
	}

	if len(results) != 0 {
		t.Fatalf("Expected no results, got %d", len(results))
	}
}

func TestVectorSearchLimit(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	var texts []string
	var vectors [][]float32
	for i := 0; i < 10; i++ {
		texts = append(texts, fmt.Sprintf("chunk %d", i))
		vectors = append(vectors, []float32{float32(i) / 10, 0, 0})
	}

	records := makeTestChunks("grande.php", texts, vectors)
	if err := stores.Vectors.UpsertChunks(ctx, "grande.php", records); err != nil {
		t.Fatalf("Failed to upsert chunks: %v", err)
	}

	results, err := stores.Vectors.Search(ctx, []float32{1, 0, 0}, 3)
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
}

func TestVectorUpsertIdempotent(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	records := makeTestChunks("garantia.php",
		[]string{"Garantía de 10 años", "Devolución en 100 noches"},
		[][]float32{{1, 0, 0}, {0, 1, 0}})

	for i := 0; i < 3; i++ {
		if err := stores.Vectors.UpsertChunks(ctx, "garantia.php", records); err != nil {
			t.Fatalf("Failed to upsert chunks on pass %d: %v", i, err)
		}
	}

	chunks, err := stores.Vectors.SourceChunks(ctx, "garantia.php")
	if err != nil {
		t.Fatalf("Failed to get source chunks: %v", err)
	}

	if len(chunks) != 2 {
		t.Fatalf("Expected 2 chunks after repeated upsert, got %d", len(chunks))
	}
}

func TestVectorUpsertRemovesStaleChunks(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	first := makeTestChunks("faq.php",
		[]string{"uno", "dos", "tres"},
		[][]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
	if err := stores.Vectors.UpsertChunks(ctx, "faq.php", first); err != nil {
		t.Fatalf("Failed to upsert first set: %v", err)
	}

	// Re-ingest with fewer chunks; the third must disappear
	second := makeTestChunks("faq.php",
		[]string{"uno nuevo"},
		[][]float32{{1, 0, 0}})
	if err := stores.Vectors.UpsertChunks(ctx, "faq.php", second); err != nil {
		t.Fatalf("Failed to upsert second set: %v", err)
	}

	results, err := stores.Vectors.Search(ctx, []float32{0, 0, 1}, 10)
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}

	for _, r := range results {
		if r.Record.Text == "tres" {
			t.Fatal("Found stale chunk from previous ingestion")
		}
	}

	chunks, err := stores.Vectors.SourceChunks(ctx, "faq.php")
	if err != nil {
		t.Fatalf("Failed to get source chunks: %v", err)
	}

	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk after shrinking re-ingest, got %d", len(chunks))
	}
}

func TestVectorDeleteSource(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	records := makeTestChunks("temporal.php",
		[]string{"texto"},
		[][]float32{{1, 0, 0}})
	if err := stores.Vectors.UpsertChunks(ctx, "temporal.php", records); err != nil {
		t.Fatalf("Failed to upsert chunks: %v", err)
	}

	if err := stores.Vectors.DeleteSource(ctx, "temporal.php"); err != nil {
		t.Fatalf("Failed to delete source: %v", err)
	}

	sources, err := stores.Vectors.Sources(ctx)
	if err != nil {
		t.Fatalf("Failed to list sources: %v", err)
	}

	if len(sources) != 0 {
		t.Fatalf("Expected no sources after delete, got %v", sources)
	}

	// Deleting an absent source is not an error
	if err := stores.Vectors.DeleteSource(ctx, "nunca.php"); err != nil {
		t.Fatalf("Deleting absent source should not fail: %v", err)
	}
}

func TestVectorSources(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	for _, source := range []string{"a.php", "b.php"} {
		records := makeTestChunks(source, []string{"texto"}, [][]float32{{1, 0, 0}})
		if err := stores.Vectors.UpsertChunks(ctx, source, records); err != nil {
			t.Fatalf("Failed to upsert chunks: %v", err)
		}
	}

	sources, err := stores.Vectors.Sources(ctx)
	if err != nil {
		t.Fatalf("Failed to list sources: %v", err)
	}

	if len(sources) != 2 {
		t.Fatalf("Expected 2 sources, got %d: %v", len(sources), sources)
	}
}

func TestVectorSearchSkipsEmptyVectors(t *testing.T) {
	stores, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer stores.Close()

	ctx := context.Background()

	records := []*core.ChunkRecord{
		{Source: "mixto.php", Index: 0, Text: "sin vector"},
		{Source: "mixto.php", Index: 1, Text: "con vector", Vector: []float32{1, 0, 0}},
	}
	if err := stores.Vectors.UpsertChunks(ctx, "mixto.php", records); err != nil {
		t.Fatalf("Failed to upsert chunks: %v", err)
	}

	results, err := stores.Vectors.Search(ctx, []float32{1, 0, 0}, 10)
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}

	if results[0].Record.Text != "con vector" {
		t.Fatalf("Expected embedded chunk, got '%s'", results[0].Record.Text)
	}
}
