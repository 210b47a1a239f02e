package interaction

import (
	"context"
	"testing"

	"github.com/poiesic/siesta/core"
	"github.com/poiesic/siesta/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRecorder(t *testing.T) {
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer stores.Close()

	recorder, err := NewStoreRecorder(stores.Interactions)
	require.NoError(t, err)

	ctx := context.Background()
	recorder.Record(ctx, &core.Interaction{
		UserID:   "visitor-1",
		Question: "¿Tenéis canapés abatibles?",
		Answer:   "Sí, en varias medidas.",
		Tool:     "search_catalog",
	})

	recent, err := recorder.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "visitor-1", recent[0].UserID)
	assert.Equal(t, "search_catalog", recent[0].Tool)
	assert.False(t, recent[0].CreatedAt.IsZero())
}

func TestStoreRecorderValidation(t *testing.T) {
	_, err := NewStoreRecorder(nil)
	assert.ErrorIs(t, err, ErrStoreRequired)
}

func TestStoreRecorderSwallowsFailures(t *testing.T) {
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)

	recorder, err := NewStoreRecorder(stores.Interactions)
	require.NoError(t, err)

	// Closing the backend makes writes fail; Record must not panic
	require.NoError(t, stores.Close())

	assert.NotPanics(t, func() {
		recorder.Record(context.Background(), &core.Interaction{UserID: "x", Question: "q"})
	})
}

func TestNopRecorder(t *testing.T) {
	recorder := NewNopRecorder()
	assert.NotPanics(t, func() {
		recorder.Record(context.Background(), &core.Interaction{UserID: "x"})
	})
}
