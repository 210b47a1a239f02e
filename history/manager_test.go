package history

import (
	"context"
	"testing"

	"github.com/poiesic/siesta/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeUserID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain alphanumeric", "visitor42", "visitor42"},
		{"keeps dash and underscore", "visitor-42_a", "visitor-42_a"},
		{"replaces dots", "user.name", "user_name"},
		{"replaces path separators", "../etc/passwd", "___etc_passwd"},
		{"replaces colons", "a:b:c", "a_b_c"},
		{"replaces spaces and accents", "maría lópez", "mar_a_l_pez"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeUserID(tt.input))
		})
	}
}

func TestManagerGetSameInstance(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)

	ctx := context.Background()

	h1, err := m.Get(ctx, "visitor-1")
	require.NoError(t, err)

	h2, err := m.Get(ctx, "visitor-1")
	require.NoError(t, err)

	assert.Same(t, h1, h2)

	// Equivalent raw IDs map to the same history
	h3, err := m.Get(ctx, "visitor.1")
	require.NoError(t, err)
	h4, err := m.Get(ctx, "visitor_1")
	require.NoError(t, err)
	assert.Same(t, h3, h4)
}

func TestManagerIsolation(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)

	ctx := context.Background()

	alice, err := m.Get(ctx, "alice")
	require.NoError(t, err)
	bob, err := m.Get(ctx, "bob")
	require.NoError(t, err)

	alice.AddUser(ctx, "mensaje de alice")

	assert.Equal(t, 1, alice.Len())
	assert.Equal(t, 0, bob.Len())
}

func TestManagerEmptyUserID(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)

	_, err = m.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyUserKey)
}

func TestManagerDelete(t *testing.T) {
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer stores.Close()

	m, err := NewManager(WithManagerStore(stores.History))
	require.NoError(t, err)

	ctx := context.Background()

	h, err := m.Get(ctx, "visitor-2")
	require.NoError(t, err)
	h.AddUser(ctx, "hola")

	require.NoError(t, m.Delete(ctx, "visitor-2"))

	// A fresh Get creates an empty history
	fresh, err := m.Get(ctx, "visitor-2")
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.Len())
}

func TestManagerCreate(t *testing.T) {
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer stores.Close()

	m, err := NewManager(WithManagerStore(stores.History))
	require.NoError(t, err)

	ctx := context.Background()

	old, err := m.Get(ctx, "visitor-3")
	require.NoError(t, err)
	old.AddUser(ctx, "hola")
	old.AddAssistant(ctx, "buenas")

	fresh, err := m.Create(ctx, "visitor-3")
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.Len())
	assert.NotSame(t, old, fresh)

	// The fresh instance replaces the cached one
	got, err := m.Get(ctx, "visitor-3")
	require.NoError(t, err)
	assert.Same(t, fresh, got)

	// Persisted messages are gone too
	records, err := stores.History.GetMessages(ctx, "visitor-3")
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = m.Create(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyUserKey)
}

func TestManagerListUserKeys(t *testing.T) {
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer stores.Close()

	m, err := NewManager(WithManagerStore(stores.History))
	require.NoError(t, err)

	ctx := context.Background()

	for _, user := range []string{"alice", "bob"} {
		h, err := m.Get(ctx, user)
		require.NoError(t, err)
		h.AddUser(ctx, "hola")
	}

	// A second manager over the same store discovers the persisted users
	m2, err := NewManager(WithManagerStore(stores.History))
	require.NoError(t, err)

	keys, err := m2.ListUserKeys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, keys)
}
