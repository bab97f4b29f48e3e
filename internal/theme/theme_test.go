package theme

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/psique-web/internal/storage"
)

func TestHydrateDefaultsToLightAndWritesBack(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	h := NewHolder(store)
	require.NoError(t, h.Hydrate(ctx))
	assert.Equal(t, Light, h.Current())

	saved, err := store.Get(ctx, storage.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "light", saved)
}

func TestHydrateReplacesUnknownValue(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, storage.KeyTheme, "sepia"))

	h := NewHolder(store)
	require.NoError(t, h.Hydrate(ctx))
	assert.Equal(t, Light, h.Current())

	saved, _ := store.Get(ctx, storage.KeyTheme)
	assert.Equal(t, "light", saved)
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, storage.KeyTheme, "dark"))

	h := NewHolder(store)
	require.NoError(t, h.Hydrate(ctx))
	assert.Equal(t, Dark, h.Current())

	next, err := h.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Light, next)

	saved, _ := store.Get(ctx, storage.KeyTheme)
	assert.Equal(t, "light", saved)

	next, err = h.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Dark, next)
}
