package data

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStores(t *testing.T) map[string]Store {
	t.Helper()

	stores := map[string]Store{}
	for _, driver := range []string{DriverDuckDB, DriverSQLite, DriverMemory} {
		path := filepath.Join(t.TempDir(), driver+".db")
		store, err := Open(context.Background(), driver, path, zerolog.Nop())
		require.NoError(t, err, "open %s", driver)
		t.Cleanup(func() { store.Close() })
		stores[driver] = store
	}
	return stores
}

func TestStoreGetMissingKey(t *testing.T) {
	for driver, store := range setupStores(t) {
		t.Run(driver, func(t *testing.T) {
			value, ok, err := store.Get(context.Background(), "missing")
			assert.NoError(t, err)
			assert.False(t, ok)
			assert.Empty(t, value)
		})
	}
}

func TestStoreSetAndGet(t *testing.T) {
	for driver, store := range setupStores(t) {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Set(ctx, "bookmarks", `[{"slug":"one-piece"}]`))

			value, ok, err := store.Get(ctx, "bookmarks")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[{"slug":"one-piece"}]`, value)
		})
	}
}

func TestStoreSetOverwrites(t *testing.T) {
	for driver, store := range setupStores(t) {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Set(ctx, "session", "first"))
			require.NoError(t, store.Set(ctx, "session", "second"))

			value, ok, err := store.Get(ctx, "session")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "second", value)
		})
	}
}

func TestStoreRemove(t *testing.T) {
	for driver, store := range setupStores(t) {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Set(ctx, "session", "value"))
			require.NoError(t, store.Remove(ctx, "session"))

			_, ok, err := store.Get(ctx, "session")
			require.NoError(t, err)
			assert.False(t, ok)

			// Removing twice is not an error.
			assert.NoError(t, store.Remove(ctx, "session"))
		})
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	for _, driver := range []string{DriverDuckDB, DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "persist.db")

			store, err := Open(ctx, driver, path, zerolog.Nop())
			require.NoError(t, err)
			require.NoError(t, store.Set(ctx, "bookmarks", "[]"))
			require.NoError(t, store.Close())

			store, err = Open(ctx, driver, path, zerolog.Nop())
			require.NoError(t, err)
			defer store.Close()

			value, ok, err := store.Get(ctx, "bookmarks")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "[]", value)
		})
	}
}

func TestOpenUnknownDriverIsSentinel(t *testing.T) {
	_, err := Open(context.Background(), "bolt", "", zerolog.Nop())
	assert.Equal(t, ErrUnknownDriver, errors.Cause(err))
}
