package snapshot

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, key string) *SQLiteStore {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "snap.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := NewSQLiteStore(db, key)
	require.NoError(t, err)
	return store
}

func TestSQLiteStore_Load_MissingKey(t *testing.T) {
	store := openTestStore(t, "")

	data, ok, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestSQLiteStore_SaveLoad_RoundTrip(t *testing.T) {
	store := openTestStore(t, "farmChainXData")
	ctx := context.Background()

	payload := []byte(`{"crops":[],"darkMode":true}`)
	require.NoError(t, store.Save(ctx, payload))

	data, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, payload, data)
}

func TestSQLiteStore_Save_OverwritesExisting(t *testing.T) {
	store := openTestStore(t, "k")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []byte("first")))
	require.NoError(t, store.Save(ctx, []byte("second")))

	data, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("second"), data)
}

func TestSQLiteStore_KeysAreIsolated(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "snap.db"))
	require.NoError(t, err)
	defer db.Close()

	a, err := NewSQLiteStore(db, "a")
	require.NoError(t, err)
	b, err := NewSQLiteStore(db, "b")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, a.Save(ctx, []byte("for-a")))

	_, ok, err := b.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
