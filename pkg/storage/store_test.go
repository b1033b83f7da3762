package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeFactory func(t *testing.T) (Storer, error)

func memStoreFactory(*testing.T) (Storer, error) {
	return NewMemStore(), nil
}

func sqliteStoreFactory(t *testing.T) (Storer, error) {
	return NewSQLiteStore(context.Background(), ":memory:")
}

// runTestsForAllStores runs testFn against every Storer implementation.
func runTestsForAllStores(t *testing.T, testName string, testFn func(t *testing.T, store Storer)) {
	factories := map[string]storeFactory{
		"MemStore":    memStoreFactory,
		"SQLiteStore": sqliteStoreFactory,
	}

	for name, factory := range factories {
		t.Run(name+"/"+testName, func(t *testing.T) {
			store, err := factory(t)
			require.NoError(t, err, "Failed to create store")
			defer store.Close()
			testFn(t, store)
		})
	}
}

func TestGetMissing(t *testing.T) {
	runTestsForAllStores(t, "GetMissing", func(t *testing.T, store Storer) {
		_, err := store.Get(context.Background(), "user-1", KeyFavorites)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPutAndGet(t *testing.T) {
	runTestsForAllStores(t, "PutAndGet", func(t *testing.T, store Storer) {
		ctx := context.Background()
		require.NoError(t, store.Put(ctx, "user-1", KeySavedRosters, []byte(`[[]]`)))

		got, err := store.Get(ctx, "user-1", KeySavedRosters)
		require.NoError(t, err)
		assert.Equal(t, `[[]]`, string(got))
	})
}

func TestPutOverwrites(t *testing.T) {
	runTestsForAllStores(t, "PutOverwrites", func(t *testing.T, store Storer) {
		ctx := context.Background()
		require.NoError(t, store.Put(ctx, "user-1", KeyFavorites, []byte(`[1]`)))
		require.NoError(t, store.Put(ctx, "user-1", KeyFavorites, []byte(`[2]`)))

		got, err := store.Get(ctx, "user-1", KeyFavorites)
		require.NoError(t, err)
		assert.Equal(t, `[2]`, string(got))
	})
}

func TestRecordsAreScoped(t *testing.T) {
	runTestsForAllStores(t, "Scoped", func(t *testing.T, store Storer) {
		ctx := context.Background()
		require.NoError(t, store.Put(ctx, "user-1", KeyFavorites, []byte(`"a"`)))
		require.NoError(t, store.Put(ctx, "user-2", KeyFavorites, []byte(`"b"`)))
		require.NoError(t, store.Put(ctx, "user-1", KeyCurrentRoster, []byte(`"c"`)))

		got, err := store.Get(ctx, "user-2", KeyFavorites)
		require.NoError(t, err)
		assert.Equal(t, `"b"`, string(got))

		got, err = store.Get(ctx, "user-1", KeyFavorites)
		require.NoError(t, err)
		assert.Equal(t, `"a"`, string(got))

		_, err = store.Get(ctx, "user-2", KeyCurrentRoster)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	runTestsForAllStores(t, "Delete", func(t *testing.T, store Storer) {
		ctx := context.Background()
		require.NoError(t, store.Put(ctx, "user-1", KeyCurrentRoster, []byte(`{}`)))
		require.NoError(t, store.Delete(ctx, "user-1", KeyCurrentRoster))
		require.NoError(t, store.Delete(ctx, "user-1", KeyCurrentRoster))

		_, err := store.Get(ctx, "user-1", KeyCurrentRoster)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	value := []byte(`abc`)
	require.NoError(t, store.Put(ctx, "user-1", KeyFavorites, value))
	value[0] = 'x'

	got, err := store.Get(ctx, "user-1", KeyFavorites)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestSQLiteStorePersistsToFile(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/teamdex.sqlite3"

	store, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "user-1", KeyFavorites, []byte(`[]`)))
	require.NoError(t, store.Close())

	store, err = NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Get(ctx, "user-1", KeyFavorites)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestKeyNames(t *testing.T) {
	assert.Equal(t, []string{"currentRoster", "savedRosters", "favorites"}, KeyStrings())

	key, err := KeyString("savedRosters")
	require.NoError(t, err)
	assert.Equal(t, KeySavedRosters, key)

	_, err = KeyString("likedPokemon")
	assert.Error(t, err)
}
