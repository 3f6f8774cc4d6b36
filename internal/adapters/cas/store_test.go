package cas_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lessen/internal/adapters/cas"
	"go.trai.ch/lessen/internal/core/domain"
)

func TestStore_SetGet(t *testing.T) {
	t.Parallel()

	store := cas.NewStoreWithPath(t.TempDir())

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, store.Set("less_/css/main.less@1", []byte("body{}"), 0))

		got, ok, err := store.Get("less_/css/main.less@1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("body{}"), got)
	})

	t.Run("get missing", func(t *testing.T) {
		t.Parallel()
		got, ok, err := store.Get("missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("overwrite", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, store.Set("k2", []byte("a"), 0))
		require.NoError(t, store.Set("k2", []byte("b"), 0))

		got, ok, err := store.Get("k2")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("b"), got)
	})
}

func TestStore_Expiry(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1_000_000)
	store := cas.NewStoreWithPath(t.TempDir(),
		cas.WithTTL(time.Minute),
		cas.WithClock(func() time.Time { return now }),
	)

	require.NoError(t, store.Set("default", []byte("x"), 0))
	require.NoError(t, store.Set("short", []byte("y"), time.Second))

	_, ok, err := store.Get("short")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok, err = store.Get("short")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = store.Get("default")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok, err = store.Get("default")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_Corrupt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := cas.NewStoreWithPath(dir)
	require.NoError(t, store.Set("k", []byte("v"), 0))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	err = os.WriteFile(filepath.Join(dir, entries[0].Name()), []byte("{ invalid json"), domain.PrivateFilePerm)
	require.NoError(t, err)

	_, _, err = store.Get("k")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrStoreUnmarshalFailed.Error())
}

func TestStore_Purge(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := cas.NewStore(root)
	assert.Equal(t, filepath.Join(root, ".lessen", "store"), store.Dir())

	require.NoError(t, store.Set("k", []byte("v"), 0))
	require.NoError(t, store.Purge())

	_, ok, err := store.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = os.Stat(store.Dir())
	assert.True(t, os.IsNotExist(err))
}
