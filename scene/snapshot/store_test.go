package snapshot_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/arscene/scene/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snapshots")
	store := snapshot.NewFileStore(dir)

	t.Run("missing key", func(t *testing.T) {
		_, err := store.Load("absent")
		assert.ErrorIs(t, err, snapshot.ErrNotFound)
	})

	t.Run("save then load", func(t *testing.T) {
		require.NoError(t, store.Save("scene", []byte{1, 2, 3}))
		data, err := store.Load("scene")
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3}, data)
	})

	t.Run("overwrite leaves no temp files", func(t *testing.T) {
		require.NoError(t, store.Save("scene", []byte{4}))
		data, err := store.Load("scene")
		require.NoError(t, err)
		assert.Equal(t, []byte{4}, data)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "scene.snap", entries[0].Name())
	})

	t.Run("rejects path keys", func(t *testing.T) {
		for _, key := range []string{"", "..", "a/b", `a\b`} {
			assert.ErrorIs(t, store.Save(key, nil), snapshot.ErrInvalidKey, key)
			_, err := store.Load(key)
			assert.ErrorIs(t, err, snapshot.ErrInvalidKey, key)
		}
	})
}

func TestMemoryStoreCopies(t *testing.T) {
	store := snapshot.NewMemoryStore()
	data := []byte{1, 2}
	require.NoError(t, store.Save("k", data))
	data[0] = 9

	got, err := store.Load("k")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, got)
}
