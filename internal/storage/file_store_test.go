package storage

import (
	"context"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	t.Run("read before any write", func(t *testing.T) {
		_, err := fs.Read(ctx)
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})

	t.Run("write and read back", func(t *testing.T) {
		require.NoError(t, fs.Write(ctx, []byte(`{"startDate":"2026-02-02"}`)))
		data, err := fs.Read(ctx)
		require.NoError(t, err)
		assert.JSONEq(t, `{"startDate":"2026-02-02"}`, string(data))
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, fs.Write(ctx, []byte(`{"startDate":"2026-03-02"}`)))
		data, err := fs.Read(ctx)
		require.NoError(t, err)
		assert.JSONEq(t, `{"startDate":"2026-03-02"}`, string(data))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, fs.Delete(ctx))
		_, err := fs.Read(ctx)
		assert.ErrorIs(t, err, ErrDocumentNotFound)
		// deleting again is fine
		require.NoError(t, fs.Delete(ctx))
	})
}

func TestNewFileStore(t *testing.T) {
	_, err := NewFileStore("")
	require.Error(t, err)

	// a missing data dir gets created
	dataDir := path.Join(t.TempDir(), "nested", "data")
	fs, err := NewFileStore(dataDir)
	require.NoError(t, err)
	require.NoError(t, fs.Write(context.Background(), []byte(`{}`)))

	info, err := os.Stat(dataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
