// file: storage/disk_test.go
package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreRoundTrip(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	payload := []byte("some file content")

	require.NoError(t, store.Save(ctx, "abc123.pdf", bytes.NewReader(payload)))

	reader, err := store.Open(ctx, "abc123.pdf")
	require.NoError(t, err)
	got, err := io.ReadAll(reader)
	require.NoError(t, reader.Close())
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	require.NoError(t, store.Remove(ctx, "abc123.pdf"))
	_, err = store.Open(ctx, "abc123.pdf")
	assert.Error(t, err)
}

func TestDiskStoreKeyConfinedToDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	// 带路径成分的 key 被压平成纯文件名，不会逃出存储目录
	require.NoError(t, store.Save(context.Background(), "../escape.txt", bytes.NewReader([]byte("x"))))

	_, err = os.Stat(filepath.Join(dir, "escape.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "escape.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewDiskStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
