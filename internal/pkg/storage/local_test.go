package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageUploadAndExists(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()

	store, err := NewLocalStorage(base, "http://localhost:8080/uploads")
	require.NoError(t, err)

	key, err := store.Upload(ctx, strings.NewReader("attachment body"), "logbook/2025-06/report.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("logbook", "2025-06", "report.pdf"), key)

	exists, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	content, err := os.ReadFile(filepath.Join(base, key))
	require.NoError(t, err)
	assert.Equal(t, "attachment body", string(content))
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	_, err = store.Upload(ctx, strings.NewReader("x"), "../../etc/passwd")
	assert.Error(t, err)
}

func TestLocalStorageDelete(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	key, err := store.Upload(ctx, strings.NewReader("x"), "files/note.txt")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, key))

	exists, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(ctx, key))
}

func TestLocalStorageURL(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads/")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/uploads/files/a.png", store.URL("files/a.png"))
}
