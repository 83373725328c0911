package document

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	storage := NewLocalStorage(t.TempDir())
	ctx := context.Background()

	_, err := storage.Store(ctx, []byte("hello"), "2026/08/doc.pdf")
	assert.NoError(t, err)

	data, err := storage.Load(ctx, "2026/08/doc.pdf")
	assert.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	err = storage.Remove(ctx, "2026/08/doc.pdf")
	assert.NoError(t, err)

	_, err = storage.Load(ctx, "2026/08/doc.pdf")
	assert.Error(t, err)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	base := t.TempDir()
	storage := NewLocalStorage(base)
	ctx := context.Background()

	// Clean("/"+path) strips the "..", so the write lands inside the base
	// directory rather than next to it.
	_, err := storage.Store(ctx, []byte("x"), "../escape.txt")
	assert.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(base, "escape.txt"))
	assert.NoError(t, statErr)
	_, outsideErr := os.Stat(filepath.Join(filepath.Dir(base), "escape.txt"))
	assert.True(t, os.IsNotExist(outsideErr))
}
