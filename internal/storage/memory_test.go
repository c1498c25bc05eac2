package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PutCopyDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("http://files.local")

	require.NoError(t, store.Put(ctx, "a/one.txt", strings.NewReader("hello"), 5, "text/plain"))
	ok, err := store.Exists(ctx, "a/one.txt")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Copy(ctx, "a/one.txt", "b/two.txt"))
	data, ok := store.Get("b/two.txt")
	require.True(t, ok)
	assert.Equal(t, "hello", string(data))
	assert.Equal(t, []string{"a/one.txt", "b/two.txt"}, store.Keys())

	require.NoError(t, store.Delete(ctx, "a/one.txt"))
	ok, _ = store.Exists(ctx, "a/one.txt")
	assert.False(t, ok)

	err = store.Copy(ctx, "missing", "x")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestMemoryStore_URLs(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("http://files.local")

	assert.Equal(t, "http://files.local/42/f.mp4", store.URL("42/f.mp4"))

	_, err := store.PresignedURL(ctx, "42/f.mp4", time.Minute)
	assert.ErrorIs(t, err, ErrObjectNotFound)

	require.NoError(t, store.Put(ctx, "42/f.mp4", strings.NewReader("x"), 1, "video/mp4"))
	u, err := store.PresignedURL(ctx, "42/f.mp4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "http://files.local/42/f.mp4?expires=60", u)
}

func TestMemoryStore_FailPut(t *testing.T) {
	store := NewMemoryStore("")
	store.FailPut = func(key string) error { return errors.New("disk full") }

	err := store.Put(context.Background(), "k", strings.NewReader("x"), 1, "")
	assert.EqualError(t, err, "disk full")
	assert.Empty(t, store.Keys())
}

func TestMemoryStore_FailCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("")
	require.NoError(t, store.Put(ctx, "a", strings.NewReader("x"), 1, ""))
	store.FailCopy = func(src, dst string) error { return errors.New("copy failed") }

	assert.EqualError(t, store.Copy(ctx, "a", "b"), "copy failed")
	assert.Equal(t, []string{"a"}, store.Keys())
}
