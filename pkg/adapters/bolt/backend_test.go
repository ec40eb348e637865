package bolt_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/adapters/bolt"
	"github.com/aretw0/jot/pkg/core"
)

func open(t *testing.T, cfg bolt.Config) *bolt.Backend {
	t.Helper()
	if cfg.Path == "" {
		cfg.Path = filepath.Join(t.TempDir(), "jot.db")
	}
	b, err := bolt.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestBackend_GetSet(t *testing.T) {
	ctx := context.Background()
	b := open(t, bolt.Config{})

	_, ok, err := b.Get(ctx, "jot.notes")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Set(ctx, "jot.notes", "[]"))
	require.NoError(t, b.Set(ctx, "jot.notes", `[{"id":"a"}]`))

	v, ok, err := b.Get(ctx, "jot.notes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"a"}]`, v)

	keys, err := b.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"jot.notes"}, keys)

	require.NoError(t, b.Remove(ctx, "jot.notes"))
	_, ok, err = b.Get(ctx, "jot.notes")
	require.NoError(t, err)
	assert.False(t, ok)

	st := b.State().(bolt.BackendState)
	assert.Equal(t, int64(2), st.Writes)
	assert.Equal(t, bolt.DefaultBucket, st.Bucket)
}

func TestBackend_Quota(t *testing.T) {
	ctx := context.Background()
	b := open(t, bolt.Config{Quota: 4})

	require.NoError(t, b.Set(ctx, "k", "abcd"))
	assert.ErrorIs(t, b.Set(ctx, "k", "abcde"), core.ErrQuotaExceeded)

	v, _, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abcd", v)
}

func TestBackend_LockedByAnotherHandle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jot.db")
	open(t, bolt.Config{Path: path})

	_, err := bolt.Open(bolt.Config{Path: path, Timeout: 50 * time.Millisecond})
	assert.Error(t, err)
}

func TestBackend_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "jot.db")

	b, err := bolt.Open(bolt.Config{Path: path})
	require.NoError(t, err)
	store := core.NewStore(b, core.Config{})
	require.NoError(t, store.Load(ctx))
	n, err := store.Create(ctx, core.Draft{Title: "bolted"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened := open(t, bolt.Config{Path: path})
	again := core.NewStore(reopened, core.Config{})
	require.NoError(t, again.Load(ctx))
	got, err := again.Get(n.ID)
	require.NoError(t, err)
	assert.Equal(t, "bolted", got.Title)
}
