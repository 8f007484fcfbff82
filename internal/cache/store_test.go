package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postMint/internal/model"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "user_coins_0xAbC", Key("0xAbC"))
}

func TestParseBackend(t *testing.T) {
	for _, name := range []string{"memory", "FILE", " bolt ", "postgres"} {
		_, err := ParseBackend(name)
		assert.NoError(t, err, name)
	}
	backend, err := ParseBackend("")
	require.NoError(t, err)
	assert.Equal(t, BackendFile, backend)

	_, err = ParseBackend("redis")
	assert.Error(t, err)
}

func testStoreContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "k1", "v1"))
	require.NoError(t, store.Set(ctx, "k2", "v2"))
	require.NoError(t, store.Set(ctx, "k1", "v1b"))

	value, ok, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v1b", value)

	value, ok, err = store.Get(ctx, "k2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", value)
}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache.json")
	testStoreContract(t, &FileStore{Path: path})

	reopened := &FileStore{Path: path}
	value, ok, err := reopened.Get(context.Background(), "k2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", value)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "tmp file should be renamed away")
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, _, err := (&FileStore{Path: path}).Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestBoltStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	store, err := OpenBoltStore(path)
	require.NoError(t, err)
	testStoreContract(t, store)
	require.NoError(t, store.Close())

	reopened, err := OpenBoltStore(path)
	require.NoError(t, err)
	defer reopened.Close()
	value, ok, err := reopened.Get(context.Background(), "k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v1b", value)
}

func TestOpenMemoryAndFile(t *testing.T) {
	ctx := context.Background()

	store, closeFn, err := Open(ctx, Options{Backend: BackendMemory}, nil)
	require.NoError(t, err)
	closeFn()
	assert.IsType(t, &MemoryStore{}, store)

	_, _, err = Open(ctx, Options{Backend: BackendFile}, nil)
	assert.Error(t, err, "file backend without path")

	store, closeFn, err = Open(ctx, Options{Backend: BackendBolt, Path: filepath.Join(t.TempDir(), "c.db")}, nil)
	require.NoError(t, err)
	assert.IsType(t, &BoltStore{}, store)
	closeFn()
}

func TestRecordsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	records, err := LoadRecords(ctx, store, "0xC1")
	require.NoError(t, err)
	assert.Empty(t, records)

	want := []model.TokenRecord{
		{ID: "a", Address: "0xaa", CreatorAddress: "0xC1"},
		{ID: "b", Address: "0xbb", CreatorAddress: "0xc1"},
	}
	require.NoError(t, SaveRecords(ctx, store, "0xC1", want))

	got, err := LoadRecords(ctx, store, "0xC1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	raw, ok, err := store.Get(ctx, "user_coins_0xC1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"creatorAddress":"0xC1"`)
}

func TestLoadRecordsCorrupt(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, Key("0xC1"), "[{broken"))

	_, err := LoadRecords(ctx, store, "0xC1")
	assert.True(t, errors.Is(err, ErrCorrupt))
}
