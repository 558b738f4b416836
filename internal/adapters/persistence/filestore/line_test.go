package filestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLine(t *testing.T) *LineStore {
	t.Helper()
	return NewLineStore(filepath.Join(t.TempDir(), "recs.txt"))
}

func TestLineStoreAutoCreatesEmpty(t *testing.T) {
	store := newTestLine(t)

	recs, err := store.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, recs)

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestLineStoreRoundTrip(t *testing.T) {
	store := newTestLine(t)

	err := store.Update(func(recs []Record) ([]Record, error) {
		return append(recs, Record{"name": "juan", "session": true}), nil
	})
	require.NoError(t, err)

	recs, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "juan", recs[0]["name"])
	assert.Equal(t, true, recs[0]["session"])
}

func TestLineStorePreservesUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recs.txt")
	seed := `{"name":"juan","password":"x","phone":"555-1234","tags":["vip"]}` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))

	store := NewLineStore(path)
	// touch one field, everything else must survive the rewrite
	err := store.Update(func(recs []Record) ([]Record, error) {
		recs[0]["session"] = true
		return recs, nil
	})
	require.NoError(t, err)

	recs, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "555-1234", recs[0]["phone"])
	assert.Equal(t, []any{"vip"}, recs[0]["tags"])
	assert.Equal(t, true, recs[0]["session"])
}

func TestLineStoreSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recs.txt")
	seed := "{\"name\":\"a\"}\n\n   \n{\"name\":\"b\"}\n"
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))

	recs, err := NewLineStore(path).LoadAll()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "a", recs[0]["name"])
	assert.Equal(t, "b", recs[1]["name"])
}

func TestLineStoreCorruptLineFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recs.txt")
	require.NoError(t, os.WriteFile(path, []byte("{not json}\n"), 0o644))

	_, err := NewLineStore(path).LoadAll()
	assert.Error(t, err)
}
