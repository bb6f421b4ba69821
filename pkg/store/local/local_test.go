package local

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveAndLoad(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	blob := json.RawMessage(`[{"id":"m1","name":"Aye"}]`)
	require.NoError(t, s.Save(ctx, "members", blob))

	got, err := s.Load(ctx, "members")
	require.NoError(t, err)
	assert.Equal(t, blob, got)
}

func TestStore_MissingKeyIsNil(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	got, err := s.Load(context.Background(), "batches")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_SaveReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "members", json.RawMessage(`["old"]`)))
	require.NoError(t, s.Save(ctx, "members", json.RawMessage(`["new"]`)))

	got, err := s.Load(ctx, "members")
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(`["new"]`), got)

	// The temp file used for the atomic write never survives.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "members.json", entries[0].Name())
}

func TestNew_CreatesNestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "clubsched")
	_, err := New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
