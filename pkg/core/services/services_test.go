package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nyeinlwin/clubsched/pkg/core/model"
	"github.com/nyeinlwin/clubsched/pkg/store"
)

// mockStore implements a test double for store.Store backed by a map.
type mockStore struct {
	data    map[string]json.RawMessage
	loadErr error
	saveErr error
	saves   int
}

func newMockStore() *mockStore {
	return &mockStore{data: map[string]json.RawMessage{}}
}

func (m *mockStore) Load(ctx context.Context, key string) (json.RawMessage, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	raw, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return raw, nil
}

func (m *mockStore) Save(ctx context.Context, key string, value json.RawMessage) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.data[key] = value
	return nil
}

func seedMembers(t *testing.T, m *mockStore, members []model.Member) {
	t.Helper()
	raw, err := json.Marshal(members)
	require.NoError(t, err)
	m.data[store.KeyMembers] = raw
}

func seedBatches(t *testing.T, m *mockStore, batches []*model.Batch) {
	t.Helper()
	raw, err := json.Marshal(batches)
	require.NoError(t, err)
	m.data[store.KeyBatches] = raw
}

func storedBatches(t *testing.T, m *mockStore) []*model.Batch {
	t.Helper()
	var batches []*model.Batch
	require.NoError(t, json.Unmarshal(m.data[store.KeyBatches], &batches))
	return batches
}

func storedMembers(t *testing.T, m *mockStore) []model.Member {
	t.Helper()
	var members []model.Member
	require.NoError(t, json.Unmarshal(m.data[store.KeyMembers], &members))
	return members
}

func testRoster() []model.Member {
	return []model.Member{
		{ID: "m1", Name: "Aye"},
		{ID: "m2", Name: "Bo"},
		{ID: "m3", Name: "Cho"},
	}
}
