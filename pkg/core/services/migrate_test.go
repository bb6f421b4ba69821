package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nyeinlwin/clubsched/pkg/core/model"
	"github.com/nyeinlwin/clubsched/pkg/store"
)

func TestMigrateBatches_BackfillsMissingFields(t *testing.T) {
	// Raw JSON the way an older schema version wrote it: no week kinds,
	// no status, missing sheet fields.
	raw := []byte(`[
		{
			"id": "Batch 1",
			"weeks": [
				{"topic": "AI", "roles": {"presenter": "m1"}},
				{"topic": "", "roles": null},
				{"roles": {"affirmative": ["m2"]}},
				{"roles": {}},
				{"roles": {}}
			]
		}
	]`)
	mock := newMockStore()
	mock.data[store.KeyBatches] = raw
	logger := zap.NewNop()
	ctx := context.Background()

	changed, err := MigrateBatches(ctx, mock, logger, testRoster())
	require.NoError(t, err)
	assert.True(t, changed)

	batches := storedBatches(t, mock)
	require.Len(t, batches, 1)
	b := batches[0]

	assert.Equal(t, model.BatchArchived, b.Status, "unknown status normalised")
	for i := 0; i < model.WeeksPerBatch-1; i++ {
		assert.Equal(t, model.WeekSession, b.Weeks[i].Kind, "week %d", i)
	}
	assert.Equal(t, model.WeekBreak, b.Weeks[model.WeeksPerBatch-1].Kind)

	for i, w := range b.Weeks {
		require.NotNil(t, w.Roles, "week %d", i)
		assert.NotNil(t, w.Roles.Affirmative, "week %d", i)
		assert.NotNil(t, w.Roles.OnLeave, "week %d", i)
		assert.NotNil(t, w.Roles.MasterLinks, "week %d", i)
	}
	assert.Equal(t, "m1", b.Weeks[0].Roles.Presenter, "existing data preserved")
	assert.Equal(t, []string{"m2"}, b.Weeks[2].Roles.Affirmative)
}

func TestMigrateBatches_RewritesLegacyNamesToIDs(t *testing.T) {
	raw := []byte(`[
		{
			"id": "Batch 1",
			"status": "active",
			"weeks": [
				{"kind": "session", "roles": {
					"presenter": "Aye",
					"host": "m2",
					"affirmative": ["Bo", "m3"],
					"negative": [],
					"onLeave": ["cho"],
					"masterLinks": {}
				}},
				{"kind": "session", "roles": {"affirmative": [], "negative": [], "onLeave": [], "masterLinks": {}}},
				{"kind": "session", "roles": {"affirmative": [], "negative": [], "onLeave": [], "masterLinks": {}}},
				{"kind": "session", "roles": {"affirmative": [], "negative": [], "onLeave": [], "masterLinks": {}}},
				{"kind": "break", "roles": {"affirmative": [], "negative": [], "onLeave": [], "masterLinks": {}}}
			]
		}
	]`)
	mock := newMockStore()
	mock.data[store.KeyBatches] = raw
	logger := zap.NewNop()
	ctx := context.Background()

	changed, err := MigrateBatches(ctx, mock, logger, testRoster())
	require.NoError(t, err)
	assert.True(t, changed)

	sheet := storedBatches(t, mock)[0].Weeks[0].Roles
	assert.Equal(t, "m1", sheet.Presenter, "legacy name rewritten")
	assert.Equal(t, "m2", sheet.Host, "existing ID untouched")
	assert.Equal(t, []string{"m2", "m3"}, sheet.Affirmative)
	assert.Equal(t, []string{"m3"}, sheet.OnLeave, "name matching is case-insensitive")
}

func TestMigrateBatches_UnmatchedNamesLeftAlone(t *testing.T) {
	b := model.NewBatch("Batch 1", nil)
	b.Weeks[0].Roles.Presenter = "Unknown Person"
	mock := newMockStore()
	seedBatches(t, mock, []*model.Batch{b})

	changed, err := MigrateBatches(context.Background(), mock, zap.NewNop(), testRoster())
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "Unknown Person", storedBatches(t, mock)[0].Weeks[0].Roles.Presenter)
}

func TestMigrateBatches_NoChangeSkipsSave(t *testing.T) {
	mock := newMockStore()
	seedBatches(t, mock, []*model.Batch{model.NewBatch("Batch 1", nil)})
	before := mock.saves

	changed, err := MigrateBatches(context.Background(), mock, zap.NewNop(), testRoster())
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, before, mock.saves, "clean data not rewritten")
}

func TestMigrateBatches_Idempotent(t *testing.T) {
	raw := []byte(`[{"id": "Batch 1", "weeks": [{"roles": {"presenter": "Aye"}}, {}, {}, {}, {}]}]`)
	mock := newMockStore()
	mock.data[store.KeyBatches] = raw
	logger := zap.NewNop()
	ctx := context.Background()

	changed, err := MigrateBatches(ctx, mock, logger, testRoster())
	require.NoError(t, err)
	require.True(t, changed)
	first := make(json.RawMessage, len(mock.data[store.KeyBatches]))
	copy(first, mock.data[store.KeyBatches])

	changed, err = MigrateBatches(ctx, mock, logger, testRoster())
	require.NoError(t, err)
	assert.False(t, changed)
	assert.JSONEq(t, string(first), string(mock.data[store.KeyBatches]))
}
