package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nyeinlwin/clubsched/pkg/core/model"
)

func TestSetTopic(t *testing.T) {
	mock := newMockStore()
	seedBatches(t, mock, []*model.Batch{model.NewBatch("Batch 1", nil)})
	logger := zap.NewNop()
	ctx := context.Background()

	require.NoError(t, SetTopic(ctx, mock, logger, "Batch 1", 2, "Social media bans"))
	assert.Equal(t, "Social media bans", storedBatches(t, mock)[0].Weeks[2].Topic)
}

func TestSetAudienceCount_RejectsNegative(t *testing.T) {
	mock := newMockStore()
	seedBatches(t, mock, []*model.Batch{model.NewBatch("Batch 1", nil)})
	logger := zap.NewNop()
	ctx := context.Background()

	require.NoError(t, SetAudienceCount(ctx, mock, logger, "Batch 1", 0, 17))
	assert.Equal(t, 17, storedBatches(t, mock)[0].Weeks[0].AudienceCount)

	err := SetAudienceCount(ctx, mock, logger, "Batch 1", 0, -1)
	assert.Error(t, err)
}

func TestResetWeek_ReplacesSheet(t *testing.T) {
	mock := newMockStore()
	b := model.NewBatch("Batch 1", nil)
	b.Weeks[1].Roles.Presenter = "m1"
	b.Weeks[1].Roles.OnLeave = []string{"m2"}
	seedBatches(t, mock, []*model.Batch{b})
	logger := zap.NewNop()
	ctx := context.Background()

	require.NoError(t, ResetWeek(ctx, mock, logger, "Batch 1", 1))

	sheet := storedBatches(t, mock)[0].Weeks[1].Roles
	assert.Equal(t, "", sheet.Presenter)
	assert.Empty(t, sheet.OnLeave)
}

func TestSetMasterLink_UnknownSlotRejected(t *testing.T) {
	mock := newMockStore()
	seedBatches(t, mock, []*model.Batch{model.NewBatch("Batch 1", nil)})
	logger := zap.NewNop()
	ctx := context.Background()

	require.NoError(t, SetMasterLink(ctx, mock, logger, "Batch 1", 0, "zoomLink", "https://zoom.example/1"))
	assert.Equal(t, "https://zoom.example/1",
		storedBatches(t, mock)[0].Weeks[0].Roles.MasterLinks["zoomLink"])

	err := SetMasterLink(ctx, mock, logger, "Batch 1", 0, "randomSlot", "https://x.example")
	assert.Error(t, err)
}

func TestAddLink_RequiresURL(t *testing.T) {
	mock := newMockStore()
	seedBatches(t, mock, []*model.Batch{model.NewBatch("Batch 1", nil)})
	logger := zap.NewNop()
	ctx := context.Background()

	require.NoError(t, AddLink(ctx, mock, logger, "Batch 1", 0, model.Link{Title: "Notes", URL: "https://docs.example/n"}))
	require.Len(t, storedBatches(t, mock)[0].Weeks[0].Links, 1)

	err := AddLink(ctx, mock, logger, "Batch 1", 0, model.Link{Title: "No URL"})
	assert.Error(t, err)
}

func TestMutateWeek_Errors(t *testing.T) {
	mock := newMockStore()
	seedBatches(t, mock, []*model.Batch{model.NewBatch("Batch 1", nil)})
	logger := zap.NewNop()
	ctx := context.Background()

	err := SetTopic(ctx, mock, logger, "Batch 9", 0, "x")
	assert.ErrorIs(t, err, ErrBatchNotFound)

	err = SetTopic(ctx, mock, logger, "Batch 1", 9, "x")
	assert.ErrorIs(t, err, ErrWeekOutOfRange)
}
