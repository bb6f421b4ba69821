package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nyeinlwin/clubsched/pkg/core/model"
)

func linkFixture() []*model.Batch {
	b1 := model.NewBatch("Batch 1", nil)
	b1.Status = model.BatchArchived
	b1.Weeks[0].Topic = "School uniforms"
	b1.Weeks[0].Roles.MasterLinks["zoomLink"] = "https://zoom.example/111"
	b1.Weeks[1].Links = []model.Link{
		{Title: "Rebuttal guide", URL: "https://docs.example/rebuttal", Category: "Guides"},
	}

	b2 := model.NewBatch("Batch 2", nil)
	b2.Weeks[0].Roles.MasterLinks["topicSlides"] = "https://slides.example/topic"
	b2.Weeks[2].Links = []model.Link{{URL: "https://misc.example/untitled"}}
	return []*model.Batch{b1, b2}
}

func TestCollectLinks_FlattensNewestFirst(t *testing.T) {
	links := CollectLinks(linkFixture())
	require.Len(t, links, 4)

	// Batch 2 entries come first.
	assert.Equal(t, "Batch 2", links[0].BatchID)
	assert.Equal(t, "Batch 2", links[1].BatchID)
	assert.Equal(t, "Batch 1", links[2].BatchID)
	assert.Equal(t, "Batch 1", links[3].BatchID)
}

func TestCollectLinks_MasterSlotMetadata(t *testing.T) {
	links := CollectLinks(linkFixture())

	var zoom *CatalogLink
	for i := range links {
		if links[i].Key == "zoomLink" {
			zoom = &links[i]
		}
	}
	require.NotNil(t, zoom)
	assert.Equal(t, "Meeting Link", zoom.Title)
	assert.Equal(t, "Meeting", zoom.Category)
	assert.Equal(t, "Batch 1 • Week 1", zoom.Context)
	assert.Equal(t, "School uniforms", zoom.Topic)
	assert.True(t, zoom.Master)
}

func TestCollectLinks_CustomLinkDefaults(t *testing.T) {
	links := CollectLinks(linkFixture())

	var custom *CatalogLink
	for i := range links {
		if links[i].URL == "https://misc.example/untitled" {
			custom = &links[i]
		}
	}
	require.NotNil(t, custom)
	assert.Equal(t, "Custom Link", custom.Title)
	assert.Equal(t, "General", custom.Category)
	assert.Equal(t, "No Topic Set", custom.Topic)
	assert.False(t, custom.Master)
}

func TestFilterLinks(t *testing.T) {
	links := CollectLinks(linkFixture())

	byTerm := FilterLinks(links, "uniforms", "")
	require.Len(t, byTerm, 1)
	assert.Equal(t, "zoomLink", byTerm[0].Key)

	byCategory := FilterLinks(links, "", "Guides")
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Rebuttal guide", byCategory[0].Title)

	assert.Len(t, FilterLinks(links, "", "all"), 4)
	assert.Empty(t, FilterLinks(links, "nomatch", ""))
}

func TestDeleteLink_MasterBlankedCustomRemoved(t *testing.T) {
	mock := newMockStore()
	seedBatches(t, mock, linkFixture())
	logger := zap.NewNop()
	ctx := context.Background()

	require.NoError(t, DeleteLink(ctx, mock, logger, "Batch 1", 0, "zoomLink", true))
	require.NoError(t, DeleteLink(ctx, mock, logger, "Batch 1", 1, "https://docs.example/rebuttal", false))

	stored := storedBatches(t, mock)
	assert.Equal(t, "", stored[0].Weeks[0].Roles.MasterLinks["zoomLink"])
	assert.Empty(t, stored[0].Weeks[1].Links)
}
