package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/nyeinlwin/clubsched/pkg/core/model"
	"github.com/nyeinlwin/clubsched/pkg/store"
)

// CatalogLink is one entry of the flattened resource catalog: a master-slot
// URL or a custom link, tagged with the batch and week it came from.
type CatalogLink struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
	Context  string `json:"context"`
	Topic    string `json:"topic"`
	BatchID  string `json:"batchId"`
	WeekIdx  int    `json:"weekIdx"`
	Key      string `json:"key"`
	Master   bool   `json:"master"`
}

// masterLinkMeta maps the fixed master-link slots to their catalog titles
// and categories.
var masterLinkMeta = map[string]struct {
	Title    string
	Category string
}{
	"zoomLink":       {"Meeting Link", "Meeting"},
	"membershipForm": {"Membership Form", "Feedback"},
	"topicSlides":    {"Topic Slides", "Presentation"},
	"introSlides":    {"Intro Slides", "Intro"},
	"formatSlides":   {"Format Slides", "Format"},
	"zoomBackground": {"Zoom Background", "Meeting"},
	"feedbackForm":   {"Feedback Form", "Feedback"},
	"sotdLink":       {"SOTD Canva", "Presentation"},
}

// CollectLinks flattens every batch's master and custom links into one
// catalog, newest batch first.
func CollectLinks(batches []*model.Batch) []CatalogLink {
	var links []CatalogLink

	for _, batch := range batches {
		for idx, week := range batch.Weeks {
			if week == nil {
				continue
			}

			contextStr := fmt.Sprintf("%s • Week %d", batch.ID, idx+1)
			topic := week.Topic
			if topic == "" {
				topic = "No Topic Set"
			}

			if week.Roles != nil {
				for _, slot := range model.MasterLinkSlots {
					url := strings.TrimSpace(week.Roles.MasterLinks[slot])
					if url == "" {
						continue
					}
					meta := masterLinkMeta[slot]
					links = append(links, CatalogLink{
						Title:    meta.Title,
						URL:      url,
						Category: meta.Category,
						Context:  contextStr,
						Topic:    topic,
						BatchID:  batch.ID,
						WeekIdx:  idx,
						Key:      slot,
						Master:   true,
					})
				}
			}

			for _, lk := range week.Links {
				title := lk.Title
				if title == "" {
					title = "Custom Link"
				}
				category := lk.Category
				if category == "" {
					category = "General"
				}
				links = append(links, CatalogLink{
					Title:    title,
					URL:      lk.URL,
					Category: category,
					Context:  contextStr,
					Topic:    topic,
					BatchID:  batch.ID,
					WeekIdx:  idx,
					Key:      lk.URL,
					Master:   false,
				})
			}
		}
	}

	// Newest first.
	slices.Reverse(links)
	return links
}

// FilterLinks narrows the catalog by a case-insensitive search term
// (matched against title, context, and topic) and a category ("all" or ""
// matches every category).
func FilterLinks(links []CatalogLink, term, category string) []CatalogLink {
	term = strings.ToLower(term)
	out := make([]CatalogLink, 0, len(links))
	for _, lk := range links {
		if term != "" &&
			!strings.Contains(strings.ToLower(lk.Title), term) &&
			!strings.Contains(strings.ToLower(lk.Context), term) &&
			!strings.Contains(strings.ToLower(lk.Topic), term) {
			continue
		}
		if category != "" && category != "all" && lk.Category != category {
			continue
		}
		out = append(out, lk)
	}
	return out
}

// DeleteLink removes a link from its week's records: master links are
// blanked in place, custom links are removed by URL.
func DeleteLink(ctx context.Context, s store.Store, logger *zap.Logger, batchID string, weekIdx int, key string, master bool) error {
	err := mutateWeek(ctx, s, batchID, weekIdx, func(w *model.Week) error {
		if master {
			if w.Roles != nil && w.Roles.MasterLinks != nil {
				w.Roles.MasterLinks[key] = ""
			}
			return nil
		}
		kept := w.Links[:0]
		for _, lk := range w.Links {
			if lk.URL != key {
				kept = append(kept, lk)
			}
		}
		w.Links = kept
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("Link removed",
		zap.String("batch", batchID), zap.Int("week", weekIdx),
		zap.String("key", key), zap.Bool("master", master))
	return nil
}
