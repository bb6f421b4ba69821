package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nyeinlwin/clubsched/pkg/core/model"
	"github.com/nyeinlwin/clubsched/pkg/store"
)

// ErrWeekOutOfRange reports a week index outside the batch.
var ErrWeekOutOfRange = errors.New("week index out of range")

// mutateWeek loads the batch collection, applies fn to the addressed week,
// and persists the whole collection back. The unit of persistence is always
// the entire batches blob.
func mutateWeek(ctx context.Context, s store.Store, batchID string, weekIdx int, fn func(*model.Week) error) error {
	batches, err := store.LoadBatches(ctx, s)
	if err != nil {
		return err
	}

	batch := FindBatch(batches, batchID)
	if batch == nil {
		return fmt.Errorf("%w: %s", ErrBatchNotFound, batchID)
	}
	if weekIdx < 0 || weekIdx >= len(batch.Weeks) {
		return fmt.Errorf("%w: %d", ErrWeekOutOfRange, weekIdx)
	}

	if err := fn(batch.Weeks[weekIdx]); err != nil {
		return err
	}

	return store.SaveBatches(ctx, s, batches)
}

// SetTopic records the debate topic for a week.
func SetTopic(ctx context.Context, s store.Store, logger *zap.Logger, batchID string, weekIdx int, topic string) error {
	err := mutateWeek(ctx, s, batchID, weekIdx, func(w *model.Week) error {
		w.Topic = topic
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("Topic set", zap.String("batch", batchID), zap.Int("week", weekIdx))
	return nil
}

// SetAudienceCount records the final guest attendance for a session.
func SetAudienceCount(ctx context.Context, s store.Store, logger *zap.Logger, batchID string, weekIdx int, count int) error {
	if count < 0 {
		return fmt.Errorf("audience count must not be negative, got %d", count)
	}
	err := mutateWeek(ctx, s, batchID, weekIdx, func(w *model.Week) error {
		w.AudienceCount = count
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("Audience count set",
		zap.String("batch", batchID), zap.Int("week", weekIdx), zap.Int("count", count))
	return nil
}

// ResetWeek replaces the week's role sheet with the empty template.
func ResetWeek(ctx context.Context, s store.Store, logger *zap.Logger, batchID string, weekIdx int) error {
	err := mutateWeek(ctx, s, batchID, weekIdx, func(w *model.Week) error {
		w.Roles = model.NewRoleSheet()
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("Week reset", zap.String("batch", batchID), zap.Int("week", weekIdx))
	return nil
}

// SetMasterLink writes one of the fixed-slot resource URLs. An empty URL
// clears the slot.
func SetMasterLink(ctx context.Context, s store.Store, logger *zap.Logger, batchID string, weekIdx int, slot, url string) error {
	known := false
	for _, k := range model.MasterLinkSlots {
		if k == slot {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown master link slot %q", slot)
	}

	return mutateWeek(ctx, s, batchID, weekIdx, func(w *model.Week) error {
		if w.Roles.MasterLinks == nil {
			w.Roles.MasterLinks = map[string]string{}
		}
		w.Roles.MasterLinks[slot] = url
		return nil
	})
}

// AddLink appends a custom resource link to a week.
func AddLink(ctx context.Context, s store.Store, logger *zap.Logger, batchID string, weekIdx int, link model.Link) error {
	if link.URL == "" {
		return fmt.Errorf("link URL must not be empty")
	}
	return mutateWeek(ctx, s, batchID, weekIdx, func(w *model.Week) error {
		w.Links = append(w.Links, link)
		return nil
	})
}
