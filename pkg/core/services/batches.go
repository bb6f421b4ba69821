package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/nyeinlwin/clubsched/pkg/core/model"
	"github.com/nyeinlwin/clubsched/pkg/store"
)

var (
	// ErrLastBatch refuses deletion of the only remaining batch.
	ErrLastBatch = errors.New("cannot delete the last batch")
	// ErrBatchNotFound reports an unknown batch ID.
	ErrBatchNotFound = errors.New("batch not found")
	// ErrBatchExists rejects a batch ID already in use.
	ErrBatchExists = errors.New("batch already exists")
)

// CreateBatch builds a new five-week batch, archives every existing batch,
// appends the new one as active, and persists the collection. dates may be
// nil; see SessionDates for computing them from a recurrence rule.
func CreateBatch(ctx context.Context, s store.Store, logger *zap.Logger, name string, dates []string) (*model.Batch, error) {
	if name == "" {
		return nil, fmt.Errorf("batch name must not be empty")
	}

	batches, err := store.LoadBatches(ctx, s)
	if err != nil {
		return nil, err
	}

	for _, b := range batches {
		if b.ID == name {
			return nil, fmt.Errorf("%w: %s", ErrBatchExists, name)
		}
	}

	// Single-active-batch invariant: creating a new batch archives all
	// others.
	for _, b := range batches {
		b.Status = model.BatchArchived
	}

	batch := model.NewBatch(name, dates)
	batches = append(batches, batch)

	if err := store.SaveBatches(ctx, s, batches); err != nil {
		return nil, err
	}

	logger.Info("Batch created",
		zap.String("id", batch.ID),
		zap.Int("weeks", len(batch.Weeks)),
		zap.Int("archived", len(batches)-1))
	return batch, nil
}

// DeleteBatch removes a batch from the collection. The last batch is
// undeletable; deleting the active batch promotes the most recently created
// remaining batch to active.
func DeleteBatch(ctx context.Context, s store.Store, logger *zap.Logger, batchID string) error {
	batches, err := store.LoadBatches(ctx, s)
	if err != nil {
		return err
	}

	if len(batches) <= 1 {
		return ErrLastBatch
	}

	idx := -1
	for i, b := range batches {
		if b.ID == batchID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrBatchNotFound, batchID)
	}

	wasActive := batches[idx].Status == model.BatchActive
	batches = append(batches[:idx], batches[idx+1:]...)

	if wasActive {
		hasActive := false
		for _, b := range batches {
			if b.Status == model.BatchActive {
				hasActive = true
				break
			}
		}
		if !hasActive {
			batches[len(batches)-1].Status = model.BatchActive
		}
	}

	if err := store.SaveBatches(ctx, s, batches); err != nil {
		return err
	}

	logger.Info("Batch deleted", zap.String("id", batchID), zap.Bool("was_active", wasActive))
	return nil
}

// ActiveBatch selects the active batch from the collection, falling back to
// the most recently created one. Returns nil on an empty collection.
func ActiveBatch(batches []*model.Batch) *model.Batch {
	for _, b := range batches {
		if b.Status == model.BatchActive {
			return b
		}
	}
	if len(batches) == 0 {
		return nil
	}
	return batches[len(batches)-1]
}

// FindBatch returns the batch with the given ID, or nil.
func FindBatch(batches []*model.Batch, id string) *model.Batch {
	for _, b := range batches {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// SessionDates computes the dates of a batch's weeks from a recurrence
// rule, starting at from. An empty rule yields nil dates (undated weeks).
func SessionDates(rruleStr string, from time.Time) ([]string, error) {
	if rruleStr == "" {
		return nil, nil
	}

	rule, err := rrule.StrToRRule(rruleStr)
	if err != nil {
		return nil, fmt.Errorf("invalid session rrule: %w", err)
	}
	rule.DTStart(time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC))

	iter := rule.Iterator()
	dates := make([]string, 0, model.WeeksPerBatch)
	for len(dates) < model.WeeksPerBatch {
		next, ok := iter()
		if !ok {
			break
		}
		dates = append(dates, next.Format("2006-01-02"))
	}
	if len(dates) < model.WeeksPerBatch {
		return nil, fmt.Errorf("session rrule yields only %d of %d dates", len(dates), model.WeeksPerBatch)
	}
	return dates, nil
}
