// Package store defines the key-value JSON blob boundary the application
// persists through. The unit of storage is a whole collection per key;
// writes replace the blob entirely, so concurrent savers are last-write-
// wins.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nyeinlwin/clubsched/pkg/core/model"
)

// Keys used by the application.
const (
	KeyMembers = "members"
	KeyBatches = "batches"
)

// Store is a key-value JSON blob store.
type Store interface {
	// Load fetches the blob at key. A missing key returns (nil, nil).
	Load(ctx context.Context, key string) (json.RawMessage, error)
	// Save upserts the entire blob at key.
	Save(ctx context.Context, key string, value json.RawMessage) error
}

// LoadMembers loads the roster, returning nil when the key is absent.
func LoadMembers(ctx context.Context, s Store) ([]model.Member, error) {
	raw, err := s.Load(ctx, KeyMembers)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	var members []model.Member
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, fmt.Errorf("failed to decode members: %w", err)
	}
	return members, nil
}

// SaveMembers replaces the roster blob.
func SaveMembers(ctx context.Context, s Store, members []model.Member) error {
	raw, err := json.Marshal(members)
	if err != nil {
		return fmt.Errorf("failed to encode members: %w", err)
	}
	if err := s.Save(ctx, KeyMembers, raw); err != nil {
		return fmt.Errorf("failed to save members: %w", err)
	}
	return nil
}

// LoadBatches loads the batch collection, returning nil when absent.
func LoadBatches(ctx context.Context, s Store) ([]*model.Batch, error) {
	raw, err := s.Load(ctx, KeyBatches)
	if err != nil {
		return nil, fmt.Errorf("failed to load batches: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	var batches []*model.Batch
	if err := json.Unmarshal(raw, &batches); err != nil {
		return nil, fmt.Errorf("failed to decode batches: %w", err)
	}
	return batches, nil
}

// SaveBatches replaces the whole batch collection blob.
func SaveBatches(ctx context.Context, s Store, batches []*model.Batch) error {
	raw, err := json.Marshal(batches)
	if err != nil {
		return fmt.Errorf("failed to encode batches: %w", err)
	}
	if err := s.Save(ctx, KeyBatches, raw); err != nil {
		return fmt.Errorf("failed to save batches: %w", err)
	}
	return nil
}
