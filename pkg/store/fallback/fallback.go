// Package fallback composes the remote store with the local cache. Saves
// hit the local cache synchronously and the remote store best-effort in the
// background; loads prefer the remote copy and degrade to the cache. A
// failed remote save is logged and otherwise ignored, so local and remote
// copies may diverge until the next successful save.
package fallback

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/nyeinlwin/clubsched/pkg/store"
)

// Store is a remote-first store with a local cache.
type Store struct {
	remote store.Store // nil for local-only operation
	local  store.Store
	logger *zap.Logger

	wg sync.WaitGroup
}

// New returns a composite store. remote may be nil, in which case all
// operations use the local cache only.
func New(remote, local store.Store, logger *zap.Logger) *Store {
	return &Store{
		remote: remote,
		local:  local,
		logger: logger,
	}
}

// Load fetches the blob at key from the remote store, falling back to the
// local cache when the remote read fails or misses. The fallback on a miss
// keeps data saved during local-only operation readable once an empty
// remote comes back up.
func (s *Store) Load(ctx context.Context, key string) (json.RawMessage, error) {
	if s.remote == nil {
		return s.local.Load(ctx, key)
	}

	raw, err := s.remote.Load(ctx, key)
	if err != nil {
		s.logger.Warn("remote load failed, using local cache",
			zap.String("key", key), zap.Error(err))
		return s.local.Load(ctx, key)
	}
	if raw == nil {
		return s.local.Load(ctx, key)
	}
	return raw, nil
}

// Save writes the local cache synchronously and fires the remote upsert in
// the background without awaiting it. Remote saves are not ordered against
// later edits; the last one to commit wins.
func (s *Store) Save(ctx context.Context, key string, value json.RawMessage) error {
	if err := s.local.Save(ctx, key, value); err != nil {
		return err
	}

	if s.remote == nil {
		return nil
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.remote.Save(context.Background(), key, value); err != nil {
			s.logger.Warn("remote save failed, local copy kept",
				zap.String("key", key), zap.Error(err))
		}
	}()

	return nil
}

// Close waits for in-flight remote saves to finish.
func (s *Store) Close() {
	s.wg.Wait()
}
