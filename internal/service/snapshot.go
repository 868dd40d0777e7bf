package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/techconf/scheduler/internal/monitoring"
	"github.com/techconf/scheduler/internal/snapshot"
)

// SnapshotStore persists and retrieves opaque state blobs.
type SnapshotStore interface {
	Save(ctx context.Context, state []byte) error
	LoadLatest(ctx context.Context) ([]byte, error)
}

// SaveSnapshot serializes the entire state and persists it. The write
// lock is held for the whole capture so the blob can never contain a
// torn mid-mutation state.
func (s *Scheduler) SaveSnapshot(ctx context.Context, store SnapshotStore) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := func() error {
		data, err := snapshot.Encode(s.store)
		if err != nil {
			return err
		}
		if err := store.Save(ctx, data); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		log.Info().Int("bytes", len(data)).Msg("snapshot saved")
		return nil
	}()
	monitoring.RecordOperation("save_snapshot", err)
	return err
}

// RestoreSnapshot loads the latest snapshot and replaces the entire
// in-memory state in one exclusive step. If decoding fails, the current
// state is left untouched.
func (s *Scheduler) RestoreSnapshot(ctx context.Context, store SnapshotStore) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := func() error {
		data, err := store.LoadLatest(ctx)
		if err != nil {
			return err
		}
		restored, err := snapshot.Decode(data)
		if err != nil {
			return err
		}
		s.store = restored
		monitoring.SetEventCount(s.store.Events.Len())
		log.Info().Int("events", s.store.Events.Len()).Msg("snapshot restored")
		return nil
	}()
	monitoring.RecordOperation("restore_snapshot", err)
	return err
}
