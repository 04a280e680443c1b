package ports

import (
	"context"

	"slotsense/domain/core"
	"slotsense/domain/snapshot"
)

// SnapshotRepository defines the interface for snapshot persistence
type SnapshotRepository interface {
	// Save stores a snapshot, replacing any snapshot with the same ID
	Save(ctx context.Context, s *snapshot.Snapshot) error

	// Get retrieves a snapshot by ID; a missing snapshot yields core.ErrSnapshotNotFound
	Get(ctx context.Context, id core.SnapshotID) (*snapshot.Snapshot, error)

	// List returns the newest snapshots first, at most limit of them (all when limit <= 0)
	List(ctx context.Context, limit int) ([]*snapshot.Snapshot, error)
}
