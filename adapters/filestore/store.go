// Package filestore keeps snapshots as one JSON file each, the same format
// the export and import commands exchange.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"slotsense/domain/core"
	"slotsense/domain/snapshot"
	"slotsense/internal/errors"
	"slotsense/ports"
)

// Store implements ports.SnapshotRepository on a local directory
type Store struct {
	basePath string
}

var _ ports.SnapshotRepository = (*Store)(nil)

// New creates a store rooted at basePath, creating the directory if needed
func New(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, errors.StorageError(fmt.Sprintf("failed to create snapshot directory %s", basePath), err)
	}
	return &Store{basePath: basePath}, nil
}

// Dir returns the directory snapshots are written to
func (s *Store) Dir() string {
	return s.basePath
}

// Save writes the snapshot to <dir>/<FileName> through a temp file
func (s *Store) Save(ctx context.Context, snap *snapshot.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.WriteFile(snap); err != nil {
		return err
	}
	return nil
}

// WriteFile saves the snapshot and returns the path it was written to
func (s *Store) WriteFile(snap *snapshot.Snapshot) (string, error) {
	path := filepath.Join(s.basePath, snap.FileName())

	tmp, err := os.CreateTemp(s.basePath, ".snapshot-*")
	if err != nil {
		return "", errors.StorageError("failed to create temp file", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, snap); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", errors.StorageError("failed to flush snapshot", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", errors.StorageError(fmt.Sprintf("failed to write %s", path), err)
	}
	return path, nil
}

// Get finds the snapshot file by the ID in its name, then checks the stored ID
func (s *Store) Get(ctx context.Context, id core.SnapshotID) (*snapshot.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matches, err := filepath.Glob(filepath.Join(s.basePath, fmt.Sprintf("%s-*-%s.json", snapshot.FilePrefix, id)))
	if err != nil {
		return nil, errors.StorageError("failed to search snapshots", err)
	}
	for _, path := range matches {
		snap, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		if snap.ID == id {
			return snap, nil
		}
	}
	return nil, errors.NotFound("snapshot", fmt.Errorf("%w: %s", core.ErrSnapshotNotFound, id))
}

// List decodes every snapshot in the directory, newest first
func (s *Store) List(ctx context.Context, limit int) ([]*snapshot.Snapshot, error) {
	paths, err := filepath.Glob(filepath.Join(s.basePath, snapshot.FilePrefix+"-*.json"))
	if err != nil {
		return nil, errors.StorageError("failed to list snapshots", err)
	}

	snaps := make([]*snapshot.Snapshot, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		snap, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}

	sort.SliceStable(snaps, func(i, j int) bool {
		if snaps[i].CreatedAt.Time().Equal(snaps[j].CreatedAt.Time()) {
			return snaps[i].ID > snaps[j].ID
		}
		return snaps[i].CreatedAt.After(snaps[j].CreatedAt)
	})

	if limit > 0 && len(snaps) > limit {
		snaps = snaps[:limit]
	}
	return snaps, nil
}

// Encode writes the snapshot as indented JSON
func Encode(w io.Writer, snap *snapshot.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return errors.StorageError("failed to encode snapshot", err)
	}
	return nil
}

// Decode reads one snapshot
func Decode(r io.Reader) (*snapshot.Snapshot, error) {
	var snap snapshot.Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, errors.ValidationError("malformed snapshot", err)
	}
	if snap.ID.IsEmpty() {
		return nil, errors.ValidationError("malformed snapshot", fmt.Errorf("missing id"))
	}
	return &snap, nil
}

// ReadFile decodes the snapshot stored at path
func ReadFile(path string) (*snapshot.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("snapshot file", err)
		}
		return nil, errors.StorageError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	snap, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", filepath.Base(path))
	}
	return snap, nil
}
