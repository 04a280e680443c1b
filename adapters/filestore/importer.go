package filestore

import (
	"fmt"
	"io"

	"slotsense/domain/core"
	"slotsense/domain/evidence"
	"slotsense/domain/snapshot"
	"slotsense/domain/stats"
	"slotsense/internal/validation"
)

// Analyzer recomputes a result from counters
type Analyzer interface {
	Analyze(c evidence.Counters) stats.AnalysisResult
}

// ImportResult pairs an imported snapshot with a fresh analysis of its counters
type ImportResult struct {
	Snapshot   *snapshot.Snapshot
	Recomputed stats.AnalysisResult
	Matches    bool
}

// Verify returns core.ErrFingerprintMismatch when the stored result no longer
// matches what the engine computes today.
func (r ImportResult) Verify() error {
	if r.Matches {
		return nil
	}
	return fmt.Errorf("%w: stored %s, recomputed %s", core.ErrFingerprintMismatch,
		r.Snapshot.Result.Fingerprint.Short(), r.Recomputed.Fingerprint.Short())
}

// Import decodes a snapshot, re-validates its counters and re-runs the analysis
func Import(r io.Reader, analyzer Analyzer) (ImportResult, error) {
	snap, err := Decode(r)
	if err != nil {
		return ImportResult{}, err
	}
	if err := validation.Validate(snap.Counters); err != nil {
		return ImportResult{}, err
	}

	stored := snap.Result.Fingerprint
	if stored.IsEmpty() {
		if stored, err = snap.Result.ComputeFingerprint(); err != nil {
			return ImportResult{}, err
		}
	}

	recomputed := analyzer.Analyze(snap.Counters)
	return ImportResult{
		Snapshot:   snap,
		Recomputed: recomputed,
		Matches:    stored.Equals(recomputed.Fingerprint),
	}, nil
}
