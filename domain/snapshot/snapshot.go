// Package snapshot defines the persisted form of one analysis: when it ran,
// the counters it ran on and the result it produced.
package snapshot

import (
	"fmt"

	"slotsense/domain/core"
	"slotsense/domain/evidence"
	"slotsense/domain/stats"
)

// FilePrefix starts every exported snapshot file name
const FilePrefix = "slotsense-analysis"

// Snapshot is the export and storage record
type Snapshot struct {
	ID        core.SnapshotID      `json:"id"`
	CreatedAt core.Timestamp       `json:"created_at"`
	Game      evidence.Game        `json:"game"`
	Counters  evidence.Counters    `json:"counters"`
	Result    stats.AnalysisResult `json:"result"`
}

// New stamps a fresh snapshot for counters and the result computed from them
func New(counters evidence.Counters, result stats.AnalysisResult) *Snapshot {
	return &Snapshot{
		ID:        core.NewSnapshotID(),
		CreatedAt: core.Now(),
		Game:      counters.Game,
		Counters:  counters,
		Result:    result,
	}
}

// FileName is the export file name: slotsense-analysis-YYYY-MM-DD-<id>.json.
// The full ID is used; v7 prefixes repeat for snapshots taken within a minute.
func (s *Snapshot) FileName() string {
	return fmt.Sprintf("%s-%s-%s.json", FilePrefix, s.CreatedAt.Date(), s.ID)
}
