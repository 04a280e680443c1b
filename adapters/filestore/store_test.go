package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"slotsense/domain/core"
	"slotsense/domain/evidence"
	"slotsense/domain/snapshot"
	"slotsense/internal/analysis"
	"slotsense/internal/errors"
	"slotsense/internal/rates"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionCounters() evidence.Counters {
	return evidence.Counters{
		Game:           evidence.Game{CurrentGames: 1500, TotalDifference: 800},
		Voice:          evidence.Voice{Sin: 20, Jaggy: 12, Amiba: 8, Other: 10, Total: 50},
		Bell:           evidence.Bell{Diagonal: 80, Middle: 15, Total: 95},
		InitialHit:     evidence.InitialHit{TotalGames: 1500, TotalHits: 6, CherryHits: 2, NonCherryHits: 4},
		ModeTransition: evidence.ModeTransition{TotalATEnds: 6, JagiStageStarts: 3, HeavenStarts: 2},
	}
}

func newSnapshot(t *testing.T, engine *analysis.Engine) *snapshot.Snapshot {
	t.Helper()
	c := sessionCounters()
	return snapshot.New(c, engine.Analyze(c))
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	store, err := New(t.TempDir())
	require.NoError(t, err)
	engine := analysis.NewEngine(rates.Default())

	snap := newSnapshot(t, engine)
	require.NoError(t, store.Save(ctx, snap))

	_, err = os.Stat(filepath.Join(store.Dir(), snap.FileName()))
	require.NoError(t, err)

	got, err := store.Get(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
	assert.Equal(t, snap.Counters, got.Counters)
	if diff := cmp.Diff(snap.Result, got.Result); diff != "" {
		t.Errorf("stored result differs (-want +got):\n%s", diff)
	}
}

func TestGetMissing(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), core.NewSnapshotID())
	require.Error(t, err)
	assert.True(t, core.IsNotFoundError(err))
	assert.ErrorIs(t, err, core.ErrSnapshotNotFound)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store, err := New(t.TempDir())
	require.NoError(t, err)
	engine := analysis.NewEngine(rates.Default())

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var ids []core.SnapshotID
	for i := 0; i < 3; i++ {
		snap := newSnapshot(t, engine)
		snap.CreatedAt = core.NewTimestamp(base.Add(time.Duration(i) * time.Hour))
		require.NoError(t, store.Save(ctx, snap))
		ids = append(ids, snap.ID)
	}

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[2], all[0].ID)
	assert.Equal(t, ids[0], all[2].ID)

	limited, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestListIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), []byte("{}"), 0644))

	store, err := New(dir)
	require.NoError(t, err)

	snaps, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, snaps)
}

func TestDecodeRejectsMalformed(t *testing.T) {
	_, err := Decode(bytes.NewBufferString("{not json"))
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))

	_, err = Decode(bytes.NewBufferString(`{"counters":{}}`))
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
}

func TestExportFormat(t *testing.T) {
	snap := newSnapshot(t, analysis.NewEngine(rates.Default()))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snap))

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	for _, key := range []string{"id", "created_at", "game", "counters", "result"} {
		assert.Contains(t, raw, key)
	}

	var result map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["result"], &result))
	for _, key := range []string{"settingProbabilities", "probabilityRatios", "varianceAnalysis", "statisticalConclusion"} {
		assert.Contains(t, result, key)
	}
}

func TestImportRoundTrip(t *testing.T) {
	engine := analysis.NewEngine(rates.Default())
	snap := newSnapshot(t, engine)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snap))

	res, err := Import(&buf, engine)
	require.NoError(t, err)
	assert.True(t, res.Matches)
	assert.NoError(t, res.Verify())
	assert.Equal(t, snap.ID, res.Snapshot.ID)
}

func TestImportDetectsDrift(t *testing.T) {
	engine := analysis.NewEngine(rates.Default())
	snap := newSnapshot(t, engine)
	snap.Result.Conclusion.Recommendation = "stop"
	snap.Result.Fingerprint = ""

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snap))

	res, err := Import(&buf, engine)
	require.NoError(t, err)
	assert.False(t, res.Matches)
	assert.ErrorIs(t, res.Verify(), core.ErrFingerprintMismatch)
}

func TestImportRevalidates(t *testing.T) {
	engine := analysis.NewEngine(rates.Default())
	snap := newSnapshot(t, engine)
	snap.Counters.Voice.Total = 7

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snap))

	_, err := Import(&buf, engine)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInconsistentCounters)
}
