package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"slotsense/adapters/postgres/migrations"
	"slotsense/domain/core"
	"slotsense/domain/evidence"
	"slotsense/domain/snapshot"
	"slotsense/domain/stats"
	"slotsense/internal/analysis"
	"slotsense/internal/rates"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONBValueAndScan(t *testing.T) {
	in := JSONB[evidence.Voice]{V: evidence.Voice{Sin: 1, Jaggy: 2, Total: 3}}

	v, err := in.Value()
	require.NoError(t, err)

	var out JSONB[evidence.Voice]
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in.V, out.V)

	require.NoError(t, out.Scan(`{"sin":4}`))
	assert.Equal(t, 4, out.V.Sin)

	assert.Error(t, out.Scan(42))
}

func TestRowConversion(t *testing.T) {
	c := evidence.Counters{
		Game:  evidence.Game{CurrentGames: 700},
		Voice: evidence.Voice{Sin: 5, Jaggy: 2, Amiba: 1, Other: 2, Total: 10},
	}
	snap := snapshot.New(c, analysis.NewEngine(rates.Default()).Analyze(c))

	row, err := toRow(snap)
	require.NoError(t, err)
	assert.Equal(t, snap.ID.String(), row.ID.String())
	assert.Equal(t, int(snap.Result.Conclusion.MostLikelySetting), row.MostLikelySetting)
	assert.Equal(t, snap.Result.Fingerprint.String(), row.Fingerprint)

	back := row.toSnapshot()
	assert.Equal(t, snap.ID, back.ID)
	assert.Equal(t, snap.Counters, back.Counters)
	assert.True(t, snap.CreatedAt.Time().Equal(back.CreatedAt.Time()))
}

func TestRowRejectsNonUUID(t *testing.T) {
	_, err := toRow(&snapshot.Snapshot{ID: "not-a-uuid"})
	assert.Error(t, err)
}

// Runs against a live database when SLOTSENSE_TEST_DATABASE_URL is set
func TestSnapshotRepositoryIntegration(t *testing.T) {
	dsn := os.Getenv("SLOTSENSE_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("SLOTSENSE_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	require.NoError(t, err)
	defer db.Close()

	_, err = migrations.NewMigrator(db).Up(ctx)
	require.NoError(t, err)

	repo := NewSnapshotRepository(db)
	snap := snapshot.New(evidence.Counters{}, stats.AnalysisResult{
		Posterior: stats.UniformPosterior(),
		Ratios:    stats.ProbabilityRatios{stats.KeyHighVsLow: stats.Inf},
	})
	require.NoError(t, repo.Save(ctx, snap))

	got, err := repo.Get(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
	assert.True(t, got.Result.Ratios[stats.KeyHighVsLow].IsInf())

	_, err = repo.Get(ctx, core.NewSnapshotID())
	assert.ErrorIs(t, err, core.ErrSnapshotNotFound)

	list, err := repo.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
