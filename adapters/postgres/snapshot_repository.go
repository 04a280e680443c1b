package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"slotsense/domain/core"
	"slotsense/domain/evidence"
	"slotsense/domain/snapshot"
	"slotsense/domain/stats"
	"slotsense/internal/errors"
	"slotsense/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// JSONB maps a PostgreSQL JSONB column onto a Go value
type JSONB[T any] struct {
	V T
}

// Value implements driver.Valuer
func (j JSONB[T]) Value() (driver.Value, error) {
	return json.Marshal(j.V)
}

// Scan implements sql.Scanner
func (j *JSONB[T]) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported JSONB source %T", value)
	}
	return json.Unmarshal(data, &j.V)
}

type snapshotRow struct {
	ID                uuid.UUID                   `db:"id"`
	CreatedAt         time.Time                   `db:"created_at"`
	Game              JSONB[evidence.Game]        `db:"game"`
	Counters          JSONB[evidence.Counters]    `db:"counters"`
	Result            JSONB[stats.AnalysisResult] `db:"result"`
	MostLikelySetting int                         `db:"most_likely_setting"`
	Recommendation    string                      `db:"recommendation"`
	Fingerprint       string                      `db:"fingerprint"`
}

func toRow(s *snapshot.Snapshot) (snapshotRow, error) {
	id, err := uuid.Parse(s.ID.String())
	if err != nil {
		return snapshotRow{}, errors.InvalidInput(fmt.Sprintf("snapshot id %q is not a UUID", s.ID))
	}
	return snapshotRow{
		ID:                id,
		CreatedAt:         s.CreatedAt.Time(),
		Game:              JSONB[evidence.Game]{V: s.Game},
		Counters:          JSONB[evidence.Counters]{V: s.Counters},
		Result:            JSONB[stats.AnalysisResult]{V: s.Result},
		MostLikelySetting: int(s.Result.Conclusion.MostLikelySetting),
		Recommendation:    string(s.Result.Conclusion.Recommendation),
		Fingerprint:       s.Result.Fingerprint.String(),
	}, nil
}

func (r snapshotRow) toSnapshot() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		ID:        core.SnapshotID(r.ID.String()),
		CreatedAt: core.NewTimestamp(r.CreatedAt.UTC()),
		Game:      r.Game.V,
		Counters:  r.Counters.V,
		Result:    r.Result.V,
	}
}

// SnapshotRepositoryImpl implements SnapshotRepository for PostgreSQL
type SnapshotRepositoryImpl struct {
	db *sqlx.DB
}

// NewSnapshotRepository creates a new PostgreSQL snapshot repository
func NewSnapshotRepository(db *sqlx.DB) ports.SnapshotRepository {
	return &SnapshotRepositoryImpl{db: db}
}

// Save upserts a snapshot
func (r *SnapshotRepositoryImpl) Save(ctx context.Context, s *snapshot.Snapshot) error {
	row, err := toRow(s)
	if err != nil {
		return err
	}

	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO analysis_snapshots (id, created_at, game, counters, result, most_likely_setting, recommendation, fingerprint)
		VALUES (:id, :created_at, :game, :counters, :result, :most_likely_setting, :recommendation, :fingerprint)
		ON CONFLICT (id) DO UPDATE SET
			game = EXCLUDED.game,
			counters = EXCLUDED.counters,
			result = EXCLUDED.result,
			most_likely_setting = EXCLUDED.most_likely_setting,
			recommendation = EXCLUDED.recommendation,
			fingerprint = EXCLUDED.fingerprint
	`, row)
	if err != nil {
		return errors.DatabaseError("failed to save snapshot", err)
	}
	return nil
}

// Get retrieves a snapshot by ID
func (r *SnapshotRepositoryImpl) Get(ctx context.Context, id core.SnapshotID) (*snapshot.Snapshot, error) {
	var row snapshotRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, created_at, game, counters, result, most_likely_setting, recommendation, fingerprint
		FROM analysis_snapshots
		WHERE id = $1
	`, id.String())
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("snapshot", fmt.Errorf("%w: %s", core.ErrSnapshotNotFound, id))
		}
		return nil, errors.DatabaseError("failed to load snapshot", err)
	}
	return row.toSnapshot(), nil
}

// List returns the newest snapshots first
func (r *SnapshotRepositoryImpl) List(ctx context.Context, limit int) ([]*snapshot.Snapshot, error) {
	query := `
		SELECT id, created_at, game, counters, result, most_likely_setting, recommendation, fingerprint
		FROM analysis_snapshots
		ORDER BY created_at DESC, id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	var rows []snapshotRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.DatabaseError("failed to list snapshots", err)
	}

	out := make([]*snapshot.Snapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toSnapshot())
	}
	return out, nil
}
