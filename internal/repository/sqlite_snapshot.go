package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mazen-hassani/masar2-sub000/internal/db"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

// snapshotColumns is the canonical SELECT column list for cost_snapshots.
const snapshotColumns = `id, entity_type, entity_id, planned_cost, actual_cost, variance, recorded_at`

// SQLiteSnapshotRepo implements SnapshotRepo using a SQLite database.
// Snapshots are append-only; there is no update or delete path.
type SQLiteSnapshotRepo struct {
	db db.DBTX
}

// NewSQLiteSnapshotRepo creates a new SQLiteSnapshotRepo.
func NewSQLiteSnapshotRepo(conn db.DBTX) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: conn}
}

func (r *SQLiteSnapshotRepo) Create(ctx context.Context, s *domain.CostSnapshot) error {
	query := `INSERT INTO cost_snapshots (id, entity_type, entity_id, planned_cost, actual_cost, variance, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		string(s.EntityType),
		s.EntityID,
		s.PlannedCost,
		s.ActualCost,
		s.Variance,
		s.RecordedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting cost snapshot: %w", err)
	}
	return nil
}

// ListByEntityBetween returns snapshots for an entity with from <= recorded_at <= to,
// oldest first. Trend analysis depends on this ordering.
func (r *SQLiteSnapshotRepo) ListByEntityBetween(ctx context.Context, entityType domain.EntityType, entityID string, from, to time.Time) ([]*domain.CostSnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM cost_snapshots
		WHERE entity_type = ? AND entity_id = ? AND recorded_at >= ? AND recorded_at <= ?
		ORDER BY recorded_at, id`
	rows, err := r.db.QueryContext(ctx, query,
		string(entityType), entityID,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing cost snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []*domain.CostSnapshot
	for rows.Next() {
		var s domain.CostSnapshot
		var entityTypeStr, recordedAtStr string
		if err := rows.Scan(&s.ID, &entityTypeStr, &s.EntityID, &s.PlannedCost, &s.ActualCost, &s.Variance, &recordedAtStr); err != nil {
			return nil, fmt.Errorf("scanning cost snapshot row: %w", err)
		}
		s.EntityType = domain.EntityType(entityTypeStr)
		s.RecordedAt, err = time.Parse(time.RFC3339, recordedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing recorded_at: %w", err)
		}
		snaps = append(snaps, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cost snapshots: %w", err)
	}
	return snaps, nil
}
