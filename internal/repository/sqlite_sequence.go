package repository

import (
	"context"
	"fmt"

	"github.com/mazen-hassani/masar2-sub000/internal/db"
)

// SQLiteSequenceRepo allocates project-scoped sequence values atomically
// using the project_sequences table.
type SQLiteSequenceRepo struct {
	db db.DBTX
}

// NewSQLiteSequenceRepo creates a new SQLiteSequenceRepo.
func NewSQLiteSequenceRepo(conn db.DBTX) *SQLiteSequenceRepo {
	return &SQLiteSequenceRepo{db: conn}
}

// NextProjectSeq returns the next available sequential ID for a project.
// Allocation is atomic and safe under concurrent writes. Soft-deleted items
// keep their seq reserved so refs are never reused.
func (r *SQLiteSequenceRepo) NextProjectSeq(ctx context.Context, projectID string) (int, error) {
	seedQuery := `INSERT OR IGNORE INTO project_sequences (project_id, next_seq)
		SELECT ?, COALESCE(MAX(seq), 0) + 1
		FROM wbs_items WHERE project_id = ? AND seq > 0`
	if _, err := r.db.ExecContext(ctx, seedQuery, projectID, projectID); err != nil {
		return 0, fmt.Errorf("seeding project sequence for %s: %w", projectID, err)
	}

	var next int
	allocQuery := `UPDATE project_sequences
		SET next_seq = next_seq + 1
		WHERE project_id = ?
		RETURNING next_seq - 1`
	if err := r.db.QueryRowContext(ctx, allocQuery, projectID).Scan(&next); err != nil {
		return 0, fmt.Errorf("allocating next seq for project %s: %w", projectID, err)
	}

	return next, nil
}
