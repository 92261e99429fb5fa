package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mazen-hassani/masar2-sub000/internal/aggregation"
	"github.com/mazen-hassani/masar2-sub000/internal/db"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

// wbsItemColumns is the canonical SELECT column list for wbs_items.
const wbsItemColumns = `id, project_id, parent_id, seq, title, level, order_index,
		planned_start, planned_end, actual_start, actual_end,
		status, percent_complete, planned_cost, actual_cost,
		aggregated_start, aggregated_end, aggregated_status, aggregated_cost,
		deleted_at, created_at, updated_at`

// SQLiteWBSItemRepo implements WBSItemRepo using a SQLite database.
// It accepts any db.DBTX so the same repo works inside and outside a transaction.
type SQLiteWBSItemRepo struct {
	db db.DBTX
}

// NewSQLiteWBSItemRepo creates a new SQLiteWBSItemRepo.
func NewSQLiteWBSItemRepo(conn db.DBTX) *SQLiteWBSItemRepo {
	return &SQLiteWBSItemRepo{db: conn}
}

func (r *SQLiteWBSItemRepo) Create(ctx context.Context, w *domain.WBSItem) error {
	query := `INSERT INTO wbs_items (id, project_id, parent_id, seq, title, level, order_index,
		planned_start, planned_end, actual_start, actual_end,
		status, percent_complete, planned_cost, actual_cost,
		aggregated_start, aggregated_end, aggregated_status, aggregated_cost,
		deleted_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.ProjectID,
		w.ParentID, // *string: nil becomes SQL NULL
		w.Seq,
		w.Title,
		w.Level,
		w.OrderIndex,
		nullableTimeToString(w.PlannedStart, dateLayout),
		nullableTimeToString(w.PlannedEnd, dateLayout),
		nullableTimeToString(w.ActualStart, dateLayout),
		nullableTimeToString(w.ActualEnd, dateLayout),
		string(w.Status),
		w.PercentComplete,
		nullableFloatToValue(w.PlannedCost),
		nullableFloatToValue(w.ActualCost),
		nullableTimeToString(w.AggregatedStart, dateLayout),
		nullableTimeToString(w.AggregatedEnd, dateLayout),
		string(w.AggregatedStatus),
		w.AggregatedCost,
		nullableTimeToString(w.DeletedAt, time.RFC3339),
		w.CreatedAt.Format(time.RFC3339),
		w.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting wbs item: %w", err)
	}
	return nil
}

func (r *SQLiteWBSItemRepo) GetByID(ctx context.Context, id string) (*domain.WBSItem, error) {
	query := `SELECT ` + wbsItemColumns + ` FROM wbs_items WHERE id = ? AND deleted_at IS NULL`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanItem(row)
}

func (r *SQLiteWBSItemRepo) GetBySeq(ctx context.Context, projectID string, seq int) (*domain.WBSItem, error) {
	query := `SELECT ` + wbsItemColumns + ` FROM wbs_items WHERE project_id = ? AND seq = ? AND deleted_at IS NULL`
	row := r.db.QueryRowContext(ctx, query, projectID, seq)
	return r.scanItem(row)
}

func (r *SQLiteWBSItemRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.WBSItem, error) {
	query := `SELECT ` + wbsItemColumns + ` FROM wbs_items
		WHERE project_id = ? AND deleted_at IS NULL ORDER BY level, order_index, seq`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing wbs items by project: %w", err)
	}
	defer rows.Close()
	return r.scanItems(rows)
}

// ListByProjectDeepestFirst returns live items ordered so every child precedes
// its parent. Hierarchy rebuilds walk this order bottom-up.
func (r *SQLiteWBSItemRepo) ListByProjectDeepestFirst(ctx context.Context, projectID string) ([]*domain.WBSItem, error) {
	query := `SELECT ` + wbsItemColumns + ` FROM wbs_items
		WHERE project_id = ? AND deleted_at IS NULL ORDER BY level DESC, order_index, seq`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing wbs items deepest-first: %w", err)
	}
	defer rows.Close()
	return r.scanItems(rows)
}

func (r *SQLiteWBSItemRepo) ListChildren(ctx context.Context, parentID string) ([]*domain.WBSItem, error) {
	query := `SELECT ` + wbsItemColumns + ` FROM wbs_items
		WHERE parent_id = ? AND deleted_at IS NULL ORDER BY order_index, seq`
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing child wbs items: %w", err)
	}
	defer rows.Close()
	return r.scanItems(rows)
}

func (r *SQLiteWBSItemRepo) ListRoots(ctx context.Context, projectID string) ([]*domain.WBSItem, error) {
	query := `SELECT ` + wbsItemColumns + ` FROM wbs_items
		WHERE project_id = ? AND parent_id IS NULL AND deleted_at IS NULL ORDER BY order_index, seq`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing root wbs items: %w", err)
	}
	defer rows.Close()
	return r.scanItems(rows)
}

func (r *SQLiteWBSItemRepo) Update(ctx context.Context, w *domain.WBSItem) error {
	query := `UPDATE wbs_items SET parent_id = ?, title = ?, level = ?, order_index = ?,
		planned_start = ?, planned_end = ?, actual_start = ?, actual_end = ?,
		status = ?, percent_complete = ?, planned_cost = ?, actual_cost = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		w.ParentID,
		w.Title,
		w.Level,
		w.OrderIndex,
		nullableTimeToString(w.PlannedStart, dateLayout),
		nullableTimeToString(w.PlannedEnd, dateLayout),
		nullableTimeToString(w.ActualStart, dateLayout),
		nullableTimeToString(w.ActualEnd, dateLayout),
		string(w.Status),
		w.PercentComplete,
		nullableFloatToValue(w.PlannedCost),
		nullableFloatToValue(w.ActualCost),
		w.UpdatedAt.Format(time.RFC3339),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating wbs item: %w", err)
	}
	return nil
}

// UpdateAggregates writes only the derived fields in a single UPDATE, leaving
// authored fields untouched.
func (r *SQLiteWBSItemRepo) UpdateAggregates(ctx context.Context, id string, up aggregation.NodeUpdate, updatedAt time.Time) error {
	query := `UPDATE wbs_items SET aggregated_start = ?, aggregated_end = ?, aggregated_status = ?,
		percent_complete = ?, aggregated_cost = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		nullableTimeToString(up.AggregatedStart, dateLayout),
		nullableTimeToString(up.AggregatedEnd, dateLayout),
		string(up.AggregatedStatus),
		up.PercentComplete,
		up.AggregatedCost,
		updatedAt.Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating wbs item aggregates: %w", err)
	}
	return nil
}

func (r *SQLiteWBSItemRepo) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	stamp := deletedAt.UTC().Format(time.RFC3339)
	query := `UPDATE wbs_items SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, stamp, stamp, id)
	if err != nil {
		return fmt.Errorf("soft-deleting wbs item: %w", err)
	}
	return nil
}

// SoftDeleteSubtree marks an item and every descendant deleted and reports
// how many rows it touched. Already-deleted rows are left alone.
func (r *SQLiteWBSItemRepo) SoftDeleteSubtree(ctx context.Context, rootID string, deletedAt time.Time) (int, error) {
	stamp := deletedAt.UTC().Format(time.RFC3339)
	query := `WITH RECURSIVE subtree(id) AS (
			SELECT id FROM wbs_items WHERE id = ?
			UNION ALL
			SELECT w.id FROM wbs_items w JOIN subtree s ON w.parent_id = s.id
		)
		UPDATE wbs_items SET deleted_at = ?, updated_at = ?
		WHERE id IN (SELECT id FROM subtree) AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, rootID, stamp, stamp)
	if err != nil {
		return 0, fmt.Errorf("soft-deleting wbs subtree: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting soft-deleted rows: %w", err)
	}
	return int(n), nil
}

// scanItem scans a single wbs item from a *sql.Row.
func (r *SQLiteWBSItemRepo) scanItem(row *sql.Row) (*domain.WBSItem, error) {
	var w domain.WBSItem
	var statusStr, aggStatusStr, createdAtStr, updatedAtStr string
	var parentID sql.NullString
	var plannedStartStr, plannedEndStr, actualStartStr, actualEndStr sql.NullString
	var aggStartStr, aggEndStr, deletedAtStr sql.NullString
	var plannedCost, actualCost sql.NullFloat64

	err := row.Scan(
		&w.ID, &w.ProjectID, &parentID, &w.Seq, &w.Title, &w.Level, &w.OrderIndex,
		&plannedStartStr, &plannedEndStr, &actualStartStr, &actualEndStr,
		&statusStr, &w.PercentComplete, &plannedCost, &actualCost,
		&aggStartStr, &aggEndStr, &aggStatusStr, &w.AggregatedCost,
		&deletedAtStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("wbs item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning wbs item: %w", err)
	}

	return r.populateItem(&w, statusStr, aggStatusStr, createdAtStr, updatedAtStr, parentID,
		plannedStartStr, plannedEndStr, actualStartStr, actualEndStr,
		aggStartStr, aggEndStr, deletedAtStr, plannedCost, actualCost)
}

// scanItems scans multiple wbs items from *sql.Rows.
func (r *SQLiteWBSItemRepo) scanItems(rows *sql.Rows) ([]*domain.WBSItem, error) {
	var items []*domain.WBSItem
	for rows.Next() {
		var w domain.WBSItem
		var statusStr, aggStatusStr, createdAtStr, updatedAtStr string
		var parentID sql.NullString
		var plannedStartStr, plannedEndStr, actualStartStr, actualEndStr sql.NullString
		var aggStartStr, aggEndStr, deletedAtStr sql.NullString
		var plannedCost, actualCost sql.NullFloat64

		err := rows.Scan(
			&w.ID, &w.ProjectID, &parentID, &w.Seq, &w.Title, &w.Level, &w.OrderIndex,
			&plannedStartStr, &plannedEndStr, &actualStartStr, &actualEndStr,
			&statusStr, &w.PercentComplete, &plannedCost, &actualCost,
			&aggStartStr, &aggEndStr, &aggStatusStr, &w.AggregatedCost,
			&deletedAtStr, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning wbs item row: %w", err)
		}

		item, err := r.populateItem(&w, statusStr, aggStatusStr, createdAtStr, updatedAtStr, parentID,
			plannedStartStr, plannedEndStr, actualStartStr, actualEndStr,
			aggStartStr, aggEndStr, deletedAtStr, plannedCost, actualCost)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating wbs items: %w", err)
	}
	return items, nil
}

// populateItem fills in parsed fields on a WBSItem after scanning raw values.
func (r *SQLiteWBSItemRepo) populateItem(
	w *domain.WBSItem,
	statusStr, aggStatusStr, createdAtStr, updatedAtStr string,
	parentID sql.NullString,
	plannedStartStr, plannedEndStr, actualStartStr, actualEndStr sql.NullString,
	aggStartStr, aggEndStr, deletedAtStr sql.NullString,
	plannedCost, actualCost sql.NullFloat64,
) (*domain.WBSItem, error) {
	w.Status = domain.WBSStatus(statusStr)
	w.AggregatedStatus = domain.AggregatedStatus(aggStatusStr)

	if parentID.Valid {
		w.ParentID = &parentID.String
	}

	var parseErr error
	w.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	w.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	w.PlannedStart = parseNullableTime(plannedStartStr, dateLayout)
	w.PlannedEnd = parseNullableTime(plannedEndStr, dateLayout)
	w.ActualStart = parseNullableTime(actualStartStr, dateLayout)
	w.ActualEnd = parseNullableTime(actualEndStr, dateLayout)
	w.AggregatedStart = parseNullableTime(aggStartStr, dateLayout)
	w.AggregatedEnd = parseNullableTime(aggEndStr, dateLayout)
	w.DeletedAt = parseNullableTime(deletedAtStr, time.RFC3339)

	if plannedCost.Valid {
		v := plannedCost.Float64
		w.PlannedCost = &v
	}
	if actualCost.Valid {
		v := actualCost.Float64
		w.ActualCost = &v
	}

	return w, nil
}
