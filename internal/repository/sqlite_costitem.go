package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mazen-hassani/masar2-sub000/internal/db"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

// costItemColumns is the canonical SELECT column list for cost_items.
const costItemColumns = `id, wbs_item_id, description, category, planned_amount, actual_amount, created_at, updated_at`

// SQLiteCostItemRepo implements CostItemRepo using a SQLite database.
type SQLiteCostItemRepo struct {
	db db.DBTX
}

// NewSQLiteCostItemRepo creates a new SQLiteCostItemRepo.
func NewSQLiteCostItemRepo(conn db.DBTX) *SQLiteCostItemRepo {
	return &SQLiteCostItemRepo{db: conn}
}

func (r *SQLiteCostItemRepo) Create(ctx context.Context, c *domain.CostItem) error {
	query := `INSERT INTO cost_items (id, wbs_item_id, description, category, planned_amount, actual_amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.WBSItemID,
		c.Description,
		c.Category,
		c.PlannedAmount,
		c.ActualAmount,
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting cost item: %w", err)
	}
	return nil
}

func (r *SQLiteCostItemRepo) GetByID(ctx context.Context, id string) (*domain.CostItem, error) {
	query := `SELECT ` + costItemColumns + ` FROM cost_items WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanCostItem(row)
}

func (r *SQLiteCostItemRepo) ListByItem(ctx context.Context, wbsItemID string) ([]*domain.CostItem, error) {
	query := `SELECT ` + costItemColumns + ` FROM cost_items WHERE wbs_item_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, wbsItemID)
	if err != nil {
		return nil, fmt.Errorf("listing cost items: %w", err)
	}
	defer rows.Close()
	return r.scanCostItems(rows)
}

// ListByProject returns every cost item attached to a live WBS item of the
// project. Items under soft-deleted WBS items are excluded.
func (r *SQLiteCostItemRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.CostItem, error) {
	query := `SELECT ci.id, ci.wbs_item_id, ci.description, ci.category, ci.planned_amount, ci.actual_amount, ci.created_at, ci.updated_at
		FROM cost_items ci
		JOIN wbs_items w ON w.id = ci.wbs_item_id
		WHERE w.project_id = ? AND w.deleted_at IS NULL
		ORDER BY ci.created_at, ci.id`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project cost items: %w", err)
	}
	defer rows.Close()
	return r.scanCostItems(rows)
}

func (r *SQLiteCostItemRepo) Update(ctx context.Context, c *domain.CostItem) error {
	query := `UPDATE cost_items SET description = ?, category = ?, planned_amount = ?, actual_amount = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		c.Description,
		c.Category,
		c.PlannedAmount,
		c.ActualAmount,
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating cost item: %w", err)
	}
	return nil
}

func (r *SQLiteCostItemRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM cost_items WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting cost item: %w", err)
	}
	return nil
}

// scanCostItems scans all cost items from a *sql.Rows result set.
func (r *SQLiteCostItemRepo) scanCostItems(rows *sql.Rows) ([]*domain.CostItem, error) {
	var items []*domain.CostItem
	for rows.Next() {
		var c domain.CostItem
		var createdAtStr, updatedAtStr string
		err := rows.Scan(&c.ID, &c.WBSItemID, &c.Description, &c.Category,
			&c.PlannedAmount, &c.ActualAmount, &createdAtStr, &updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("scanning cost item row: %w", err)
		}
		item, err := r.populateCostItem(&c, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cost items: %w", err)
	}
	return items, nil
}

// scanCostItem scans a single cost item from a *sql.Row.
func (r *SQLiteCostItemRepo) scanCostItem(row *sql.Row) (*domain.CostItem, error) {
	var c domain.CostItem
	var createdAtStr, updatedAtStr string

	err := row.Scan(&c.ID, &c.WBSItemID, &c.Description, &c.Category,
		&c.PlannedAmount, &c.ActualAmount, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("cost item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning cost item: %w", err)
	}

	return r.populateCostItem(&c, createdAtStr, updatedAtStr)
}

// populateCostItem fills in parsed fields on a CostItem after scanning raw strings.
func (r *SQLiteCostItemRepo) populateCostItem(c *domain.CostItem, createdAtStr, updatedAtStr string) (*domain.CostItem, error) {
	var parseErr error
	c.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	c.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return c, nil
}
