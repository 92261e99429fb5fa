package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mazen-hassani/masar2-sub000/internal/db"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

// allocationColumns is the canonical SELECT column list for invoice_allocations.
const allocationColumns = `id, wbs_item_id, invoice_ref, amount, percentage, created_at`

// SQLiteAllocationRepo implements AllocationRepo using a SQLite database.
type SQLiteAllocationRepo struct {
	db db.DBTX
}

// NewSQLiteAllocationRepo creates a new SQLiteAllocationRepo.
func NewSQLiteAllocationRepo(conn db.DBTX) *SQLiteAllocationRepo {
	return &SQLiteAllocationRepo{db: conn}
}

func (r *SQLiteAllocationRepo) Create(ctx context.Context, a *domain.InvoiceAllocation) error {
	query := `INSERT INTO invoice_allocations (id, wbs_item_id, invoice_ref, amount, percentage, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.WBSItemID,
		a.InvoiceRef,
		a.Amount,
		a.Percentage,
		a.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting invoice allocation: %w", err)
	}
	return nil
}

func (r *SQLiteAllocationRepo) GetByID(ctx context.Context, id string) (*domain.InvoiceAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM invoice_allocations WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var a domain.InvoiceAllocation
	var createdAtStr string
	err := row.Scan(&a.ID, &a.WBSItemID, &a.InvoiceRef, &a.Amount, &a.Percentage, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("invoice allocation: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning invoice allocation: %w", err)
	}
	a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &a, nil
}

func (r *SQLiteAllocationRepo) ListByItem(ctx context.Context, wbsItemID string) ([]*domain.InvoiceAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM invoice_allocations WHERE wbs_item_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, wbsItemID)
	if err != nil {
		return nil, fmt.Errorf("listing invoice allocations: %w", err)
	}
	defer rows.Close()

	var allocs []*domain.InvoiceAllocation
	for rows.Next() {
		var a domain.InvoiceAllocation
		var createdAtStr string
		if err := rows.Scan(&a.ID, &a.WBSItemID, &a.InvoiceRef, &a.Amount, &a.Percentage, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning invoice allocation row: %w", err)
		}
		a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		allocs = append(allocs, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice allocations: %w", err)
	}
	return allocs, nil
}

func (r *SQLiteAllocationRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM invoice_allocations WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting invoice allocation: %w", err)
	}
	return nil
}
