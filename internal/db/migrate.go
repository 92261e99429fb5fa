package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillProjectSequences(db); err != nil {
		return fmt.Errorf("backfilling project sequence allocator state: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		short_id    TEXT NOT NULL DEFAULT '',
		name        TEXT NOT NULL,
		start_date  TEXT NOT NULL,
		target_date TEXT,
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','on_hold','completed','archived')),
		archived_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_short_id ON projects(short_id) WHERE short_id != ''`,

	`CREATE TABLE IF NOT EXISTS wbs_items (
		id                TEXT PRIMARY KEY,
		project_id        TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		parent_id         TEXT REFERENCES wbs_items(id) ON DELETE CASCADE,
		seq               INTEGER NOT NULL DEFAULT 0,
		title             TEXT NOT NULL,
		level             INTEGER NOT NULL DEFAULT 0,
		order_index       INTEGER NOT NULL DEFAULT 0,
		planned_start     TEXT,
		planned_end       TEXT,
		actual_start      TEXT,
		actual_end        TEXT,
		status            TEXT NOT NULL DEFAULT 'not_started'
		                  CHECK(status IN ('not_started','in_progress','delayed','completed','cancelled')),
		percent_complete  INTEGER NOT NULL DEFAULT 0
		                  CHECK(percent_complete BETWEEN 0 AND 100),
		planned_cost      REAL,
		actual_cost       REAL,
		aggregated_start  TEXT,
		aggregated_end    TEXT,
		aggregated_status TEXT NOT NULL DEFAULT '',
		aggregated_cost   REAL NOT NULL DEFAULT 0,
		deleted_at        TEXT,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_wbs_items_project ON wbs_items(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_wbs_items_parent ON wbs_items(parent_id)`,

	`CREATE TABLE IF NOT EXISTS project_sequences (
		project_id TEXT PRIMARY KEY REFERENCES projects(id) ON DELETE CASCADE,
		next_seq   INTEGER NOT NULL CHECK(next_seq > 0)
	)`,

	`CREATE TABLE IF NOT EXISTS cost_items (
		id             TEXT PRIMARY KEY,
		wbs_item_id    TEXT NOT NULL REFERENCES wbs_items(id) ON DELETE CASCADE,
		description    TEXT NOT NULL,
		planned_amount REAL NOT NULL DEFAULT 0,
		actual_amount  REAL NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_cost_items_item ON cost_items(wbs_item_id)`,

	`CREATE TABLE IF NOT EXISTS invoice_allocations (
		id          TEXT PRIMARY KEY,
		wbs_item_id TEXT NOT NULL REFERENCES wbs_items(id) ON DELETE CASCADE,
		invoice_ref TEXT NOT NULL,
		amount      REAL NOT NULL DEFAULT 0,
		percentage  REAL NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_allocations_item ON invoice_allocations(wbs_item_id)`,

	`CREATE TABLE IF NOT EXISTS cost_snapshots (
		id           TEXT PRIMARY KEY,
		entity_type  TEXT NOT NULL CHECK(entity_type IN ('project','wbs_item')),
		entity_id    TEXT NOT NULL,
		planned_cost REAL NOT NULL DEFAULT 0,
		actual_cost  REAL NOT NULL DEFAULT 0,
		variance     REAL NOT NULL DEFAULT 0,
		recorded_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_snapshots_entity ON cost_snapshots(entity_type, entity_id, recorded_at)`,

	// Add department to projects
	`ALTER TABLE projects ADD COLUMN department TEXT NOT NULL DEFAULT ''`,

	// Add category to cost_items
	`ALTER TABLE cost_items ADD COLUMN category TEXT NOT NULL DEFAULT ''`,
}

// migrateBackfillProjectSequences populates (or raises) next_seq for every
// known project from the max assigned WBS seq, repairing allocator state
// after restores or bulk loads.
func migrateBackfillProjectSequences(db *sql.DB) error {
	ctx := context.Background()

	query := `INSERT INTO project_sequences (project_id, next_seq)
		SELECT p.id, COALESCE(MAX(w.seq), 0) + 1
		FROM projects p
		LEFT JOIN wbs_items w ON w.project_id = p.id AND w.seq > 0
		GROUP BY p.id
		ON CONFLICT(project_id) DO UPDATE
		SET next_seq = MAX(project_sequences.next_seq, excluded.next_seq)`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("upserting project sequence rows: %w", err)
	}

	return nil
}
