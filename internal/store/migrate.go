package store

import (
	"context"
	"embed"
	"io/fs"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations executes SQL files in alphabetical order within the
// migrations folder, each in its own transaction, then applies additive
// column upgrades. Statements are idempotent so the whole set reruns safely
// on every startup.
func RunMigrations(ctx context.Context, db *sqlx.DB) error {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	// ensure deterministic order: 001_..., 002_..., etc.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		sqlBytes, err := fs.ReadFile(migrationsFS, "migrations/"+e.Name())
		if err != nil {
			return err
		}

		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}

	// start_date arrived after the initial schema; databases created before
	// it need the column added, and re-adding it must not fail.
	return addColumnIfMissing(ctx, db, "ALTER TABLE users ADD COLUMN start_date TEXT")
}

func addColumnIfMissing(ctx context.Context, db *sqlx.DB, alter string) error {
	if _, err := db.ExecContext(ctx, alter); err != nil {
		if strings.Contains(err.Error(), "duplicate column name") {
			return nil
		}
		return err
	}
	return nil
}
