package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/AZZOUZ007/SMOKED-MONEY/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sqlx.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Reasonable pooling for SQLite; it's a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// GetUser returns a profile by userID, or ErrUserNotFound.
func (r *SQLiteRepo) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, `
		SELECT user_id, unit_price, stock, dashboard_message_id, start_date, created_at
		FROM users
		WHERE user_id = ?`,
		userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

// CreateUser inserts a new profile with zero stock, no dashboard message
// and no start date.
func (r *SQLiteRepo) CreateUser(ctx context.Context, userID int64, unitPrice float64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (user_id, unit_price, stock, dashboard_message_id, start_date, created_at)
		VALUES (?, ?, 0, NULL, NULL, ?)`,
		userID, unitPrice, time.Now().UTC().Unix(),
	)
	return err
}

// UpdateUnitPrice sets a new unit price for the user.
func (r *SQLiteRepo) UpdateUnitPrice(ctx context.Context, userID int64, price float64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET unit_price = ? WHERE user_id = ?`, price, userID)
	return err
}

// UpdateStock sets the absolute stock value for the user.
func (r *SQLiteRepo) UpdateStock(ctx context.Context, userID int64, stock int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET stock = ? WHERE user_id = ?`, stock, userID)
	return err
}

// UpdateDashboardMessageID records the message currently acting as the
// user's dashboard. The previous reference is overwritten.
func (r *SQLiteRepo) UpdateDashboardMessageID(ctx context.Context, userID int64, messageID int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET dashboard_message_id = ? WHERE user_id = ?`, messageID, userID)
	return err
}

// UpdateStartDate records the habit start date ("YYYY-MM-DD").
func (r *SQLiteRepo) UpdateStartDate(ctx context.Context, userID int64, startDate string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET start_date = ? WHERE user_id = ?`, startDate, userID)
	return err
}

// LogUsage appends one immutable consumption event.
func (r *SQLiteRepo) LogUsage(ctx context.Context, userID int64, at time.Time, quantity int, cost float64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO usage (user_id, ts, quantity, cost)
		VALUES (?, ?, ?, ?)`,
		userID, at.UTC().Unix(), quantity, cost,
	)
	return err
}

// SumUsage sums quantity and cost over events with from <= ts <= to.
// No matching rows yields (0, 0.0).
func (r *SQLiteRepo) SumUsage(ctx context.Context, userID int64, from, to time.Time) (domain.WindowStats, error) {
	var row struct {
		Quantity int     `db:"quantity"`
		Cost     float64 `db:"cost"`
	}
	err := r.db.GetContext(ctx, &row, `
		SELECT IFNULL(SUM(quantity), 0) AS quantity, IFNULL(SUM(cost), 0) AS cost
		FROM usage
		WHERE user_id = ?
		  AND ts BETWEEN ? AND ?`,
		userID, from.UTC().Unix(), to.UTC().Unix(),
	)
	if err != nil {
		return domain.WindowStats{}, err
	}
	return domain.WindowStats{Quantity: row.Quantity, Cost: row.Cost}, nil
}
