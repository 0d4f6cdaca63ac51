package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/ridloal/sorav-storefront/internal/platform/logger"
)

// The statements only use syntax shared by PostgreSQL and SQLite ($n placeholders, ON CONFLICT upsert).
type sqlSnapshotRepository struct {
	db    *sql.DB
	table string
}

func NewSQLSnapshotRepository(db *sql.DB, table string) SnapshotRepository {
	return &sqlSnapshotRepository{db: db, table: pq.QuoteIdentifier(table)}
}

// EnsureSchema creates the snapshot table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB, table string) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		storage_key TEXT PRIMARY KEY,
		payload     TEXT NOT NULL,
		updated_at  TIMESTAMP NOT NULL
	)`, pq.QuoteIdentifier(table))
	if _, err := db.ExecContext(ctx, query); err != nil {
		logger.Error("EnsureSchema: create table failed", err, zap.String("table", table))
		return err
	}
	return nil
}

func (r *sqlSnapshotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	query := fmt.Sprintf(`SELECT payload FROM %s WHERE storage_key = $1`, r.table)
	var payload string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}
		logger.Error("Load: query failed", err, zap.String("storage_key", key))
		return nil, err
	}
	return []byte(payload), nil
}

func (r *sqlSnapshotRepository) Save(ctx context.Context, key string, payload []byte) error {
	query := fmt.Sprintf(`INSERT INTO %s (storage_key, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (storage_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`, r.table)
	if _, err := r.db.ExecContext(ctx, query, key, string(payload), time.Now().UTC()); err != nil {
		logger.Error("Save: upsert failed", err, zap.String("storage_key", key))
		return err
	}
	return nil
}
