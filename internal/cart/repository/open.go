package repository

import (
	"context"
	"fmt"

	"github.com/ridloal/sorav-storefront/internal/platform/config"
	"github.com/ridloal/sorav-storefront/internal/platform/database"
)

// Open builds the snapshot repository the storage config asks for. The returned
// close function releases the database, if any.
func Open(ctx context.Context, cfg config.StorageConfig) (SnapshotRepository, func() error, error) {
	if cfg.Driver == "memory" {
		return NewMemorySnapshotRepository(), func() error { return nil }, nil
	}

	db, err := database.Connect(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, nil, err
	}
	if err := EnsureSchema(ctx, db, cfg.Table); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to prepare snapshot table: %w", err)
	}
	return NewSQLSnapshotRepository(db, cfg.Table), db.Close, nil
}
