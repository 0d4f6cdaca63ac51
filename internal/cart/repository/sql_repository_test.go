package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLSnapshotRepository_SaveLoad(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	require.NoError(t, EnsureSchema(ctx, db, "cart_snapshots"))
	require.NoError(t, EnsureSchema(ctx, db, "cart_snapshots"), "schema creation is idempotent")

	repo := NewSQLSnapshotRepository(db, "cart_snapshots")

	_, err := repo.Load(ctx, "sorav_cart")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	require.NoError(t, repo.Save(ctx, "sorav_cart", []byte(`[{"id":1,"qty":2}]`)))
	require.NoError(t, repo.Save(ctx, "sorav_cart", []byte(`[{"id":2,"qty":1}]`)))
	require.NoError(t, repo.Save(ctx, "other", []byte(`[]`)))

	got, err := repo.Load(ctx, "sorav_cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":2,"qty":1}]`, string(got))

	var rows int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "cart_snapshots"`).Scan(&rows))
	assert.Equal(t, 2, rows)
}

func TestSQLSnapshotRepository_QuotedTableName(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	require.NoError(t, EnsureSchema(ctx, db, "cart snapshots"))

	repo := NewSQLSnapshotRepository(db, "cart snapshots")
	require.NoError(t, repo.Save(ctx, "k", []byte(`[]`)))
	got, err := repo.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}

func TestSQLSnapshotRepository_MissingTable(t *testing.T) {
	repo := NewSQLSnapshotRepository(openSQLite(t), "nope")
	_, err := repo.Load(context.Background(), "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSnapshotNotFound)
}

func TestMemorySnapshotRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySnapshotRepository()

	_, err := repo.Load(ctx, "k")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	payload := []byte(`[{"id":1,"qty":1}]`)
	require.NoError(t, repo.Save(ctx, "k", payload))
	payload[0] = 'X'

	got, err := repo.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1,"qty":1}]`, string(got))
}
