package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridloal/sorav-storefront/internal/platform/config"
)

func TestOpen_SeedsCatalogAndRestoresCart(t *testing.T) {
	dir := t.TempDir()
	seed := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(seed, []byte(`
<div class="product-card"><h3>Product A</h3><span class="price">₹1,000</span></div>
<div class="product-card"><h3>Product B</h3><span class="price">₹4,500</span></div>`), 0o644))

	cfg := config.Default()
	cfg.Storage.DSN = "file:" + filepath.Join(dir, "cart.db")
	cfg.Catalog.SeedHTML = seed

	ctx := context.Background()
	s, cleanup, err := Open(ctx, cfg)
	require.NoError(t, err)
	require.Len(t, s.Products(), 2)
	require.NoError(t, s.AddItem(ctx, 1, 2))
	require.NoError(t, s.AddItem(ctx, 2, 1))
	cleanup()

	s, cleanup, err = Open(ctx, cfg)
	require.NoError(t, err)
	defer cleanup()

	view := s.View()
	assert.Equal(t, "2 items", view.CountLabel)
	assert.Equal(t, int64(6500), view.Subtotal)
}

func TestOpen_MissingSeed(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = "memory"
	cfg.Catalog.SeedHTML = filepath.Join(t.TempDir(), "missing.html")

	_, _, err := Open(context.Background(), cfg)
	assert.Error(t, err)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = "mongo"

	_, _, err := Open(context.Background(), cfg)
	assert.ErrorContains(t, err, "unsupported database driver")
}
