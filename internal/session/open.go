package session

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ridloal/sorav-storefront/internal/cart/repository"
	"github.com/ridloal/sorav-storefront/internal/platform/config"
	"github.com/ridloal/sorav-storefront/internal/platform/logger"
)

// Open wires a session from configuration: snapshot storage, the catalog seed page
// and the persisted cart. The returned cleanup stops the scheduler and closes storage.
func Open(ctx context.Context, cfg *config.Config) (*CartSession, func(), error) {
	repo, closeRepo, err := repository.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, err
	}

	s := New(Deps{
		Repository:      repo,
		StorageKey:      cfg.Storage.Key,
		ProcessingDelay: cfg.Checkout.ProcessingDelay,
	})
	cleanup := func() {
		s.Close()
		if err := closeRepo(); err != nil {
			logger.Error("failed to close snapshot storage", err)
		}
	}

	if cfg.Catalog.SeedHTML != "" {
		if err := s.seedCatalog(cfg.Catalog.SeedHTML); err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	s.Load(ctx)
	return s, cleanup, nil
}

func (s *CartSession) seedCatalog(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open catalog seed %s: %w", path, err)
	}
	defer f.Close()

	products, err := s.ScanCatalog(f)
	if err != nil {
		return err
	}
	logger.Info("catalog seeded", zap.String("path", path), zap.Int("cards", len(products)))
	return nil
}
