package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ridloal/sorav-storefront/internal/cart/domain"
	"github.com/ridloal/sorav-storefront/internal/cart/repository"
	"github.com/ridloal/sorav-storefront/internal/platform/logger"
)

var ErrPersistFailed = errors.New("cart persist failed")

// CartStore is the cart with write-through persistence: every mutation that changes the
// cart is followed by a full snapshot write. Not safe for concurrent use.
type CartStore interface {
	AddItem(ctx context.Context, productID, qty int) error
	ChangeQuantity(ctx context.Context, productID, delta int) error
	RemoveItem(ctx context.Context, productID int) error
	Clear(ctx context.Context) error
	LoadPersisted(ctx context.Context)
	Persist(ctx context.Context) error
	Cart() domain.Cart
}

type cartStoreImpl struct {
	repo repository.SnapshotRepository
	key  string
	cart domain.Cart
}

func NewCartStore(repo repository.SnapshotRepository, storageKey string) CartStore {
	return &cartStoreImpl{repo: repo, key: storageKey}
}

func (s *cartStoreImpl) AddItem(ctx context.Context, productID, qty int) error {
	if err := s.cart.Add(productID, qty); err != nil {
		return err
	}
	return s.Persist(ctx)
}

func (s *cartStoreImpl) ChangeQuantity(ctx context.Context, productID, delta int) error {
	changed, err := s.cart.ChangeQuantity(productID, delta)
	if err != nil || !changed {
		return err
	}
	return s.Persist(ctx)
}

func (s *cartStoreImpl) RemoveItem(ctx context.Context, productID int) error {
	if !s.cart.Remove(productID) {
		return nil
	}
	return s.Persist(ctx)
}

// Clear always writes, so an emptied cart is durable even if it was already empty in memory.
func (s *cartStoreImpl) Clear(ctx context.Context) error {
	s.cart.Clear()
	return s.Persist(ctx)
}

// LoadPersisted replaces the in-memory cart with the stored snapshot.
// A missing, unreadable or corrupt snapshot leaves an empty cart.
func (s *cartStoreImpl) LoadPersisted(ctx context.Context) {
	s.cart = domain.Cart{}

	payload, err := s.repo.Load(ctx, s.key)
	if err != nil {
		if !errors.Is(err, repository.ErrSnapshotNotFound) {
			logger.Warn("cart snapshot unreadable, starting empty", zap.String("storage_key", s.key), zap.Error(err))
		}
		return
	}

	c, err := domain.UnmarshalSnapshot(payload)
	if err != nil {
		logger.Warn("cart snapshot corrupt, starting empty", zap.String("storage_key", s.key), zap.Error(err))
		return
	}
	s.cart = c
	logger.Info("cart restored", zap.String("storage_key", s.key), zap.Int("entries", c.Len()))
}

// Persist writes the full snapshot. On failure the in-memory cart keeps its current state.
func (s *cartStoreImpl) Persist(ctx context.Context) error {
	payload, err := domain.MarshalSnapshot(s.cart)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	if err := s.repo.Save(ctx, s.key, payload); err != nil {
		logger.Warn("cart persist failed", zap.String("storage_key", s.key), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return nil
}

func (s *cartStoreImpl) Cart() domain.Cart {
	return s.cart.Clone()
}
