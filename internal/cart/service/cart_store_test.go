package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ridloal/sorav-storefront/internal/cart/domain"
	"github.com/ridloal/sorav-storefront/internal/cart/repository"
	"github.com/ridloal/sorav-storefront/internal/cart/repository/mocks"
)

const storageKey = "sorav_cart"

func TestCartStore_WritesThroughOnEveryMutation(t *testing.T) {
	ctx := context.TODO()
	mockRepo := new(mocks.MockSnapshotRepository)
	store := NewCartStore(mockRepo, storageKey)

	mockRepo.On("Save", ctx, storageKey, []byte(`[{"id":1,"qty":1}]`)).Return(nil).Once()
	mockRepo.On("Save", ctx, storageKey, []byte(`[{"id":1,"qty":3}]`)).Return(nil).Once()
	mockRepo.On("Save", ctx, storageKey, []byte(`[{"id":1,"qty":3},{"id":2,"qty":1}]`)).Return(nil).Once()
	mockRepo.On("Save", ctx, storageKey, []byte(`[{"id":2,"qty":1}]`)).Return(nil).Once()
	mockRepo.On("Save", ctx, storageKey, []byte(`[]`)).Return(nil).Once()

	require.NoError(t, store.AddItem(ctx, 1, 1))
	require.NoError(t, store.ChangeQuantity(ctx, 1, 2))
	require.NoError(t, store.AddItem(ctx, 2, 1))
	require.NoError(t, store.ChangeQuantity(ctx, 1, -10))
	require.NoError(t, store.RemoveItem(ctx, 2))

	assert.True(t, store.Cart().IsEmpty())
	mockRepo.AssertExpectations(t)
}

func TestCartStore_NoOpsDoNotWrite(t *testing.T) {
	ctx := context.TODO()
	mockRepo := new(mocks.MockSnapshotRepository)
	store := NewCartStore(mockRepo, storageKey)

	require.NoError(t, store.ChangeQuantity(ctx, 5, 1))
	require.NoError(t, store.RemoveItem(ctx, 5))
	assert.ErrorIs(t, store.AddItem(ctx, 5, 0), domain.ErrInvalidQuantity)

	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartStore_OversizedQuantityIsRejectedWithoutWriting(t *testing.T) {
	ctx := context.TODO()
	mockRepo := new(mocks.MockSnapshotRepository)
	store := NewCartStore(mockRepo, storageKey)

	mockRepo.On("Save", ctx, storageKey, []byte(`[{"id":1,"qty":2}]`)).Return(nil).Once()
	require.NoError(t, store.AddItem(ctx, 1, 2))

	assert.ErrorIs(t, store.ChangeQuantity(ctx, 1, domain.MaxQuantity), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, store.AddItem(ctx, 1, domain.MaxQuantity), domain.ErrInvalidQuantity)

	q, _ := store.Cart().Quantity(1)
	assert.Equal(t, 2, q)
	mockRepo.AssertExpectations(t)
}

func TestCartStore_ClearAlwaysPersists(t *testing.T) {
	ctx := context.TODO()
	mockRepo := new(mocks.MockSnapshotRepository)
	store := NewCartStore(mockRepo, storageKey)

	mockRepo.On("Save", ctx, storageKey, []byte(`[]`)).Return(nil).Once()
	require.NoError(t, store.Clear(ctx))
	mockRepo.AssertExpectations(t)
}

func TestCartStore_PersistFailureKeepsMemoryState(t *testing.T) {
	ctx := context.TODO()
	mockRepo := new(mocks.MockSnapshotRepository)
	store := NewCartStore(mockRepo, storageKey)

	mockRepo.On("Save", ctx, storageKey, mock.Anything).Return(errors.New("disk full")).Once()

	err := store.AddItem(ctx, 1, 2)
	assert.ErrorIs(t, err, ErrPersistFailed)
	assert.Contains(t, err.Error(), "disk full")

	q, ok := store.Cart().Quantity(1)
	assert.True(t, ok)
	assert.Equal(t, 2, q)
	mockRepo.AssertExpectations(t)
}

func TestCartStore_LoadPersisted(t *testing.T) {
	ctx := context.TODO()

	t.Run("restores stored entries in order", func(t *testing.T) {
		repo := repository.NewMemorySnapshotRepository()
		require.NoError(t, repo.Save(ctx, storageKey, []byte(`[{"id":3,"qty":1},{"id":1,"qty":2},{"id":2,"qty":5}]`)))

		store := NewCartStore(repo, storageKey)
		store.LoadPersisted(ctx)

		assert.Equal(t, []domain.Entry{{ProductID: 3, Quantity: 1}, {ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 5}}, store.Cart().Entries())
	})

	t.Run("absent snapshot gives an empty cart", func(t *testing.T) {
		store := NewCartStore(repository.NewMemorySnapshotRepository(), storageKey)
		store.LoadPersisted(ctx)
		assert.True(t, store.Cart().IsEmpty())
	})

	t.Run("corrupt snapshot fails open", func(t *testing.T) {
		repo := repository.NewMemorySnapshotRepository()
		store := NewCartStore(repo, storageKey)
		require.NoError(t, store.AddItem(ctx, 9, 1))
		require.NoError(t, repo.Save(ctx, storageKey, []byte(`not json`)))

		store.LoadPersisted(ctx)
		assert.True(t, store.Cart().IsEmpty())
	})

	t.Run("read error fails open", func(t *testing.T) {
		mockRepo := new(mocks.MockSnapshotRepository)
		mockRepo.On("Load", ctx, storageKey).Return(nil, errors.New("connection refused")).Once()

		store := NewCartStore(mockRepo, storageKey)
		store.LoadPersisted(ctx)
		assert.True(t, store.Cart().IsEmpty())
		mockRepo.AssertExpectations(t)
	})
}

func TestCartStore_PersistenceRoundTrip(t *testing.T) {
	ctx := context.TODO()
	repo := repository.NewMemorySnapshotRepository()

	first := NewCartStore(repo, storageKey)
	require.NoError(t, first.AddItem(ctx, 2, 1))
	require.NoError(t, first.AddItem(ctx, 1, 3))
	require.NoError(t, first.AddItem(ctx, 3, 2))

	second := NewCartStore(repo, storageKey)
	second.LoadPersisted(ctx)

	assert.Equal(t, first.Cart().Entries(), second.Cart().Entries())
}
