package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if p := args.Get(0); p != nil {
		return p.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSnapshotRepository) Save(ctx context.Context, key string, payload []byte) error {
	args := m.Called(ctx, key, payload)
	return args.Error(0)
}
