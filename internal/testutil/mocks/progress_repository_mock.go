package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/minimalpairs/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Load(ctx context.Context) (*models.Progress, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Progress), args.Error(1)
}

func (m *MockProgressRepository) Save(ctx context.Context, progress models.Progress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}
