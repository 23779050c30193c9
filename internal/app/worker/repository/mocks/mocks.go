package mocks

import (
	"context"

	storefront "honeymart/internal/app/storefront/entity"
	"honeymart/internal/app/worker/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository - мок для ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetBelowThreshold(ctx context.Context, threshold int) ([]storefront.Product, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storefront.Product), args.Error(1)
}

// MockAlertRepository - мок для AlertRepository
type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) Set(ctx context.Context, alert *entity.StockAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockAlertRepository) SetMultiple(ctx context.Context, alerts []*entity.StockAlert) error {
	args := m.Called(ctx, alerts)
	return args.Error(0)
}

func (m *MockAlertRepository) Get(ctx context.Context, productID uuid.UUID) (*entity.StockAlert, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.StockAlert), args.Error(1)
}

func (m *MockAlertRepository) Delete(ctx context.Context, productID uuid.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockAlertRepository) Exists(ctx context.Context, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}
