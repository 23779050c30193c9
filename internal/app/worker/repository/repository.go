package repository

import (
	"context"

	storefront "honeymart/internal/app/storefront/entity"
	"honeymart/internal/app/worker/entity"

	"github.com/google/uuid"
)

// ProductRepository читает остатки товаров из БД каталога
type ProductRepository interface {
	// GetBelowThreshold возвращает товары с остатком ниже порога
	GetBelowThreshold(ctx context.Context, threshold int) ([]storefront.Product, error)
}

// AlertRepository хранит алерты о низких остатках в Redis
type AlertRepository interface {
	Set(ctx context.Context, alert *entity.StockAlert) error
	SetMultiple(ctx context.Context, alerts []*entity.StockAlert) error
	Get(ctx context.Context, productID uuid.UUID) (*entity.StockAlert, error)
	Delete(ctx context.Context, productID uuid.UUID) error
	Exists(ctx context.Context, productID uuid.UUID) (bool, error)
}
