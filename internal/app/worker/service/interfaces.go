package service

import (
	"context"

	storefront "honeymart/internal/app/storefront/entity"
	"honeymart/internal/app/worker/entity"
)

// StockAlertServiceInterface определяет интерфейс сервиса алертов об остатках
type StockAlertServiceInterface interface {
	// ProcessProductEvent обрабатывает событие каталога из Kafka
	ProcessProductEvent(ctx context.Context, event *storefront.ProductEvent) error
	// RunStockSweep сверяет остатки по БД и обновляет алерты в Redis
	RunStockSweep(ctx context.Context) error
	// GetAlert возвращает активный алерт по товару
	GetAlert(ctx context.Context, productID string) (*entity.StockAlert, error)
}
