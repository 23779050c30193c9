package service

import (
	"context"
	"fmt"
	"time"

	storefront "honeymart/internal/app/storefront/entity"
	"honeymart/internal/app/worker/entity"
	"honeymart/internal/app/worker/repository"
	"honeymart/pkg/logger"

	"github.com/google/uuid"
)

// StockAlertService отслеживает остатки товаров
// Реагирует на события каталога из Kafka и периодически сверяет остатки по БД
type StockAlertService struct {
	productRepo repository.ProductRepository
	alertRepo   repository.AlertRepository
	threshold   int
}

// NewStockAlertService создает новый сервис алертов об остатках
func NewStockAlertService(
	productRepo repository.ProductRepository,
	alertRepo repository.AlertRepository,
) *StockAlertService {
	return &StockAlertService{
		productRepo: productRepo,
		alertRepo:   alertRepo,
		threshold:   storefront.LowStockThreshold,
	}
}

// ProcessProductEvent обрабатывает событие каталога из Kafka
// LOW_STOCK ставит алерт, STOCK_UPDATED ставит или снимает его по текущему
// остатку, PRODUCT_DELETED снимает алерт
func (s *StockAlertService) ProcessProductEvent(ctx context.Context, event *storefront.ProductEvent) error {
	switch event.EventType {
	case storefront.EventLowStock:
		return s.raiseAlert(ctx, event)

	case storefront.EventStockUpdated:
		if event.StockQuantity < s.threshold {
			return s.raiseAlert(ctx, event)
		}
		return s.clearAlert(ctx, event.ProductID)

	case storefront.EventProductDeleted:
		return s.clearAlert(ctx, event.ProductID)

	case storefront.EventProductCreated, storefront.EventProductUpdated:
		// Изменения карточки товара остатков не меняют
		return nil

	default:
		logger.Warn().
			Str("event_type", event.EventType).
			Str("product_id", event.ProductID.String()).
			Msg("Unknown event type, skipping")
		return nil
	}
}

// raiseAlert сохраняет алерт о низком остатке в Redis
func (s *StockAlertService) raiseAlert(ctx context.Context, event *storefront.ProductEvent) error {
	alert := &entity.StockAlert{
		ProductID:     event.ProductID,
		ProductName:   event.Name,
		StockQuantity: event.StockQuantity,
		Threshold:     s.threshold,
		UpdatedAt:     time.Now(),
	}

	if err := s.alertRepo.Set(ctx, alert); err != nil {
		return fmt.Errorf("failed to raise stock alert: %w", err)
	}

	logger.Info().
		Str("product_id", event.ProductID.String()).
		Str("product_name", event.Name).
		Int("stock_quantity", event.StockQuantity).
		Msg("Stock alert raised")

	return nil
}

// clearAlert снимает алерт по товару, если он был
func (s *StockAlertService) clearAlert(ctx context.Context, productID uuid.UUID) error {
	if err := s.alertRepo.Delete(ctx, productID); err != nil {
		return fmt.Errorf("failed to clear stock alert: %w", err)
	}
	return nil
}

// RunStockSweep сверяет остатки по БД каталога и обновляет алерты батчем
// Запускается по cron расписанию и подхватывает товары,
// события по которым могли быть потеряны
func (s *StockAlertService) RunStockSweep(ctx context.Context) error {
	products, err := s.productRepo.GetBelowThreshold(ctx, s.threshold)
	if err != nil {
		return fmt.Errorf("failed to run stock sweep: %w", err)
	}

	if len(products) == 0 {
		logger.Info().Msg("Stock sweep completed: no low stock products")
		return nil
	}

	now := time.Now()
	alerts := make([]*entity.StockAlert, 0, len(products))
	for i := range products {
		alerts = append(alerts, &entity.StockAlert{
			ProductID:     products[i].ID,
			ProductName:   products[i].Name,
			StockQuantity: products[i].StockQuantity,
			Threshold:     s.threshold,
			UpdatedAt:     now,
		})
	}

	if err := s.alertRepo.SetMultiple(ctx, alerts); err != nil {
		return fmt.Errorf("failed to store sweep alerts: %w", err)
	}

	logger.Info().
		Int("alerts", len(alerts)).
		Msg("Stock sweep completed")

	return nil
}

// GetAlert возвращает активный алерт по товару
func (s *StockAlertService) GetAlert(ctx context.Context, productID string) (*entity.StockAlert, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("invalid product ID: %w", err)
	}

	return s.alertRepo.Get(ctx, id)
}
