package util

import (
	"context"
	"time"

	"honeymart/internal/app/storefront/entity"
)

// CategoryCache интерфейс кеша категорий
// Используется для dependency injection и упрощения тестирования
type CategoryCache interface {
	SetCategories(ctx context.Context, categories []entity.CategoryResponse, ttl time.Duration) error
	GetCategories(ctx context.Context) ([]entity.CategoryResponse, error)
	DeleteCategories(ctx context.Context) error
}

// MessagePublisher интерфейс для отправки событий в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
