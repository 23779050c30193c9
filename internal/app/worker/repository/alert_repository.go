package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"honeymart/internal/app/worker/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrAlertNotFound возвращается когда алерт по товару отсутствует в Redis
var ErrAlertNotFound = fmt.Errorf("stock alert not found")

// alertRepository реализует AlertRepository для работы с Redis
type alertRepository struct {
	client *redis.Client
	ttl    time.Duration // TTL для алертов
}

// NewAlertRepository создает новый репозиторий алертов об остатках
func NewAlertRepository(client *redis.Client, ttl time.Duration) AlertRepository {
	return &alertRepository{
		client: client,
		ttl:    ttl,
	}
}

// Set сохраняет алерт в Redis с TTL
func (r *alertRepository) Set(ctx context.Context, alert *entity.StockAlert) error {
	key := entity.GetRedisKeyForAlert(alert.ProductID)

	data, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal stock alert: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set stock alert in redis: %w", err)
	}

	return nil
}

// SetMultiple сохраняет несколько алертов батчем для оптимизации
func (r *alertRepository) SetMultiple(ctx context.Context, alerts []*entity.StockAlert) error {
	// Используем Pipeline для батчевой отправки команд
	pipe := r.client.Pipeline()

	for _, alert := range alerts {
		key := entity.GetRedisKeyForAlert(alert.ProductID)

		data, err := json.Marshal(alert)
		if err != nil {
			return fmt.Errorf("failed to marshal stock alert for %s: %w", alert.ProductID, err)
		}

		pipe.Set(ctx, key, data, r.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set multiple stock alerts: %w", err)
	}

	return nil
}

// Get получает алерт по товару из Redis
func (r *alertRepository) Get(ctx context.Context, productID uuid.UUID) (*entity.StockAlert, error) {
	key := entity.GetRedisKeyForAlert(productID)

	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrAlertNotFound
		}
		return nil, fmt.Errorf("failed to get stock alert from redis: %w", err)
	}

	var alert entity.StockAlert
	if err := json.Unmarshal([]byte(data), &alert); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stock alert: %w", err)
	}

	return &alert, nil
}

// Delete удаляет алерт по товару
// Отсутствие ключа не считается ошибкой
func (r *alertRepository) Delete(ctx context.Context, productID uuid.UUID) error {
	key := entity.GetRedisKeyForAlert(productID)

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete stock alert: %w", err)
	}

	return nil
}

// Exists проверяет существование алерта в Redis
func (r *alertRepository) Exists(ctx context.Context, productID uuid.UUID) (bool, error) {
	key := entity.GetRedisKeyForAlert(productID)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}

	return exists > 0, nil
}
