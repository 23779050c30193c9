package entity

import (
	"time"

	"github.com/google/uuid"
)

// StockAlert - алерт о низком остатке товара
// Хранится в Redis с TTL, пока остаток не восстановится
type StockAlert struct {
	ProductID     uuid.UUID `json:"product_id"`
	ProductName   string    `json:"product_name"`
	StockQuantity int       `json:"stock_quantity"`
	Threshold     int       `json:"threshold"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GetRedisKeyForAlert возвращает ключ Redis для алерта по товару
func GetRedisKeyForAlert(productID uuid.UUID) string {
	return "stock_alert:" + productID.String()
}
