package repository

import (
	"context"
	"fmt"

	storefront "honeymart/internal/app/storefront/entity"

	"gorm.io/gorm"
)

// productRepository читает товары из той же таблицы products, что и каталог
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает репозиторий для чтения остатков товаров
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// GetBelowThreshold возвращает товары с остатком ниже порога,
// отсортированные по возрастанию остатка
func (r *productRepository) GetBelowThreshold(ctx context.Context, threshold int) ([]storefront.Product, error) {
	var products []storefront.Product

	err := r.db.WithContext(ctx).
		Where("stock_quantity < ?", threshold).
		Order("stock_quantity ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get low stock products: %w", err)
	}

	return products, nil
}
