package repository

import (
	"context"
	"errors"
	"fmt"

	"honeymart/internal/app/storefront/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает новый репозиторий товаров
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create создает новый товар
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).Create(product)
	return result.Error
}

// GetByID получает товар по ID
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	result := r.db.WithContext(ctx).First(&product, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, result.Error
	}

	return &product, nil
}

// GetWithCategory получает товар с информацией о категории
func (r *productRepository) GetWithCategory(ctx context.Context, id uuid.UUID) (*entity.ProductWithCategory, error) {
	var product entity.Product
	result := r.db.WithContext(ctx).Preload("Category").First(&product, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, result.Error
	}

	pwc := &entity.ProductWithCategory{Product: product}
	if product.Category != nil {
		pwc.Category = *product.Category
	}

	return pwc, nil
}

// List получает страницу товаров по фильтру вместе с общим количеством строк
// Все фильтры - чистые AND-предикаты, поэтому порядок применения
// не влияет на итоговый набор; только ordering влияет на порядок
func (r *productRepository) List(ctx context.Context, filter *entity.ProductFilter) ([]entity.ProductWithCategory, int64, error) {
	var count int64
	if err := r.applyFilter(ctx, filter).Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	order := "products." + filter.OrderBy
	if filter.Descending {
		order += " DESC"
	}

	var products []entity.Product
	err := r.applyFilter(ctx, filter).
		Select("products.*").
		Order(order).
		Limit(filter.PageSize).
		Offset(filter.Offset()).
		Preload("Category").
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	results := make([]entity.ProductWithCategory, 0, len(products))
	for _, p := range products {
		pwc := entity.ProductWithCategory{Product: p}
		if p.Category != nil {
			pwc.Category = *p.Category
		}
		results = append(results, pwc)
	}

	return results, count, nil
}

// applyFilter строит запрос с WHERE-условиями по заполненным полям фильтра
// Связь товар-категория many-to-one, поэтому JOIN не размножает строки
// и дедупликация результата не требуется
func (r *productRepository) applyFilter(ctx context.Context, filter *entity.ProductFilter) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Joins("JOIN categories ON categories.id = products.category_id")

	if filter.CategoryID != nil {
		q = q.Where("products.category_id = ?", *filter.CategoryID)
	}
	if filter.CategoryName != "" {
		q = q.Where("categories.name ILIKE ?", "%"+filter.CategoryName+"%")
	}

	if filter.MinPrice != nil {
		q = q.Where("products.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("products.price <= ?", *filter.MaxPrice)
	}

	if filter.InStock != nil {
		if *filter.InStock {
			q = q.Where("products.stock_quantity > 0")
		} else {
			q = q.Where("products.stock_quantity = 0")
		}
	}
	if filter.MinStock != nil {
		q = q.Where("products.stock_quantity >= ?", *filter.MinStock)
	}

	if filter.CreatedAfter != nil {
		q = q.Where("products.created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		q = q.Where("products.created_at <= ?", *filter.CreatedBefore)
	}

	// AND между термами, OR между полями внутри одного терма
	for _, term := range filter.SearchTerms {
		pattern := "%" + term + "%"
		q = q.Where(
			"(products.name ILIKE ? OR products.description ILIKE ? OR categories.name ILIKE ?)",
			pattern, pattern, pattern,
		)
	}

	if filter.LowStockOnly {
		q = q.Where("products.stock_quantity < ?", entity.LowStockThreshold)
	}

	return q
}

// Update обновляет товар
// created_at не входит в SET: дата создания неизменяема
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).Model(product).Where("id = ?", product.ID).Updates(map[string]interface{}{
		"name":           product.Name,
		"description":    product.Description,
		"price":          product.Price,
		"stock_quantity": product.StockQuantity,
		"image_url":      product.ImageURL,
		"category_id":    product.CategoryID,
	})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete удаляет товар
// Позиции корзин и записи избранного с этим товаром удаляются через CASCADE
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// UpdateStock атомарно изменяет остаток товара на delta
// Условие stock_quantity + delta >= 0 проверяется той же командой UPDATE,
// поэтому конкурентные изменения не могут увести остаток в минус
func (r *productRepository) UpdateStock(ctx context.Context, id uuid.UUID, delta int) (*entity.Product, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Where("id = ? AND stock_quantity + ? >= 0", id, delta).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", delta))

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		// UPDATE не сработал: либо товара нет, либо остаток ушел бы в минус
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrNegativeStock
	}

	return r.GetByID(ctx, id)
}
