package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"honeymart/internal/app/storefront/entity"
	"honeymart/internal/app/storefront/repository"
	"honeymart/internal/app/storefront/util"
	"honeymart/pkg/logger"
	"honeymart/pkg/metrics"

	"github.com/google/uuid"
)

// TTL кеша списка категорий
const categoriesCacheTTL = time.Hour

// CatalogService обрабатывает бизнес-логику каталога товаров
// Координирует работу репозиториев, Redis кеша и Kafka producer
type CatalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	cache        util.CategoryCache
	producer     util.MessagePublisher
}

// NewCatalogService создает новый сервис каталога с внедрением зависимостей
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	cache util.CategoryCache,
	producer util.MessagePublisher,
) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		cache:        cache,
		producer:     producer,
	}
}

// === CATEGORIES ===

// CreateCategory создает новую категорию и инвалидирует кеш
func (s *CatalogService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	category := &entity.Category{
		ID:        uuid.New(),
		Name:      req.Name,
		CreatedAt: time.Now(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryAlreadyExists) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidateCategoriesCache(ctx)

	return category, nil
}

// GetCategory получает категорию по ID с количеством товаров
func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.CategoryResponse, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	count, err := s.categoryRepo.CountProducts(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count category products: %w", err)
	}

	return &entity.CategoryResponse{
		ID:            category.ID,
		Name:          category.Name,
		ProductsCount: count,
		CreatedAt:     category.CreatedAt,
	}, nil
}

// GetAllCategories получает все категории с кешированием в Redis
// Сначала проверяет кеш, при промахе загружает из БД и кеширует
func (s *CatalogService) GetAllCategories(ctx context.Context) ([]entity.CategoryResponse, error) {
	cached, err := s.cache.GetCategories(ctx)
	if err == nil && cached != nil {
		return cached, nil
	}
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read categories cache")
	}

	categories, err := s.categoryRepo.GetAllWithCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	// Проблемы с кешем не критичны, данные уже получены из БД
	if err := s.cache.SetCategories(ctx, categories, categoriesCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("failed to cache categories")
	}

	return categories, nil
}

// UpdateCategory переименовывает категорию и инвалидирует кеш
func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryRequest) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	category.Name = req.Name

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryAlreadyExists) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.invalidateCategoriesCache(ctx)

	return category, nil
}

// DeleteCategory удаляет категорию
// Категория с товарами не удаляется, сначала нужно убрать товары
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			return ErrCategoryNotFound
		case errors.Is(err, repository.ErrCategoryHasProducts):
			return ErrCategoryHasProducts
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.invalidateCategoriesCache(ctx)

	return nil
}

// === PRODUCTS ===

// CreateProduct создает новый товар и отправляет событие PRODUCT_CREATED
// Проверяет существование категории перед созданием
func (s *CatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.ProductWithCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to verify category: %w", err)
	}

	product := &entity.Product{
		ID:            uuid.New(),
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
		CategoryID:    req.CategoryID,
		CreatedAt:     time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	metrics.ProductsCreated.Inc()
	s.invalidateCategoriesCache(ctx) // меняется products_count

	s.publishProductEvent(ctx, entity.EventProductCreated, product)

	return &entity.ProductWithCategory{Product: *product, Category: *category}, nil
}

// GetProduct получает товар по ID с информацией о категории
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.ProductWithCategory, error) {
	product, err := s.productRepo.GetWithCategory(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// ListProducts возвращает страницу товаров по фильтру
func (s *CatalogService) ListProducts(ctx context.Context, filter *entity.ProductFilter) (*entity.PaginatedResponse, error) {
	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	items := make([]entity.ProductListItem, 0, len(products))
	for i := range products {
		items = append(items, entity.NewProductListItem(&products[i]))
	}

	resp := entity.NewPaginatedResponse(total, filter.Page, filter.PageSize, items)
	return &resp, nil
}

// ListCategoryProducts возвращает страницу товаров внутри категории
// Несуществующая категория дает ошибку, а не пустой список
func (s *CatalogService) ListCategoryProducts(ctx context.Context, categoryID uuid.UUID, filter *entity.ProductFilter) (*entity.PaginatedResponse, error) {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to verify category: %w", err)
	}

	filter.CategoryID = &categoryID
	filter.CategoryName = ""

	return s.ListProducts(ctx, filter)
}

// UpdateProduct выполняет частичное обновление товара
// Отправляет событие PRODUCT_UPDATED после сохранения
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.ProductWithCategory, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	// Обновляем только переданные поля
	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price > 0 {
		product.Price = req.Price
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return nil, ErrNegativeStock
		}
		product.StockQuantity = *req.StockQuantity
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.CategoryID != uuid.Nil && req.CategoryID != product.CategoryID {
		if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to verify category: %w", err)
		}
		product.CategoryID = req.CategoryID
		s.invalidateCategoriesCache(ctx) // меняется products_count обеих категорий
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.publishProductEvent(ctx, entity.EventProductUpdated, product)

	updated, err := s.productRepo.GetWithCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get updated product: %w", err)
	}

	return updated, nil
}

// DeleteProduct удаляет товар и отправляет событие PRODUCT_DELETED
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to get product: %w", err)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.invalidateCategoriesCache(ctx)
	s.publishProductEvent(ctx, entity.EventProductDeleted, product)

	return nil
}

// UpdateStock атомарно изменяет остаток товара на quantity_change
// Итоговый остаток не может стать отрицательным
// Отправляет STOCK_UPDATED, а при падении ниже порога еще и LOW_STOCK
func (s *CatalogService) UpdateStock(ctx context.Context, id uuid.UUID, req *entity.UpdateStockRequest) (*entity.Product, error) {
	product, err := s.productRepo.UpdateStock(ctx, id, req.QuantityChange)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			return nil, ErrProductNotFound
		case errors.Is(err, repository.ErrNegativeStock):
			metrics.StockUpdates.WithLabelValues("rejected").Inc()
			return nil, ErrNegativeStock
		}
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}

	metrics.StockUpdates.WithLabelValues("success").Inc()

	s.publishProductEvent(ctx, entity.EventStockUpdated, product)

	// LOW_STOCK отправляется только при пересечении порога сверху вниз
	oldQuantity := product.StockQuantity - req.QuantityChange
	if oldQuantity >= entity.LowStockThreshold && product.StockQuantity < entity.LowStockThreshold {
		s.publishProductEvent(ctx, entity.EventLowStock, product)
	}

	return product, nil
}

// invalidateCategoriesCache сбрасывает кеш списка категорий
// Ошибки кеша логируются и не прерывают основную операцию
func (s *CatalogService) invalidateCategoriesCache(ctx context.Context) {
	if err := s.cache.DeleteCategories(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate categories cache")
	}
}

// publishProductEvent отправляет событие о товаре в Kafka
// Key - это ProductID для партиционирования
// Товар уже сохранен, проблемы с Kafka не критичны для основной операции
func (s *CatalogService) publishProductEvent(ctx context.Context, eventType string, product *entity.Product) {
	event := entity.ProductEvent{
		EventType:     eventType,
		ProductID:     product.ID,
		Name:          product.Name,
		Price:         product.Price,
		StockQuantity: product.StockQuantity,
		CategoryID:    product.CategoryID,
		Timestamp:     time.Now(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal product event")
		return
	}

	if err := s.producer.PublishMessage(ctx, event.ProductID.String(), eventData); err != nil {
		logger.Error().Err(err).Str("event_type", eventType).Str("product_id", product.ID.String()).Msg("failed to publish product event")
	}
}
