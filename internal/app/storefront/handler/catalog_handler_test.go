package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"honeymart/internal/app/storefront/entity"
	"honeymart/internal/app/storefront/repository"
	"honeymart/internal/app/storefront/repository/mocks"
	"honeymart/internal/app/storefront/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Хелперы для создания тестового окружения

func newTestCatalogHandler() (*CatalogHandler, *mocks.MockCategoryRepository, *mocks.MockProductRepository, *mocks.MockCategoryCache, *mocks.MockMessagePublisher) {
	categoryRepo := new(mocks.MockCategoryRepository)
	productRepo := new(mocks.MockProductRepository)
	cache := new(mocks.MockCategoryCache)
	producer := new(mocks.MockMessagePublisher)

	catalogService := service.NewCatalogService(categoryRepo, productRepo, cache, producer)
	handler := NewCatalogHandler(catalogService)

	return handler, categoryRepo, productRepo, cache, producer
}

func newTestProductWithCategory() *entity.ProductWithCategory {
	category := entity.Category{ID: uuid.New(), Name: "Honey", CreatedAt: time.Now()}
	return &entity.ProductWithCategory{
		Product: entity.Product{
			ID:            uuid.New(),
			Name:          "Honey Jar",
			Description:   "500g wildflower honey",
			Price:         12.50,
			StockQuantity: 40,
			CategoryID:    category.ID,
			CreatedAt:     time.Now(),
		},
		Category: category,
	}
}

// ==================== Category Handler Tests ====================

func TestCatalogHandler_GetCategories_Success(t *testing.T) {
	// Arrange
	handler, _, _, cache, _ := newTestCatalogHandler()

	cached := []entity.CategoryResponse{
		{ID: uuid.New(), Name: "Honey", ProductsCount: 3},
		{ID: uuid.New(), Name: "Tea", ProductsCount: 1},
	}
	cache.On("GetCategories", mock.Anything).Return(cached, nil)

	router := setupTestRouter(http.MethodGet, "/categories", handler.GetCategories)
	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)

	var response []entity.CategoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Len(t, response, 2)
	assert.Equal(t, "Honey", response[0].Name)
}

func TestCatalogHandler_GetCategory_NotFound(t *testing.T) {
	// Arrange
	handler, categoryRepo, _, _, _ := newTestCatalogHandler()

	id := uuid.New()
	categoryRepo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrCategoryNotFound)

	router := setupTestRouter(http.MethodGet, "/categories/:id", handler.GetCategory)
	req := httptest.NewRequest(http.MethodGet, "/categories/"+id.String(), nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogHandler_GetCategory_InvalidID(t *testing.T) {
	// Arrange
	handler, _, _, _, _ := newTestCatalogHandler()

	router := setupTestRouter(http.MethodGet, "/categories/:id", handler.GetCategory)
	req := httptest.NewRequest(http.MethodGet, "/categories/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogHandler_CreateCategory_Success(t *testing.T) {
	// Arrange
	handler, categoryRepo, _, cache, _ := newTestCatalogHandler()

	categoryRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Category")).Return(nil)
	cache.On("DeleteCategories", mock.Anything).Return(nil)

	body, _ := json.Marshal(entity.CreateCategoryRequest{Name: "Honey"})

	router := setupTestRouter(http.MethodPost, "/categories", handler.CreateCategory)
	req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)

	var response entity.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Honey", response.Name)
}

func TestCatalogHandler_CreateCategory_Duplicate(t *testing.T) {
	// Arrange
	handler, categoryRepo, _, _, _ := newTestCatalogHandler()

	categoryRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Category")).Return(repository.ErrCategoryAlreadyExists)

	body, _ := json.Marshal(entity.CreateCategoryRequest{Name: "Honey"})

	router := setupTestRouter(http.MethodPost, "/categories", handler.CreateCategory)
	req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]string
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "Category with this name already exists", response["error"])
}

func TestCatalogHandler_CreateCategory_EmptyName(t *testing.T) {
	// Arrange
	handler, _, _, _, _ := newTestCatalogHandler()

	body, _ := json.Marshal(entity.CreateCategoryRequest{Name: ""})

	router := setupTestRouter(http.MethodPost, "/categories", handler.CreateCategory)
	req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogHandler_DeleteCategory_HasProducts(t *testing.T) {
	// Arrange
	handler, categoryRepo, _, _, _ := newTestCatalogHandler()

	id := uuid.New()
	categoryRepo.On("Delete", mock.Anything, id).Return(repository.ErrCategoryHasProducts)

	router := setupTestRouter(http.MethodDelete, "/categories/:id", handler.DeleteCategory)
	req := httptest.NewRequest(http.MethodDelete, "/categories/"+id.String(), nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]string
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "Cannot delete category with existing products", response["error"])
}

// ==================== Product Handler Tests ====================

func TestCatalogHandler_GetProducts_Paginated(t *testing.T) {
	// Arrange
	handler, _, productRepo, _, _ := newTestCatalogHandler()

	pwc := newTestProductWithCategory()
	productRepo.On("List", mock.Anything, mock.AnythingOfType("*entity.ProductFilter")).
		Return([]entity.ProductWithCategory{*pwc}, int64(1), nil)

	router := setupTestRouter(http.MethodGet, "/products", handler.GetProducts)
	req := httptest.NewRequest(http.MethodGet, "/products?page=1&page_size=20", nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)

	var response entity.PaginatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, int64(1), response.Count)
	assert.Equal(t, 1, response.TotalPages)
	assert.Nil(t, response.Next)
	assert.Nil(t, response.Previous)
}

func TestCatalogHandler_GetLowStockProducts_ForcesFilter(t *testing.T) {
	// Arrange
	handler, _, productRepo, _, _ := newTestCatalogHandler()

	productRepo.On("List", mock.Anything, mock.MatchedBy(func(f *entity.ProductFilter) bool {
		return f.LowStockOnly
	})).Return([]entity.ProductWithCategory{}, int64(0), nil)

	router := setupTestRouter(http.MethodGet, "/products/low_stock", handler.GetLowStockProducts)
	req := httptest.NewRequest(http.MethodGet, "/products/low_stock", nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	productRepo.AssertExpectations(t)
}

func TestCatalogHandler_GetProduct_Success(t *testing.T) {
	// Arrange
	handler, _, productRepo, _, _ := newTestCatalogHandler()

	pwc := newTestProductWithCategory()
	productRepo.On("GetWithCategory", mock.Anything, pwc.ID).Return(pwc, nil)

	router := setupTestRouter(http.MethodGet, "/products/:id", handler.GetProduct)
	req := httptest.NewRequest(http.MethodGet, "/products/"+pwc.ID.String(), nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)

	var response entity.ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, pwc.ID, response.ID)
	assert.Equal(t, "Honey", response.CategoryName)
	assert.True(t, response.IsInStock)
	assert.Equal(t, entity.StockStatusModerate, response.StockStatus)
	assert.InDelta(t, 500.0, response.InventoryValue, 0.001) // 40 * 12.50
}

func TestCatalogHandler_GetProduct_NotFound(t *testing.T) {
	// Arrange
	handler, _, productRepo, _, _ := newTestCatalogHandler()

	id := uuid.New()
	productRepo.On("GetWithCategory", mock.Anything, id).Return(nil, repository.ErrProductNotFound)

	router := setupTestRouter(http.MethodGet, "/products/:id", handler.GetProduct)
	req := httptest.NewRequest(http.MethodGet, "/products/"+id.String(), nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogHandler_CreateProduct_Success(t *testing.T) {
	// Arrange
	handler, categoryRepo, productRepo, cache, producer := newTestCatalogHandler()

	category := &entity.Category{ID: uuid.New(), Name: "Honey"}
	categoryRepo.On("GetByID", mock.Anything, category.ID).Return(category, nil)
	productRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Product")).Return(nil)
	cache.On("DeleteCategories", mock.Anything).Return(nil)
	producer.On("PublishMessage", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("[]uint8")).Return(nil)

	body, _ := json.Marshal(entity.CreateProductRequest{
		Name:          "Honey Jar",
		Price:         12.50,
		StockQuantity: 40,
		CategoryID:    category.ID,
	})

	router := setupTestRouter(http.MethodPost, "/products", handler.CreateProduct)
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)

	var response entity.ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Honey Jar", response.Name)
	assert.Equal(t, "Honey", response.CategoryName)
}

func TestCatalogHandler_CreateProduct_ValidationErrors(t *testing.T) {
	// Arrange
	handler, _, _, _, _ := newTestCatalogHandler()

	testCases := []struct {
		name    string
		request entity.CreateProductRequest
	}{
		{
			name:    "Empty name",
			request: entity.CreateProductRequest{Name: "", Price: 10, CategoryID: uuid.New()},
		},
		{
			name:    "Zero price",
			request: entity.CreateProductRequest{Name: "Honey Jar", Price: 0, CategoryID: uuid.New()},
		},
		{
			name:    "Negative price",
			request: entity.CreateProductRequest{Name: "Honey Jar", Price: -5, CategoryID: uuid.New()},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := json.Marshal(tc.request)

			router := setupTestRouter(http.MethodPost, "/products", handler.CreateProduct)
			req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCatalogHandler_CreateProduct_CategoryMissing(t *testing.T) {
	// Arrange
	handler, categoryRepo, _, _, _ := newTestCatalogHandler()

	categoryID := uuid.New()
	categoryRepo.On("GetByID", mock.Anything, categoryID).Return(nil, repository.ErrCategoryNotFound)

	body, _ := json.Marshal(entity.CreateProductRequest{
		Name:       "Honey Jar",
		Price:      12.50,
		CategoryID: categoryID,
	})

	router := setupTestRouter(http.MethodPost, "/products", handler.CreateProduct)
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]string
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "Category not found", response["error"])
}

// ==================== UpdateStock Handler Tests ====================

func TestCatalogHandler_UpdateStock_Success(t *testing.T) {
	// Arrange
	handler, _, productRepo, _, producer := newTestCatalogHandler()

	pwc := newTestProductWithCategory()
	updated := pwc.Product
	updated.StockQuantity = 30
	productRepo.On("UpdateStock", mock.Anything, pwc.ID, -10).Return(&updated, nil)
	producer.On("PublishMessage", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("[]uint8")).Return(nil)

	body, _ := json.Marshal(entity.UpdateStockRequest{QuantityChange: -10})

	router := setupTestRouter(http.MethodPost, "/products/:id/update_stock", handler.UpdateStock)
	req := httptest.NewRequest(http.MethodPost, "/products/"+pwc.ID.String()+"/update_stock", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)

	var response entity.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 30, response.StockQuantity)
}

func TestCatalogHandler_UpdateStock_ZeroChange(t *testing.T) {
	// Arrange - нулевое изменение валидно и не меняет остаток
	handler, _, productRepo, _, producer := newTestCatalogHandler()

	pwc := newTestProductWithCategory()
	unchanged := pwc.Product
	productRepo.On("UpdateStock", mock.Anything, pwc.ID, 0).Return(&unchanged, nil)
	producer.On("PublishMessage", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("[]uint8")).Return(nil)

	body, _ := json.Marshal(entity.UpdateStockRequest{QuantityChange: 0})

	router := setupTestRouter(http.MethodPost, "/products/:id/update_stock", handler.UpdateStock)
	req := httptest.NewRequest(http.MethodPost, "/products/"+pwc.ID.String()+"/update_stock", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)

	var response entity.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, pwc.StockQuantity, response.StockQuantity)
}

func TestCatalogHandler_UpdateStock_WouldGoNegative(t *testing.T) {
	// Arrange
	handler, _, productRepo, _, _ := newTestCatalogHandler()

	id := uuid.New()
	productRepo.On("UpdateStock", mock.Anything, id, -100).Return(nil, repository.ErrNegativeStock)

	body, _ := json.Marshal(entity.UpdateStockRequest{QuantityChange: -100})

	router := setupTestRouter(http.MethodPost, "/products/:id/update_stock", handler.UpdateStock)
	req := httptest.NewRequest(http.MethodPost, "/products/"+id.String()+"/update_stock", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]string
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "Stock quantity cannot become negative", response["error"])
}

func TestCatalogHandler_UpdateProduct_NegativeStock(t *testing.T) {
	// Arrange
	handler, _, productRepo, _, _ := newTestCatalogHandler()

	pwc := newTestProductWithCategory()
	productRepo.On("GetByID", mock.Anything, pwc.ID).Return(&pwc.Product, nil)

	negative := -5
	body, _ := json.Marshal(entity.UpdateProductRequest{StockQuantity: &negative})

	router := setupTestRouter(http.MethodPut, "/products/:id", handler.UpdateProduct)
	req := httptest.NewRequest(http.MethodPut, "/products/"+pwc.ID.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
