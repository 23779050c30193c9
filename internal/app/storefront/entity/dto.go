package entity

import (
	"time"

	"github.com/google/uuid"
)

// ==================== Auth ====================

// RegisterRequest - запрос на регистрацию
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=150"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	FirstName       string `json:"first_name" validate:"omitempty,max=150"`
	LastName        string `json:"last_name" validate:"omitempty,max=150"`
}

// LoginRequest - запрос на вход
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest - запрос на обновление токена
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenPair содержит access и refresh токены
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // время жизни access token в секундах
}

// UserResponse - публичное представление пользователя
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse строит UserResponse из модели пользователя
func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role(),
		CreatedAt: u.CreatedAt,
	}
}

// AuthResponse - ответ с пользователем и токенами
type AuthResponse struct {
	User   UserResponse `json:"user"`
	Tokens TokenPair    `json:"tokens"`
}

// UpdateProfileRequest - запрос на обновление профиля
// Поле username игнорируется: имя пользователя неизменяемо после регистрации
type UpdateProfileRequest struct {
	Email     string `json:"email" validate:"omitempty,email"`
	FirstName string `json:"first_name" validate:"omitempty,max=150"`
	LastName  string `json:"last_name" validate:"omitempty,max=150"`
}

// ChangePasswordRequest - запрос на смену пароля
type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required,min=8"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required"`
}

// TokenValidationResponse - результат проверки access токена
type TokenValidationResponse struct {
	Valid  bool      `json:"valid"`
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
}

// ==================== Catalog ====================

// CreateCategoryRequest - запрос на создание категории
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// UpdateCategoryRequest - запрос на переименование категории
type UpdateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// CategoryResponse - категория с количеством товаров
type CategoryResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ProductsCount int64     `json:"products_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type CreateProductRequest struct {
	Name          string    `json:"name" validate:"required,min=1,max=200"`
	Description   string    `json:"description" validate:"omitempty,max=2000"`
	Price         float64   `json:"price" validate:"required,gt=0"`
	StockQuantity int       `json:"stock_quantity" validate:"omitempty,gte=0"`
	ImageURL      string    `json:"image_url" validate:"omitempty,url,max=500"`
	CategoryID    uuid.UUID `json:"category_id" validate:"required"`
}

type UpdateProductRequest struct {
	Name          string    `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string   `json:"description" validate:"omitempty"`
	Price         float64   `json:"price" validate:"omitempty,gt=0"`
	StockQuantity *int      `json:"stock_quantity" validate:"omitempty"`
	ImageURL      *string   `json:"image_url" validate:"omitempty"`
	CategoryID    uuid.UUID `json:"category_id" validate:"omitempty"`
}

// UpdateStockRequest - запрос на изменение остатков
// quantity_change может быть отрицательным или нулевым (no-op),
// но итоговый остаток не может стать отрицательным
type UpdateStockRequest struct {
	QuantityChange int `json:"quantity_change"`
}

// ProductResponse - полное представление товара
type ProductResponse struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Price          float64     `json:"price"`
	StockQuantity  int         `json:"stock_quantity"`
	ImageURL       string      `json:"image_url,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	CategoryID     uuid.UUID   `json:"category_id"`
	CategoryName   string      `json:"category_name"`
	IsInStock      bool        `json:"is_in_stock"`
	StockStatus    StockStatus `json:"stock_status"`
	InventoryValue float64     `json:"inventory_value"`
}

// NewProductResponse строит ProductResponse из товара с категорией
func NewProductResponse(p *ProductWithCategory) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		StockQuantity:  p.StockQuantity,
		ImageURL:       p.ImageURL,
		CreatedAt:      p.CreatedAt,
		CategoryID:     p.CategoryID,
		CategoryName:   p.Category.Name,
		IsInStock:      p.IsInStock(),
		StockStatus:    p.Product.StockStatus(),
		InventoryValue: p.InventoryValue(),
	}
}

// ProductListItem - сокращенное представление товара для списков
type ProductListItem struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	Price         float64     `json:"price"`
	StockQuantity int         `json:"stock_quantity"`
	ImageURL      string      `json:"image_url,omitempty"`
	CategoryName  string      `json:"category_name"`
	IsInStock     bool        `json:"is_in_stock"`
	StockStatus   StockStatus `json:"stock_status"`
}

// NewProductListItem строит элемент списка из товара с категорией
func NewProductListItem(p *ProductWithCategory) ProductListItem {
	return ProductListItem{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
		CategoryName:  p.Category.Name,
		IsInStock:     p.IsInStock(),
		StockStatus:   p.Product.StockStatus(),
	}
}

// PaginatedResponse - стандартный конверт для списков
// next/previous присутствуют только когда соответствующая страница существует
type PaginatedResponse struct {
	Count       int64       `json:"count"`
	TotalPages  int         `json:"total_pages"`
	CurrentPage int         `json:"current_page"`
	PageSize    int         `json:"page_size"`
	Next        *int        `json:"next,omitempty"`
	Previous    *int        `json:"previous,omitempty"`
	Results     interface{} `json:"results"`
}

// NewPaginatedResponse строит конверт пагинации по общему количеству строк
func NewPaginatedResponse(count int64, page, pageSize int, results interface{}) PaginatedResponse {
	totalPages := int((count + int64(pageSize) - 1) / int64(pageSize))
	if totalPages == 0 {
		totalPages = 1
	}

	resp := PaginatedResponse{
		Count:       count,
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    pageSize,
		Results:     results,
	}

	if page < totalPages {
		next := page + 1
		resp.Next = &next
	}
	if page > 1 {
		prev := page - 1
		resp.Previous = &prev
	}

	return resp
}

// ==================== Cart ====================

// AddCartItemRequest - запрос на добавление товара в корзину
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gte=1"`
}

// UpdateCartItemRequest - запрос на изменение количества позиции
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// CartItemResponse - позиция корзины с данными товара
type CartItemResponse struct {
	ID            uuid.UUID `json:"id"`
	ProductID     uuid.UUID `json:"product_id"`
	ProductName   string    `json:"product_name"`
	UnitPrice     float64   `json:"unit_price"`
	Quantity      int       `json:"quantity"`
	Subtotal      float64   `json:"subtotal"`
	StockQuantity int       `json:"stock_quantity"`
}

// CartResponse - корзина с позициями и итогами
// Итоги всегда вычисляются по текущим ценам и остаткам
type CartResponse struct {
	ID         uuid.UUID          `json:"id"`
	Items      []CartItemResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	TotalPrice float64            `json:"total_price"`
}

// NewCartResponse строит ответ корзины, пересчитывая итоги по позициям
func NewCartResponse(cart *Cart) CartResponse {
	resp := CartResponse{
		ID:    cart.ID,
		Items: make([]CartItemResponse, 0, len(cart.Items)),
	}

	for _, item := range cart.Items {
		ir := CartItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal(),
		}
		if item.Product != nil {
			ir.ProductName = item.Product.Name
			ir.UnitPrice = item.Product.Price
			ir.StockQuantity = item.Product.StockQuantity
		}
		resp.Items = append(resp.Items, ir)
		resp.TotalItems += item.Quantity
		resp.TotalPrice += ir.Subtotal
	}

	return resp
}

// ==================== Wishlist ====================

// AddWishlistRequest - запрос на добавление товара в избранное
type AddWishlistRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

// WishlistItemResponse - запись избранного с вложенным товаром
type WishlistItemResponse struct {
	ID      string          `json:"id"`
	AddedAt time.Time       `json:"added_at"`
	Product ProductListItem `json:"product"`
}

// ==================== Common ====================

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
