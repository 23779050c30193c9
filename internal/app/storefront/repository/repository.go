package repository

import (
	"context"
	"errors"
	"time"

	"honeymart/internal/app/storefront/entity"

	"github.com/google/uuid"
)

var (
	// Стандартные ошибки репозиториев для обработки в service layer
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("user with this username already exists")
	ErrDuplicateEmail    = errors.New("user with this email already exists")

	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category with this name already exists")
	ErrCategoryHasProducts   = errors.New("cannot delete category with existing products")

	ErrProductNotFound = errors.New("product not found")
	ErrNegativeStock   = errors.New("stock quantity cannot be negative")

	ErrCartItemNotFound = errors.New("cart item not found")
	ErrStockExceeded    = errors.New("quantity exceeds available stock")

	ErrWishlistNotFound  = errors.New("wishlist item not found")
	ErrWishlistDuplicate = errors.New("product already in wishlist")

	ErrTokenNotFound = errors.New("refresh token not found")
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetAllWithCounts(ctx context.Context) ([]entity.CategoryResponse, error)
	CountProducts(ctx context.Context, id uuid.UUID) (int64, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetWithCategory(ctx context.Context, id uuid.UUID) (*entity.ProductWithCategory, error)
	List(ctx context.Context, filter *entity.ProductFilter) ([]entity.ProductWithCategory, int64, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateStock(ctx context.Context, id uuid.UUID, delta int) (*entity.Product, error)
}

type CartRepository interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)
	GetWithItems(ctx context.Context, cartID uuid.UUID) (*entity.Cart, error)
	AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*entity.CartItem, error)
	UpdateItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) (*entity.CartItem, error)
	RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error
	Clear(ctx context.Context, cartID uuid.UUID) error
}

type WishlistRepository interface {
	Create(ctx context.Context, item *entity.WishlistItem) error
	GetByUserID(ctx context.Context, userID string) ([]entity.WishlistItem, error)
	DeleteByID(ctx context.Context, userID, id string) error
	DeleteByProduct(ctx context.Context, userID, productID string) error
}

type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, token string) (uuid.UUID, error)
	DeleteRefreshToken(ctx context.Context, token string) error
	DeleteUserRefreshTokens(ctx context.Context, userID uuid.UUID) error

	AddToBlacklist(ctx context.Context, token string, expiresAt time.Time) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}
