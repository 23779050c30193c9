package service

import (
	"context"

	"honeymart/internal/app/storefront/entity"
	"honeymart/internal/app/storefront/util"

	"github.com/google/uuid"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResponse, error)
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*entity.TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID, accessToken string) error
	ValidateToken(ctx context.Context, accessToken string) (*util.JWTClaims, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *entity.UpdateProfileRequest) (*entity.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *entity.ChangePasswordRequest) error
}

type CatalogServiceInterface interface {
	CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*entity.CategoryResponse, error)
	GetAllCategories(ctx context.Context) ([]entity.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryRequest) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.ProductWithCategory, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.ProductWithCategory, error)
	ListProducts(ctx context.Context, filter *entity.ProductFilter) (*entity.PaginatedResponse, error)
	ListCategoryProducts(ctx context.Context, categoryID uuid.UUID, filter *entity.ProductFilter) (*entity.PaginatedResponse, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.ProductWithCategory, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	UpdateStock(ctx context.Context, id uuid.UUID, req *entity.UpdateStockRequest) (*entity.Product, error)
}

type CartServiceInterface interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*entity.CartResponse, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *entity.AddCartItemRequest) (*entity.CartResponse, error)
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req *entity.UpdateCartItemRequest) (*entity.CartResponse, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.CartResponse, error)
	ClearCart(ctx context.Context, userID uuid.UUID) (*entity.CartResponse, error)
}

type WishlistServiceInterface interface {
	AddProduct(ctx context.Context, userID uuid.UUID, req *entity.AddWishlistRequest) (*entity.WishlistItemResponse, error)
	GetWishlist(ctx context.Context, userID uuid.UUID) ([]entity.WishlistItemResponse, error)
	RemoveByID(ctx context.Context, userID uuid.UUID, itemID string) error
	RemoveByProduct(ctx context.Context, userID, productID uuid.UUID) error
}
