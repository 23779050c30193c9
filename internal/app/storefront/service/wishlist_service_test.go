package service

import (
	"context"
	"testing"
	"time"

	"honeymart/internal/app/storefront/entity"
	"honeymart/internal/app/storefront/repository"
	"honeymart/internal/app/storefront/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newWishlistServiceUnderTest() (*WishlistService, *mocks.MockWishlistRepository, *mocks.MockProductRepository) {
	wishlistRepo := new(mocks.MockWishlistRepository)
	productRepo := new(mocks.MockProductRepository)
	return NewWishlistService(wishlistRepo, productRepo), wishlistRepo, productRepo
}

func TestWishlistService_AddProduct_Success(t *testing.T) {
	ctx := context.Background()
	svc, wishlistRepo, productRepo := newWishlistServiceUnderTest()

	userID := uuid.New()
	category := entity.Category{ID: uuid.New(), Name: "Honey"}
	product := newTestProduct(category.ID)

	productRepo.On("GetWithCategory", ctx, product.ID).Return(&entity.ProductWithCategory{Product: *product, Category: category}, nil)
	wishlistRepo.On("Create", ctx, mock.MatchedBy(func(item *entity.WishlistItem) bool {
		return item.UserID == userID.String() && item.ProductID == product.ID.String()
	})).Return(nil)

	resp, err := svc.AddProduct(ctx, userID, &entity.AddWishlistRequest{ProductID: product.ID})

	require.NoError(t, err)
	assert.Equal(t, product.ID, resp.Product.ID)
	assert.Equal(t, "Honey", resp.Product.CategoryName)
	wishlistRepo.AssertExpectations(t)
}

func TestWishlistService_AddProduct_ProductMissing(t *testing.T) {
	ctx := context.Background()
	svc, wishlistRepo, productRepo := newWishlistServiceUnderTest()

	productID := uuid.New()
	productRepo.On("GetWithCategory", ctx, productID).Return(nil, repository.ErrProductNotFound)

	resp, err := svc.AddProduct(ctx, uuid.New(), &entity.AddWishlistRequest{ProductID: productID})

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, resp)
	wishlistRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestWishlistService_AddProduct_Duplicate(t *testing.T) {
	ctx := context.Background()
	svc, wishlistRepo, productRepo := newWishlistServiceUnderTest()

	category := entity.Category{ID: uuid.New(), Name: "Honey"}
	product := newTestProduct(category.ID)

	productRepo.On("GetWithCategory", ctx, product.ID).Return(&entity.ProductWithCategory{Product: *product, Category: category}, nil)
	wishlistRepo.On("Create", ctx, mock.AnythingOfType("*entity.WishlistItem")).Return(repository.ErrWishlistDuplicate)

	resp, err := svc.AddProduct(ctx, uuid.New(), &entity.AddWishlistRequest{ProductID: product.ID})

	assert.ErrorIs(t, err, ErrWishlistDuplicate)
	assert.Nil(t, resp)
}

func TestWishlistService_GetWishlist_SkipsDeletedProducts(t *testing.T) {
	ctx := context.Background()
	svc, wishlistRepo, productRepo := newWishlistServiceUnderTest()

	userID := uuid.New()
	category := entity.Category{ID: uuid.New(), Name: "Honey"}
	alive := newTestProduct(category.ID)
	deletedID := uuid.New()

	items := []entity.WishlistItem{
		{ID: primitive.NewObjectID(), UserID: userID.String(), ProductID: alive.ID.String(), AddedAt: time.Now()},
		{ID: primitive.NewObjectID(), UserID: userID.String(), ProductID: deletedID.String(), AddedAt: time.Now()},
	}

	wishlistRepo.On("GetByUserID", ctx, userID.String()).Return(items, nil)
	productRepo.On("GetWithCategory", ctx, alive.ID).Return(&entity.ProductWithCategory{Product: *alive, Category: category}, nil)
	productRepo.On("GetWithCategory", ctx, deletedID).Return(nil, repository.ErrProductNotFound)

	result, err := svc.GetWishlist(ctx, userID)

	require.NoError(t, err)
	// Запись об удаленном товаре молча пропущена
	require.Len(t, result, 1)
	assert.Equal(t, alive.ID, result[0].Product.ID)
}

func TestWishlistService_GetWishlist_Empty(t *testing.T) {
	ctx := context.Background()
	svc, wishlistRepo, _ := newWishlistServiceUnderTest()

	userID := uuid.New()
	wishlistRepo.On("GetByUserID", ctx, userID.String()).Return([]entity.WishlistItem{}, nil)

	result, err := svc.GetWishlist(ctx, userID)

	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestWishlistService_RemoveByID_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, wishlistRepo, _ := newWishlistServiceUnderTest()

	userID := uuid.New()
	itemID := primitive.NewObjectID().Hex()
	wishlistRepo.On("DeleteByID", ctx, userID.String(), itemID).Return(repository.ErrWishlistNotFound)

	err := svc.RemoveByID(ctx, userID, itemID)

	assert.ErrorIs(t, err, ErrWishlistNotFound)
}

func TestWishlistService_RemoveByProduct_Success(t *testing.T) {
	ctx := context.Background()
	svc, wishlistRepo, _ := newWishlistServiceUnderTest()

	userID := uuid.New()
	productID := uuid.New()
	wishlistRepo.On("DeleteByProduct", ctx, userID.String(), productID.String()).Return(nil)

	err := svc.RemoveByProduct(ctx, userID, productID)

	require.NoError(t, err)
	wishlistRepo.AssertExpectations(t)
}
