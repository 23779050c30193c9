package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"honeymart/internal/app/storefront/entity"
	"honeymart/internal/app/storefront/repository"
	"honeymart/pkg/metrics"

	"github.com/google/uuid"
)

// WishlistService обрабатывает бизнес-логику избранного
// Записи хранятся в MongoDB, данные товаров подтягиваются из каталога
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService создает новый сервис избранного
func NewWishlistService(
	wishlistRepo repository.WishlistRepository,
	productRepo repository.ProductRepository,
) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// AddProduct добавляет товар в избранное пользователя
// Товар должен существовать, повторное добавление отклоняется
func (s *WishlistService) AddProduct(ctx context.Context, userID uuid.UUID, req *entity.AddWishlistRequest) (*entity.WishlistItemResponse, error) {
	product, err := s.productRepo.GetWithCategory(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to verify product: %w", err)
	}

	item := &entity.WishlistItem{
		UserID:    userID.String(),
		ProductID: req.ProductID.String(),
		AddedAt:   time.Now(),
	}

	if err := s.wishlistRepo.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrWishlistDuplicate) {
			return nil, ErrWishlistDuplicate
		}
		return nil, fmt.Errorf("failed to add wishlist item: %w", err)
	}

	metrics.WishlistAdds.Inc()

	return &entity.WishlistItemResponse{
		ID:      item.ID.Hex(),
		AddedAt: item.AddedAt,
		Product: entity.NewProductListItem(product),
	}, nil
}

// GetWishlist возвращает избранное пользователя с данными товаров
// Записи об удаленных из каталога товарах пропускаются
func (s *WishlistService) GetWishlist(ctx context.Context, userID uuid.UUID) ([]entity.WishlistItemResponse, error) {
	items, err := s.wishlistRepo.GetByUserID(ctx, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}

	result := make([]entity.WishlistItemResponse, 0, len(items))
	for _, item := range items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			continue
		}

		product, err := s.productRepo.GetWithCategory(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to load wishlist product: %w", err)
		}

		result = append(result, entity.WishlistItemResponse{
			ID:      item.ID.Hex(),
			AddedAt: item.AddedAt,
			Product: entity.NewProductListItem(product),
		})
	}

	return result, nil
}

// RemoveByID удаляет запись избранного по ее идентификатору
func (s *WishlistService) RemoveByID(ctx context.Context, userID uuid.UUID, itemID string) error {
	if err := s.wishlistRepo.DeleteByID(ctx, userID.String(), itemID); err != nil {
		if errors.Is(err, repository.ErrWishlistNotFound) {
			return ErrWishlistNotFound
		}
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}

	return nil
}

// RemoveByProduct удаляет товар из избранного пользователя
func (s *WishlistService) RemoveByProduct(ctx context.Context, userID, productID uuid.UUID) error {
	if err := s.wishlistRepo.DeleteByProduct(ctx, userID.String(), productID.String()); err != nil {
		if errors.Is(err, repository.ErrWishlistNotFound) {
			return ErrWishlistNotFound
		}
		return fmt.Errorf("failed to remove wishlist product: %w", err)
	}

	return nil
}
