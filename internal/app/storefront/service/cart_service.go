package service

import (
	"context"
	"errors"
	"fmt"

	"honeymart/internal/app/storefront/entity"
	"honeymart/internal/app/storefront/repository"
	"honeymart/pkg/metrics"

	"github.com/google/uuid"
)

// CartService обрабатывает бизнес-логику корзины
// Все операции привязаны к корзине вызывающего пользователя,
// поэтому чужие позиции для него просто не существуют
type CartService struct {
	cartRepo repository.CartRepository
}

// NewCartService создает новый сервис корзины
func NewCartService(cartRepo repository.CartRepository) *CartService {
	return &CartService{cartRepo: cartRepo}
}

// GetCart возвращает корзину пользователя, создавая ее при первом обращении
// Итоги всегда пересчитываются по текущим ценам товаров
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*entity.CartResponse, error) {
	cart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return s.cartResponse(ctx, cart.ID)
}

// AddItem добавляет товар в корзину или увеличивает количество существующей позиции
// Суммарное количество не может превысить текущий остаток товара
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req *entity.AddCartItemRequest) (*entity.CartResponse, error) {
	cart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	if _, err := s.cartRepo.AddItem(ctx, cart.ID, req.ProductID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			return nil, ErrProductNotFound
		case errors.Is(err, repository.ErrStockExceeded):
			metrics.CartStockRejections.Inc()
			return nil, ErrStockExceeded
		}
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	metrics.CartItemsAdded.Inc()

	return s.cartResponse(ctx, cart.ID)
}

// UpdateItem устанавливает количество позиции корзины
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req *entity.UpdateCartItemRequest) (*entity.CartResponse, error) {
	cart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	if _, err := s.cartRepo.UpdateItemQuantity(ctx, cart.ID, itemID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, repository.ErrCartItemNotFound):
			return nil, ErrCartItemNotFound
		case errors.Is(err, repository.ErrStockExceeded):
			metrics.CartStockRejections.Inc()
			return nil, ErrStockExceeded
		}
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	return s.cartResponse(ctx, cart.ID)
}

// RemoveItem удаляет позицию из корзины
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.CartResponse, error) {
	cart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	if err := s.cartRepo.RemoveItem(ctx, cart.ID, itemID); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}

	return s.cartResponse(ctx, cart.ID)
}

// ClearCart удаляет все позиции корзины
// Операция идемпотентна, очистка пустой корзины проходит успешно
func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) (*entity.CartResponse, error) {
	cart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	if err := s.cartRepo.Clear(ctx, cart.ID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	return s.cartResponse(ctx, cart.ID)
}

// cartResponse загружает корзину с позициями и строит ответ со свежими итогами
func (s *CartService) cartResponse(ctx context.Context, cartID uuid.UUID) (*entity.CartResponse, error) {
	cart, err := s.cartRepo.GetWithItems(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}

	resp := entity.NewCartResponse(cart)
	return &resp, nil
}
