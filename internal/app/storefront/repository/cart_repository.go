package repository

import (
	"context"
	"errors"

	"honeymart/internal/app/storefront/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository создает новый репозиторий корзин
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// GetOrCreate возвращает корзину пользователя, создавая ее при отсутствии
// INSERT ... ON CONFLICT DO NOTHING по user_id исключает гонку
// с появлением двух корзин у одного пользователя
func (r *cartRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	newCart := &entity.Cart{
		ID:     uuid.New(),
		UserID: userID,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(newCart).Error
	if err != nil {
		return nil, err
	}

	var cart entity.Cart
	if err := r.db.WithContext(ctx).First(&cart, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}

	return &cart, nil
}

// GetWithItems получает корзину с позициями и актуальными данными товаров
func (r *cartRepository) GetWithItems(ctx context.Context, cartID uuid.UUID) (*entity.Cart, error) {
	var cart entity.Cart
	result := r.db.WithContext(ctx).
		Preload("Items.Product").
		First(&cart, "id = ?", cartID)

	if result.Error != nil {
		return nil, result.Error
	}

	return &cart, nil
}

// AddItem добавляет товар в корзину или увеличивает количество существующей позиции
// Вся операция выполняется в одной транзакции: строка товара блокируется
// SELECT ... FOR UPDATE, поэтому конкурентные добавления того же товара
// сериализуются и проверка остатка видит актуальный stock_quantity.
// При превышении остатка откатывается вся операция, существующая позиция
// остается без изменений
func (r *cartRepository) AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*entity.CartItem, error) {
	var item entity.CartItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product entity.Product
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", productID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		var existing entity.CartItem
		err = tx.First(&existing, "cart_id = ? AND product_id = ?", cartID, productID).Error
		switch {
		case err == nil:
			merged := existing.Quantity + quantity
			if merged > product.StockQuantity {
				return ErrStockExceeded
			}
			if err := tx.Model(&existing).Update("quantity", merged).Error; err != nil {
				return err
			}
			existing.Quantity = merged
			item = existing

		case errors.Is(err, gorm.ErrRecordNotFound):
			if quantity > product.StockQuantity {
				return ErrStockExceeded
			}
			item = entity.CartItem{
				ID:        uuid.New(),
				CartID:    cartID,
				ProductID: productID,
				Quantity:  quantity,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

		default:
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// UpdateItemQuantity перезаписывает количество позиции
// Позиция ищется по (id, cart_id): чужая позиция неотличима от отсутствующей.
// Остаток проверяется под блокировкой строки товара, как в AddItem
func (r *cartRepository) UpdateItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) (*entity.CartItem, error) {
	var item entity.CartItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&item, "id = ? AND cart_id = ?", itemID, cartID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartItemNotFound
			}
			return err
		}

		var product entity.Product
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", item.ProductID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if quantity > product.StockQuantity {
			return ErrStockExceeded
		}

		if err := tx.Model(&item).Update("quantity", quantity).Error; err != nil {
			return err
		}
		item.Quantity = quantity

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// RemoveItem удаляет позицию из корзины
// Фильтр по cart_id отсекает чужие позиции как not found
func (r *cartRepository) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&entity.CartItem{}, "id = ? AND cart_id = ?", itemID, cartID)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

// Clear удаляет все позиции корзины
// Идемпотентна: повторный вызов на пустой корзине не является ошибкой
func (r *cartRepository) Clear(ctx context.Context, cartID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&entity.CartItem{})

	return result.Error
}
