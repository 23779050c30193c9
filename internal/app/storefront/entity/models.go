package entity

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category представляет категорию товаров
type Category struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// StockStatus представляет уровень остатков товара
type StockStatus string

const (
	StockStatusOut      StockStatus = "out_of_stock" // 0
	StockStatusLow      StockStatus = "low_stock"    // < 10
	StockStatusModerate StockStatus = "moderate_stock"
	StockStatusHigh     StockStatus = "high_stock" // >= 50
)

// LowStockThreshold - порог, ниже которого товар считается заканчивающимся
const LowStockThreshold = 10

// Product представляет товар в каталоге
type Product struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name          string    `json:"name" gorm:"type:varchar(200);not null"`
	Description   string    `json:"description" gorm:"type:text"`
	Price         float64   `json:"price" gorm:"type:decimal(10,2);not null;check:price > 0"`
	StockQuantity int       `json:"stock_quantity" gorm:"not null;default:0;check:stock_quantity >= 0"`
	ImageURL      string    `json:"image_url,omitempty" gorm:"type:varchar(500)"`
	CategoryID    uuid.UUID `json:"category_id" gorm:"type:uuid;not null"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	Category      *Category `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

// TableName указывает имя таблицы для GORM
func (Product) TableName() string {
	return "products"
}

// IsInStock проверяет наличие товара на складе
func (p *Product) IsInStock() bool {
	return p.StockQuantity > 0
}

// StockStatus возвращает уровень остатков товара
func (p *Product) StockStatus() StockStatus {
	switch {
	case p.StockQuantity == 0:
		return StockStatusOut
	case p.StockQuantity < LowStockThreshold:
		return StockStatusLow
	case p.StockQuantity < 50:
		return StockStatusModerate
	default:
		return StockStatusHigh
	}
}

// InventoryValue возвращает суммарную стоимость остатков товара
func (p *Product) InventoryValue() float64 {
	return p.Price * float64(p.StockQuantity)
}

// ProductWithCategory содержит товар с информацией о категории
type ProductWithCategory struct {
	Product
	Category Category `json:"category"`
}

// User представляет пользователя в системе
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // не возвращаем в JSON
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	IsStaff      bool      `json:"is_staff" db:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser" db:"is_superuser"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Роли пользователя, зашиваемые в JWT
const (
	RoleUser  = "user"
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

// Role возвращает роль пользователя, определяемую флагами is_staff/is_superuser
func (u *User) Role() string {
	switch {
	case u.IsSuperuser:
		return RoleAdmin
	case u.IsStaff:
		return RoleStaff
	default:
		return RoleUser
	}
}

// Cart представляет корзину пользователя (одна на пользователя)
type Cart struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;uniqueIndex"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	Items     []CartItem `json:"items,omitempty" gorm:"foreignKey:CartID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName указывает имя таблицы для GORM
func (Cart) TableName() string {
	return "carts"
}

// CartItem представляет позицию в корзине
// Пара (cart_id, product_id) уникальна: один товар - одна строка
type CartItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CartID    uuid.UUID `json:"cart_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_product"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_product"`
	Quantity  int       `json:"quantity" gorm:"not null;check:quantity > 0"`
	Product   *Product  `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName указывает имя таблицы для GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// Subtotal возвращает стоимость позиции по текущей цене товара
func (i *CartItem) Subtotal() float64 {
	if i.Product == nil {
		return 0
	}
	return i.Product.Price * float64(i.Quantity)
}

// WishlistItem представляет запись избранного в MongoDB
// Пара (user_id, product_id) уникальна через compound индекс
type WishlistItem struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    string             `json:"user_id" bson:"user_id"`       // UUID пользователя
	ProductID string             `json:"product_id" bson:"product_id"` // UUID товара
	AddedAt   time.Time          `json:"added_at" bson:"added_at"`
}

// ProductEvent представляет событие изменения товара для Kafka
type ProductEvent struct {
	EventType     string    `json:"event_type"` // PRODUCT_CREATED, PRODUCT_UPDATED, PRODUCT_DELETED, STOCK_UPDATED, LOW_STOCK
	ProductID     uuid.UUID `json:"product_id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	CategoryID    uuid.UUID `json:"category_id"`
	Timestamp     time.Time `json:"timestamp"`
}

// Типы событий каталога
const (
	EventProductCreated = "PRODUCT_CREATED"
	EventProductUpdated = "PRODUCT_UPDATED"
	EventProductDeleted = "PRODUCT_DELETED"
	EventStockUpdated   = "STOCK_UPDATED"
	EventLowStock       = "LOW_STOCK"
)
