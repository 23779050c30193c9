package repository

import (
	"context"
	"fmt"
	"time"

	"honeymart/internal/app/storefront/entity"
	"honeymart/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type wishlistRepository struct {
	collection *mongo.Collection
}

// NewWishlistRepository создает новый репозиторий избранного
// Уникальность пары (user_id, product_id) обеспечивается compound индексом
func NewWishlistRepository(db *mongo.Database) WishlistRepository {
	collection := db.Collection("wishlist")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "product_id", Value: 1},
		},
		Options: options.Index().SetName("user_product_idx").SetUnique(true),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		// Индекс может уже существовать, работу не прерываем
		logger.Warn().Err(err).Msg("failed to create wishlist index")
	}

	return &wishlistRepository{
		collection: collection,
	}
}

// Create добавляет запись избранного
// Дубликат пары (user_id, product_id) отклоняется уникальным индексом
func (r *wishlistRepository) Create(ctx context.Context, item *entity.WishlistItem) error {
	item.AddedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrWishlistDuplicate
		}
		return fmt.Errorf("failed to create wishlist item: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid
	}

	return nil
}

// GetByUserID получает все записи избранного пользователя
// Фильтр по user_id в самом запросе: чужие записи невидимы на уровне строк
func (r *wishlistRepository) GetByUserID(ctx context.Context, userID string) ([]entity.WishlistItem, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.D{{Key: "added_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find wishlist items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []entity.WishlistItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode wishlist items: %w", err)
	}

	return items, nil
}

// DeleteByID удаляет запись избранного по ID
// user_id входит в фильтр: чужая запись неотличима от отсутствующей
func (r *wishlistRepository) DeleteByID(ctx context.Context, userID, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrWishlistNotFound
	}

	filter := bson.M{"_id": objectID, "user_id": userID}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete wishlist item: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrWishlistNotFound
	}

	return nil
}

// DeleteByProduct удаляет запись избранного по ID товара
func (r *wishlistRepository) DeleteByProduct(ctx context.Context, userID, productID string) error {
	filter := bson.M{"user_id": userID, "product_id": productID}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete wishlist item by product: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrWishlistNotFound
	}

	return nil
}
