package handler

import (
	"errors"
	"net/http"

	"honeymart/internal/app/storefront/entity"
	"honeymart/internal/app/storefront/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// WishlistHandler обрабатывает HTTP запросы избранного
type WishlistHandler struct {
	wishlistService service.WishlistServiceInterface
	validator       *validator.Validate
}

// NewWishlistHandler создает новый обработчик избранного
func NewWishlistHandler(wishlistService service.WishlistServiceInterface) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		validator:       validator.New(),
	}
}

// GetWishlist обрабатывает GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := h.wishlistService.GetWishlist(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get wishlist"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// AddProduct обрабатывает POST /wishlist
// Повторное добавление того же товара отклоняется
func (h *WishlistHandler) AddProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req entity.AddWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	item, err := h.wishlistService.AddProduct(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, service.ErrWishlistDuplicate):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product already in wishlist"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add product to wishlist"})
		}
		return
	}

	c.JSON(http.StatusCreated, item)
}

// RemoveItem обрабатывает DELETE /wishlist/:id
func (h *WishlistHandler) RemoveItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.wishlistService.RemoveByID(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrWishlistNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove wishlist item"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{
		Message: "Wishlist item removed successfully",
	})
}

// RemoveProduct обрабатывает DELETE /wishlist/product/:product_id
func (h *WishlistHandler) RemoveProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	if err := h.wishlistService.RemoveByProduct(c.Request.Context(), userID, productID); err != nil {
		if errors.Is(err, service.ErrWishlistNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove wishlist item"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{
		Message: "Product removed from wishlist",
	})
}
