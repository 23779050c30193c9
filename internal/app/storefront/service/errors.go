package service

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrUsernameExists      = errors.New("user with this username already exists")
	ErrEmailExists         = errors.New("user with this email already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrWrongPassword       = errors.New("old password is incorrect")

	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryExists      = errors.New("category with this name already exists")
	ErrCategoryHasProducts = errors.New("cannot delete category with existing products")

	ErrProductNotFound = errors.New("product not found")
	ErrNegativeStock   = errors.New("stock quantity cannot become negative")

	ErrCartItemNotFound = errors.New("cart item not found")
	ErrStockExceeded    = errors.New("requested quantity exceeds available stock")

	ErrWishlistNotFound  = errors.New("wishlist item not found")
	ErrWishlistDuplicate = errors.New("product already in wishlist")
)
