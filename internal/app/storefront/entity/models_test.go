package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_StockStatus(t *testing.T) {
	tests := []struct {
		quantity int
		want     StockStatus
	}{
		{0, StockStatusOut},
		{1, StockStatusLow},
		{9, StockStatusLow},
		{10, StockStatusModerate},
		{49, StockStatusModerate},
		{50, StockStatusHigh},
		{1000, StockStatusHigh},
	}

	for _, tt := range tests {
		p := &Product{StockQuantity: tt.quantity}
		assert.Equal(t, tt.want, p.StockStatus(), "quantity %d", tt.quantity)
	}
}

func TestProduct_IsInStock(t *testing.T) {
	assert.False(t, (&Product{StockQuantity: 0}).IsInStock())
	assert.True(t, (&Product{StockQuantity: 1}).IsInStock())
}

func TestProduct_InventoryValue(t *testing.T) {
	p := &Product{Price: 12.5, StockQuantity: 4}
	assert.Equal(t, 50.0, p.InventoryValue())
}

func TestUser_Role(t *testing.T) {
	assert.Equal(t, RoleUser, (&User{}).Role())
	assert.Equal(t, RoleStaff, (&User{IsStaff: true}).Role())
	assert.Equal(t, RoleAdmin, (&User{IsSuperuser: true}).Role())
	// is_superuser важнее is_staff
	assert.Equal(t, RoleAdmin, (&User{IsStaff: true, IsSuperuser: true}).Role())
}

func TestCartItem_Subtotal(t *testing.T) {
	item := &CartItem{
		Quantity: 3,
		Product:  &Product{Price: 9.99},
	}
	assert.InDelta(t, 29.97, item.Subtotal(), 0.001)

	// Без загруженного товара считать нечего
	assert.Equal(t, 0.0, (&CartItem{Quantity: 3}).Subtotal())
}

func TestNewCartResponse_Totals(t *testing.T) {
	cart := &Cart{
		Items: []CartItem{
			{Quantity: 2, Product: &Product{Name: "a", Price: 10, StockQuantity: 5}},
			{Quantity: 1, Product: &Product{Name: "b", Price: 5.5, StockQuantity: 3}},
		},
	}

	resp := NewCartResponse(cart)

	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 3, resp.TotalItems)
	assert.InDelta(t, 25.5, resp.TotalPrice, 0.001)
}
