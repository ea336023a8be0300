package services_test

import (
	"fmt"
	"testing"

	"maison/internal/models"
	"maison/internal/repositories"
	"maison/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCartService_AddToCart(t *testing.T) {
	mockCart := new(MockCartRepository)
	mockProducts := new(MockProductRepository)
	service := services.NewCartService(mockCart, mockProducts)

	ring := &models.Product{ID: 1, Title: "Signet Ring", Price: "199.00"}

	// The product must exist before anything touches the cart.
	mockProducts.On("GetByID", uint(1)).Return(ring, nil).Once()
	mockCart.On("AddItem", mock.AnythingOfType("*models.CartItem")).Return(nil).Once()

	item, err := service.AddToCart("user-1", 1, 2, sizedPtr("7"), sizedPtr("Gold"))
	assert.NoError(t, err)
	assert.Equal(t, "user-1", item.UserID)
	assert.Equal(t, uint(1), item.ProductID)
	assert.Equal(t, 2, item.Quantity)
	mockProducts.AssertExpectations(t)
	mockCart.AssertExpectations(t)

	// A missing product surfaces as not found and never reaches the repo.
	mockProducts.On("GetByID", uint(99)).Return(nil, fmt.Errorf("product 99: %w", repositories.ErrNotFound)).Once()
	_, err = service.AddToCart("user-1", 99, 1, nil, nil)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockCart.AssertNumberOfCalls(t, "AddItem", 1)
	mockProducts.AssertExpectations(t)
}

func TestCartService_UpdateQuantityChecksOwnership(t *testing.T) {
	mockCart := new(MockCartRepository)
	mockProducts := new(MockProductRepository)
	service := services.NewCartService(mockCart, mockProducts)

	line := &models.CartItem{ID: 10, UserID: "user-1", ProductID: 1, Quantity: 1}

	// The owner can update.
	updated := &models.CartItem{ID: 10, UserID: "user-1", ProductID: 1, Quantity: 4}
	mockCart.On("GetByID", uint(10)).Return(line, nil).Once()
	mockCart.On("UpdateQuantity", uint(10), 4).Return(updated, nil).Once()

	got, err := service.UpdateQuantity("user-1", 10, 4)
	assert.NoError(t, err)
	assert.Equal(t, 4, got.Quantity)

	// Anyone else gets not found.
	mockCart.On("GetByID", uint(10)).Return(line, nil).Once()
	_, err = service.UpdateQuantity("user-2", 10, 4)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockCart.AssertNumberOfCalls(t, "UpdateQuantity", 1)
	mockCart.AssertExpectations(t)
}

func TestCartService_GetCart(t *testing.T) {
	mockCart := new(MockCartRepository)
	mockProducts := new(MockProductRepository)
	service := services.NewCartService(mockCart, mockProducts)

	expected := []models.CartItem{{ID: 10, UserID: "user-1", ProductID: 1, Quantity: 2}}
	mockCart.On("GetByUser", "user-1").Return(expected, nil).Once()

	items, err := service.GetCart("user-1")
	assert.NoError(t, err)
	assert.Equal(t, expected, items)
	mockCart.AssertExpectations(t)
}

func TestCartService_RemoveFromCart(t *testing.T) {
	mockCart := new(MockCartRepository)
	mockProducts := new(MockProductRepository)
	service := services.NewCartService(mockCart, mockProducts)

	mockCart.On("Remove", "user-1", uint(10)).Return(nil).Once()
	assert.NoError(t, service.RemoveFromCart("user-1", 10))

	mockCart.On("Remove", "user-1", uint(99)).Return(fmt.Errorf("cart item 99: %w", repositories.ErrNotFound)).Once()
	err := service.RemoveFromCart("user-1", 99)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockCart.AssertExpectations(t)
}
