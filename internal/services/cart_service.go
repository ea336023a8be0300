package services

import (
	"fmt"

	"maison/internal/models"
	"maison/internal/repositories"
)

// CartService handles business logic related to shopping carts.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart retrieves the user's cart lines with their live products.
func (s *CartService) GetCart(userID string) ([]models.CartItem, error) {
	return s.cartRepo.GetByUser(userID)
}

// AddToCart merges a line into the user's cart. The product must exist in
// the catalog; the repository guarantees at most one row per variant key.
func (s *CartService) AddToCart(userID string, productID uint, quantity int, size, color *string) (*models.CartItem, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, fmt.Errorf("add to cart: %w", err)
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: product.ID,
		Quantity:  quantity,
		Size:      size,
		Color:     color,
	}
	if err := s.cartRepo.AddItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity sets a cart line's quantity. A quantity of zero or below
// removes the line; the returned item is nil in that case.
func (s *CartService) UpdateQuantity(userID string, id uint, quantity int) (*models.CartItem, error) {
	item, err := s.cartRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, fmt.Errorf("cart item %d: %w", id, repositories.ErrNotFound)
	}
	return s.cartRepo.UpdateQuantity(id, quantity)
}

// RemoveFromCart deletes a cart line owned by the user.
func (s *CartService) RemoveFromCart(userID string, id uint) error {
	return s.cartRepo.Remove(userID, id)
}
