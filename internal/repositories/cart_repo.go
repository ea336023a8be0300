package repositories

import (
	"maison/internal/models"
)

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	// GetByUser returns the user's cart lines, each with its live Product.
	GetByUser(userID string) ([]models.CartItem, error)
	// AddItem merges the line into the cart: an existing row with the same
	// (user, product, size, color) key has its quantity incremented,
	// otherwise a new row is inserted. The merge is atomic.
	AddItem(item *models.CartItem) error
	// GetByID returns a single cart line.
	GetByID(id uint) (*models.CartItem, error)
	// UpdateQuantity sets the line's quantity. A quantity of zero or below
	// removes the row instead; the returned item is nil in that case.
	UpdateQuantity(id uint, quantity int) (*models.CartItem, error)
	// Remove deletes the line if it belongs to the user.
	Remove(userID string, id uint) error
	// Clear removes every line of the user's cart.
	Clear(userID string) error
}
