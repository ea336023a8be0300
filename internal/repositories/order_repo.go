package repositories

import (
	"maison/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create writes the order, its items, and the cart clear for the
	// order's user in one all-or-nothing transaction.
	Create(order *models.Order, items []models.OrderItem) error
	// GetByUser returns the user's orders, newest first.
	GetByUser(userID string) ([]models.Order, error)
	// GetByID returns the order with its items and product snapshots.
	GetByID(id uint) (*models.Order, error)
	// UpdateStatus sets the order's status and, when non-nil, its tracking
	// number.
	UpdateStatus(id uint, status string, trackingNumber *string) (*models.Order, error)
}
