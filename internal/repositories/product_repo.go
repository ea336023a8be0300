package repositories

import (
	"maison/internal/models"
)

// ProductFilter narrows a catalog listing. Every set field is ANDed with
// the others; the zero value returns the full catalog.
type ProductFilter struct {
	Category string // exact, case-sensitive match
	Featured *bool  // exact boolean match when set
	Search   string // substring match on title
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(filter ProductFilter) ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
}
