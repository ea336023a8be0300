package repositories

import (
	"errors"
	"fmt"

	"maison/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// conditions expands the filter into an explicit list of where clauses.
// Each entry is applied as one AND condition; no query object is mutated
// conditionally outside this list.
func (f ProductFilter) conditions() []func(*gorm.DB) *gorm.DB {
	var conds []func(*gorm.DB) *gorm.DB
	if f.Category != "" {
		conds = append(conds, func(db *gorm.DB) *gorm.DB {
			return db.Where("category = ?", f.Category)
		})
	}
	if f.Featured != nil {
		conds = append(conds, func(db *gorm.DB) *gorm.DB {
			return db.Where("is_featured = ?", *f.Featured)
		})
	}
	if f.Search != "" {
		conds = append(conds, func(db *gorm.DB) *gorm.DB {
			return db.Where("title LIKE ?", "%"+f.Search+"%")
		})
	}
	return conds
}

// List retrieves all products matching the filter from the database.
func (r *GORMProductRepository) List(filter ProductFilter) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Scopes(filter.conditions()...).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// GORM's Save doesn't return ErrRecordNotFound when the row is
		// missing, so we check RowsAffected.
		return fmt.Errorf("product %d for update: %w", product.ID, ErrNotFound)
	}
	return nil
}

// Delete soft-deletes a product by its ID. Historical order items keep
// referencing the row; reads that need it go through Unscoped.
func (r *GORMProductRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %d for deletion: %w", id, ErrNotFound)
	}
	return nil
}
