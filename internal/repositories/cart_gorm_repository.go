package repositories

import (
	"errors"
	"fmt"

	"maison/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByUser retrieves the user's cart lines with their products preloaded,
// so totals always preview current pricing. Products are loaded unscoped:
// a line added before the product left the catalog still resolves.
func (r *GORMCartRepository) GetByUser(userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.
		Preload("Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("user_id = ?", userID).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return items, nil
}

// variantScope matches one exact (user, product, size, color) key. A nil
// size or color matches only rows where the column IS NULL; the "no
// variant" key is distinct, never a wildcard.
func variantScope(userID string, productID uint, size, color *string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("user_id = ? AND product_id = ?", userID, productID)
		if size == nil {
			db = db.Where("size IS NULL")
		} else {
			db = db.Where("size = ?", *size)
		}
		if color == nil {
			db = db.Where("color IS NULL")
		} else {
			db = db.Where("color = ?", *color)
		}
		return db
	}
}

// AddItem merges the line into the user's cart inside one transaction.
// The existing row, if any, is read under a FOR UPDATE lock so two
// concurrent adds for the same key serialize instead of both observing the
// same quantity and losing an increment.
func (r *GORMCartRepository) AddItem(item *models.CartItem) error {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.CartItem
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Scopes(variantScope(item.UserID, item.ProductID, item.Size, item.Color)).
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(item).Error
		}
		if err != nil {
			return err
		}
		existing.Quantity += item.Quantity
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*item = existing
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to add product %d to cart: %w", item.ProductID, err)
	}
	return nil
}

// GetByID retrieves a single cart line by its ID.
func (r *GORMCartRepository) GetByID(id uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart item %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart item %d: %w", id, err)
	}
	return &item, nil
}

// UpdateQuantity sets the line's quantity, removing the row when the new
// quantity is zero or below. Non-positive quantities are never stored.
func (r *GORMCartRepository) UpdateQuantity(id uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		res := r.db.Delete(&models.CartItem{}, "id = ?", id)
		if res.Error != nil {
			return nil, fmt.Errorf("failed to remove cart item %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, fmt.Errorf("cart item %d: %w", id, ErrNotFound)
		}
		return nil, nil
	}

	var item models.CartItem
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("cart item %d: %w", id, ErrNotFound)
			}
			return err
		}
		item.Quantity = quantity
		return tx.Save(&item).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update cart item %d: %w", id, err)
	}
	return &item, nil
}

// Remove deletes the line only when it belongs to the user, so one user
// cannot delete another's cart rows by guessing IDs.
func (r *GORMCartRepository) Remove(userID string, id uint) error {
	res := r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to remove cart item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %d: %w", id, ErrNotFound)
	}
	return nil
}

// Clear removes every line of the user's cart.
func (r *GORMCartRepository) Clear(userID string) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
	}
	return nil
}
