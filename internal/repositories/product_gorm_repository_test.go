package repositories_test

import (
	"testing"

	"maison/internal/models"
	"maison/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func TestProductRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMProductRepository(db)

	seedProduct(t, db, "Handcrafted Gold Signet Ring", "Rings", "199.00", true)
	seedProduct(t, db, "Sculptural Cuff Bracelet", "Bracelets", "145.00", true)
	seedProduct(t, db, "Minimalist Silk Slip Dress", "Dresses", "245.00", false)

	// No filter returns the full catalog.
	all, err := repo.List(repositories.ProductFilter{})
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	// Category is an exact match.
	rings, err := repo.List(repositories.ProductFilter{Category: "Rings"})
	assert.NoError(t, err)
	assert.Len(t, rings, 1)
	assert.Equal(t, "Handcrafted Gold Signet Ring", rings[0].Title)

	// A category differing only in case matches nothing.
	none, err := repo.List(repositories.ProductFilter{Category: "rings"})
	assert.NoError(t, err)
	assert.Empty(t, none)

	// Featured is an exact boolean match.
	featured := true
	promoted, err := repo.List(repositories.ProductFilter{Featured: &featured})
	assert.NoError(t, err)
	assert.Len(t, promoted, 2)

	notFeatured := false
	rest, err := repo.List(repositories.ProductFilter{Featured: &notFeatured})
	assert.NoError(t, err)
	assert.Len(t, rest, 1)
	assert.Equal(t, "Minimalist Silk Slip Dress", rest[0].Title)

	// Search is a substring match on the title only.
	cuff, err := repo.List(repositories.ProductFilter{Search: "Cuff"})
	assert.NoError(t, err)
	assert.Len(t, cuff, 1)
	assert.Equal(t, "Sculptural Cuff Bracelet", cuff[0].Title)

	// Filters compose with AND.
	both, err := repo.List(repositories.ProductFilter{Category: "Dresses", Search: "Silk"})
	assert.NoError(t, err)
	assert.Len(t, both, 1)

	neither, err := repo.List(repositories.ProductFilter{Category: "Rings", Search: "Silk"})
	assert.NoError(t, err)
	assert.Empty(t, neither)
}

func TestProductRepository_GetByID(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMProductRepository(db)
	product := seedProduct(t, db, "Signet Ring", "Jewelry", "199.00", true)

	got, err := repo.GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, product.Title, got.Title)
	assert.Equal(t, []string{"One Size"}, got.Sizes)

	_, err = repo.GetByID(9999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProductRepository_Update(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMProductRepository(db)
	product := seedProduct(t, db, "Signet Ring", "Jewelry", "199.00", true)

	product.Price = "179.00"
	product.Stock = 5
	assert.NoError(t, repo.Update(product))

	got, err := repo.GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, "179.00", got.Price)
	assert.Equal(t, 5, got.Stock)
}

func TestProductRepository_DeleteIsSoft(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMProductRepository(db)
	product := seedProduct(t, db, "Retired Ring", "Jewelry", "99.00", false)

	assert.NoError(t, repo.Delete(product.ID))

	// Gone from the catalog...
	_, err := repo.GetByID(product.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	all, err := repo.List(repositories.ProductFilter{})
	assert.NoError(t, err)
	assert.Empty(t, all)

	// ...but the row survives for historical order lines.
	var survivor models.Product
	assert.NoError(t, db.Unscoped().First(&survivor, "id = ?", product.ID).Error)
	assert.Equal(t, "Retired Ring", survivor.Title)

	err = repo.Delete(product.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
