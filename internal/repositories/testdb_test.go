package repositories_test

import (
	"fmt"
	"sync/atomic"
	"testing"

	"maison/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int64

// newTestDB opens a fresh in-memory SQLite database with the full schema
// migrated. Each call gets its own named shared-cache database so tests
// never see each other's rows.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func strptr(s string) *string { return &s }

// seedProduct inserts a sellable product and returns it.
func seedProduct(t *testing.T, db *gorm.DB, title, category, price string, featured bool) *models.Product {
	t.Helper()

	product := &models.Product{
		Title:       title,
		Description: "seeded for tests",
		Price:       price,
		Category:    category,
		Images:      []string{"https://example.com/" + title + ".jpg"},
		Sizes:       []string{"One Size"},
		Colors:      []string{"Gold"},
		Stock:       10,
		IsFeatured:  featured,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to seed product %s: %v", title, err)
	}
	return product
}
