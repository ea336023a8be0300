package models

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog item in the store.
//
// Price fields are decimal-as-string: values live in numeric columns and
// all arithmetic goes through shopspring/decimal, never float64.
type Product struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Title         string         `json:"title" validate:"required,min=3,max=200"`
	Description   string         `json:"description" validate:"required,max=2000"`
	Price         string         `json:"price" gorm:"type:numeric" validate:"required,numeric"`
	OriginalPrice *string        `json:"originalPrice,omitempty" gorm:"type:numeric" validate:"omitempty,numeric"`
	Category      string         `json:"category" validate:"required"`
	Images        []string       `json:"images" gorm:"serializer:json" validate:"required,min=1,dive,required"`
	Sizes         []string       `json:"sizes" gorm:"serializer:json" validate:"required,min=1,dive,required"`
	Colors        []string       `json:"colors" gorm:"serializer:json" validate:"required,min=1,dive,required"`
	Stock         int            `json:"stock" validate:"gte=0"`
	IsFeatured    bool           `json:"isFeatured"`
	SKU           *string        `json:"sku,omitempty"`
	Tags          []string       `json:"tags,omitempty" gorm:"serializer:json"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"-"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"` // soft delete keeps historical orders resolvable
}

// ProductPatch carries a partial product update for PUT /api/products/:id.
// Nil fields are left untouched.
type ProductPatch struct {
	Title         *string   `json:"title" validate:"omitempty,min=3,max=200"`
	Description   *string   `json:"description" validate:"omitempty,max=2000"`
	Price         *string   `json:"price" validate:"omitempty,numeric"`
	OriginalPrice *string   `json:"originalPrice" validate:"omitempty,numeric"`
	Category      *string   `json:"category"`
	Images        *[]string `json:"images" validate:"omitempty,min=1,dive,required"`
	Sizes         *[]string `json:"sizes" validate:"omitempty,min=1,dive,required"`
	Colors        *[]string `json:"colors" validate:"omitempty,min=1,dive,required"`
	Stock         *int      `json:"stock" validate:"omitempty,gte=0"`
	IsFeatured    *bool     `json:"isFeatured"`
	SKU           *string   `json:"sku"`
	Tags          *[]string `json:"tags"`
}

// Apply copies every non-nil patch field onto the product.
func (p ProductPatch) Apply(product *Product) {
	if p.Title != nil {
		product.Title = *p.Title
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.OriginalPrice != nil {
		product.OriginalPrice = p.OriginalPrice
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.Images != nil {
		product.Images = *p.Images
	}
	if p.Sizes != nil {
		product.Sizes = *p.Sizes
	}
	if p.Colors != nil {
		product.Colors = *p.Colors
	}
	if p.Stock != nil {
		product.Stock = *p.Stock
	}
	if p.IsFeatured != nil {
		product.IsFeatured = *p.IsFeatured
	}
	if p.SKU != nil {
		product.SKU = p.SKU
	}
	if p.Tags != nil {
		product.Tags = *p.Tags
	}
}
