package models

// CartItem is one line of a user's cart. At most one row exists per
// (UserID, ProductID, Size, Color) tuple; a nil Size or Color is a distinct
// "no variant" key, not a wildcard.
type CartItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	UserID    string  `json:"userId" gorm:"index;type:varchar(36);not null"`
	ProductID uint    `json:"productId" gorm:"not null"`
	Quantity  int     `json:"quantity" gorm:"not null;default:1" validate:"gte=1"`
	Size      *string `json:"size,omitempty"`
	Color     *string `json:"color,omitempty"`

	// Product is the live catalog row, preloaded on cart reads so the cart
	// always previews current pricing. Checkout is what locks prices in.
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
