package models

import "time"

// Order statuses, in lifecycle order. Cancelled is reachable from any
// non-terminal state.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Payment methods accepted at checkout. Card payments are mocked; the
// gateway only hands back an opaque payment ID.
const (
	PaymentMethodCard = "card"
	PaymentMethodCOD  = "cod"
)

// ShippingAddress is the structured address snapshot stored on an order.
type ShippingAddress struct {
	FullName string `json:"fullName" validate:"required"`
	Street   string `json:"street" validate:"required"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state"`
	Zip      string `json:"zip" validate:"required"`
	Country  string `json:"country" validate:"required"`
	Phone    string `json:"phone"`
}

// Order is an immutable snapshot of a cart at purchase time. Only Status
// and TrackingNumber change afterwards, driven by fulfillment.
type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	UserID          string          `json:"userId" gorm:"index;type:varchar(36);not null"`
	Status          string          `json:"status" gorm:"not null;default:pending"`
	Total           string          `json:"total" gorm:"type:numeric;not null"`
	ShippingAddress ShippingAddress `json:"shippingAddress" gorm:"serializer:json"`
	PaymentMethod   string          `json:"paymentMethod" gorm:"not null"`
	PaymentID       *string         `json:"paymentId,omitempty"`
	TrackingNumber  *string         `json:"trackingNumber,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`

	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem is one order line. Price is the product price captured at
// checkout, decoupled from any later catalog changes.
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"orderId" gorm:"index;not null"`
	ProductID uint    `json:"productId" gorm:"not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	Price     string  `json:"price" gorm:"type:numeric;not null"`
	Size      *string `json:"size,omitempty"`
	Color     *string `json:"color,omitempty"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
