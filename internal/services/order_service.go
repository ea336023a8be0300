package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"maison/internal/models"
	"maison/internal/repositories"
	"maison/pkg/rabbitmq"

	"github.com/shopspring/decimal"
)

// ErrCartEmpty is returned when checkout is attempted with no cart lines.
// Nothing is written when this fires.
var ErrCartEmpty = errors.New("cart is empty")

// ErrInvalidStatus is returned for an unknown status value or a status
// change that moves the order backwards through its lifecycle.
var ErrInvalidStatus = errors.New("invalid order status")

// statusRank orders the forward lifecycle. Cancelled sits outside the
// ranking and is handled separately.
var statusRank = map[string]int{
	models.OrderStatusPending:   0,
	models.OrderStatusPaid:      1,
	models.OrderStatusShipped:   2,
	models.OrderStatusDelivered: 3,
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	cartRepo  repositories.CartRepository
	mqClient  *rabbitmq.Client
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, cartRepo repositories.CartRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		mqClient:  mqClient,
	}
}

// PlaceOrder turns the user's cart into an order. Each line's price is
// snapshotted from the current product price at this moment; the order's
// total is the decimal sum of price x quantity over all lines. The order
// row, item rows, and cart clear are committed in one transaction by the
// repository.
func (s *OrderService) PlaceOrder(userID string, address models.ShippingAddress, paymentMethod string, paymentID *string) (*models.Order, error) {
	if paymentMethod != models.PaymentMethodCard && paymentMethod != models.PaymentMethodCOD {
		return nil, fmt.Errorf("unknown payment method %q", paymentMethod)
	}

	cartItems, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(cartItems) == 0 {
		return nil, ErrCartEmpty
	}

	total := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(cartItems))
	for _, line := range cartItems {
		if line.Product == nil {
			return nil, fmt.Errorf("cart line %d has no product loaded", line.ID)
		}
		price, err := decimal.NewFromString(line.Product.Price)
		if err != nil {
			return nil, fmt.Errorf("product %d has malformed price %q: %w", line.ProductID, line.Product.Price, err)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		orderItems = append(orderItems, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     price.StringFixed(2), // lock in the price
			Size:      line.Size,
			Color:     line.Color,
		})
	}

	order := &models.Order{
		UserID:          userID,
		Status:          models.OrderStatusPending,
		Total:           total.StringFixed(2),
		ShippingAddress: address,
		PaymentMethod:   paymentMethod,
		PaymentID:       paymentID,
	}

	if err := s.orderRepo.Create(order, orderItems); err != nil {
		return nil, err
	}

	s.publishEvent("order.created", order)
	return order, nil
}

// GetOrders retrieves the user's orders, newest first.
func (s *OrderService) GetOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// GetOrder retrieves one of the user's orders with its items. Orders owned
// by other users are reported as not found rather than forbidden.
func (s *OrderService) GetOrder(userID string, id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order %d: %w", id, repositories.ErrNotFound)
	}
	return order, nil
}

// UpdateOrderStatus moves an order forward through its lifecycle and
// optionally records a tracking number. Delivered and cancelled orders are
// terminal; cancellation is allowed before shipment.
func (s *OrderService) UpdateOrderStatus(id uint, status string, trackingNumber *string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	current, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(current.Status, status) {
		return nil, fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidStatus, current.Status, status)
	}

	order, err := s.orderRepo.UpdateStatus(id, status, trackingNumber)
	if err != nil {
		return nil, err
	}

	s.publishEvent("order.status_updated", order)
	return order, nil
}

func transitionAllowed(from, to string) bool {
	if from == to {
		return true
	}
	if from == models.OrderStatusDelivered || from == models.OrderStatusCancelled {
		return false
	}
	if to == models.OrderStatusCancelled {
		return statusRank[from] < statusRank[models.OrderStatusShipped]
	}
	return statusRank[to] > statusRank[from]
}

// publishEvent emits an order lifecycle event for the fulfillment
// consumer. Publish failures are logged and never fail the order.
func (s *OrderService) publishEvent(routingKey string, order *models.Order) {
	if s.mqClient == nil {
		return
	}

	payload := map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"status":  order.Status,
		"total":   order.Total,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event for order %d: %v", routingKey, order.ID, err)
		return
	}
	if err := s.mqClient.Publish("order", routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event for order %d: %v", routingKey, order.ID, err)
	}
}
