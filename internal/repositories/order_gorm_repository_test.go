package repositories_test

import (
	"testing"

	"maison/internal/models"
	"maison/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func TestOrderRepository_CreateIsAtomic(t *testing.T) {
	db := newTestDB(t)
	orderRepo := repositories.NewGORMOrderRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	product := seedProduct(t, db, "Signet Ring", "Jewelry", "199.00", true)

	assert.NoError(t, cartRepo.AddItem(&models.CartItem{UserID: "user-1", ProductID: product.ID, Quantity: 2}))

	order := &models.Order{
		UserID:        "user-1",
		Status:        models.OrderStatusPending,
		Total:         "398.00",
		PaymentMethod: models.PaymentMethodCard,
		ShippingAddress: models.ShippingAddress{
			FullName: "Ada Jones", Street: "1 Rue de Rivoli", City: "Paris", Zip: "75001", Country: "FR",
		},
	}
	items := []models.OrderItem{
		{ProductID: product.ID, Quantity: 2, Price: "199.00"},
	}
	assert.NoError(t, orderRepo.Create(order, items))
	assert.NotZero(t, order.ID)

	// Item rows carry the new order id.
	got, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Len(t, got.Items, 1)
	assert.Equal(t, order.ID, got.Items[0].OrderID)
	assert.Equal(t, "199.00", got.Items[0].Price)

	// The cart was cleared in the same transaction.
	cart, err := cartRepo.GetByUser("user-1")
	assert.NoError(t, err)
	assert.Empty(t, cart)
}

func TestOrderRepository_CreateRollsBackOnItemFailure(t *testing.T) {
	db := newTestDB(t)
	orderRepo := repositories.NewGORMOrderRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	product := seedProduct(t, db, "Slip Dress", "Dresses", "245.00", false)

	assert.NoError(t, cartRepo.AddItem(&models.CartItem{UserID: "user-1", ProductID: product.ID, Quantity: 1}))

	order := &models.Order{
		UserID:        "user-1",
		Status:        models.OrderStatusPending,
		Total:         "245.00",
		PaymentMethod: models.PaymentMethodCOD,
	}
	// An empty item batch makes the item insert fail, which must roll the
	// order row back and leave the cart intact.
	err := orderRepo.Create(order, nil)
	assert.Error(t, err)

	var count int64
	assert.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)

	cart, err := cartRepo.GetByUser("user-1")
	assert.NoError(t, err)
	assert.Len(t, cart, 1)
}

func TestOrderRepository_PriceSnapshotSurvivesCatalogChanges(t *testing.T) {
	db := newTestDB(t)
	orderRepo := repositories.NewGORMOrderRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	product := seedProduct(t, db, "Cuff Bracelet", "Jewelry", "145.00", true)

	order := &models.Order{UserID: "user-1", Status: models.OrderStatusPending, Total: "145.00", PaymentMethod: models.PaymentMethodCard}
	items := []models.OrderItem{{ProductID: product.ID, Quantity: 1, Price: "145.00"}}
	assert.NoError(t, orderRepo.Create(order, items))

	// Reprice the product, then soft-delete it entirely.
	product.Price = "999.00"
	assert.NoError(t, productRepo.Update(product))
	assert.NoError(t, productRepo.Delete(product.ID))

	// Two reads, same locked-in total and line price; the deleted product
	// still resolves on the order line.
	for i := 0; i < 2; i++ {
		got, err := orderRepo.GetByID(order.ID)
		assert.NoError(t, err)
		assert.Equal(t, "145.00", got.Total)
		assert.Equal(t, "145.00", got.Items[0].Price)
		if assert.NotNil(t, got.Items[0].Product) {
			assert.Equal(t, "Cuff Bracelet", got.Items[0].Product.Title)
		}
	}
}

func TestOrderRepository_GetByUserNewestFirst(t *testing.T) {
	db := newTestDB(t)
	orderRepo := repositories.NewGORMOrderRepository(db)
	product := seedProduct(t, db, "Signet Ring", "Jewelry", "199.00", true)

	for _, total := range []string{"199.00", "398.00"} {
		order := &models.Order{UserID: "user-1", Status: models.OrderStatusPending, Total: total, PaymentMethod: models.PaymentMethodCard}
		items := []models.OrderItem{{ProductID: product.ID, Quantity: 1, Price: "199.00"}}
		assert.NoError(t, orderRepo.Create(order, items))
	}
	other := &models.Order{UserID: "user-2", Status: models.OrderStatusPending, Total: "199.00", PaymentMethod: models.PaymentMethodCOD}
	assert.NoError(t, orderRepo.Create(other, []models.OrderItem{{ProductID: product.ID, Quantity: 1, Price: "199.00"}}))

	orders, err := orderRepo.GetByUser("user-1")
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, "user-1", o.UserID)
	}
	assert.True(t, !orders[0].CreatedAt.Before(orders[1].CreatedAt))
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	db := newTestDB(t)
	orderRepo := repositories.NewGORMOrderRepository(db)
	product := seedProduct(t, db, "Signet Ring", "Jewelry", "199.00", true)

	order := &models.Order{UserID: "user-1", Status: models.OrderStatusPending, Total: "199.00", PaymentMethod: models.PaymentMethodCard}
	assert.NoError(t, orderRepo.Create(order, []models.OrderItem{{ProductID: product.ID, Quantity: 1, Price: "199.00"}}))

	tracking := "TRK-12345"
	updated, err := orderRepo.UpdateStatus(order.ID, models.OrderStatusShipped, &tracking)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)
	if assert.NotNil(t, updated.TrackingNumber) {
		assert.Equal(t, "TRK-12345", *updated.TrackingNumber)
	}

	// Nil tracking number leaves the stored one alone.
	updated, err = orderRepo.UpdateStatus(order.ID, models.OrderStatusDelivered, nil)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)
	if assert.NotNil(t, updated.TrackingNumber) {
		assert.Equal(t, "TRK-12345", *updated.TrackingNumber)
	}

	_, err = orderRepo.UpdateStatus(9999, models.OrderStatusPaid, nil)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
