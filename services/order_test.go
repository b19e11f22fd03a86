package services

import (
	"testing"

	"github.com/sokoni/sokoni-api/apperrors"
	"github.com/sokoni/sokoni-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrderComputesTotalFromLines(t *testing.T) {
	db := newTestDB(t)
	buyer := createUser(t, db, "Asha", "asha@example.com", models.RoleBuyer)
	category := createCategory(t, db, "Electronics")
	phone := createProduct(t, db, "Phone", 250, 10, category.ID)
	charger := createProduct(t, db, "Charger", 20, 10, category.ID)

	placed, err := PlaceOrder(db, buyer.ID, []OrderLine{
		{ProductID: phone.ID, Quantity: 2, UnitPrice: 250},
		{ProductID: charger.ID, Quantity: 3, UnitPrice: 20},
	})
	require.NoError(t, err)
	assert.Equal(t, 560.0, placed.TotalAmount)
	assert.NotEmpty(t, placed.Reference)

	var order models.Order
	require.NoError(t, db.Preload("OrderItems").First(&order, placed.OrderID).Error)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 560.0, order.TotalAmount)

	var itemTotal float64
	for _, item := range order.OrderItems {
		itemTotal += float64(item.Quantity) * item.UnitPrice
	}
	assert.Equal(t, order.TotalAmount, itemTotal)
}

func TestPlaceOrderDecrementsStock(t *testing.T) {
	db := newTestDB(t)
	buyer := createUser(t, db, "Asha", "asha@example.com", models.RoleBuyer)
	category := createCategory(t, db, "Electronics")
	phone := createProduct(t, db, "Phone", 250, 10, category.ID)

	_, err := PlaceOrder(db, buyer.ID, []OrderLine{
		{ProductID: phone.ID, Quantity: 4, UnitPrice: 250},
	})
	require.NoError(t, err)

	var after models.Product
	require.NoError(t, db.First(&after, phone.ID).Error)
	assert.Equal(t, 6, after.StockQuantity)
}

func TestPlaceOrderInsufficientStockRollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	buyer := createUser(t, db, "Asha", "asha@example.com", models.RoleBuyer)
	category := createCategory(t, db, "Electronics")
	phone := createProduct(t, db, "Phone", 250, 10, category.ID)
	charger := createProduct(t, db, "Charger", 20, 1, category.ID)

	// The first line is satisfiable, the second is not; the first
	// line's decrement must not survive the failure.
	_, err := PlaceOrder(db, buyer.ID, []OrderLine{
		{ProductID: phone.ID, Quantity: 2, UnitPrice: 250},
		{ProductID: charger.ID, Quantity: 5, UnitPrice: 20},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInsufficientStock, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "insufficient stock")

	var orderCount, itemCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.OrderItem{}).Count(&itemCount)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)

	var phoneAfter, chargerAfter models.Product
	require.NoError(t, db.First(&phoneAfter, phone.ID).Error)
	require.NoError(t, db.First(&chargerAfter, charger.ID).Error)
	assert.Equal(t, 10, phoneAfter.StockQuantity)
	assert.Equal(t, 1, chargerAfter.StockQuantity)
}

func TestPlaceOrderUnknownProductFailsWithProductID(t *testing.T) {
	db := newTestDB(t)
	buyer := createUser(t, db, "Asha", "asha@example.com", models.RoleBuyer)

	_, err := PlaceOrder(db, buyer.ID, []OrderLine{
		{ProductID: 999, Quantity: 1, UnitPrice: 10},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInsufficientStock, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "999")
}

func TestPlaceOrderUnknownBuyer(t *testing.T) {
	db := newTestDB(t)
	category := createCategory(t, db, "Electronics")
	phone := createProduct(t, db, "Phone", 250, 10, category.ID)

	_, err := PlaceOrder(db, 42, []OrderLine{
		{ProductID: phone.ID, Quantity: 1, UnitPrice: 250},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestPlaceOrderRejectsBadLines(t *testing.T) {
	db := newTestDB(t)
	buyer := createUser(t, db, "Asha", "asha@example.com", models.RoleBuyer)

	_, err := PlaceOrder(db, buyer.ID, nil)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = PlaceOrder(db, buyer.ID, []OrderLine{{ProductID: 1, Quantity: 0, UnitPrice: 5}})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = PlaceOrder(db, buyer.ID, []OrderLine{{ProductID: 1, Quantity: 1, UnitPrice: -5}})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestRetrieveOrdersScopedByRole(t *testing.T) {
	db := newTestDB(t)
	admin := createUser(t, db, "Root", "root@example.com", models.RoleAdmin)
	asha := createUser(t, db, "Asha", "asha@example.com", models.RoleBuyer)
	juma := createUser(t, db, "Juma", "juma@example.com", models.RoleBuyer)
	category := createCategory(t, db, "Electronics")
	phone := createProduct(t, db, "Phone", 250, 10, category.ID)

	createCompletedOrder(t, db, asha.ID, phone.ID, 1, 250)
	createCompletedOrder(t, db, juma.ID, phone.ID, 2, 250)

	all, err := RetrieveOrders(db, admin.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := RetrieveOrders(db, asha.ID, models.RoleBuyer)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, asha.ID, own[0].BuyerID)
}

func TestRetrieveOrdersEmptyIsSuccess(t *testing.T) {
	db := newTestDB(t)
	buyer := createUser(t, db, "Asha", "asha@example.com", models.RoleBuyer)

	orders, err := RetrieveOrders(db, buyer.ID, models.RoleBuyer)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderDetailsAccessControl(t *testing.T) {
	db := newTestDB(t)
	asha := createUser(t, db, "Asha", "asha@example.com", models.RoleBuyer)
	juma := createUser(t, db, "Juma", "juma@example.com", models.RoleBuyer)
	admin := createUser(t, db, "Root", "root@example.com", models.RoleAdmin)
	category := createCategory(t, db, "Electronics")
	phone := createProduct(t, db, "Phone", 250, 10, category.ID)
	order := createCompletedOrder(t, db, asha.ID, phone.ID, 2, 250)

	_, err := OrderDetails(db, order.ID, juma.ID, models.RoleBuyer)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	detail, err := OrderDetails(db, order.ID, asha.ID, models.RoleBuyer)
	require.NoError(t, err)
	assert.Equal(t, 500.0, detail.TotalAmount)

	_, err = OrderDetails(db, order.ID, admin.ID, models.RoleAdmin)
	assert.NoError(t, err)

	_, err = OrderDetails(db, 999, asha.ID, models.RoleBuyer)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestOrderDetailsTotalsUseSnapshots(t *testing.T) {
	db := newTestDB(t)
	asha := createUser(t, db, "Asha", "asha@example.com", models.RoleBuyer)
	category := createCategory(t, db, "Electronics")
	phone := createProduct(t, db, "Phone", 250, 10, category.ID)
	order := createCompletedOrder(t, db, asha.ID, phone.ID, 2, 250)

	// A later catalog price change must not leak into the order.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", phone.ID).Update("price", 999).Error)

	detail, err := OrderDetails(db, order.ID, asha.ID, models.RoleBuyer)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, 250.0, detail.Items[0].UnitPrice)
	assert.Equal(t, 500.0, detail.TotalAmount)
}

func TestUpdateOrderStatusNoChangeRejected(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeMailer{}
	asha := createUser(t, db, "Asha", "asha@example.com", models.RoleBuyer)
	category := createCategory(t, db, "Electronics")
	phone := createProduct(t, db, "Phone", 250, 10, category.ID)
	order := createCompletedOrder(t, db, asha.ID, phone.ID, 1, 250)
	require.NoError(t, db.Model(order).Update("status", models.OrderStatusPaid).Error)

	_, _, err := UpdateOrderStatus(db, mailer, order.ID, "paid")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "no changes made")

	var after models.Order
	require.NoError(t, db.First(&after, order.ID).Error)
	assert.Equal(t, models.OrderStatusPaid, after.Status)
	assert.Zero(t, mailer.sentCount())
}

func TestUpdateOrderStatusNormalizesAndNotifies(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeMailer{}
	asha := createUser(t, db, "Asha", "asha@example.com", models.RoleBuyer)
	category := createCategory(t, db, "Electronics")
	phone := createProduct(t, db, "Phone", 250, 10, category.ID)
	order := createCompletedOrder(t, db, asha.ID, phone.ID, 1, 250)
	require.NoError(t, db.Model(order).Update("status", models.OrderStatusPending).Error)

	updated, notified, err := UpdateOrderStatus(db, mailer, order.ID, "  SHIPPED ")
	require.NoError(t, err)
	assert.True(t, notified)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)

	require.Equal(t, 1, mailer.sentCount())
	assert.Equal(t, "asha@example.com", mailer.lastSent().To)
	assert.Contains(t, mailer.lastSent().Data.Message, "shipped")
}

func TestUpdateOrderStatusSurvivesNotificationFailure(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeMailer{fail: true}
	asha := createUser(t, db, "Asha", "asha@example.com", models.RoleBuyer)
	category := createCategory(t, db, "Electronics")
	phone := createProduct(t, db, "Phone", 250, 10, category.ID)
	order := createCompletedOrder(t, db, asha.ID, phone.ID, 1, 250)
	require.NoError(t, db.Model(order).Update("status", models.OrderStatusPending).Error)

	updated, notified, err := UpdateOrderStatus(db, mailer, order.ID, "paid")
	require.NoError(t, err)
	assert.False(t, notified)
	assert.Equal(t, models.OrderStatusPaid, updated.Status)

	var after models.Order
	require.NoError(t, db.First(&after, order.ID).Error)
	assert.Equal(t, models.OrderStatusPaid, after.Status)
}

func TestUpdateOrderStatusRejectsUnknownValue(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeMailer{}
	asha := createUser(t, db, "Asha", "asha@example.com", models.RoleBuyer)
	category := createCategory(t, db, "Electronics")
	phone := createProduct(t, db, "Phone", 250, 10, category.ID)
	order := createCompletedOrder(t, db, asha.ID, phone.ID, 1, 250)

	_, _, err := UpdateOrderStatus(db, mailer, order.ID, "refunded")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestOrderHistoryAggregates(t *testing.T) {
	db := newTestDB(t)
	asha := createUser(t, db, "Asha", "asha@example.com", models.RoleBuyer)
	category := createCategory(t, db, "Electronics")
	phone := createProduct(t, db, "Phone", 250, 10, category.ID)
	charger := createProduct(t, db, "Charger", 20, 10, category.ID)

	placed, err := PlaceOrder(db, asha.ID, []OrderLine{
		{ProductID: phone.ID, Quantity: 1, UnitPrice: 250},
		{ProductID: charger.ID, Quantity: 2, UnitPrice: 20},
	})
	require.NoError(t, err)

	history, err := OrderHistory(db, asha.ID, models.RoleBuyer)
	require.NoError(t, err)
	require.Len(t, history, 1)

	entry := history[0]
	assert.Equal(t, placed.OrderID, entry.OrderID)
	assert.Equal(t, 2, entry.ItemCount)
	assert.Equal(t, 290.0, entry.TotalAmount)
	assert.Contains(t, entry.Products, "Phone")
	assert.Contains(t, entry.Products, "Charger")
}
