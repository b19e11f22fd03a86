package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sokoni/sokoni-api/apperrors"
	"github.com/sokoni/sokoni-api/models"
	"github.com/sokoni/sokoni-api/utils"
	"gorm.io/gorm"
)

// OrderLine is one requested line item. The unit price is the
// caller-supplied price snapshotted onto the order item; it is not
// re-derived from the catalog.
type OrderLine struct {
	ProductID uint    `json:"productId" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required"`
	UnitPrice float64 `json:"unitPrice"`
}

type PlacedOrder struct {
	OrderID     uint    `json:"orderId"`
	Reference   string  `json:"reference"`
	TotalAmount float64 `json:"totalAmount"`
}

// PlaceOrder validates the buyer and every requested line, writes the
// order with its items and decrements product stock, all inside one
// transaction. Any failure rolls the whole transaction back; no order,
// item or stock change survives a failed placement.
func PlaceOrder(db *gorm.DB, buyerID uint, lines []OrderLine) (*PlacedOrder, error) {
	if len(lines) == 0 {
		return nil, apperrors.Validationf("order must contain at least one item")
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, apperrors.Validationf("quantity must be greater than zero for product id: %d", line.ProductID)
		}
		if line.UnitPrice < 0 {
			return nil, apperrors.Validationf("unit price cannot be negative for product id: %d", line.ProductID)
		}
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.Internal(tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var buyer models.User
	if err := tx.First(&buyer, buyerID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("user account not found")
		}
		return nil, apperrors.Internal(err)
	}

	var totalAmount float64
	for _, line := range lines {
		totalAmount += float64(line.Quantity) * line.UnitPrice
	}

	order := models.Order{
		Reference:   "ORD-" + uuid.NewString(),
		BuyerID:     buyer.ID,
		Status:      models.OrderStatusPending,
		TotalAmount: totalAmount,
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, apperrors.Internal(err)
	}

	for _, line := range lines {
		var product models.Product
		if err := tx.First(&product, line.ProductID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.InsufficientStock(line.ProductID)
			}
			return nil, apperrors.Internal(err)
		}
		if product.StockQuantity < line.Quantity {
			tx.Rollback()
			return nil, apperrors.InsufficientStock(line.ProductID)
		}

		item := models.OrderItem{
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			return nil, apperrors.Internal(err)
		}

		err := tx.Model(&models.Product{}).
			Where("id = ?", product.ID).
			Update("stock_quantity", gorm.Expr("stock_quantity - ?", line.Quantity)).Error
		if err != nil {
			tx.Rollback()
			return nil, apperrors.Internal(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	return &PlacedOrder{
		OrderID:     order.ID,
		Reference:   order.Reference,
		TotalAmount: totalAmount,
	}, nil
}

// RetrieveOrders lists orders newest-first: every order for an admin,
// only the caller's own for a buyer. No orders is a success, not an
// error.
func RetrieveOrders(db *gorm.DB, callerID uint, callerRole string) ([]models.Order, error) {
	query := db.Preload("OrderItems").Order("created_at DESC")
	if callerRole != models.RoleAdmin {
		query = query.Where("buyer_id = ?", callerID)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return orders, nil
}

type OrderLineDetail struct {
	ProductID   uint    `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	LineTotal   float64 `json:"lineTotal"`
}

type OrderDetail struct {
	OrderID     uint              `json:"orderId"`
	Reference   string            `json:"reference"`
	Status      string            `json:"status"`
	OrderDate   string            `json:"orderDate"`
	Items       []OrderLineDetail `json:"items"`
	TotalAmount float64           `json:"totalAmount"`
}

// OrderDetails returns one order with its line items. Per-line and
// aggregate totals are recomputed from the stored item snapshots,
// never from the live product price.
func OrderDetails(db *gorm.DB, orderID, callerID uint, callerRole string) (*OrderDetail, error) {
	var order models.Order
	if err := db.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("order not found")
		}
		return nil, apperrors.Internal(err)
	}

	if callerRole != models.RoleAdmin && order.BuyerID != callerID {
		return nil, apperrors.Forbiddenf("you are not allowed to view this order")
	}

	names, err := productNames(db, order.OrderItems)
	if err != nil {
		return nil, err
	}

	detail := OrderDetail{
		OrderID:   order.ID,
		Reference: order.Reference,
		Status:    order.Status,
		OrderDate: order.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	for _, item := range order.OrderItems {
		lineTotal := float64(item.Quantity) * item.UnitPrice
		detail.Items = append(detail.Items, OrderLineDetail{
			ProductID:   item.ProductID,
			ProductName: names[item.ProductID],
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   lineTotal,
		})
		detail.TotalAmount += lineTotal
	}
	return &detail, nil
}

// UpdateOrderStatus transitions an order to newStatus. The status set
// is a flat enumeration; the only rejected transition is to the status
// the order already has. On success a status-change email is sent to
// the buyer best-effort: a dispatch failure is reported through the
// returned bool but never reverts the persisted change.
func UpdateOrderStatus(db *gorm.DB, mailer utils.Mailer, orderID uint, newStatus string) (*models.Order, bool, error) {
	status := strings.ToLower(strings.TrimSpace(newStatus))
	if !models.IsValidOrderStatus(status) {
		return nil, false, apperrors.Validationf(
			"invalid order status %q, must be one of: %s", newStatus, strings.Join(models.OrderStatuses, ", "))
	}

	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apperrors.NotFoundf("order not found")
		}
		return nil, false, apperrors.Internal(err)
	}

	if order.Status == status {
		return nil, false, apperrors.Conflictf("no changes made, order is already %s", status)
	}

	if err := db.Model(&order).Update("status", status).Error; err != nil {
		return nil, false, apperrors.Internal(err)
	}
	order.Status = status

	notified := false
	var buyer models.User
	if err := db.First(&buyer, order.BuyerID).Error; err != nil {
		log.Error().Err(err).Uint("orderId", order.ID).Msg("could not resolve buyer for status notification")
	} else {
		data := utils.EmailData{
			Name:    buyer.Name,
			Message: fmt.Sprintf("Your order %s is now %s.", order.Reference, status),
		}
		if err := mailer.Send(buyer.Email, "Order status update", "order_status.html", data); err != nil {
			log.Error().Err(err).Uint("orderId", order.ID).Msg("failed to send status notification")
		} else {
			notified = true
		}
	}

	return &order, notified, nil
}

type OrderHistoryEntry struct {
	OrderID     uint    `json:"orderId"`
	Reference   string  `json:"reference"`
	OrderDate   string  `json:"orderDate"`
	Status      string  `json:"status"`
	ItemCount   int     `json:"itemCount"`
	Products    string  `json:"products"`
	TotalAmount float64 `json:"totalAmount"`
}

// OrderHistory aggregates each visible order into a single row: item
// count, concatenated product names and a total recomputed from the
// item snapshots.
func OrderHistory(db *gorm.DB, callerID uint, callerRole string) ([]OrderHistoryEntry, error) {
	orders, err := RetrieveOrders(db, callerID, callerRole)
	if err != nil {
		return nil, err
	}

	var allItems []models.OrderItem
	for _, order := range orders {
		allItems = append(allItems, order.OrderItems...)
	}
	names, err := productNames(db, allItems)
	if err != nil {
		return nil, err
	}

	entries := make([]OrderHistoryEntry, 0, len(orders))
	for _, order := range orders {
		entry := OrderHistoryEntry{
			OrderID:   order.ID,
			Reference: order.Reference,
			OrderDate: order.CreatedAt.Format("2006-01-02 15:04:05"),
			Status:    order.Status,
			ItemCount: len(order.OrderItems),
		}
		var productList []string
		for _, item := range order.OrderItems {
			entry.TotalAmount += float64(item.Quantity) * item.UnitPrice
			if name, ok := names[item.ProductID]; ok {
				productList = append(productList, name)
			}
		}
		entry.Products = strings.Join(productList, ", ")
		entries = append(entries, entry)
	}
	return entries, nil
}

func productNames(db *gorm.DB, items []models.OrderItem) (map[uint]string, error) {
	names := make(map[uint]string)
	if len(items) == 0 {
		return names, nil
	}

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	var products []models.Product
	if err := db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	for _, product := range products {
		names[product.ID] = product.ProductName
	}
	return names, nil
}
