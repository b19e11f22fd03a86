package models

import "gorm.io/gorm"

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
	OrderStatusCompleted = "completed"
)

// OrderStatuses is a flat enumeration, not a workflow: any status may
// replace any other, only an identical transition is rejected.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusCompleted,
}

func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Order struct {
	gorm.Model
	Reference   string      `json:"reference"`
	BuyerID     uint        `json:"buyerId" gorm:"not null"`
	Status      string      `json:"status" gorm:"default:pending"`
	TotalAmount float64     `json:"totalAmount"`
	OrderItems  []OrderItem `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	gorm.Model
	OrderID   uint    `json:"orderId"`
	ProductID uint    `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}
