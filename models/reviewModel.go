package models

import "gorm.io/gorm"

// Review is unique per buyer and product; order_id records the
// completed order that made the buyer eligible to review.
type Review struct {
	gorm.Model
	ProductID uint   `json:"productId" gorm:"not null;uniqueIndex:idx_reviews_buyer_product"`
	OrderID   uint   `json:"orderId" gorm:"not null"`
	BuyerID   uint   `json:"buyerId" gorm:"not null;uniqueIndex:idx_reviews_buyer_product"`
	Rating    int    `json:"rating" gorm:"default:0"`
	Comment   string `json:"comment"`
}
