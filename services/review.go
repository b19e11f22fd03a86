package services

import (
	"errors"

	"github.com/sokoni/sokoni-api/apperrors"
	"github.com/sokoni/sokoni-api/models"
	"gorm.io/gorm"
)

// CreateReview records a product review. A buyer may review a product
// only once, and only when one of their completed orders contains it.
func CreateReview(db *gorm.DB, buyerID, productID uint, rating int, comment string) (*models.Review, error) {
	if rating < 0 || rating > 5 {
		return nil, apperrors.Validationf("rating must be between 0 and 5")
	}

	var qualifyingOrder models.Order
	err := db.
		Select("orders.*").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.buyer_id = ? AND orders.status = ? AND order_items.product_id = ?",
			buyerID, models.OrderStatusCompleted, productID).
		First(&qualifyingOrder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Forbiddenf("you can only review products you have ordered")
		}
		return nil, apperrors.Internal(err)
	}

	var existing models.Review
	err = db.Where("buyer_id = ? AND product_id = ?", buyerID, productID).First(&existing).Error
	if err == nil {
		return nil, apperrors.Forbiddenf("you have already reviewed this product")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal(err)
	}

	review := models.Review{
		ProductID: productID,
		OrderID:   qualifyingOrder.ID,
		BuyerID:   buyerID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := db.Create(&review).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return &review, nil
}

type ReviewEntry struct {
	Reviewer string `json:"reviewer"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

type ProductReviews struct {
	ProductID   uint          `json:"productId"`
	ProductName string        `json:"productName"`
	Reviews     []ReviewEntry `json:"reviews"`
}

// RetrieveReviews lists a product's reviews with reviewer names. An
// existing product with no reviews is a success with an empty list.
func RetrieveReviews(db *gorm.DB, productID uint) (*ProductReviews, error) {
	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("product not found")
		}
		return nil, apperrors.Internal(err)
	}

	var reviews []models.Review
	if err := db.Where("product_id = ?", productID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	result := &ProductReviews{
		ProductID:   product.ID,
		ProductName: product.ProductName,
		Reviews:     make([]ReviewEntry, 0, len(reviews)),
	}
	if len(reviews) == 0 {
		return result, nil
	}

	reviewerIDs := make([]uint, 0, len(reviews))
	for _, review := range reviews {
		reviewerIDs = append(reviewerIDs, review.BuyerID)
	}
	var reviewers []models.User
	if err := db.Where("id IN ?", reviewerIDs).Find(&reviewers).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	names := make(map[uint]string, len(reviewers))
	for _, reviewer := range reviewers {
		names[reviewer.ID] = reviewer.Name
	}

	for _, review := range reviews {
		result.Reviews = append(result.Reviews, ReviewEntry{
			Reviewer: names[review.BuyerID],
			Rating:   review.Rating,
			Comment:  review.Comment,
		})
	}
	return result, nil
}
