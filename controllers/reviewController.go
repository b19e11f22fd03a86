package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sokoni/sokoni-api/initializers"
	"github.com/sokoni/sokoni-api/services"
)

type reviewBody struct {
	ProductID uint   `json:"productId" binding:"required"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// CreateReview lets a buyer review a product from one of their
// completed orders.
func CreateReview(ctx *gin.Context) {
	var body reviewBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendFail(ctx, http.StatusBadRequest, "invalid input")
		return
	}

	buyerID, _ := callerIdentity(ctx)
	review, err := services.CreateReview(initializers.DB, buyerID, body.ProductID, body.Rating, body.Comment)
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendSuccess(ctx, http.StatusCreated, "Product reviewed successfully", review)
}

func GetProductReviews(ctx *gin.Context) {
	productID, ok := parseIDParam(ctx, "productId")
	if !ok {
		return
	}

	reviews, err := services.RetrieveReviews(initializers.DB, productID)
	if err != nil {
		sendError(ctx, err)
		return
	}
	if len(reviews.Reviews) == 0 {
		sendSuccess(ctx, http.StatusOK, "No reviews for this product yet", reviews)
		return
	}
	sendSuccess(ctx, http.StatusOK, "Reviews retrieved successfully", reviews)
}
