package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sokoni/sokoni-api/initializers"
	"github.com/sokoni/sokoni-api/services"
)

type placeOrderBody struct {
	Products []services.OrderLine `json:"products" binding:"required"`
}

// PlaceOrder creates an order for the authenticated buyer.
func PlaceOrder(ctx *gin.Context) {
	var body placeOrderBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendFail(ctx, http.StatusBadRequest, "invalid request body")
		return
	}

	buyerID, _ := callerIdentity(ctx)
	placed, err := services.PlaceOrder(initializers.DB, buyerID, body.Products)
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendSuccess(ctx, http.StatusCreated, "Order placed successfully", placed)
}

// GetOrders lists orders scoped by the caller's role.
func GetOrders(ctx *gin.Context) {
	callerID, role := callerIdentity(ctx)

	orders, err := services.RetrieveOrders(initializers.DB, callerID, role)
	if err != nil {
		sendError(ctx, err)
		return
	}
	if len(orders) == 0 {
		sendSuccess(ctx, http.StatusOK, "0 orders found", orders)
		return
	}
	sendSuccess(ctx, http.StatusOK, "Orders retrieved successfully", orders)
}

func GetOrderByID(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "orderId")
	if !ok {
		return
	}

	callerID, role := callerIdentity(ctx)
	detail, err := services.OrderDetails(initializers.DB, orderID, callerID, role)
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendSuccess(ctx, http.StatusOK, "Order retrieved successfully", detail)
}

type orderStatusBody struct {
	NewStatus string `json:"newStatus" binding:"required"`
}

// UpdateOrderStatus is admin-only. A successful transition stands even
// when the buyer notification cannot be sent; the response says which.
func UpdateOrderStatus(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "orderId")
	if !ok {
		return
	}

	var body orderStatusBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendFail(ctx, http.StatusBadRequest, "invalid request body")
		return
	}

	order, notified, err := services.UpdateOrderStatus(initializers.DB, mailer, orderID, body.NewStatus)
	if err != nil {
		sendError(ctx, err)
		return
	}

	message := "Order status updated successfully"
	if !notified {
		message = "Order status updated, but the notification email could not be sent"
	}
	sendSuccess(ctx, http.StatusOK, message, order)
}

func GetOrderHistory(ctx *gin.Context) {
	callerID, role := callerIdentity(ctx)

	history, err := services.OrderHistory(initializers.DB, callerID, role)
	if err != nil {
		sendError(ctx, err)
		return
	}
	if len(history) == 0 {
		sendSuccess(ctx, http.StatusOK, "0 orders found", history)
		return
	}
	sendSuccess(ctx, http.StatusOK, "Order history retrieved successfully", history)
}
