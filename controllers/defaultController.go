package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Sokoni API.

The following are the endpoints for this API:

AUTH
- POST "/auth/register/buyer" - Create a buyer account
- POST "/auth/register/admin" - Create an admin account (admin only)
- POST "/auth/login" - Access user account
- GET "/auth/verify/:token" - Verify account email

USER
- GET "/user/profile" - Get own profile
- PATCH "/user/profile" - Update own profile
- GET "/user/allusers" - Get all users (admin only)

CATEGORY
- GET "/category" - Get all categories
- POST "/category" - Create a category (admin only)

PRODUCT
- GET "/product" - Get all products
- GET "/product/{id}" - Get product by ID
- GET "/product/category/{categoryId}" - Get products in a category
- GET "/product/search" - Search products by name, price range and category
- POST "/product" - Create a product (admin only)
- PATCH "/product/{id}" - Update a product (admin only)
- PATCH "/product/featured/{id}" - Feature a product (admin only)
- PATCH "/product/unfeatured/{id}" - Unfeature a product (admin only)
- POST "/product/images" - Upload product images (admin only)

ORDER
- POST "/orders" - Place a new order
- GET "/orders" - Retrieve orders
- GET "/orders/{orderId}" - Get order by ID
- PATCH "/orders/{orderId}" - Update order status (admin only)
- GET "/orders/history" - Get order history

REVIEW
- POST "/reviews" - Review a purchased product
- GET "/reviews/product/{productId}" - Get reviews for a product`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
