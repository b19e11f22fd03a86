package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sokoni/sokoni-api/config"
	"github.com/sokoni/sokoni-api/controllers"
	"github.com/sokoni/sokoni-api/middlewares"
	"github.com/sokoni/sokoni-api/models"
)

func OrderRoutes(server *gin.Engine, cfg *config.Config) {
	orders := server.Group("/orders", middlewares.Authenticate(cfg))
	{
		orders.POST("", middlewares.RequireRole(models.RoleBuyer), controllers.PlaceOrder)
		orders.GET("", controllers.GetOrders)
		orders.GET("/history", controllers.GetOrderHistory)
		orders.GET("/:orderId", controllers.GetOrderByID)
		orders.PATCH("/:orderId", middlewares.RequireRole(models.RoleAdmin), controllers.UpdateOrderStatus)
	}
}
