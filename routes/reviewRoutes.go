package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sokoni/sokoni-api/config"
	"github.com/sokoni/sokoni-api/controllers"
	"github.com/sokoni/sokoni-api/middlewares"
	"github.com/sokoni/sokoni-api/models"
)

func ReviewRoutes(server *gin.Engine, cfg *config.Config) {
	server.POST("/reviews",
		middlewares.Authenticate(cfg),
		middlewares.RequireRole(models.RoleBuyer),
		controllers.CreateReview)
	server.GET("/reviews/product/:productId", controllers.GetProductReviews)
}
