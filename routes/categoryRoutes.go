package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sokoni/sokoni-api/config"
	"github.com/sokoni/sokoni-api/controllers"
	"github.com/sokoni/sokoni-api/middlewares"
	"github.com/sokoni/sokoni-api/models"
)

func CategoryRoutes(server *gin.Engine, cfg *config.Config) {
	server.GET("/category", controllers.GetCategories)
	server.POST("/category",
		middlewares.Authenticate(cfg),
		middlewares.RequireRole(models.RoleAdmin),
		controllers.CreateCategory)
}
