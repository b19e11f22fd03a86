package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sokoni/sokoni-api/config"
	"github.com/sokoni/sokoni-api/controllers"
	"github.com/sokoni/sokoni-api/middlewares"
	"github.com/sokoni/sokoni-api/models"
)

func ProductRoutes(server *gin.Engine, cfg *config.Config) {
	server.GET("/product", controllers.GetProducts)
	server.GET("/product/search", controllers.SearchProducts)
	server.GET("/product/category/:categoryId", controllers.GetProductsByCategory)
	server.GET("/product/:id", controllers.GetProduct)

	admin := server.Group("/product",
		middlewares.Authenticate(cfg),
		middlewares.RequireRole(models.RoleAdmin))
	{
		admin.POST("", controllers.CreateProduct)
		admin.POST("/images", controllers.UploadProductImages)
		admin.PATCH("/featured/:id", controllers.FeatureProduct)
		admin.PATCH("/unfeatured/:id", controllers.UnfeatureProduct)
		admin.PATCH("/:id", controllers.UpdateProduct)
	}
}
