package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sokoni/sokoni-api/config"
	"github.com/sokoni/sokoni-api/controllers"
	"github.com/sokoni/sokoni-api/middlewares"
	"github.com/sokoni/sokoni-api/models"
)

func AuthRoutes(server *gin.Engine, cfg *config.Config) {
	auth := server.Group("/auth")
	{
		auth.POST("/register/buyer", controllers.RegisterBuyer)
		auth.POST("/register/admin",
			middlewares.Authenticate(cfg),
			middlewares.RequireRole(models.RoleAdmin),
			controllers.RegisterAdmin)
		auth.POST("/login", controllers.Login)
		auth.GET("/verify/:token",
			middlewares.Authenticate(cfg),
			middlewares.RequireRole(models.RoleBuyer),
			controllers.VerifyAccount)
	}
}
