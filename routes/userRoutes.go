package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sokoni/sokoni-api/config"
	"github.com/sokoni/sokoni-api/controllers"
	"github.com/sokoni/sokoni-api/middlewares"
	"github.com/sokoni/sokoni-api/models"
)

func UserRoutes(server *gin.Engine, cfg *config.Config) {
	user := server.Group("/user", middlewares.Authenticate(cfg))
	{
		user.GET("/profile", controllers.GetProfile)
		user.PATCH("/profile", controllers.UpdateProfile)
		user.GET("/allusers", middlewares.RequireRole(models.RoleAdmin), controllers.GetAllUsers)
	}
}
