package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sokoni/sokoni-api/config"
	"github.com/sokoni/sokoni-api/controllers"
	"github.com/sokoni/sokoni-api/initializers"
	"github.com/sokoni/sokoni-api/routes"
	"github.com/sokoni/sokoni-api/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	initializers.ConnectToDB(cfg)
	initializers.SyncDatabase()

	controllers.Init(cfg, utils.NewSMTPMailer(cfg))

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server, cfg)
	routes.UserRoutes(server, cfg)
	routes.CategoryRoutes(server, cfg)
	routes.ProductRoutes(server, cfg)
	routes.OrderRoutes(server, cfg)
	routes.ReviewRoutes(server, cfg)

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := server.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
