package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/JohnFrp/pharmacy-pos/config"
	"github.com/JohnFrp/pharmacy-pos/models"
	"github.com/JohnFrp/pharmacy-pos/routes"
	"github.com/JohnFrp/pharmacy-pos/seeders"
	"github.com/JohnFrp/pharmacy-pos/utils/log"
)

func main() {
	// .env is optional in production, required for local dev
	_ = godotenv.Load()

	log.Init()
	defer log.Sync()

	// connect db + migrate
	config.ConnectDatabase()
	if err := models.Migrate(config.DB); err != nil {
		log.L().Fatal("migration failed", zap.Error(err))
	}

	r := gin.Default()

	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.RegisterRoutes(r)

	seeders.Seed()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.L().Fatal("server stopped", zap.Error(err))
	}
}
