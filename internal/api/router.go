package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"payhub-backend/config"
	"payhub-backend/internal/api/v1/payment"
	"payhub-backend/internal/database"
	"payhub-backend/internal/middleware"
	"payhub-backend/internal/services"
)

func NewRouter() (*gin.Engine, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	if _, err := database.ConnectRedis(cfg); err != nil {
		return nil, err
	}

	if err := services.RegisterDrivers(cfg); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// API v1
	v1 := router.Group("/api/v1")
	{
		payment.RegisterRoutes(v1)
	}

	return router, nil
}
