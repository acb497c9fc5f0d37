package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/habeshabingo/rounds-backend/config"
	"github.com/habeshabingo/rounds-backend/game"
	"github.com/habeshabingo/rounds-backend/routes"
	"github.com/habeshabingo/rounds-backend/services"
	"github.com/habeshabingo/rounds-backend/store"
	"github.com/habeshabingo/rounds-backend/utils/logger"
)

// setupRouter initializes Gin routes and middleware
func setupRouter(hub *services.Hub) *gin.Engine {
	r := gin.Default()

	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup REST routes
	routes.SetupRoutes(r)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	// WebSocket endpoint
	r.GET("/ws", services.HandleWebSocket(hub))

	return r
}

func main() {
	cfg := config.Load()
	db := config.SetupDatabase(cfg.DatabaseURL)

	hub := services.NewHub()
	engine := game.NewEngine(
		cfg,
		store.NewSessionStore(db),
		store.NewAccountStore(db),
		store.NewHistoryStore(db),
		hub,
	)
	hub.SetEngine(engine)
	go engine.RunTimers()

	router := setupRouter(hub)

	logger.Infof("🚀 Bingo rounds server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("[FATAL] Failed to start server: %v", err)
	}
}
