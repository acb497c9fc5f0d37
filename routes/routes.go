package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/habeshabingo/rounds-backend/controllers"
)

func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// ----------------------
	// User routes
	// ----------------------
	api.POST("/users", controllers.RegisterUser)        // Register user
	api.GET("/users/:telegram_id", controllers.GetUser) // Get user by Telegram ID

	// ----------------------
	// History routes
	// ----------------------
	api.GET("/history", controllers.ListHistory) // Recent win records
}
