package services

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/habeshabingo/rounds-backend/config"
	"github.com/habeshabingo/rounds-backend/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades the connection and registers the client with
// the hub. Identity arrives pre-verified as a telegram_id query param.
func HandleWebSocket(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		telegramIDStr := c.Query("telegram_id")
		if telegramIDStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing telegram_id"})
			return
		}
		telegramID, err := strconv.ParseInt(telegramIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid telegram_id"})
			return
		}

		var user models.User
		if err := config.DB.Where("telegram_id = ?", telegramID).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] upgrade error: %v", err)
			return
		}

		client := &Client{
			userID: user.ID,
			conn:   conn,
			hub:    hub,
			send:   make(chan []byte, 32),
		}
		log.Printf("[WS] New client: userID=%d, telegramID=%d", user.ID, telegramID)

		hub.addClient(client)
	}
}
