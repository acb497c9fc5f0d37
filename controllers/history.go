package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/habeshabingo/rounds-backend/config"
	"github.com/habeshabingo/rounds-backend/models"
)

// ListHistory returns recent win records, newest first. Optional ?stake=
// filters to one stake.
func ListHistory(c *gin.Context) {
	q := config.DB.Order("won_at DESC").Limit(100)
	if stakeStr := c.Query("stake"); stakeStr != "" {
		stake, err := strconv.Atoi(stakeStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stake"})
			return
		}
		q = q.Where("stake = ?", stake)
	}

	var records []models.WinHistory
	if err := q.Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, records)
}
