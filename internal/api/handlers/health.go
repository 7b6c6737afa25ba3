package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Home mirrors the original relay's banner route.
func Home(c *gin.Context) {
	c.String(http.StatusOK, "Airtable -> Shopify Sync API Running")
}

// Health is the liveness probe.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
