package handlers

import (
	"net/http"
	"strconv"

	"airsync/internal/logger"
	"airsync/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SyncRecordHandler struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewSyncRecordHandler(db *gorm.DB, logger *logger.Logger) *SyncRecordHandler {
	return &SyncRecordHandler{
		db:     db,
		logger: logger,
	}
}

// List returns the persisted sync audit records, newest first.
func (h *SyncRecordHandler) List(c *gin.Context) {
	var records []models.SyncRecord

	// Pagination
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	// Filters
	sku := c.Query("sku")
	status := c.Query("status")

	query := h.db.Model(&models.SyncRecord{})

	if sku != "" {
		query = query.Where("sku = ?", sku)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	if err := query.Order("occurred_at DESC").Offset(offset).Limit(limit).Find(&records).Error; err != nil {
		h.logger.Error("failed to list sync records: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sync records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": records,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}
