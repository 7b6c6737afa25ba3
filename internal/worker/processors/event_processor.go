package processors

import (
	"time"

	"airsync/internal/events"
	"airsync/internal/logger"
	"airsync/internal/models"

	"gorm.io/gorm"
)

// EventProcessor persists sync events as audit records.
type EventProcessor struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewEventProcessor(db *gorm.DB, logger *logger.Logger) *EventProcessor {
	return &EventProcessor{
		db:     db,
		logger: logger,
	}
}

func (ep *EventProcessor) Process(event events.SyncEvent) error {
	record := models.SyncRecord{
		ID:             event.ID,
		SKU:            event.SKU,
		Status:         event.Status,
		Error:          event.Error,
		VariantID:      event.VariantID,
		UpdatedFields:  models.JoinFields(event.UpdatedFields),
		SkippedMarkets: models.JoinFields(event.SkippedMarkets),
		OccurredAt:     event.OccurredAt,
		CreatedAt:      time.Now(),
	}

	if err := ep.db.Create(&record).Error; err != nil {
		return err
	}

	ep.logger.Debug("recorded sync %s for sku %s (%s)", event.ID, event.SKU, event.Status)
	return nil
}
