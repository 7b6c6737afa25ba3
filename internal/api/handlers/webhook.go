package handlers

import (
	"context"
	"net/http"
	"time"

	"airsync/internal/events"
	"airsync/internal/logger"
	"airsync/internal/relay"
	"airsync/internal/services/shopify"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Syncer runs the resolve-and-update sequence for one webhook payload.
type Syncer interface {
	Sync(ctx context.Context, req relay.Request) (relay.Result, error)
}

// EventPublisher emits the audit event for a handled webhook.
type EventPublisher interface {
	Publish(ctx context.Context, event events.SyncEvent) error
}

type WebhookHandler struct {
	syncer    Syncer
	publisher EventPublisher
	logger    *logger.Logger
}

// NewWebhookHandler wires the webhook route. publisher may be nil when no
// broker is configured; audit events are then skipped.
func NewWebhookHandler(syncer Syncer, publisher EventPublisher, logger *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		syncer:    syncer,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle processes one product update notification. Outcomes: 400 when the
// SKU is missing, 404 when no variant matches, 502 when an update step fails
// upstream (earlier updates stand, nothing is rolled back), 200 otherwise.
func (h *WebhookHandler) Handle(c *gin.Context) {
	var payload relay.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	req, malformed := relay.ParsePayload(payload)
	if req.SKU == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "SKU missing"})
		return
	}
	for _, field := range malformed {
		h.logger.Debug("ignoring non-numeric value in field %q for sku %s", field, req.SKU)
	}

	result, err := h.syncer.Sync(c.Request.Context(), req)
	switch {
	case shopify.IsNotFound(err):
		h.publish(c, req, result, events.StatusNotFound, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
	case err != nil:
		h.logger.Error("sync failed for sku %s: %v", req.SKU, err)
		h.publish(c, req, result, events.StatusFailed, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream sync failed"})
	default:
		h.logger.Info("synced sku %s: fields=%v skipped=%v", req.SKU, result.UpdatedFields, result.SkippedMarkets)
		h.publish(c, req, result, events.StatusSuccess, nil)
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	}
}

// publish is best-effort: a broker failure is logged and never changes the
// webhook response.
func (h *WebhookHandler) publish(c *gin.Context, req relay.Request, result relay.Result, status string, syncErr error) {
	if h.publisher == nil {
		return
	}

	event := events.SyncEvent{
		ID:             uuid.NewString(),
		SKU:            req.SKU,
		Status:         status,
		VariantID:      result.VariantID,
		UpdatedFields:  result.UpdatedFields,
		SkippedMarkets: result.SkippedMarkets,
		OccurredAt:     time.Now().UTC(),
	}
	if syncErr != nil {
		event.Error = syncErr.Error()
	}

	if err := h.publisher.Publish(c.Request.Context(), event); err != nil {
		h.logger.Error("failed to publish sync event for sku %s: %v", req.SKU, err)
	}
}
