package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"airsync/internal/api/middleware"
	"airsync/internal/events"
	"airsync/internal/logger"
	"airsync/internal/relay"
	"airsync/internal/services/shopify"

	"github.com/gin-gonic/gin"
)

const testSecret = "s3cret"

type stubSyncer struct {
	calls  int
	result relay.Result
	err    error
}

func (s *stubSyncer) Sync(ctx context.Context, req relay.Request) (relay.Result, error) {
	s.calls++
	return s.result, s.err
}

type stubPublisher struct {
	published []events.SyncEvent
}

func (p *stubPublisher) Publish(ctx context.Context, event events.SyncEvent) error {
	p.published = append(p.published, event)
	return nil
}

func newTestRouter(syncer Syncer, publisher EventPublisher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewWebhookHandler(syncer, publisher, logger.New("error"))
	router.POST("/airtable-webhook", middleware.SecretToken(testSecret), handler.Handle)
	return router
}

func post(router *gin.Engine, secret, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/airtable-webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("X-Secret-Token", secret)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func TestWebhook_RejectsBadSecret(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{"missing header", ""},
		{"wrong secret", "not-the-secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syncer := &stubSyncer{}
			router := newTestRouter(syncer, nil)

			w := post(router, tt.secret, `{"SKU":"A1"}`)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
			if body := decodeBody(t, w); body["error"] != "Unauthorized" {
				t.Errorf("body = %v", body)
			}
			if syncer.calls != 0 {
				t.Errorf("syncer called %d times, want 0", syncer.calls)
			}
		})
	}
}

func TestWebhook_RejectsMissingSKU(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no sku field", `{"Title":"x"}`},
		{"blank sku", `{"SKU":"   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syncer := &stubSyncer{}
			router := newTestRouter(syncer, nil)

			w := post(router, testSecret, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if body := decodeBody(t, w); body["error"] != "SKU missing" {
				t.Errorf("body = %v", body)
			}
			if syncer.calls != 0 {
				t.Errorf("syncer called %d times, want 0", syncer.calls)
			}
		})
	}
}

func TestWebhook_VariantNotFound(t *testing.T) {
	syncer := &stubSyncer{err: &shopify.NotFoundError{SKU: "GHOST"}}
	publisher := &stubPublisher{}
	router := newTestRouter(syncer, publisher)

	w := post(router, testSecret, `{"SKU":"GHOST"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "Variant not found" {
		t.Errorf("body = %v", body)
	}
	if len(publisher.published) != 1 || publisher.published[0].Status != events.StatusNotFound {
		t.Errorf("published = %+v, want one not_found event", publisher.published)
	}
}

func TestWebhook_UpstreamFailure(t *testing.T) {
	syncer := &stubSyncer{
		result: relay.Result{SKU: "A1", VariantID: 111, UpdatedFields: []string{"title"}},
		err:    errors.New("API request failed: 500"),
	}
	publisher := &stubPublisher{}
	router := newTestRouter(syncer, publisher)

	w := post(router, testSecret, `{"SKU":"A1","Title":"x"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	if len(publisher.published) != 1 {
		t.Fatalf("published = %+v, want one event", publisher.published)
	}
	event := publisher.published[0]
	if event.Status != events.StatusFailed || event.Error == "" {
		t.Errorf("event = %+v, want failed with error", event)
	}
	// Fields updated before the failure are reported; they were not rolled back.
	if len(event.UpdatedFields) != 1 || event.UpdatedFields[0] != "title" {
		t.Errorf("UpdatedFields = %v, want [title]", event.UpdatedFields)
	}
}

func TestWebhook_Success(t *testing.T) {
	syncer := &stubSyncer{
		result: relay.Result{SKU: "A1", VariantID: 111, UpdatedFields: []string{"price", "price:UAE"}},
	}
	publisher := &stubPublisher{}
	router := newTestRouter(syncer, publisher)

	w := post(router, testSecret, `{"SKU":"A1","UAE price":"99.5"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := decodeBody(t, w); body["status"] != "success" {
		t.Errorf("body = %v", body)
	}

	if len(publisher.published) != 1 {
		t.Fatalf("published = %+v, want one event", publisher.published)
	}
	event := publisher.published[0]
	if event.Status != events.StatusSuccess || event.SKU != "A1" || event.VariantID != 111 {
		t.Errorf("event = %+v", event)
	}
	if event.ID == "" {
		t.Error("event has no id")
	}
}

func TestWebhook_InvalidJSON(t *testing.T) {
	syncer := &stubSyncer{}
	router := newTestRouter(syncer, nil)

	w := post(router, testSecret, `{"SKU":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if syncer.calls != 0 {
		t.Errorf("syncer called %d times, want 0", syncer.calls)
	}
}
