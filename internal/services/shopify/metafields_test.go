package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"airsync/internal/logger"
)

func TestSetVariantSize_UserErrorsAreSwallowed(t *testing.T) {
	mutations := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/admin/oauth/access_token":
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok"})
		case strings.HasSuffix(r.URL.Path, "/graphql.json"):
			mutations++
			json.NewEncoder(w).Encode(map[string]interface{}{
				"data": map[string]interface{}{
					"metafieldsSet": map[string]interface{}{
						"metafields": []interface{}{},
						"userErrors": []interface{}{
							map[string]interface{}{"field": []string{"value"}, "message": "size rejected"},
						},
					},
				},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	log := logger.New("error")
	tokens := NewTokenProvider(server.URL, "id", "secret", server.Client())
	client := NewClientWithBaseURL(server.URL, "2025-01", tokens, log)

	err := client.SetVariantSize(context.Background(), "gid://shopify/ProductVariant/111", "100ml")
	if err != nil {
		t.Fatalf("SetVariantSize() error = %v, want nil for mutation user errors", err)
	}
	if mutations != 1 {
		t.Fatalf("metafieldsSet mutations = %d, want 1", mutations)
	}
}
