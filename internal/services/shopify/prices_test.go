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

func newCountingClient(t *testing.T, catalogListings *int, nodes []interface{}) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/admin/oauth/access_token":
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok"})
		case strings.HasSuffix(r.URL.Path, "/graphql.json"):
			*catalogListings++
			json.NewEncoder(w).Encode(map[string]interface{}{
				"data": map[string]interface{}{
					"catalogs": map[string]interface{}{
						"nodes":    nodes,
						"pageInfo": map[string]interface{}{"hasNextPage": false, "endCursor": ""},
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
	return NewClientWithBaseURL(server.URL, "2025-01", tokens, log)
}

func TestPriceLists_EmptyResultStillCached(t *testing.T) {
	listings := 0
	client := newCountingClient(t, &listings, []interface{}{})

	for i := 0; i < 2; i++ {
		lists, err := client.PriceLists(context.Background())
		if err != nil {
			t.Fatalf("PriceLists() #%d error = %v", i+1, err)
		}
		if len(lists) != 0 {
			t.Fatalf("PriceLists() = %v, want empty", lists)
		}
	}

	if listings != 1 {
		t.Fatalf("catalog listings = %d, want 1 (empty result must still populate the cache)", listings)
	}
}

func TestPriceLists_SkipsInactiveAndListless(t *testing.T) {
	listings := 0
	client := newCountingClient(t, &listings, []interface{}{
		map[string]interface{}{
			"id":        "gid://shopify/Catalog/1",
			"title":     "UAE Catalog",
			"status":    "ACTIVE",
			"priceList": map[string]interface{}{"id": "gid://shopify/PriceList/10", "currency": "AED"},
		},
		map[string]interface{}{
			"id":        "gid://shopify/Catalog/2",
			"title":     "Asia Catalog",
			"status":    "ARCHIVED",
			"priceList": map[string]interface{}{"id": "gid://shopify/PriceList/20", "currency": "SGD"},
		},
		map[string]interface{}{
			"id":     "gid://shopify/Catalog/3",
			"title":  "America Catalog",
			"status": "ACTIVE",
		},
	})

	lists, err := client.PriceLists(context.Background())
	if err != nil {
		t.Fatalf("PriceLists() error = %v", err)
	}

	if len(lists) != 1 {
		t.Fatalf("PriceLists() = %v, want only the active catalog with a price list", lists)
	}
	uae, ok := lists["UAE Catalog"]
	if !ok || uae.ID != "gid://shopify/PriceList/10" || uae.Currency != "AED" {
		t.Errorf("UAE Catalog entry = %+v", uae)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{99.5, "99.5"},
		{120, "120"},
		{27.99, "27.99"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
