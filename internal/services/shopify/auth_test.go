package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTokenProvider_CachesWithinTTL(t *testing.T) {
	exchanges := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/oauth/access_token" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode token request: %v", err)
		}
		if body["grant_type"] != "client_credentials" {
			t.Errorf("grant_type = %q, want client_credentials", body["grant_type"])
		}
		exchanges++
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1"})
	}))
	defer server.Close()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	provider := NewTokenProvider(server.URL, "id", "secret", server.Client())
	provider.now = func() time.Time { return now }

	first, err := provider.Token(context.Background())
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}

	// A second call inside the TTL returns the identical cached value
	// without another exchange.
	now = now.Add(tokenTTL - time.Second)
	second, err := provider.Token(context.Background())
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if first != second || second != "tok-1" {
		t.Errorf("tokens = %q, %q, want identical tok-1", first, second)
	}
	if exchanges != 1 {
		t.Fatalf("exchanges = %d, want 1 within TTL", exchanges)
	}

	// Past the TTL, exactly one refresh happens.
	now = now.Add(2 * time.Second)
	if _, err := provider.Token(context.Background()); err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if exchanges != 2 {
		t.Fatalf("exchanges = %d, want 2 after expiry", exchanges)
	}
}

func TestTokenProvider_MissingAccessToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid_client"})
	}))
	defer server.Close()

	provider := NewTokenProvider(server.URL, "id", "secret", server.Client())

	_, err := provider.Token(context.Background())
	if err == nil {
		t.Fatal("Token() error = nil, want auth error")
	}
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Token() error = %T %v, want *AuthError", err, err)
	}
}
