package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// tokenTTL is how long an access token is treated as valid after issuance.
const tokenTTL = 3000 * time.Second

// AuthError reports a token exchange that did not yield an access token.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("shopify token exchange failed: %s", e.Reason)
}

// TokenProvider performs the client-credentials exchange and caches the
// resulting access token for the process lifetime, refreshing it once the
// TTL since issuance has elapsed.
type TokenProvider struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	now          func() time.Time

	mu         sync.Mutex
	token      string
	obtainedAt time.Time
}

func NewTokenProvider(baseURL, clientID, clientSecret string, httpClient *http.Client) *TokenProvider {
	return &TokenProvider{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   httpClient,
		now:          time.Now,
	}
}

// Token returns the cached access token, exchanging credentials for a fresh
// one when the cache is empty or expired. The lock is held across the
// exchange so concurrent callers never issue redundant refreshes.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && p.now().Sub(p.obtainedAt) < tokenTTL {
		return p.token, nil
	}

	token, err := p.exchange(ctx)
	if err != nil {
		return "", err
	}

	p.token = token
	p.obtainedAt = p.now()
	return p.token, nil
}

func (p *TokenProvider) exchange(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/admin/oauth/access_token", p.baseURL)

	payload := map[string]string{
		"client_id":     p.clientID,
		"client_secret": p.clientSecret,
		"grant_type":    "client_credentials",
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token exchange failed: %d - %s", resp.StatusCode, string(body))
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", &AuthError{Reason: "response missing access_token"}
	}

	return tokenResp.AccessToken, nil
}
