package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"airsync/internal/config"
	"airsync/internal/logger"
)

// Client wraps the Shopify Admin REST and GraphQL APIs for a single shop.
// Every call attaches the current access token from the TokenProvider.
type Client struct {
	baseURL    string
	apiVersion string
	tokens     *TokenProvider
	httpClient *http.Client
	logger     *logger.Logger

	// process-lifetime price list cache, see prices.go
	priceLists priceListCache
}

func NewClient(cfg *config.Config, logger *logger.Logger) *Client {
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}
	baseURL := fmt.Sprintf("https://%s.myshopify.com", cfg.ShopDomain)

	return &Client{
		baseURL:    baseURL,
		apiVersion: cfg.ShopifyAPIVersion,
		tokens:     NewTokenProvider(baseURL, cfg.ShopifyClientID, cfg.ShopifyClientSecret, httpClient),
		httpClient: httpClient,
		logger:     logger,
	}
}

// NewClientWithBaseURL points the client at an explicit base URL instead of
// deriving one from the shop domain. Used by tests against a local server.
func NewClientWithBaseURL(baseURL, apiVersion string, tokens *TokenProvider, logger *logger.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiVersion: apiVersion,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Get issues a GET against an Admin REST path like "variants/123.json".
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.doREST(ctx, http.MethodGet, path, nil, out)
}

// Put issues a PUT with a JSON payload against an Admin REST path.
func (c *Client) Put(ctx context.Context, path string, payload, out interface{}) error {
	return c.doREST(ctx, http.MethodPut, path, payload, out)
}

// Post issues a POST with a JSON payload against an Admin REST path.
func (c *Client) Post(ctx context.Context, path string, payload, out interface{}) error {
	return c.doREST(ctx, http.MethodPost, path, payload, out)
}

func (c *Client) doREST(ctx context.Context, method, path string, payload, out interface{}) error {
	url := fmt.Sprintf("%s/admin/api/%s/%s", c.baseURL, c.apiVersion, path)

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if err := c.setHeaders(ctx, req); err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API request failed: %s %s: %d - %s", method, path, resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// GraphQL posts a query against the Admin GraphQL endpoint and unmarshals the
// top-level "data" object into out. Top-level GraphQL errors fail the call;
// mutation userErrors are left to the caller to inspect.
func (c *Client) GraphQL(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	url := fmt.Sprintf("%s/admin/api/%s/graphql.json", c.baseURL, c.apiVersion)

	jsonData, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if err := c.setHeaders(ctx, req); err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GraphQL request failed: %d - %s", resp.StatusCode, string(respBody))
	}

	var envelope graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("GraphQL errors: %s", envelope.Errors[0].Message)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(ctx context.Context, req *http.Request) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("X-Shopify-Access-Token", token)
	req.Header.Set("Content-Type", "application/json")
	return nil
}
