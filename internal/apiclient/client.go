// Package apiclient is the typed HTTP client for the catalog API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/BergomiStore/bergomi_store/internal/models"
)

// Client talks to the catalog API. Each call is a single attempt.
type Client struct {
	httpClient *http.Client
	endpoints  Endpoints
}

// New constructs a client from cfg.
func New(cfg Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		endpoints:  NewEndpoints(cfg),
	}
}

// Endpoints exposes the resolver used by the client.
func (c *Client) Endpoints() Endpoints { return c.endpoints }

// ListAccounts returns every active account, newest first.
func (c *Client) ListAccounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := c.doRequest(ctx, http.MethodGet, c.endpoints.Accounts(), nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// GetAccount returns one account with its player cards.
func (c *Client) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	var acc models.Account
	if err := c.doRequest(ctx, http.MethodGet, c.endpoints.Account(id), nil, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

// CreateAccount posts a new account.
func (c *Client) CreateAccount(ctx context.Context, in *models.AccountInput) (*models.Account, error) {
	var acc models.Account
	if err := c.doRequest(ctx, http.MethodPost, c.endpoints.Accounts(), in, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

// UpdateAccount fully replaces an account, cards included.
func (c *Client) UpdateAccount(ctx context.Context, id int64, in *models.AccountInput) (*models.Account, error) {
	var acc models.Account
	if err := c.doRequest(ctx, http.MethodPut, c.endpoints.Account(id), in, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

// DeleteAccount removes an account and its cards.
func (c *Client) DeleteAccount(ctx context.Context, id int64) error {
	return c.doRequest(ctx, http.MethodDelete, c.endpoints.Account(id), nil, nil)
}

// GetContactLink returns the active contact URL, or "" when none is set.
func (c *Client) GetContactLink(ctx context.Context) (string, error) {
	var body struct {
		Link string `json:"link"`
	}
	if err := c.doRequest(ctx, http.MethodGet, c.endpoints.ContactLink(), nil, &body); err != nil {
		return "", err
	}
	return body.Link, nil
}

// SetContactLink replaces the contact URL.
func (c *Client) SetContactLink(ctx context.Context, link string) (*models.ContactLink, error) {
	req := map[string]string{"link": link}
	var out models.ContactLink
	if err := c.doRequest(ctx, http.MethodPost, c.endpoints.ContactLink(), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyAdmin checks token. A nil error means the API accepted it.
func (c *Client) VerifyAdmin(ctx context.Context, token string) error {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.VerifyAdmin(token), nil, nil)
}

// Ping checks that the API answers at all. Any HTTP response counts.
func (c *Client) Ping(ctx context.Context) error {
	url := c.endpoints.Root()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UnreachableError{URL: url, Err: err}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}

// doRequest sends body as JSON and decodes a 2xx response into result.
// result may be nil for responses without a body.
func (c *Client) doRequest(ctx context.Context, method, url string, body, result any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UnreachableError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	log.Debug().
		Str("method", method).
		Str("url", url).
		Int("status_code", resp.StatusCode).
		Msg("[API] Response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, respBody)
	}
	if result == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
