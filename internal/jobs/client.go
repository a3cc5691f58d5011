// Package jobs holds the scheduled maintenance tasks. Each job talks to the
// CRM over its HTTP API and records what happened in its own log file.
package jobs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"crm/internal/config"
	"crm/internal/models"

	"github.com/gofiber/fiber/v2"
)

// API is the part of the CRM API the jobs call.
type API interface {
	RestockLowStock() (*models.RestockResult, error)
	Hello() (string, error)
	ListOrders(query url.Values) ([]models.Order, error)
}

// Client calls the CRM API with Fiber's HTTP agent. When client credentials
// are configured it obtains a bearer token first and renews it on 401.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	timeout      time.Duration

	mu    sync.Mutex
	token string
}

// NewClient creates a Client from the jobs configuration.
func NewClient(cfg config.JobsConfig) *Client {
	timeout := cfg.APITimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:      cfg.APIBaseURL,
		clientID:     cfg.APIClientID,
		clientSecret: cfg.APIClientSecret,
		timeout:      timeout,
	}
}

// RestockLowStock calls POST /api/v1/products/restock.
func (c *Client) RestockLowStock() (*models.RestockResult, error) {
	var result models.RestockResult
	if err := c.call(fiber.MethodPost, "/api/v1/products/restock", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Hello calls GET /api/v1/hello and returns the greeting.
func (c *Client) Hello() (string, error) {
	var reply struct {
		Hello string `json:"hello"`
	}
	if err := c.call(fiber.MethodGet, "/api/v1/hello", nil, &reply); err != nil {
		return "", err
	}
	return reply.Hello, nil
}

// ListOrders calls GET /api/v1/orders with query as filters.
func (c *Client) ListOrders(query url.Values) ([]models.Order, error) {
	var orders []models.Order
	if err := c.call(fiber.MethodGet, "/api/v1/orders", query, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) call(method, path string, query url.Values, out interface{}) error {
	token, err := c.bearer(false)
	if err != nil {
		return err
	}
	code, body, err := c.do(method, path, query, token)
	if err != nil {
		return err
	}
	if code == fiber.StatusUnauthorized && c.clientID != "" {
		if token, err = c.bearer(true); err != nil {
			return err
		}
		if code, body, err = c.do(method, path, query, token); err != nil {
			return err
		}
	}
	if code < 200 || code >= 300 {
		return fmt.Errorf("%s %s: unexpected status %d: %s", method, path, code, apiMessage(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}
	return nil
}

func (c *Client) do(method, path string, query url.Values, token string) (int, []byte, error) {
	agent := fiber.AcquireAgent()
	req := agent.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	agent.Timeout(c.timeout)
	if len(query) > 0 {
		agent.QueryString(query.Encode())
	}
	if token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, errors.Join(errs...))
	}
	return code, body, nil
}

// bearer returns the cached token, fetching a new one when renew is set or
// none is cached. It returns "" when no credentials are configured.
func (c *Client) bearer(renew bool) (string, error) {
	if c.clientID == "" {
		return "", nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && !renew {
		return c.token, nil
	}

	agent := fiber.Post(c.baseURL + "/api/v1/auth/token").
		Timeout(c.timeout).
		JSON(fiber.Map{"client_id": c.clientID, "client_secret": c.clientSecret})
	var reply struct {
		AccessToken string `json:"access_token"`
	}
	code, body, errs := agent.Struct(&reply)
	if len(errs) > 0 {
		return "", fmt.Errorf("failed to obtain API token: %w", errors.Join(errs...))
	}
	if code != fiber.StatusOK || reply.AccessToken == "" {
		return "", fmt.Errorf("failed to obtain API token: status %d: %s", code, apiMessage(body))
	}
	c.token = reply.AccessToken
	return c.token, nil
}

// apiMessage extracts the "message" of an error body, falling back to the raw body.
func apiMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return string(body)
}
