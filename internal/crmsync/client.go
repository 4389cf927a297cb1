package crmsync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/venuelinkhq/venuelink-backend/pkg/config"
	pkgerrors "github.com/venuelinkhq/venuelink-backend/pkg/errors"
)

const responseBodyReadLimit int64 = 1024

// SyncAction names the change category reported to the CRM.
type SyncAction string

const (
	ActionCreated       SyncAction = "created"
	ActionUpdated       SyncAction = "updated"
	ActionStatusChanged SyncAction = "status_changed"
)

var errBaseURLRequired = errors.New("crm base url is required")

// Client mirrors order activity into the external chat-CRM.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds the CRM client from configuration.
func NewClient(cfg config.CRMConfig, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client := &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     baseURL,
		accessToken: strings.TrimSpace(cfg.AccessToken),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

type syncRequest struct {
	Action      SyncAction `json:"action"`
	OrderNumber string     `json:"order_number"`
	Status      string     `json:"status,omitempty"`
}

// SyncOrder posts an order change to the CRM. Delivery is best effort; the
// caller decides what to do with failures.
func (c *Client) SyncOrder(ctx context.Context, orderID uuid.UUID, action SyncAction, orderNumber, status string) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "crm client not configured")
	}
	if orderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	payload, err := json.Marshal(syncRequest{Action: action, OrderNumber: orderNumber, Status: status})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal crm payload")
	}

	url := fmt.Sprintf("%s/orders/%s/sync", c.baseURL, orderID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build crm request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute crm request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "crm sync failed")
	}
	return nil
}
