package slack

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/venuelinkhq/venuelink-backend/pkg/config"
	pkgerrors "github.com/venuelinkhq/venuelink-backend/pkg/errors"
)

const (
	signatureVersion            = "v0"
	signatureMaxAge             = 5 * time.Minute
	responseBodyReadLimit int64 = 1024
)

var (
	errWebhookURLRequired = errors.New("slack webhook url is required")
)

// Client posts messages to the team channel through an incoming webhook and
// verifies signatures on inbound event callbacks.
type Client struct {
	httpClient    *http.Client
	webhookURL    string
	signingSecret string
	channel       string
	now           func() time.Time
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

// WithClock overrides the time source used for signature freshness checks.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient builds the Slack webhook client from configuration.
func NewClient(cfg config.SlackConfig, opts ...Option) (*Client, error) {
	webhookURL := strings.TrimSpace(cfg.WebhookURL)
	if webhookURL == "" {
		return nil, errWebhookURLRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client := &Client{
		httpClient:    &http.Client{Timeout: timeout},
		webhookURL:    webhookURL,
		signingSecret: strings.TrimSpace(cfg.SigningSecret),
		channel:       strings.TrimSpace(cfg.Channel),
		now:           time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// Channel reports the configured destination channel.
func (c *Client) Channel() string {
	if c == nil {
		return ""
	}
	return c.channel
}

type webhookPayload struct {
	Channel string `json:"channel,omitempty"`
	Text    string `json:"text"`
}

// PostMessage delivers a text message to the configured channel.
func (c *Client) PostMessage(ctx context.Context, text string) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "slack client not configured")
	}
	if strings.TrimSpace(text) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "message text is required")
	}

	payload, err := json.Marshal(webhookPayload{Channel: c.channel, Text: text})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal slack payload")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build slack request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute slack request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "slack post failed")
	}

	return nil
}

// VerifySignature checks the v0 HMAC signature on an inbound Slack request.
func (c *Client) VerifySignature(timestampHeader, signatureHeader string, body []byte) error {
	if c == nil || c.signingSecret == "" {
		return pkgerrors.New(pkgerrors.CodeDependency, "slack signing secret not configured")
	}

	ts, err := strconv.ParseInt(strings.TrimSpace(timestampHeader), 10, 64)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid slack timestamp")
	}
	age := c.now().UTC().Sub(time.Unix(ts, 0).UTC())
	if age > signatureMaxAge || age < -signatureMaxAge {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "slack request timestamp out of range")
	}

	base := fmt.Sprintf("%s:%d:%s", signatureVersion, ts, body)
	mac := hmac.New(sha256.New, []byte(c.signingSecret))
	mac.Write([]byte(base))
	expected := signatureVersion + "=" + hex.EncodeToString(mac.Sum(nil))

	if subtle.ConstantTimeCompare([]byte(expected), []byte(strings.TrimSpace(signatureHeader))) != 1 {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "slack signature mismatch")
	}
	return nil
}
