package slack

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/venuelinkhq/venuelink-backend/pkg/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestPostMessageSendsChannelAndText(t *testing.T) {
	var capturedURL string
	var payload map[string]any

	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		bodyBytes, err := io.ReadAll(req.Body)
		if err != nil {
			t.Fatalf("read request body: %v", err)
		}
		if err := json.Unmarshal(bodyBytes, &payload); err != nil {
			t.Fatalf("unmarshal request body: %v", err)
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("ok")),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(config.SlackConfig{
		WebhookURL: "http://slack.test/hook",
		Channel:    "#orders",
	}, WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if err := client.PostMessage(context.Background(), "[ORD260831042] confirmed"); err != nil {
		t.Fatalf("post message: %v", err)
	}
	if capturedURL != "http://slack.test/hook" {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if payload["channel"] != "#orders" {
		t.Fatalf("unexpected channel %v", payload["channel"])
	}
	if payload["text"] != "[ORD260831042] confirmed" {
		t.Fatalf("unexpected text %v", payload["text"])
	}
}

func TestPostMessageRejectsNon200(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusInternalServerError,
			Body:       io.NopCloser(strings.NewReader("channel_not_found")),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(config.SlackConfig{WebhookURL: "http://slack.test/hook"},
		WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if err := client.PostMessage(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestVerifySignature(t *testing.T) {
	secret := "shhh"
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	body := []byte(`{"event":{"text":"#ORD260831042 done"}}`)
	ts := now.Unix()

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "v0:%d:%s", ts, body)
	signature := "v0=" + hex.EncodeToString(mac.Sum(nil))

	client, err := NewClient(config.SlackConfig{
		WebhookURL:    "http://slack.test/hook",
		SigningSecret: secret,
	}, WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if err := client.VerifySignature(fmt.Sprint(ts), signature, body); err != nil {
		t.Fatalf("expected valid signature, got %v", err)
	}

	if err := client.VerifySignature(fmt.Sprint(ts), "v0=deadbeef", body); err == nil {
		t.Fatal("expected mismatch error")
	}

	stale := fmt.Sprint(now.Add(-10 * time.Minute).Unix())
	if err := client.VerifySignature(stale, signature, body); err == nil {
		t.Fatal("expected stale timestamp error")
	}
}
