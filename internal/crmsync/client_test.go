package crmsync

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/venuelinkhq/venuelink-backend/pkg/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestSyncOrderPostsActionAndBearer(t *testing.T) {
	orderID := uuid.New()
	var capturedURL, capturedAuth string
	var payload map[string]any

	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		capturedAuth = req.Header.Get("Authorization")
		bodyBytes, err := io.ReadAll(req.Body)
		if err != nil {
			t.Fatalf("read request body: %v", err)
		}
		if err := json.Unmarshal(bodyBytes, &payload); err != nil {
			t.Fatalf("unmarshal request body: %v", err)
		}
		return &http.Response{
			StatusCode: http.StatusAccepted,
			Body:       io.NopCloser(strings.NewReader("{}")),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(config.CRMConfig{
		BaseURL:     "http://crm.test/api/",
		AccessToken: "crm-token",
	}, WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = client.SyncOrder(context.Background(), orderID, ActionStatusChanged, "ORD260831042", "confirmed")
	if err != nil {
		t.Fatalf("sync order: %v", err)
	}
	if capturedURL != "http://crm.test/api/orders/"+orderID.String()+"/sync" {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if capturedAuth != "Bearer crm-token" {
		t.Fatalf("unexpected auth header %q", capturedAuth)
	}
	if payload["action"] != "status_changed" {
		t.Fatalf("unexpected action %v", payload["action"])
	}
	if payload["order_number"] != "ORD260831042" {
		t.Fatalf("unexpected order number %v", payload["order_number"])
	}
	if payload["status"] != "confirmed" {
		t.Fatalf("unexpected status %v", payload["status"])
	}
}

func TestSyncOrderRejectsErrorStatus(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusBadGateway,
			Body:       io.NopCloser(strings.NewReader("upstream down")),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(config.CRMConfig{BaseURL: "http://crm.test"},
		WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = client.SyncOrder(context.Background(), uuid.New(), ActionCreated, "ORD260831042", "")
	if err == nil {
		t.Fatal("expected error for 5xx response")
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(config.CRMConfig{}); err == nil {
		t.Fatal("expected error for missing base url")
	}
}
