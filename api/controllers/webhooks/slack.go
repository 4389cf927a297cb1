package webhooks

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/venuelinkhq/venuelink-backend/api/responses"
	"github.com/venuelinkhq/venuelink-backend/pkg/db/models"
	pkgerrors "github.com/venuelinkhq/venuelink-backend/pkg/errors"
	"github.com/venuelinkhq/venuelink-backend/pkg/logger"
)

type slackVerifier interface {
	VerifySignature(timestampHeader, signatureHeader string, body []byte) error
}

type slackInbound interface {
	HandleMessage(ctx context.Context, senderName, text string) (*models.OrderMessage, error)
}

type slackEventEnvelope struct {
	Type      string          `json:"type"`
	Challenge string          `json:"challenge"`
	Event     slackInnerEvent `json:"event"`
}

type slackInnerEvent struct {
	Type     string `json:"type"`
	Subtype  string `json:"subtype"`
	UserName string `json:"username"`
	User     string `json:"user"`
	BotID    string `json:"bot_id"`
	Text     string `json:"text"`
}

// SlackWebhook receives Slack Events API callbacks and routes channel
// messages carrying an order code into the order's message thread.
func SlackWebhook(verifier slackVerifier, inbound slackInbound, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if verifier == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "slack client unavailable"))
			return
		}
		if inbound == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "slack inbound handler unavailable"))
			return
		}

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request body"))
			return
		}

		timestamp := r.Header.Get("X-Slack-Request-Timestamp")
		signature := r.Header.Get("X-Slack-Signature")
		if err := verifier.VerifySignature(timestamp, signature, payload); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid slack signature"))
			return
		}

		var envelope slackEventEnvelope
		if err := json.Unmarshal(payload, &envelope); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode event"))
			return
		}

		switch envelope.Type {
		case "url_verification":
			responses.WriteSuccess(w, map[string]string{"challenge": envelope.Challenge})
			return
		case "event_callback":
		default:
			responses.WriteSuccess(w, nil)
			return
		}

		event := envelope.Event
		// Bot posts and message edits are ignored so the bridge never loops
		// on its own output.
		if event.Type != "message" || event.Subtype != "" || event.BotID != "" {
			responses.WriteSuccess(w, nil)
			return
		}

		senderName := strings.TrimSpace(event.UserName)
		if senderName == "" {
			senderName = strings.TrimSpace(event.User)
		}

		if _, err := inbound.HandleMessage(ctx, senderName, event.Text); err != nil {
			if pkgErr := pkgerrors.As(err); pkgErr != nil && pkgErr.Code() == pkgerrors.CodeNotFound {
				// Unknown order codes are not Slack's fault; acknowledge so
				// Slack does not retry the delivery.
				if logg != nil {
					logg.Info(ctx, "slack.webhook.unknown_order")
				}
				responses.WriteSuccess(w, nil)
				return
			}
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil)
	}
}
