package controllers

import (
	"net/http"
	"strings"

	"github.com/venuelinkhq/venuelink-backend/api/middleware"
	"github.com/venuelinkhq/venuelink-backend/api/responses"
	"github.com/venuelinkhq/venuelink-backend/api/validators"
	internalmessages "github.com/venuelinkhq/venuelink-backend/internal/messages"
	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
	pkgerrors "github.com/venuelinkhq/venuelink-backend/pkg/errors"
	"github.com/venuelinkhq/venuelink-backend/pkg/logger"
	"github.com/venuelinkhq/venuelink-backend/pkg/pagination"
)

type postMessageRequest struct {
	Body string `json:"body" validate:"required"`
}

// PostOrderMessage appends a message to the order thread.
func PostOrderMessage(svc internalmessages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "messages service unavailable"))
			return
		}

		actorID, role, err := requestActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := pathUUID(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body postMessageRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		message, err := svc.Post(r.Context(), internalmessages.PostInput{
			OrderID:    orderID,
			SenderID:   actorID,
			SenderRole: role,
			SenderName: middleware.UserNameFromContext(r.Context()),
			Body:       body.Body,
			Source:     enums.MessageSourceApp,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, message)
	}
}

// ListOrderMessages returns the order thread visible to the caller.
func ListOrderMessages(svc internalmessages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "messages service unavailable"))
			return
		}

		actorID, role, err := requestActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := pathUUID(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), internalmessages.ListInput{
			OrderID: orderID,
			UserID:  actorID,
			Role:    role,
			Params: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
