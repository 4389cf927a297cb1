package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/venuelinkhq/venuelink-backend/api/responses"
	"github.com/venuelinkhq/venuelink-backend/api/validators"
	internalsettlements "github.com/venuelinkhq/venuelink-backend/internal/settlements"
	pkgerrors "github.com/venuelinkhq/venuelink-backend/pkg/errors"
	"github.com/venuelinkhq/venuelink-backend/pkg/logger"
	"github.com/venuelinkhq/venuelink-backend/pkg/pagination"
)

type confirmSettlementRequest struct {
	PaymentDate string `json:"payment_date" validate:"required,datetime=2006-01-02"`
}

// ConfirmSettlement records the payout for a completed order.
func ConfirmSettlement(svc internalsettlements.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settlements service unavailable"))
			return
		}

		actorID, _, err := requestActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := pathUUID(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body confirmSettlementRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		paymentDate, err := time.Parse("2006-01-02", body.PaymentDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment_date"))
			return
		}

		settlement, err := svc.Confirm(r.Context(), internalsettlements.ConfirmInput{
			OrderID:     orderID,
			PaymentDate: paymentDate,
			StaffID:     actorID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, settlement)
	}
}

// GetOrderSettlement returns the settlement recorded for an order.
func GetOrderSettlement(svc internalsettlements.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settlements service unavailable"))
			return
		}

		orderID, err := pathUUID(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		settlement, err := svc.GetByOrderID(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, settlement)
	}
}

// ListSettlements returns the paginated settlement ledger.
func ListSettlements(svc internalsettlements.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settlements service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		var filters internalsettlements.ListFilters
		if raw := strings.TrimSpace(r.URL.Query().Get("partner_id")); raw != "" {
			partnerID, parseErr := uuid.Parse(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid partner_id"))
				return
			}
			filters.PartnerID = &partnerID
		}
		if from, parseErr := validators.ParseQueryTime(r, "payment_from"); parseErr != nil {
			responses.WriteError(r.Context(), logg, w, parseErr)
			return
		} else if !from.IsZero() {
			filters.PaymentFrom = &from
		}
		if to, parseErr := validators.ParseQueryTime(r, "payment_to"); parseErr != nil {
			responses.WriteError(r.Context(), logg, w, parseErr)
			return
		} else if !to.IsZero() {
			filters.PaymentTo = &to
		}

		list, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
