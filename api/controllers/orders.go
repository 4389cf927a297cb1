package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/venuelinkhq/venuelink-backend/api/responses"
	"github.com/venuelinkhq/venuelink-backend/api/validators"
	internalorders "github.com/venuelinkhq/venuelink-backend/internal/orders"
	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
	pkgerrors "github.com/venuelinkhq/venuelink-backend/pkg/errors"
	"github.com/venuelinkhq/venuelink-backend/pkg/logger"
	"github.com/venuelinkhq/venuelink-backend/pkg/pagination"
)

type createOrderRequest struct {
	PartnerID     string  `json:"partner_id" validate:"required,uuid4"`
	CustomerName  string  `json:"customer_name" validate:"required"`
	CustomerPhone string  `json:"customer_phone"`
	ServiceType   string  `json:"service_type" validate:"required"`
	ServiceAt     string  `json:"service_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Location      string  `json:"location" validate:"required"`
	AmountKRW     int64   `json:"amount_krw" validate:"gte=0"`
	Notes         *string `json:"notes"`
}

type updateOrderRequest struct {
	CustomerName  *string `json:"customer_name"`
	CustomerPhone *string `json:"customer_phone"`
	ServiceType   *string `json:"service_type"`
	ServiceAt     *string `json:"service_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Location      *string `json:"location"`
	AmountKRW     *int64  `json:"amount_krw" validate:"omitempty,gte=0"`
	Notes         *string `json:"notes"`
}

type orderDecisionRequest struct {
	Decision string  `json:"decision" validate:"required,oneof=accept reject"`
	Reason   *string `json:"reason"`
}

type cancelOrderRequest struct {
	Reason *string `json:"reason"`
}

type completeOrderRequest struct {
	CompletedAt    string  `json:"completed_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	FieldIssueMemo *string `json:"field_issue_memo"`
}

type partnerMemoRequest struct {
	Memo *string `json:"memo"`
}

type addAttachmentRequest struct {
	FileName string `json:"file_name" validate:"required"`
	FileURL  string `json:"file_url" validate:"required,url"`
	FileSize int64  `json:"file_size" validate:"gte=0"`
}

// CreateOrder opens a new service request on behalf of staff.
func CreateOrder(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		actorID, _, err := requestActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partnerID, err := uuid.Parse(body.PartnerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid partner id"))
			return
		}
		serviceAt, err := time.Parse(time.RFC3339, body.ServiceAt)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid service_at"))
			return
		}

		order, err := svc.Create(r.Context(), internalorders.CreateOrderInput{
			StaffID:       actorID,
			PartnerID:     partnerID,
			CustomerName:  body.CustomerName,
			CustomerPhone: body.CustomerPhone,
			ServiceType:   body.ServiceType,
			ServiceAt:     serviceAt,
			Location:      body.Location,
			AmountKRW:     body.AmountKRW,
			Notes:         body.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// ListOrders returns the paginated order list scoped to the caller's role.
func ListOrders(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		actorID, role, err := requestActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
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

		var filters internalorders.ListFilters
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status := enums.OrderStatus(raw)
			if !status.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown status"))
				return
			}
			filters.Status = &status
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("partner_id")); raw != "" {
			partnerID, parseErr := uuid.Parse(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid partner_id"))
				return
			}
			filters.PartnerID = &partnerID
		}
		if from, parseErr := validators.ParseQueryTime(r, "service_from"); parseErr != nil {
			responses.WriteError(r.Context(), logg, w, parseErr)
			return
		} else if !from.IsZero() {
			filters.ServiceFrom = &from
		}
		if to, parseErr := validators.ParseQueryTime(r, "service_to"); parseErr != nil {
			responses.WriteError(r.Context(), logg, w, parseErr)
			return
		} else if !to.IsZero() {
			filters.ServiceTo = &to
		}
		filters.Query = strings.TrimSpace(r.URL.Query().Get("q"))

		list, err := svc.List(r.Context(), internalorders.ViewerScope{UserID: actorID, Role: role}, params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// GetOrder returns one order visible to the caller.
func GetOrder(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
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

		order, err := svc.Get(r.Context(), internalorders.ViewerScope{UserID: actorID, Role: role}, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// UpdateOrderDetails edits descriptive fields on a still-open order.
func UpdateOrderDetails(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
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

		var body updateOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := internalorders.UpdateDetailsInput{
			OrderID:       orderID,
			ActorUserID:   actorID,
			ActorRole:     role,
			CustomerName:  body.CustomerName,
			CustomerPhone: body.CustomerPhone,
			ServiceType:   body.ServiceType,
			Location:      body.Location,
			AmountKRW:     body.AmountKRW,
			Notes:         body.Notes,
		}
		if body.ServiceAt != nil {
			serviceAt, parseErr := time.Parse(time.RFC3339, *body.ServiceAt)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid service_at"))
				return
			}
			input.ServiceAt = &serviceAt
		}

		order, err := svc.UpdateDetails(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// DecideOrder records the partner accepting or rejecting a pending request.
func DecideOrder(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
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

		var body orderDecisionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		err = svc.Decide(r.Context(), internalorders.DecisionInput{
			OrderID:     orderID,
			Decision:    internalorders.Decision(body.Decision),
			Reason:      body.Reason,
			ActorUserID: actorID,
			ActorRole:   role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "recorded"})
	}
}

// ConfirmOrder locks in an accepted order on behalf of staff.
func ConfirmOrder(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
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

		err = svc.Confirm(r.Context(), internalorders.ConfirmInput{
			OrderID:     orderID,
			ActorUserID: actorID,
			ActorRole:   role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "confirmed"})
	}
}

// CancelOrder withdraws an order before completion.
func CancelOrder(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
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

		var body cancelOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		err = svc.Cancel(r.Context(), internalorders.CancelInput{
			OrderID:     orderID,
			Reason:      body.Reason,
			ActorUserID: actorID,
			ActorRole:   role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cancelled"})
	}
}

// CompleteOrder marks service delivery by the assigned partner.
func CompleteOrder(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
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

		var body completeOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		completedAt := time.Now().UTC()
		if body.CompletedAt != "" {
			parsed, parseErr := time.Parse(time.RFC3339, body.CompletedAt)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid completed_at"))
				return
			}
			completedAt = parsed
		}

		err = svc.Complete(r.Context(), internalorders.CompleteInput{
			OrderID:        orderID,
			CompletedAt:    completedAt,
			FieldIssueMemo: body.FieldIssueMemo,
			ActorUserID:    actorID,
			ActorRole:      role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "completed"})
	}
}

// SetPartnerMemo stores the partner-private memo on an order.
func SetPartnerMemo(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
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

		var body partnerMemoRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		err = svc.SetPartnerMemo(r.Context(), internalorders.PartnerMemoInput{
			OrderID:     orderID,
			Memo:        body.Memo,
			ActorUserID: actorID,
			ActorRole:   role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "saved"})
	}
}

// AddOrderAttachment records an uploaded file against an order.
func AddOrderAttachment(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
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

		var body addAttachmentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		attachment, err := svc.AddAttachment(r.Context(), internalorders.AddAttachmentInput{
			OrderID:     orderID,
			FileName:    body.FileName,
			FileURL:     body.FileURL,
			FileSize:    body.FileSize,
			ActorUserID: actorID,
			ActorRole:   role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, attachment)
	}
}

// ListOrderAttachments returns the attachments on an order the caller may see.
func ListOrderAttachments(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
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

		attachments, err := svc.ListAttachments(r.Context(), internalorders.ViewerScope{UserID: actorID, Role: role}, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, attachments)
	}
}

// DeleteOrderAttachment removes an attachment uploaded by the caller.
func DeleteOrderAttachment(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		actorID, _, err := requestActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		attachmentID, err := pathUUID(r, "attachmentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		err = svc.DeleteAttachment(r.Context(), internalorders.DeleteAttachmentInput{
			AttachmentID: attachmentID,
			ActorUserID:  actorID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
