package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbpkg "github.com/venuelinkhq/venuelink-backend/pkg/db"
	"github.com/venuelinkhq/venuelink-backend/pkg/db/models"
	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
	pkgerrors "github.com/venuelinkhq/venuelink-backend/pkg/errors"
	"github.com/venuelinkhq/venuelink-backend/pkg/outbox"
	"github.com/venuelinkhq/venuelink-backend/pkg/outbox/payloads"
	"github.com/venuelinkhq/venuelink-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// userFinder resolves the assigned partner when staff opens an order.
type userFinder interface {
	FindByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// Service defines the order lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	Decide(ctx context.Context, input DecisionInput) error
	Confirm(ctx context.Context, input ConfirmInput) error
	Cancel(ctx context.Context, input CancelInput) error
	Complete(ctx context.Context, input CompleteInput) error
	UpdateDetails(ctx context.Context, input UpdateDetailsInput) (*models.Order, error)
	SetPartnerMemo(ctx context.Context, input PartnerMemoInput) error
	Get(ctx context.Context, scope ViewerScope, orderID uuid.UUID) (*models.Order, error)
	GetByNumber(ctx context.Context, scope ViewerScope, orderNumber string) (*models.Order, error)
	List(ctx context.Context, scope ViewerScope, params pagination.Params, filters ListFilters) (*OrderList, error)
	AddAttachment(ctx context.Context, input AddAttachmentInput) (*models.OrderAttachment, error)
	DeleteAttachment(ctx context.Context, input DeleteAttachmentInput) error
	ListAttachments(ctx context.Context, scope ViewerScope, orderID uuid.UUID) ([]models.OrderAttachment, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outboxPublisher
	users  userFinder
}

// NewService builds the order lifecycle service with the required dependencies.
func NewService(repo Repository, tx txRunner, outboxSvc outboxPublisher, users userFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outboxSvc == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if users == nil {
		return nil, fmt.Errorf("user finder required")
	}
	if err := validateTransitionTable(); err != nil {
		return nil, fmt.Errorf("order transition table: %w", err)
	}
	return &service{repo: repo, tx: tx, outbox: outboxSvc, users: users}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.StaffID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.PartnerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "partner id required")
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}
	if strings.TrimSpace(input.ServiceType) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service type required")
	}
	if input.ServiceAt.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service date required")
	}
	if input.AmountKRW < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must not be negative")
	}

	partner, err := s.users.FindByID(ctx, input.PartnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "assigned partner not found")
		}
		return nil, err
	}
	if partner.Role != enums.UserRolePartner {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "assigned user is not a partner")
	}

	created, err := s.createWithNumber(ctx, input, newOrderNumber(time.Now()))
	if dbpkg.IsUniqueViolation(err, "ux_orders_order_number") {
		// Postgres aborts the whole transaction after a unique violation,
		// so the retry needs a fresh one.
		created, err = s.createWithNumber(ctx, input, newOrderNumber(time.Now()))
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

// createWithNumber inserts the order and its outbox event in one transaction.
func (s *service) createWithNumber(ctx context.Context, input CreateOrderInput, orderNumber string) (*models.Order, error) {
	var created *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order := &models.Order{
			OrderNumber:   orderNumber,
			StaffID:       input.StaffID,
			PartnerID:     input.PartnerID,
			CustomerName:  input.CustomerName,
			CustomerPhone: input.CustomerPhone,
			ServiceType:   input.ServiceType,
			ServiceAt:     input.ServiceAt,
			Location:      input.Location,
			AmountKRW:     input.AmountKRW,
			Notes:         input.Notes,
			Status:        enums.OrderStatusRequested,
		}
		var err error
		created, err = repo.Create(ctx, order)
		if err != nil {
			return err
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   created.ID,
			Version:       1,
			Actor:         buildActor(input.StaffID, enums.UserRoleStaff),
			Data: payloads.OrderCreatedEvent{
				OrderID:     created.ID,
				OrderNumber: created.OrderNumber,
				StaffID:     created.StaffID,
				PartnerID:   created.PartnerID,
				ServiceType: created.ServiceType,
				ServiceAt:   created.ServiceAt,
				Location:    created.Location,
				AmountKRW:   created.AmountKRW,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) Decide(ctx context.Context, input DecisionInput) error {
	if input.OrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ActorUserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	action, err := mapDecisionToAction(input.Decision)
	if err != nil {
		return err
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := s.loadForTransition(ctx, repo, input.OrderID, action, input.ActorUserID, input.ActorRole)
		if err != nil {
			return err
		}
		rule, _ := transitionFor(action)

		if err := s.applyStatus(ctx, repo, order, rule, action, nil); err != nil {
			return err
		}

		eventType := enums.EventOrderAccepted
		if action == enums.OrderActionReject {
			eventType = enums.EventOrderRejected
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     eventType,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         buildActor(input.ActorUserID, input.ActorRole),
			Data: payloads.OrderDecisionEvent{
				OrderID:     order.ID,
				OrderNumber: order.OrderNumber,
				StaffID:     order.StaffID,
				PartnerID:   order.PartnerID,
				Status:      rule.to,
				ServiceAt:   order.ServiceAt,
				Location:    order.Location,
				Reason:      derefString(input.Reason),
			},
		})
	})
}

func (s *service) Confirm(ctx context.Context, input ConfirmInput) error {
	if input.OrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ActorUserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := s.loadForTransition(ctx, repo, input.OrderID, enums.OrderActionConfirm, input.ActorUserID, input.ActorRole)
		if err != nil {
			return err
		}
		rule, _ := transitionFor(enums.OrderActionConfirm)

		if err := s.applyStatus(ctx, repo, order, rule, enums.OrderActionConfirm, nil); err != nil {
			return err
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderConfirmed,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         buildActor(input.ActorUserID, input.ActorRole),
			Data: payloads.OrderConfirmedEvent{
				OrderID:      order.ID,
				OrderNumber:  order.OrderNumber,
				StaffID:      order.StaffID,
				PartnerID:    order.PartnerID,
				CustomerName: order.CustomerName,
				ServiceAt:    order.ServiceAt,
				AmountKRW:    order.AmountKRW,
			},
		})
	})
}

func (s *service) Cancel(ctx context.Context, input CancelInput) error {
	if input.OrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ActorUserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := s.loadForTransition(ctx, repo, input.OrderID, enums.OrderActionCancel, input.ActorUserID, input.ActorRole)
		if err != nil {
			return err
		}
		rule, _ := transitionFor(enums.OrderActionCancel)
		fromStatus := order.Status

		if err := s.applyStatus(ctx, repo, order, rule, enums.OrderActionCancel, nil); err != nil {
			return err
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderCancelled,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         buildActor(input.ActorUserID, input.ActorRole),
			Data: payloads.OrderCancelledEvent{
				OrderID:     order.ID,
				OrderNumber: order.OrderNumber,
				StaffID:     order.StaffID,
				PartnerID:   order.PartnerID,
				FromStatus:  fromStatus,
				CancelledAt: time.Now(),
				Reason:      derefString(input.Reason),
			},
		})
	})
}

func (s *service) Complete(ctx context.Context, input CompleteInput) error {
	if input.OrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ActorUserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.CompletedAt.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "completion timestamp required")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := s.loadForTransition(ctx, repo, input.OrderID, enums.OrderActionComplete, input.ActorUserID, input.ActorRole)
		if err != nil {
			return err
		}
		rule, _ := transitionFor(enums.OrderActionComplete)

		attachments, err := repo.CountAttachments(ctx, order.ID)
		if err != nil {
			return err
		}
		if attachments == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "completion requires at least one attachment")
		}

		extra := map[string]any{"completed_at": input.CompletedAt}
		if input.FieldIssueMemo != nil {
			extra["notes"] = *input.FieldIssueMemo
		}
		if err := s.applyStatus(ctx, repo, order, rule, enums.OrderActionComplete, extra); err != nil {
			return err
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderCompleted,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         buildActor(input.ActorUserID, input.ActorRole),
			Data: payloads.OrderCompletedEvent{
				OrderID:     order.ID,
				OrderNumber: order.OrderNumber,
				StaffID:     order.StaffID,
				PartnerID:   order.PartnerID,
				AmountKRW:   order.AmountKRW,
				CompletedAt: input.CompletedAt,
			},
		})
	})
}

func (s *service) UpdateDetails(ctx context.Context, input UpdateDetailsInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.ActorRole != enums.UserRoleStaff {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "staff role required")
	}

	updates := map[string]any{}
	var changed []string
	if input.CustomerName != nil {
		updates["customer_name"] = *input.CustomerName
		changed = append(changed, "customer_name")
	}
	if input.CustomerPhone != nil {
		updates["customer_phone"] = *input.CustomerPhone
		changed = append(changed, "customer_phone")
	}
	if input.ServiceType != nil {
		updates["service_type"] = *input.ServiceType
		changed = append(changed, "service_type")
	}
	if input.ServiceAt != nil {
		updates["service_at"] = *input.ServiceAt
		changed = append(changed, "service_at")
	}
	if input.Location != nil {
		updates["location"] = *input.Location
		changed = append(changed, "location")
	}
	if input.AmountKRW != nil {
		if *input.AmountKRW < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must not be negative")
		}
		updates["amount_krw"] = *input.AmountKRW
		changed = append(changed, "amount_krw")
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
		changed = append(changed, "notes")
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByID(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return err
		}
		if isTerminal(order.Status) || order.Status == enums.OrderStatusCompleted {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order is no longer editable").
				WithDetails(map[string]any{"current": order.Status})
		}

		if err := repo.UpdateFields(ctx, order.ID, updates); err != nil {
			return err
		}
		updated, err = repo.FindByID(ctx, order.ID)
		if err != nil {
			return err
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderDetailsUpdated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         buildActor(input.ActorUserID, input.ActorRole),
			Data: payloads.OrderDetailsUpdatedEvent{
				OrderID:       order.ID,
				OrderNumber:   order.OrderNumber,
				StaffID:       order.StaffID,
				PartnerID:     order.PartnerID,
				ChangedFields: changed,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) SetPartnerMemo(ctx context.Context, input PartnerMemoInput) error {
	if input.OrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ActorUserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.ActorRole != enums.UserRolePartner {
		return pkgerrors.New(pkgerrors.CodeForbidden, "partner role required")
	}

	order, err := s.repo.FindByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return err
	}
	if order.PartnerID != input.ActorUserID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another partner")
	}
	return s.repo.UpdateFields(ctx, order.ID, map[string]any{"partner_memo": input.Memo})
}

func (s *service) Get(ctx context.Context, scope ViewerScope, orderID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, err
	}
	if err := checkViewScope(scope, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) GetByNumber(ctx context.Context, scope ViewerScope, orderNumber string) (*models.Order, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number required")
	}
	order, err := s.repo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, err
	}
	if err := checkViewScope(scope, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) List(ctx context.Context, scope ViewerScope, params pagination.Params, filters ListFilters) (*OrderList, error) {
	if scope.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	return s.repo.List(ctx, params, scope, filters)
}

func (s *service) AddAttachment(ctx context.Context, input AddAttachmentInput) (*models.OrderAttachment, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if strings.TrimSpace(input.FileName) == "" || strings.TrimSpace(input.FileURL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file name and url required")
	}

	var created *models.OrderAttachment
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByID(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return err
		}
		if input.ActorRole == enums.UserRolePartner && order.PartnerID != input.ActorUserID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another partner")
		}
		if isTerminal(order.Status) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order lifecycle has ended").
				WithDetails(map[string]any{"current": order.Status})
		}

		created, err = repo.CreateAttachment(ctx, &models.OrderAttachment{
			OrderID:    order.ID,
			UploaderID: input.ActorUserID,
			FileName:   input.FileName,
			FileURL:    input.FileURL,
			FileSize:   input.FileSize,
		})
		if err != nil {
			return err
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventAttachmentUploaded,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         buildActor(input.ActorUserID, input.ActorRole),
			Data: payloads.AttachmentUploadedEvent{
				AttachmentID: created.ID,
				OrderID:      order.ID,
				OrderNumber:  order.OrderNumber,
				UploaderID:   input.ActorUserID,
				FileName:     created.FileName,
				FileSize:     created.FileSize,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) DeleteAttachment(ctx context.Context, input DeleteAttachmentInput) error {
	if input.AttachmentID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "attachment id required")
	}
	if input.ActorUserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	attachment, err := s.repo.FindAttachment(ctx, input.AttachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "attachment not found")
		}
		return err
	}
	if attachment.UploaderID != input.ActorUserID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the uploader may delete an attachment")
	}
	return s.repo.DeleteAttachment(ctx, attachment.ID)
}

func (s *service) ListAttachments(ctx context.Context, scope ViewerScope, orderID uuid.UUID) ([]models.OrderAttachment, error) {
	order, err := s.Get(ctx, scope, orderID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListAttachments(ctx, order.ID)
}

// loadForTransition fetches the order and enforces the role, ownership, and
// current-status preconditions for the requested action.
func (s *service) loadForTransition(ctx context.Context, repo Repository, orderID uuid.UUID, action enums.OrderAction, actorID uuid.UUID, actorRole enums.UserRole) (*models.Order, error) {
	rule, ok := transitionFor(action)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order action")
	}
	if actorRole != rule.role {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, fmt.Sprintf("%s requires %s role", action, rule.role))
	}

	order, err := repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, err
	}
	if rule.role == enums.UserRolePartner && order.PartnerID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another partner")
	}
	if !rule.allowsFrom(order.Status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cannot %s order in status %s", action, order.Status)).
			WithDetails(map[string]any{
				"action":   action,
				"current":  order.Status,
				"required": rule.from,
			})
	}
	return order, nil
}

// applyStatus performs the conditional status write and maps a lost race to
// a retryable conflict.
func (s *service) applyStatus(ctx context.Context, repo Repository, order *models.Order, rule transition, action enums.OrderAction, extra map[string]any) error {
	updated, err := repo.UpdateStatus(ctx, order.ID, order.Status, rule.to, extra)
	if err != nil {
		return err
	}
	if !updated {
		return pkgerrors.New(pkgerrors.CodeConflict, "order was modified concurrently").
			WithDetails(map[string]any{"action": action, "read_status": order.Status})
	}
	order.Status = rule.to
	return nil
}

func mapDecisionToAction(decision Decision) (enums.OrderAction, error) {
	switch decision {
	case DecisionAccept:
		return enums.OrderActionAccept, nil
	case DecisionReject:
		return enums.OrderActionReject, nil
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "decision must be accept or reject")
	}
}

func checkViewScope(scope ViewerScope, order *models.Order) error {
	if scope.Role == enums.UserRolePartner && order.PartnerID != scope.UserID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another partner")
	}
	return nil
}

func isTerminal(status enums.OrderStatus) bool {
	return status == enums.OrderStatusSettled || status == enums.OrderStatusCancelled
}

func buildActor(userID uuid.UUID, role enums.UserRole) *outbox.ActorRef {
	if userID == uuid.Nil {
		return nil
	}
	return &outbox.ActorRef{UserID: userID, Role: string(role)}
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
