package messages

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

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

// PostInput carries a new chat message for an order thread.
type PostInput struct {
	OrderID    uuid.UUID
	SenderID   uuid.UUID
	SenderRole enums.UserRole
	SenderName string
	Body       string
	Source     enums.MessageSource
}

// ListInput scopes a thread read to the requesting user.
type ListInput struct {
	OrderID uuid.UUID
	UserID  uuid.UUID
	Role    enums.UserRole
	Params  pagination.Params
}

// ListResult wraps a page of messages and the cursor for the next one.
type ListResult struct {
	Messages []models.OrderMessage `json:"messages"`
	Cursor   string                `json:"cursor"`
}

// Service defines the order message thread operations.
type Service interface {
	Post(ctx context.Context, input PostInput) (*models.OrderMessage, error)
	PostByOrderNumber(ctx context.Context, orderNumber string, input PostInput) (*models.OrderMessage, error)
	List(ctx context.Context, input ListInput) (*ListResult, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outboxPublisher
}

// NewService builds the message service with the required dependencies.
func NewService(repo Repository, tx txRunner, outboxSvc outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("messages repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outboxSvc == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{repo: repo, tx: tx, outbox: outboxSvc}, nil
}

func (s *service) Post(ctx context.Context, input PostInput) (*models.OrderMessage, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindOrder(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, err
	}
	return s.post(ctx, order, input)
}

// PostByOrderNumber resolves the thread through the human-readable order code.
// The Slack bridge uses this path for inbound replies.
func (s *service) PostByOrderNumber(ctx context.Context, orderNumber string, input PostInput) (*models.OrderMessage, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number required")
	}
	order, err := s.repo.FindOrderByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, err
	}
	return s.post(ctx, order, input)
}

func (s *service) post(ctx context.Context, order *models.Order, input PostInput) (*models.OrderMessage, error) {
	if input.SenderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if strings.TrimSpace(input.Body) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message body required")
	}
	if input.SenderRole == enums.UserRolePartner && order.PartnerID != input.SenderID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another partner")
	}
	source := input.Source
	if source == "" {
		source = enums.MessageSourceApp
	}
	if !source.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown message source")
	}

	var created *models.OrderMessage
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		var err error
		created, err = repo.Create(ctx, &models.OrderMessage{
			OrderID:    order.ID,
			SenderID:   input.SenderID,
			SenderRole: input.SenderRole,
			Body:       input.Body,
			Source:     source,
		})
		if err != nil {
			return err
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderMessagePosted,
			AggregateType: enums.AggregateMessage,
			AggregateID:   created.ID,
			Version:       1,
			Actor:         &outbox.ActorRef{UserID: input.SenderID, Role: string(input.SenderRole)},
			Data: payloads.OrderMessagePostedEvent{
				MessageID:   created.ID,
				OrderID:     order.ID,
				OrderNumber: order.OrderNumber,
				SenderID:    input.SenderID,
				SenderRole:  input.SenderRole,
				SenderName:  input.SenderName,
				Body:        created.Body,
				Source:      created.Source,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	order, err := s.repo.FindOrder(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, err
	}
	if input.Role == enums.UserRolePartner && order.PartnerID != input.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another partner")
	}

	rows, next, err := s.repo.ListByOrder(ctx, order.ID, input.Params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list order messages")
	}
	result := &ListResult{Messages: rows}
	if next != nil {
		result.Cursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}
