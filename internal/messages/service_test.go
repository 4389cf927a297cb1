package messages

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuelinkhq/venuelink-backend/pkg/db/models"
	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
	pkgerrors "github.com/venuelinkhq/venuelink-backend/pkg/errors"
	"github.com/venuelinkhq/venuelink-backend/pkg/outbox"
	"github.com/venuelinkhq/venuelink-backend/pkg/outbox/payloads"
	"github.com/venuelinkhq/venuelink-backend/pkg/pagination"
)

type stubMessagesRepo struct {
	order    *models.Order
	messages []models.OrderMessage
	created  []*models.OrderMessage
}

func (s *stubMessagesRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubMessagesRepo) Create(ctx context.Context, message *models.OrderMessage) (*models.OrderMessage, error) {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	s.created = append(s.created, message)
	return message, nil
}

func (s *stubMessagesRepo) ListByOrder(ctx context.Context, orderID uuid.UUID, params pagination.Params) ([]models.OrderMessage, *pagination.Cursor, error) {
	return s.messages, nil, nil
}

func (s *stubMessagesRepo) FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if s.order == nil || s.order.ID != orderID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.order, nil
}

func (s *stubMessagesRepo) FindOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	if s.order == nil || s.order.OrderNumber != orderNumber {
		return nil, gorm.ErrRecordNotFound
	}
	return s.order, nil
}

type stubOutboxPublisher struct {
	events []outbox.DomainEvent
}

func (s *stubOutboxPublisher) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	s.events = append(s.events, event)
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *pkgerrors.Error, got %v", err)
	}
	if appErr.Code() != code {
		t.Fatalf("expected code %s, got %s (%v)", code, appErr.Code(), err)
	}
}

func testThreadOrder() *models.Order {
	return &models.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD260831042",
		StaffID:     uuid.New(),
		PartnerID:   uuid.New(),
		Status:      enums.OrderStatusConfirmed,
	}
}

func newTestService(t *testing.T, repo *stubMessagesRepo, publisher *stubOutboxPublisher) Service {
	t.Helper()
	svc, err := NewService(repo, stubTxRunner{}, publisher)
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}
	return svc
}

func TestPostEmitsMessageEvent(t *testing.T) {
	order := testThreadOrder()
	repo := &stubMessagesRepo{order: order}
	publisher := &stubOutboxPublisher{}
	svc := newTestService(t, repo, publisher)

	message, err := svc.Post(context.Background(), PostInput{
		OrderID:    order.ID,
		SenderID:   order.StaffID,
		SenderRole: enums.UserRoleStaff,
		SenderName: "Lee Jiwoo",
		Body:       "please double-check the parking allotment",
	})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if message.Source != enums.MessageSourceApp {
		t.Fatalf("source must default to app, got %q", message.Source)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("expected one event, got %d", len(publisher.events))
	}
	event := publisher.events[0]
	if event.EventType != enums.EventOrderMessagePosted {
		t.Fatalf("unexpected event type %q", event.EventType)
	}
	if event.AggregateType != enums.AggregateMessage {
		t.Fatalf("unexpected aggregate type %q", event.AggregateType)
	}
	payload, ok := event.Data.(payloads.OrderMessagePostedEvent)
	if !ok {
		t.Fatalf("unexpected payload type %T", event.Data)
	}
	if payload.OrderNumber != order.OrderNumber || payload.SenderName != "Lee Jiwoo" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestPostRejectsForeignPartner(t *testing.T) {
	order := testThreadOrder()
	repo := &stubMessagesRepo{order: order}
	svc := newTestService(t, repo, &stubOutboxPublisher{})

	_, err := svc.Post(context.Background(), PostInput{
		OrderID:    order.ID,
		SenderID:   uuid.New(),
		SenderRole: enums.UserRolePartner,
		Body:       "hello",
	})
	requireCode(t, err, pkgerrors.CodeForbidden)
}

func TestPostRequiresBody(t *testing.T) {
	order := testThreadOrder()
	repo := &stubMessagesRepo{order: order}
	svc := newTestService(t, repo, &stubOutboxPublisher{})

	_, err := svc.Post(context.Background(), PostInput{
		OrderID:    order.ID,
		SenderID:   order.StaffID,
		SenderRole: enums.UserRoleStaff,
		Body:       "   ",
	})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestPostByOrderNumberResolvesThread(t *testing.T) {
	order := testThreadOrder()
	repo := &stubMessagesRepo{order: order}
	publisher := &stubOutboxPublisher{}
	svc := newTestService(t, repo, publisher)

	message, err := svc.PostByOrderNumber(context.Background(), order.OrderNumber, PostInput{
		SenderID:   order.StaffID,
		SenderRole: enums.UserRoleStaff,
		SenderName: "Lee Jiwoo",
		Body:       "from slack",
		Source:     enums.MessageSourceSlack,
	})
	if err != nil {
		t.Fatalf("post by number: %v", err)
	}
	if message.OrderID != order.ID {
		t.Fatal("message must attach to the resolved order")
	}
	if message.Source != enums.MessageSourceSlack {
		t.Fatalf("unexpected source %q", message.Source)
	}
}

func TestPostByOrderNumberUnknownOrder(t *testing.T) {
	repo := &stubMessagesRepo{}
	svc := newTestService(t, repo, &stubOutboxPublisher{})

	_, err := svc.PostByOrderNumber(context.Background(), "ORD000000000", PostInput{
		SenderID:   uuid.New(),
		SenderRole: enums.UserRoleStaff,
		Body:       "hello",
	})
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestListScopesPartnerToOwnOrder(t *testing.T) {
	order := testThreadOrder()
	repo := &stubMessagesRepo{order: order, messages: []models.OrderMessage{{OrderID: order.ID}}}
	svc := newTestService(t, repo, &stubOutboxPublisher{})

	result, err := svc.List(context.Background(), ListInput{
		OrderID: order.ID,
		UserID:  order.PartnerID,
		Role:    enums.UserRolePartner,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Messages) != 1 {
		t.Fatalf("expected one message, got %d", len(result.Messages))
	}

	_, err = svc.List(context.Background(), ListInput{
		OrderID: order.ID,
		UserID:  uuid.New(),
		Role:    enums.UserRolePartner,
	})
	requireCode(t, err, pkgerrors.CodeForbidden)
}
