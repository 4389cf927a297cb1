package settlements

import (
	"context"
	"errors"
	"fmt"
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

// ConfirmInput is a staff request to cut the settlement for a completed order.
type ConfirmInput struct {
	OrderID     uuid.UUID
	PaymentDate time.Time
	StaffID     uuid.UUID
}

// Service defines the settlement ledger operations.
type Service interface {
	Confirm(ctx context.Context, input ConfirmInput) (*models.Settlement, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Settlement, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*SettlementList, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outboxPublisher
}

// NewService builds the settlements service with the required dependencies.
func NewService(repo Repository, tx txRunner, outboxSvc outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settlements repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outboxSvc == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{repo: repo, tx: tx, outbox: outboxSvc}, nil
}

// Confirm inserts the settlement and advances the order to settled as one
// transaction. The unique index on settlements.order_id closes the race
// between concurrent confirmations of the same order.
func (s *service) Confirm(ctx context.Context, input ConfirmInput) (*models.Settlement, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.StaffID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.PaymentDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment date required")
	}

	var created *models.Settlement
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOrder(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return err
		}

		if _, err := repo.FindByOrderID(ctx, order.ID); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "order already settled")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if order.Status != enums.OrderStatusCompleted {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order is not eligible for settlement").
				WithDetails(map[string]any{
					"current":  order.Status,
					"required": enums.OrderStatusCompleted,
				})
		}

		created, err = repo.Create(ctx, &models.Settlement{
			OrderID:     order.ID,
			AmountKRW:   order.AmountKRW,
			PaymentDate: input.PaymentDate,
			StaffID:     input.StaffID,
		})
		if err != nil {
			if dbpkg.IsUniqueViolation(err, "ux_settlements_order_id") {
				return pkgerrors.New(pkgerrors.CodeConflict, "order already settled")
			}
			return err
		}

		advanced, err := repo.AdvanceOrderStatus(ctx, order.ID, enums.OrderStatusCompleted, enums.OrderStatusSettled)
		if err != nil {
			return err
		}
		if !advanced {
			return pkgerrors.New(pkgerrors.CodeConflict, "order was modified concurrently")
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventSettlementConfirmed,
			AggregateType: enums.AggregateSettlement,
			AggregateID:   created.ID,
			Version:       1,
			Actor:         &outbox.ActorRef{UserID: input.StaffID, Role: string(enums.UserRoleStaff)},
			Data: payloads.SettlementConfirmedEvent{
				SettlementID: created.ID,
				OrderID:      order.ID,
				OrderNumber:  order.OrderNumber,
				PartnerID:    order.PartnerID,
				AmountKRW:    created.AmountKRW,
				PaymentDate:  created.PaymentDate,
				StaffID:      input.StaffID,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Settlement, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	settlement, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "settlement not found")
		}
		return nil, err
	}
	return settlement, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*SettlementList, error) {
	return s.repo.List(ctx, params, filters)
}
