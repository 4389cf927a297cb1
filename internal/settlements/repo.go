package settlements

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuelinkhq/venuelink-backend/pkg/db/models"
	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
	"github.com/venuelinkhq/venuelink-backend/pkg/pagination"
)

// ListFilters describe the inputs supported by the settlement list.
type ListFilters struct {
	PartnerID   *uuid.UUID
	PaymentFrom *time.Time
	PaymentTo   *time.Time
}

// SettlementList wraps the paginated ledger plus the next page cursor.
type SettlementList struct {
	Settlements []models.Settlement `json:"settlements"`
	NextCursor  string              `json:"next_cursor,omitempty"`
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a settlements repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, settlement *models.Settlement) (*models.Settlement, error) {
	if err := r.db.WithContext(ctx).Create(settlement).Error; err != nil {
		return nil, err
	}
	return settlement, nil
}

func (r *repository) FindByID(ctx context.Context, settlementID uuid.UUID) (*models.Settlement, error) {
	var settlement models.Settlement
	if err := r.db.WithContext(ctx).First(&settlement, "id = ?", settlementID).Error; err != nil {
		return nil, err
	}
	return &settlement, nil
}

func (r *repository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Settlement, error) {
	var settlement models.Settlement
	if err := r.db.WithContext(ctx).First(&settlement, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &settlement, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params, filters ListFilters) (*SettlementList, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Settlement{})
	if filters.PartnerID != nil {
		query = query.Where("order_id IN (?)", r.db.
			Model(&models.Order{}).
			Select("id").
			Where("partner_id = ?", *filters.PartnerID))
	}
	if filters.PaymentFrom != nil {
		query = query.Where("payment_date >= ?", *filters.PaymentFrom)
	}
	if filters.PaymentTo != nil {
		query = query.Where("payment_date < ?", *filters.PaymentTo)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where("(confirmed_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Settlement
	if err := query.Order("confirmed_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	list := &SettlementList{Settlements: rows}
	if len(rows) > normalized {
		list.Settlements = rows[:normalized]
		last := list.Settlements[normalized-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.ConfirmedAt, ID: last.ID})
	}
	return list, nil
}

func (r *repository) FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) AdvanceOrderStatus(ctx context.Context, orderID uuid.UUID, from, to enums.OrderStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
