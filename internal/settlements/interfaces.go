package settlements

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuelinkhq/venuelink-backend/pkg/db/models"
	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
	"github.com/venuelinkhq/venuelink-backend/pkg/pagination"
)

// Repository defines persistence operations for the settlement ledger. The
// order helpers are scoped to what settling needs; general order access
// lives in the orders repository.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, settlement *models.Settlement) (*models.Settlement, error)
	FindByID(ctx context.Context, settlementID uuid.UUID) (*models.Settlement, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Settlement, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*SettlementList, error)
	FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	AdvanceOrderStatus(ctx context.Context, orderID uuid.UUID, from, to enums.OrderStatus) (bool, error)
}
