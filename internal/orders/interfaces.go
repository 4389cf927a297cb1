package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuelinkhq/venuelink-backend/pkg/db/models"
	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
	"github.com/venuelinkhq/venuelink-backend/pkg/pagination"
)

// Repository defines persistence operations for orders and attachments.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	List(ctx context.Context, params pagination.Params, scope ViewerScope, filters ListFilters) (*OrderList, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to enums.OrderStatus, extra map[string]any) (bool, error)
	UpdateFields(ctx context.Context, orderID uuid.UUID, updates map[string]any) error
	CreateAttachment(ctx context.Context, attachment *models.OrderAttachment) (*models.OrderAttachment, error)
	FindAttachment(ctx context.Context, attachmentID uuid.UUID) (*models.OrderAttachment, error)
	ListAttachments(ctx context.Context, orderID uuid.UUID) ([]models.OrderAttachment, error)
	CountAttachments(ctx context.Context, orderID uuid.UUID) (int64, error)
	DeleteAttachment(ctx context.Context, attachmentID uuid.UUID) error
}
