package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/venuelinkhq/venuelink-backend/pkg/db/models"
	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
	"github.com/venuelinkhq/venuelink-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  order_number TEXT NOT NULL UNIQUE,
  staff_id TEXT NOT NULL,
  partner_id TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  customer_phone TEXT NOT NULL DEFAULT '',
  service_type TEXT NOT NULL,
  service_at DATETIME NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  amount_krw INTEGER NOT NULL DEFAULT 0,
  notes TEXT,
  partner_memo TEXT,
  status TEXT NOT NULL DEFAULT 'requested',
  completed_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	attachments := `
CREATE TABLE IF NOT EXISTS order_attachments (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  uploader_id TEXT NOT NULL,
  file_name TEXT NOT NULL,
  file_url TEXT NOT NULL,
  file_size INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(attachments).Error)
	return db
}

func insertTestOrder(t *testing.T, repo Repository, partnerID uuid.UUID, status enums.OrderStatus, createdAt time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:           uuid.New(),
		OrderNumber:  "ORD" + uuid.NewString()[:9],
		StaffID:      uuid.New(),
		PartnerID:    partnerID,
		CustomerName: "Lee Seoyeon",
		ServiceType:  "banquet",
		ServiceAt:    time.Date(2026, 10, 3, 18, 0, 0, 0, time.UTC),
		AmountKRW:    900_000,
		Status:       status,
		CreatedAt:    createdAt,
	}
	_, err := repo.Create(context.Background(), order)
	require.NoError(t, err)
	return order
}

func TestUpdateStatusIsConditional(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := insertTestOrder(t, repo, uuid.New(), enums.OrderStatusRequested, time.Now())

	updated, err := repo.UpdateStatus(ctx, order.ID, enums.OrderStatusRequested, enums.OrderStatusAccepted, nil)
	require.NoError(t, err)
	require.True(t, updated)

	// Second writer read the stale requested status and must lose.
	updated, err = repo.UpdateStatus(ctx, order.ID, enums.OrderStatusRequested, enums.OrderStatusCancelled, nil)
	require.NoError(t, err)
	require.False(t, updated)

	stored, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusAccepted, stored.Status)
}

func TestUpdateStatusWritesExtraColumns(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := insertTestOrder(t, repo, uuid.New(), enums.OrderStatusConfirmed, time.Now())
	completedAt := time.Date(2026, 10, 3, 22, 0, 0, 0, time.UTC)

	updated, err := repo.UpdateStatus(ctx, order.ID, enums.OrderStatusConfirmed, enums.OrderStatusCompleted, map[string]any{
		"completed_at": completedAt,
		"notes":        "venue handed over late",
	})
	require.NoError(t, err)
	require.True(t, updated)

	stored, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusCompleted, stored.Status)
	require.NotNil(t, stored.CompletedAt)
	require.NotNil(t, stored.Notes)
	require.Equal(t, "venue handed over late", *stored.Notes)
}

func TestListScopesPartnerAndPaginates(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	partnerID := uuid.New()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		insertTestOrder(t, repo, partnerID, enums.OrderStatusRequested, base.Add(time.Duration(i)*time.Hour))
	}
	insertTestOrder(t, repo, uuid.New(), enums.OrderStatusRequested, base.Add(12*time.Hour))

	scope := ViewerScope{UserID: partnerID, Role: enums.UserRolePartner}
	page, err := repo.List(ctx, pagination.Params{Limit: 2}, scope, ListFilters{})
	require.NoError(t, err)
	require.Len(t, page.Orders, 2)
	require.NotEmpty(t, page.NextCursor)
	for _, row := range page.Orders {
		require.Equal(t, partnerID, row.PartnerID)
	}

	rest, err := repo.List(ctx, pagination.Params{Limit: 2, Cursor: page.NextCursor}, scope, ListFilters{})
	require.NoError(t, err)
	require.Len(t, rest.Orders, 1)
	require.Empty(t, rest.NextCursor)
	require.True(t, rest.Orders[0].CreatedAt.Before(page.Orders[1].CreatedAt))
}

func TestListStatusFilter(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	partnerID := uuid.New()
	insertTestOrder(t, repo, partnerID, enums.OrderStatusRequested, time.Now())
	confirmed := insertTestOrder(t, repo, partnerID, enums.OrderStatusConfirmed, time.Now())

	status := enums.OrderStatusConfirmed
	page, err := repo.List(ctx, pagination.Params{}, ViewerScope{UserID: partnerID, Role: enums.UserRolePartner}, ListFilters{Status: &status})
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	require.Equal(t, confirmed.ID, page.Orders[0].ID)
}

func TestAttachmentLifecycle(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := insertTestOrder(t, repo, uuid.New(), enums.OrderStatusConfirmed, time.Now())

	count, err := repo.CountAttachments(ctx, order.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	attachment, err := repo.CreateAttachment(ctx, &models.OrderAttachment{
		ID:         uuid.New(),
		OrderID:    order.ID,
		UploaderID: order.PartnerID,
		FileName:   "site-photo.jpg",
		FileURL:    "https://files.venuelink.example/site-photo.jpg",
		FileSize:   512,
	})
	require.NoError(t, err)

	count, err = repo.CountAttachments(ctx, order.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	listed, err := repo.ListAttachments(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, attachment.ID, listed[0].ID)

	require.NoError(t, repo.DeleteAttachment(ctx, attachment.ID))
	count, err = repo.CountAttachments(ctx, order.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}
