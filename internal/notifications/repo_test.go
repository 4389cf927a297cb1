package notifications

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
)

func setupNotificationsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS notifications (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  type TEXT NOT NULL,
  title TEXT NOT NULL,
  message TEXT NOT NULL,
  related_order_id TEXT,
  read_at DATETIME,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func insertTestNotification(t *testing.T, repo Repository, userID uuid.UUID, createdAt time.Time) *models.Notification {
	t.Helper()
	notification := &models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      enums.NotificationOrderConfirmed,
		Title:     "Order confirmed",
		Message:   "ORD260901042 was confirmed",
		CreatedAt: createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), notification))
	return notification
}

func TestListFeedPageBoundaryLosesNoRows(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	inserted := map[uuid.UUID]bool{}
	for i := 0; i < 5; i++ {
		row := insertTestNotification(t, repo, userID, base.Add(time.Duration(i)*time.Minute))
		inserted[row.ID] = false
	}
	insertTestNotification(t, repo, uuid.New(), base.Add(time.Hour))

	first, cursor, err := repo.List(ctx, listNotificationsParams{UserID: userID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.NotNil(t, cursor)

	second, cursor, err := repo.List(ctx, listNotificationsParams{UserID: userID, Limit: 2, Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, second, 2)
	require.NotNil(t, cursor)

	third, cursor, err := repo.List(ctx, listNotificationsParams{UserID: userID, Limit: 2, Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, third, 1)
	require.Nil(t, cursor)

	// Walking the cursor must visit every row for the user exactly once.
	for _, page := range [][]models.Notification{first, second, third} {
		for _, row := range page {
			seen, ok := inserted[row.ID]
			require.True(t, ok, "row %s belongs to another user", row.ID)
			require.False(t, seen, "row %s returned twice", row.ID)
			inserted[row.ID] = true
		}
	}
	for id, seen := range inserted {
		require.True(t, seen, "row %s was dropped at a page boundary", id)
	}
}

func TestListUnreadOnlyFilter(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	read := insertTestNotification(t, repo, userID, time.Now().Add(-time.Hour))
	unread := insertTestNotification(t, repo, userID, time.Now())

	mark, err := repo.MarkRead(ctx, userID, read.ID, time.Now())
	require.NoError(t, err)
	require.True(t, mark.Updated)

	rows, cursor, err := repo.List(ctx, listNotificationsParams{UserID: userID, UnreadOnly: true})
	require.NoError(t, err)
	require.Nil(t, cursor)
	require.Len(t, rows, 1)
	require.Equal(t, unread.ID, rows[0].ID)
}
