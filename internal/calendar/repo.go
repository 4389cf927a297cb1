package calendar

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuelinkhq/venuelink-backend/pkg/db/models"
)

// Repository exposes calendar event persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a calendar repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a calendar event.
func (r *Repository) Create(ctx context.Context, event *models.CalendarEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// ExistsForOrder reports whether an event was already written for the order.
func (r *Repository) ExistsForOrder(ctx context.Context, orderID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CalendarEvent{}).
		Where("order_id = ?", orderID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListBetween returns events overlapping the window, ordered by start time.
func (r *Repository) ListBetween(ctx context.Context, from, to time.Time) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	if err := r.db.WithContext(ctx).
		Where("starts_at < ? AND ends_at > ?", to, from).
		Order("starts_at ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
