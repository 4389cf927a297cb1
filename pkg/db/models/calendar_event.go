package models

import (
	"time"

	"github.com/google/uuid"
)

// CalendarEvent is the scheduling record written when a partner accepts an
// order. It is a historical record: later order changes do not cascade here.
type CalendarEvent struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	Title       string    `gorm:"column:title;type:text;not null"`
	StartsAt    time.Time `gorm:"column:starts_at;not null"`
	EndsAt      time.Time `gorm:"column:ends_at;not null"`
	Location    string    `gorm:"column:location;type:text"`
	Description string    `gorm:"column:description;type:text"`
	CreatedBy   uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
	Color       string    `gorm:"column:color;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
