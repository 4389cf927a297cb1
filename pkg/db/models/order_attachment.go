package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderAttachment is a file record linked to an order. Rows are immutable;
// the uploader may delete them independently of the order lifecycle.
type OrderAttachment struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID    uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	UploaderID uuid.UUID `gorm:"column:uploader_id;type:uuid;not null"`
	FileName   string    `gorm:"column:file_name;type:text;not null"`
	FileURL    string    `gorm:"column:file_url;type:text;not null"`
	FileSize   int64     `gorm:"column:file_size;not null;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
