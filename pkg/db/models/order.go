package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
)

// Order is a requested service engagement between a staff member and the
// partner assigned to fulfill it. Ownership never changes after creation.
type Order struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber   string            `gorm:"column:order_number;type:text;not null;uniqueIndex:ux_orders_order_number"`
	StaffID       uuid.UUID         `gorm:"column:staff_id;type:uuid;not null"`
	PartnerID     uuid.UUID         `gorm:"column:partner_id;type:uuid;not null"`
	CustomerName  string            `gorm:"column:customer_name;type:text;not null"`
	CustomerPhone string            `gorm:"column:customer_phone;type:text;not null"`
	ServiceType   string            `gorm:"column:service_type;type:text;not null"`
	ServiceAt     time.Time         `gorm:"column:service_at;not null"`
	Location      string            `gorm:"column:location;type:text;not null"`
	AmountKRW     int64             `gorm:"column:amount_krw;not null"`
	Notes         *string           `gorm:"column:notes;type:text"`
	PartnerMemo   *string           `gorm:"column:partner_memo;type:text"`
	Status        enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'requested'"`
	CompletedAt   *time.Time        `gorm:"column:completed_at"`
	Attachments   []OrderAttachment `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Settlement    *Settlement       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
