package models

import (
	"time"

	"github.com/google/uuid"
)

// Settlement is the payable record derived from exactly one completed order.
// Rows are insert-only; the unique index closes the check-then-insert race.
type Settlement struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID `gorm:"column:order_id;type:uuid;not null;uniqueIndex:ux_settlements_order_id"`
	AmountKRW   int64     `gorm:"column:amount_krw;not null"`
	PaymentDate time.Time `gorm:"column:payment_date;not null"`
	StaffID     uuid.UUID `gorm:"column:staff_id;type:uuid;not null"`
	ConfirmedAt time.Time `gorm:"column:confirmed_at;autoCreateTime"`
}
