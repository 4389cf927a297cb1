package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
)

// User is an internal staff member or an external partner vendor.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;type:text;not null"`
	Name         string         `gorm:"column:name;type:text;not null"`
	Role         enums.UserRole `gorm:"column:role;type:user_role;not null"`
	CompanyName  *string        `gorm:"column:company_name;type:text"`
	Phone        *string        `gorm:"column:phone;type:text"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
