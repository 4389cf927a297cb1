package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/venuelinkhq/venuelink-backend/pkg/db/models"
	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	Name        string         `json:"name"`
	Role        enums.UserRole `json:"role"`
	CompanyName *string        `json:"company_name,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// FromModel strips the credential fields off the stored user.
func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		CompanyName: u.CompanyName,
		Phone:       u.Phone,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// CreatePartnerInput is a staff request to onboard a partner vendor account.
type CreatePartnerInput struct {
	Email       string
	Name        string
	CompanyName *string
	Phone       *string
	ActorRole   enums.UserRole
}

// CreatedPartner couples the new account with its one-time password. The
// password is shown once to the onboarding staff member and never stored.
type CreatedPartner struct {
	User         *UserDTO `json:"user"`
	TempPassword string   `json:"temp_password"`
}
