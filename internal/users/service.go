package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuelinkhq/venuelink-backend/pkg/config"
	dbpkg "github.com/venuelinkhq/venuelink-backend/pkg/db"
	"github.com/venuelinkhq/venuelink-backend/pkg/db/models"
	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
	pkgerrors "github.com/venuelinkhq/venuelink-backend/pkg/errors"
	"github.com/venuelinkhq/venuelink-backend/pkg/security"
)

const tempPasswordLength = 16

type userRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListByRole(ctx context.Context, role enums.UserRole) ([]models.User, error)
}

// Service covers account reads plus staff-driven partner onboarding.
type Service interface {
	CreatePartner(ctx context.Context, input CreatePartnerInput) (*CreatedPartner, error)
	ListPartners(ctx context.Context) ([]UserDTO, error)
	Profile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
}

type service struct {
	repo        userRepository
	passwordCfg config.PasswordConfig
}

// NewService builds the users service.
func NewService(repo userRepository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

// CreatePartner onboards a partner vendor with a generated one-time password.
func (s *service) CreatePartner(ctx context.Context, input CreatePartnerInput) (*CreatedPartner, error) {
	if input.ActorRole != enums.UserRoleStaff {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "staff role required")
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "valid email required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}

	tempPassword, err := security.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temp password")
	}
	hash, err := security.HashPassword(tempPassword, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	created, err := s.repo.Create(ctx, &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         input.Name,
		Role:         enums.UserRolePartner,
		CompanyName:  input.CompanyName,
		Phone:        input.Phone,
	})
	if err != nil {
		if dbpkg.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, err
	}

	return &CreatedPartner{
		User:         FromModel(created),
		TempPassword: tempPassword,
	}, nil
}

func (s *service) ListPartners(ctx context.Context) ([]UserDTO, error) {
	rows, err := s.repo.ListByRole(ctx, enums.UserRolePartner)
	if err != nil {
		return nil, err
	}
	partners := make([]UserDTO, 0, len(rows))
	for i := range rows {
		partners = append(partners, *FromModel(&rows[i]))
	}
	return partners, nil
}

func (s *service) Profile(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, err
	}
	return FromModel(user), nil
}
