package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/venuelinkhq/venuelink-backend/pkg/auth"
	"github.com/venuelinkhq/venuelink-backend/pkg/config"
	"github.com/venuelinkhq/venuelink-backend/pkg/db/models"
	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
	pkgerrors "github.com/venuelinkhq/venuelink-backend/pkg/errors"
	"github.com/venuelinkhq/venuelink-backend/pkg/security"
)

type stubUserRepo struct {
	user *models.User
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

type stubSessionManager struct {
	lastAccessID string
	err          error
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.lastAccessID = accessID
	return "refresh-token", nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "venuelink-test",
		ExpirationMinutes: 15,
	}
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func TestLoginSuccess(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "staff@venuelink.example",
		PasswordHash: hashFor(t, "open sesame"),
		Name:         "Choi Haneul",
		Role:         enums.UserRoleStaff,
	}
	sessions := &stubSessionManager{}
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: user},
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    " Staff@VenueLink.example ",
		Password: "open sesame",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}
	if resp.User == nil || resp.User.Email != user.Email {
		t.Fatalf("unexpected user payload %+v", resp.User)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != enums.UserRoleStaff {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.ID != sessions.lastAccessID {
		t.Fatal("token JTI must match the session access id")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "staff@venuelink.example",
		PasswordHash: hashFor(t, "correct horse"),
		Role:         enums.UserRoleStaff,
	}
	svc, _ := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: user},
		SessionManager: &stubSessionManager{},
		JWTConfig:      testJWTConfig(),
	})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "staff@venuelink.example",
		Password: "battery staple",
	})
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownUserIsUnauthorized(t *testing.T) {
	svc, _ := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{},
		SessionManager: &stubSessionManager{},
		JWTConfig:      testJWTConfig(),
	})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@venuelink.example",
		Password: "whatever",
	})
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
