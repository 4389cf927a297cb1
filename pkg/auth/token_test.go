package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/venuelinkhq/venuelink-backend/pkg/config"
	"github.com/venuelinkhq/venuelink-backend/pkg/enums"
)

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "venuelink",
		ExpirationMinutes: 30,
	}
	now := time.Now().UTC()
	userID := uuid.New()

	payload := AccessTokenPayload{
		UserID: userID,
		Role:   enums.UserRoleStaff,
		Name:   "Ops Kim",
	}

	token, err := MintAccessToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if claims.UserID != userID {
		t.Fatalf("expected user_id %s, got %s", userID, claims.UserID)
	}
	if claims.Role != enums.UserRoleStaff {
		t.Fatalf("unexpected role %s", claims.Role)
	}
	if claims.Name != "Ops Kim" {
		t.Fatalf("unexpected name %s", claims.Name)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("unexpected issuer %s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Fatal("expected a generated jti")
	}
}

func TestMintAccessTokenValidation(t *testing.T) {
	now := time.Now().UTC()
	payload := AccessTokenPayload{UserID: uuid.New(), Role: enums.UserRolePartner}

	if _, err := MintAccessToken(config.JWTConfig{Issuer: "venuelink", ExpirationMinutes: 30}, now, payload); err == nil {
		t.Fatal("expected error for missing secret")
	}
	if _, err := MintAccessToken(config.JWTConfig{Secret: "secret", ExpirationMinutes: 30}, now, payload); err == nil {
		t.Fatal("expected error for missing issuer")
	}

	bad := payload
	bad.Role = enums.UserRole("ghost")
	cfg := config.JWTConfig{Secret: "secret", Issuer: "venuelink", ExpirationMinutes: 30}
	if _, err := MintAccessToken(cfg, now, bad); err == nil || !strings.Contains(err.Error(), "invalid user role") {
		t.Fatalf("expected role validation error, got %v", err)
	}
}

func TestParseAccessTokenRejectsTampered(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "venuelink", ExpirationMinutes: 30}
	token, err := MintAccessToken(cfg, time.Now().UTC(), AccessTokenPayload{UserID: uuid.New(), Role: enums.UserRoleStaff})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	other := config.JWTConfig{Secret: "different", Issuer: "venuelink", ExpirationMinutes: 30}
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected signature verification failure")
	}
}

func TestParseAccessTokenAllowExpired(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "venuelink", ExpirationMinutes: 30}
	token, err := MintAccessToken(cfg, time.Now().UTC().Add(-2*time.Hour), AccessTokenPayload{UserID: uuid.New(), Role: enums.UserRoleStaff})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatal("expected expiry error from strict parse")
	}
	claims, err := ParseAccessTokenAllowExpired(cfg, token)
	if err != nil {
		t.Fatalf("lenient parse failed: %v", err)
	}
	if claims.ID == "" {
		t.Fatal("expected jti on expired token")
	}
}
