package controllers

import (
	"net/http"

	"github.com/venuelinkhq/venuelink-backend/api/responses"
	"github.com/venuelinkhq/venuelink-backend/api/validators"
	internalauth "github.com/venuelinkhq/venuelink-backend/internal/auth"
	pkgerrors "github.com/venuelinkhq/venuelink-backend/pkg/errors"
	"github.com/venuelinkhq/venuelink-backend/pkg/logger"
)

// AuthLogin exchanges credentials for an access and refresh token pair.
func AuthLogin(svc internalauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body internalauth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}
