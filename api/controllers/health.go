package controllers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/venuelinkhq/venuelink-backend/api/responses"
	"github.com/venuelinkhq/venuelink-backend/pkg/config"
	pkgerrors "github.com/venuelinkhq/venuelink-backend/pkg/errors"
	"github.com/venuelinkhq/venuelink-backend/pkg/logger"
	pkgredis "github.com/venuelinkhq/venuelink-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-VenueLink-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the database and redis answer.
func HealthReady(cfg *config.Config, db *gorm.DB, redis *pkgredis.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-VenueLink-Env", cfg.App.Env)

		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(r.Context())
			}
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}

		if redis != nil {
			if err := redis.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
