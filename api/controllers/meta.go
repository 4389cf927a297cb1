package controllers

import (
	"net/http"

	"github.com/venuelinkhq/venuelink-backend/api/responses"
	pkgerrors "github.com/venuelinkhq/venuelink-backend/pkg/errors"
	"github.com/venuelinkhq/venuelink-backend/pkg/logger"
	"github.com/venuelinkhq/venuelink-backend/pkg/refdata"
)

// MetaRegions serves the static region reference list.
func MetaRegions(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		regions, err := refdata.Regions()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load regions"))
			return
		}
		responses.WriteSuccess(w, regions)
	}
}

// MetaServiceTypes serves the static service type reference list.
func MetaServiceTypes(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serviceTypes, err := refdata.ServiceTypes()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load service types"))
			return
		}
		responses.WriteSuccess(w, serviceTypes)
	}
}
