package controllers

import (
	"net/http"
	"time"

	"github.com/venuelinkhq/venuelink-backend/api/responses"
	"github.com/venuelinkhq/venuelink-backend/api/validators"
	internalcalendar "github.com/venuelinkhq/venuelink-backend/internal/calendar"
	pkgerrors "github.com/venuelinkhq/venuelink-backend/pkg/errors"
	"github.com/venuelinkhq/venuelink-backend/pkg/logger"
)

const defaultCalendarWindow = 31 * 24 * time.Hour

// ListCalendarEvents returns events overlapping the requested window. The
// window defaults to the next 31 days when from/to are omitted.
func ListCalendarEvents(repo *internalcalendar.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "calendar repository unavailable"))
			return
		}

		from, err := validators.ParseQueryTime(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := validators.ParseQueryTime(r, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if from.IsZero() {
			from = time.Now().UTC().Truncate(24 * time.Hour)
		}
		if to.IsZero() {
			to = from.Add(defaultCalendarWindow)
		}
		if !to.After(from) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "to must be after from"))
			return
		}

		events, err := repo.ListBetween(r.Context(), from, to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list calendar events"))
			return
		}
		responses.WriteSuccess(w, events)
	}
}
