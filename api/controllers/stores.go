package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ratewise/ratewise-backend/api/middleware"
	"github.com/ratewise/ratewise-backend/api/responses"
	"github.com/ratewise/ratewise-backend/api/validators"
	"github.com/ratewise/ratewise-backend/internal/stores"
	pkgerrors "github.com/ratewise/ratewise-backend/pkg/errors"
	"github.com/ratewise/ratewise-backend/pkg/logger"
)

func storeListFilter(r *http.Request) (stores.ListFilter, error) {
	order, err := validators.ParseSortOrder(r)
	if err != nil {
		return stores.ListFilter{}, err
	}
	q := r.URL.Query()
	return stores.ListFilter{
		Name:    validators.SanitizeString(q.Get("name"), 0),
		Email:   validators.SanitizeString(q.Get("email"), 0),
		Address: validators.SanitizeString(q.Get("address"), 0),
		SortBy:  strings.TrimSpace(q.Get("sort_by")),
		Order:   order,
	}, nil
}

// StoreDirectory lists every store with its average rating and the caller's
// own rating merged into each row.
func StoreDirectory(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		uid, err := uuid.Parse(userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		filter, err := storeListFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListForUser(r.Context(), uid, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}
