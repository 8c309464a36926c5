package controllers

import (
	"net/http"
	"strings"

	"github.com/ratewise/ratewise-backend/api/responses"
	"github.com/ratewise/ratewise-backend/api/validators"
	"github.com/ratewise/ratewise-backend/internal/stores"
	pkgerrors "github.com/ratewise/ratewise-backend/pkg/errors"
	"github.com/ratewise/ratewise-backend/pkg/logger"
)

type adminCreateStoreRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=60"`
	Email     string `json:"email" validate:"required,email"`
	Address   string `json:"address" validate:"max=400"`
	OwnerName string `json:"owner_name" validate:"omitempty,min=20,max=60"`
	Password  string `json:"password" validate:"required,account_password"`
}

func (r adminCreateStoreRequest) toInput() stores.CreateWithOwnerInput {
	return stores.CreateWithOwnerInput{
		Name:      strings.TrimSpace(r.Name),
		Email:     r.Email,
		Address:   strings.TrimSpace(r.Address),
		OwnerName: strings.TrimSpace(r.OwnerName),
		Password:  r.Password,
	}
}

// AdminCreateStore provisions a store together with its owner account in a
// single transaction.
func AdminCreateStore(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		var body adminCreateStoreRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateWithOwner(r.Context(), body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// AdminListStores lists every store with its average rating. User-specific
// rating columns stay empty on the admin surface.
func AdminListStores(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		filter, err := storeListFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListForAdmin(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}
