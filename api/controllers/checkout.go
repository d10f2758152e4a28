package controllers

import (
	"net/http"

	"github.com/warunglabs/warungpos-backend/api/middleware"
	"github.com/warunglabs/warungpos-backend/api/responses"
	"github.com/warunglabs/warungpos-backend/api/validators"
	checkoutsvc "github.com/warunglabs/warungpos-backend/internal/checkout"
	"github.com/warunglabs/warungpos-backend/pkg/logger"
)

// Checkout commits the session cart into an order.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload checkoutsvc.Input
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		order, err := svc.Checkout(r.Context(), sessionID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
