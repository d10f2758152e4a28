package controllers

import (
	"net/http"

	"github.com/warunglabs/warungpos-backend/api/responses"
	"github.com/warunglabs/warungpos-backend/internal/paymentmethods"
	"github.com/warunglabs/warungpos-backend/pkg/logger"
)

// ListPaymentMethods returns the settlement options, cash first.
func ListPaymentMethods(svc paymentmethods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		methods, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, methods)
	}
}
