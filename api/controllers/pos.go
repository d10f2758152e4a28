package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/warunglabs/warungpos-backend/api/middleware"
	"github.com/warunglabs/warungpos-backend/api/responses"
	"github.com/warunglabs/warungpos-backend/api/validators"
	"github.com/warunglabs/warungpos-backend/internal/cart"
	"github.com/warunglabs/warungpos-backend/internal/paymentmethods"
	"github.com/warunglabs/warungpos-backend/internal/pricing"
	pkgerrors "github.com/warunglabs/warungpos-backend/pkg/errors"
	"github.com/warunglabs/warungpos-backend/pkg/logger"
	"github.com/warunglabs/warungpos-backend/pkg/types"
)

type cartView struct {
	Items      []cart.Line `json:"items"`
	TotalCents int         `json:"total_cents"`
	Total      types.Money `json:"total"`
}

func newCartView(lines []cart.Line) cartView {
	total := pricing.Total(cart.PricingLines(lines))
	return cartView{
		Items:      lines,
		TotalCents: total,
		Total:      types.NewMoney(total),
	}
}

// PosCartGet returns the session's current cart with its running total.
func PosCartGet(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		lines, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(lines))
	}
}

type addItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

// PosCartAdd adds one unit of a product to the session cart.
func PosCartAdd(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		lines, err := svc.AddItem(r.Context(), sessionID, payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newCartView(lines))
	}
}

// PosCartIncrease bumps a cart line by one, bounded by stock.
func PosCartIncrease(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		lines, err := svc.IncreaseQuantity(r.Context(), sessionID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(lines))
	}
}

// PosCartDecrease drops a cart line by one, removing it at zero.
func PosCartDecrease(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		lines, err := svc.DecreaseQuantity(r.Context(), sessionID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(lines))
	}
}

type loadItemsRequest struct {
	Items []cart.Line `json:"items" validate:"required"`
}

// PosCartLoad replaces the session cart with a prepared snapshot.
func PosCartLoad(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loadItemsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		lines, err := svc.LoadItems(r.Context(), sessionID, payload.Items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(lines))
	}
}

// PosCartClear empties the session cart.
func PosCartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if err := svc.Clear(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(nil))
	}
}

type recomputeRequest struct {
	PaymentMethodID uuid.UUID `json:"payment_method_id" validate:"required"`
	PaidAmountCents int       `json:"paid_amount_cents" validate:"min=0"`
}

// PosRecompute returns the register totals for the current cart and the
// tendered amount without committing anything.
func PosRecompute(cartSvc cart.Service, paySvc paymentmethods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload recomputeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)
		lines, err := cartSvc.Get(ctx, sessionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		method, err := resolvePaymentMethod(ctx, paySvc, payload.PaymentMethodID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		totals := pricing.Recompute(cart.PricingLines(lines), payload.PaidAmountCents, method.IsCash)
		responses.WriteSuccess(w, totals.Render())
	}
}

func resolvePaymentMethod(ctx context.Context, paySvc paymentmethods.Service, id uuid.UUID) (*paymentMethodRef, error) {
	method, err := paySvc.GetByID(ctx, id)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
		}
		return nil, err
	}
	return &paymentMethodRef{ID: method.ID, IsCash: method.IsCash}, nil
}

type paymentMethodRef struct {
	ID     uuid.UUID
	IsCash bool
}

func productIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "productID")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}
	return id, nil
}
