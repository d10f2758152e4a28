// Package checkout turns a session cart into a committed order. The
// stock decrement, order row, and order lines commit in one transaction
// or not at all.
package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/warunglabs/warungpos-backend/internal/cart"
	"github.com/warunglabs/warungpos-backend/internal/catalog"
	"github.com/warunglabs/warungpos-backend/internal/notifications"
	"github.com/warunglabs/warungpos-backend/internal/orders"
	"github.com/warunglabs/warungpos-backend/internal/paymentmethods"
	"github.com/warunglabs/warungpos-backend/internal/pricing"
	"github.com/warunglabs/warungpos-backend/pkg/db/models"
	"github.com/warunglabs/warungpos-backend/pkg/enums"
	pkgerrors "github.com/warunglabs/warungpos-backend/pkg/errors"
	"github.com/warunglabs/warungpos-backend/pkg/logger"
	"github.com/warunglabs/warungpos-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service executes checkout orchestration.
type Service interface {
	Checkout(ctx context.Context, sessionID string, input Input) (*models.Order, error)
}

type service struct {
	tx             txRunner
	cartSvc        cart.Service
	catalogRepo    *catalog.Repository
	ordersRepo     orders.Repository
	paymentMethods paymentmethods.Service
	notifier       notifications.Notifier
	metrics        *metrics.POSMetrics
	logg           *logger.Logger
	validate       *validator.Validate
}

// ServiceParams groups the checkout dependencies.
type ServiceParams struct {
	TransactionRunner txRunner
	CartService       cart.Service
	CatalogRepo       *catalog.Repository
	OrdersRepo        orders.Repository
	PaymentMethods    paymentmethods.Service
	Notifier          notifications.Notifier
	Metrics           *metrics.POSMetrics
	Logger            *logger.Logger
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.TransactionRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	if params.CartService == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "cart service required")
	}
	if params.CatalogRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog repository required")
	}
	if params.OrdersRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "orders repository required")
	}
	if params.PaymentMethods == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "payment methods service required")
	}
	if params.Notifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifier required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{
		tx:             params.TransactionRunner,
		cartSvc:        params.CartService,
		catalogRepo:    params.CatalogRepo,
		ordersRepo:     params.OrdersRepo,
		paymentMethods: params.PaymentMethods,
		notifier:       params.Notifier,
		metrics:        params.Metrics,
		logg:           params.Logger,
		validate:       validator.New(),
	}, nil
}

// Checkout validates the payload, re-checks stock under a transaction,
// and persists the order with its lines. The cart is cleared only after
// the transaction commits.
func (s *service) Checkout(ctx context.Context, sessionID string, input Input) (*models.Order, error) {
	started := time.Now()
	order, err := s.checkout(ctx, sessionID, input)
	s.metrics.ObserveCheckoutDuration(time.Since(started))
	if err != nil {
		s.metrics.IncCheckout(outcomeFor(err))
		return nil, err
	}
	s.metrics.IncCheckout("success")
	return order, nil
}

func (s *service) checkout(ctx context.Context, sessionID string, input Input) (*models.Order, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid checkout payload")
	}
	gender, err := enums.ParseGender(input.Customer.Gender)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid checkout payload")
	}

	lines, err := s.cartSvc.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart contains no items")
	}

	method, err := s.paymentMethods.GetByID(ctx, input.PaymentMethodID)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
		}
		return nil, err
	}

	totals := pricing.Recompute(cart.PricingLines(lines), input.PaidAmountCents, method.IsCash)

	order := &models.Order{
		ID:                uuid.New(),
		CustomerName:      input.Customer.Name,
		Gender:            gender,
		Email:             input.Customer.Email,
		Phone:             input.Customer.Phone,
		Birthday:          input.Customer.Birthday,
		Note:              input.Customer.Note,
		TotalPriceCents:   totals.TotalCents,
		PaymentMethodID:   method.ID,
		PaidAmountCents:   totals.PaidCents,
		ChangeAmountCents: totals.ChangeCents,
	}

	orderLines := make([]models.OrderLine, 0, len(lines))
	for _, line := range lines {
		orderLines = append(orderLines, models.OrderLine{
			ID:             uuid.New(),
			OrderID:        order.ID,
			ProductID:      line.ProductID,
			ProductName:    line.Name,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
			LineTotalCents: line.TotalCents(),
		})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		catalogRepo := s.catalogRepo.WithTx(tx)
		ordersRepo := s.ordersRepo.WithTx(tx)

		var shortfall error
		var failed []uuid.UUID
		for _, line := range lines {
			ok, derr := catalogRepo.DecrementStock(ctx, line.ProductID, line.Quantity)
			if derr != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, derr, "decrement stock")
			}
			if !ok {
				shortfall = multierr.Append(shortfall,
					fmt.Errorf("product %s: requested %d exceeds remaining stock", line.Name, line.Quantity))
				failed = append(failed, line.ProductID)
			}
		}
		if shortfall != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInsufficientStock, shortfall, "stock changed since the cart was built").
				WithDetails(map[string]any{"product_ids": failed})
		}

		if _, cerr := ordersRepo.Create(ctx, order); cerr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, cerr, "persist order")
		}
		if cerr := ordersRepo.CreateLines(ctx, orderLines); cerr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, cerr, "persist order lines")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cerr := s.cartSvc.Clear(ctx, sessionID); cerr != nil {
		s.logg.Error(ctx, "clear cart after checkout", cerr)
	}
	s.notifier.Notify(ctx, enums.NotificationSuccess, "Order placed successfully")

	order.Lines = orderLines
	return order, nil
}

func outcomeFor(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return "error"
	}
	switch typed.Code() {
	case pkgerrors.CodeInsufficientStock:
		return "insufficient_stock"
	case pkgerrors.CodeValidation:
		return "validation_error"
	default:
		return "error"
	}
}
