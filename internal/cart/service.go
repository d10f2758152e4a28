package cart

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/warunglabs/warungpos-backend/internal/notifications"
	"github.com/warunglabs/warungpos-backend/internal/stock"
	"github.com/warunglabs/warungpos-backend/pkg/db/models"
	"github.com/warunglabs/warungpos-backend/pkg/enums"
	pkgerrors "github.com/warunglabs/warungpos-backend/pkg/errors"
	"github.com/warunglabs/warungpos-backend/pkg/metrics"
)

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes cart mutations for the register.
type Service interface {
	AddItem(ctx context.Context, sessionID string, productID uuid.UUID) ([]Line, error)
	IncreaseQuantity(ctx context.Context, sessionID string, productID uuid.UUID) ([]Line, error)
	DecreaseQuantity(ctx context.Context, sessionID string, productID uuid.UUID) ([]Line, error)
	LoadItems(ctx context.Context, sessionID string, lines []Line) ([]Line, error)
	Get(ctx context.Context, sessionID string) ([]Line, error)
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	store    SessionStore
	products productLoader
	notifier notifications.Notifier
	metrics  *metrics.POSMetrics
}

// NewService builds a cart service backed by the session store and the
// catalog.
func NewService(store SessionStore, products productLoader, notifier notifications.Notifier, posMetrics *metrics.POSMetrics) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "session store required")
	}
	if products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "product loader required")
	}
	if notifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifier required")
	}
	return &service{
		store:    store,
		products: products,
		notifier: notifier,
		metrics:  posMetrics,
	}, nil
}

// AddItem puts one unit of the product into the cart. A product already
// present gains quantity instead of a second line. Zero stock refuses
// the add outright.
func (s *service) AddItem(ctx context.Context, sessionID string, productID uuid.UUID) ([]Line, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !stock.Available(product.Stock) {
		s.notifier.Notify(ctx, enums.NotificationDanger, "Out of stock")
		return nil, pkgerrors.New(pkgerrors.CodeOutOfStock, "product is out of stock").
			WithDetails(map[string]any{"product_id": product.ID})
	}

	lines, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if i := findLine(lines, product.ID); i >= 0 {
		admitted, clamped := stock.Admit(lines[i].Quantity+1, product.Stock)
		if clamped {
			s.notifier.Notify(ctx, enums.NotificationWarning, "Out of stock")
			return lines, nil
		}
		lines[i].Quantity = admitted
	} else {
		lines = append(lines, newLine(product))
	}

	if err := s.store.Put(ctx, sessionID, lines); err != nil {
		return nil, err
	}
	s.metrics.IncCartMutation("add")
	s.notifier.Notify(ctx, enums.NotificationSuccess, "Product added to cart")
	return lines, nil
}

// IncreaseQuantity bumps the line by one unless that would pass the
// available stock, in which case the cart stays as it was and the
// operator gets a warning.
func (s *service) IncreaseQuantity(ctx context.Context, sessionID string, productID uuid.UUID) ([]Line, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	lines, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := findLine(lines, productID)
	if i < 0 {
		s.notifier.Notify(ctx, enums.NotificationDanger, "Product not found")
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart")
	}

	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	admitted, clamped := stock.Admit(lines[i].Quantity+1, product.Stock)
	if clamped {
		s.notifier.Notify(ctx, enums.NotificationWarning, "Out of stock")
		return lines, nil
	}

	lines[i].Quantity = admitted
	if err := s.store.Put(ctx, sessionID, lines); err != nil {
		return nil, err
	}
	s.metrics.IncCartMutation("increase")
	return lines, nil
}

// DecreaseQuantity drops the line by one; at quantity one the line is
// removed and the remaining lines keep their order.
func (s *service) DecreaseQuantity(ctx context.Context, sessionID string, productID uuid.UUID) ([]Line, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	lines, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := findLine(lines, productID)
	if i < 0 {
		s.notifier.Notify(ctx, enums.NotificationDanger, "Product not found")
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart")
	}

	if lines[i].Quantity > 1 {
		lines[i].Quantity--
	} else {
		lines = append(lines[:i], lines[i+1:]...)
	}

	if err := s.store.Put(ctx, sessionID, lines); err != nil {
		return nil, err
	}
	s.metrics.IncCartMutation("decrease")
	return lines, nil
}

// LoadItems replaces the cart with an externally prepared snapshot,
// dropping malformed lines.
func (s *service) LoadItems(ctx context.Context, sessionID string, lines []Line) ([]Line, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}

	cleaned := make([]Line, 0, len(lines))
	for _, line := range lines {
		if line.ProductID == uuid.Nil || line.Quantity < 1 || line.UnitPriceCents < 0 {
			continue
		}
		cleaned = append(cleaned, line)
	}

	if err := s.store.Put(ctx, sessionID, cleaned); err != nil {
		return nil, err
	}
	s.metrics.IncCartMutation("load")
	return cleaned, nil
}

// Get returns the current cart snapshot.
func (s *service) Get(ctx context.Context, sessionID string) ([]Line, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, sessionID)
}

// Clear empties the session's cart.
func (s *service) Clear(ctx context.Context, sessionID string) error {
	if err := requireSession(sessionID); err != nil {
		return err
	}
	if err := s.store.Forget(ctx, sessionID); err != nil {
		return err
	}
	s.metrics.IncCartMutation("clear")
	return nil
}

func (s *service) loadProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.notifier.Notify(ctx, enums.NotificationDanger, "Product not found")
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func requireSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	return nil
}
