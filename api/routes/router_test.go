package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/warunglabs/warungpos-backend/internal/cart"
	"github.com/warunglabs/warungpos-backend/internal/catalog"
	checkoutsvc "github.com/warunglabs/warungpos-backend/internal/checkout"
	"github.com/warunglabs/warungpos-backend/internal/notifications"
	"github.com/warunglabs/warungpos-backend/internal/orders"
	"github.com/warunglabs/warungpos-backend/pkg/config"
	"github.com/warunglabs/warungpos-backend/pkg/db/models"
	"github.com/warunglabs/warungpos-backend/pkg/enums"
	pkgerrors "github.com/warunglabs/warungpos-backend/pkg/errors"
	"github.com/warunglabs/warungpos-backend/pkg/logger"
)

func TestRouterHealthLive(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if env := rec.Header().Get("X-WarungPOS-Env"); env != "dev" {
		t.Fatalf("env header = %q, want dev", env)
	}
}

func TestRouterCartEndpointIssuesSession(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/pos/cart", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Session-Id") == "" {
		t.Fatal("expected session id issued")
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func newTestRouter() http.Handler {
	cfg := &config.Config{App: config.AppConfig{Env: "dev", Port: "8080"}}
	logg := logger.New(logger.Options{Level: zerolog.ErrorLevel})

	return NewRouter(Deps{
		Config:        cfg,
		Logger:        logg,
		Cart:          stubCart{},
		Catalog:       stubCatalog{},
		Checkout:      stubCheckout{},
		Orders:        stubOrders{},
		PaymentMethod: stubPaymentMethods{},
		Notifications: stubNotifications{},
	})
}

type stubCart struct{}

func (stubCart) AddItem(ctx context.Context, sessionID string, productID uuid.UUID) ([]cart.Line, error) {
	return []cart.Line{}, nil
}
func (stubCart) IncreaseQuantity(ctx context.Context, sessionID string, productID uuid.UUID) ([]cart.Line, error) {
	return []cart.Line{}, nil
}
func (stubCart) DecreaseQuantity(ctx context.Context, sessionID string, productID uuid.UUID) ([]cart.Line, error) {
	return []cart.Line{}, nil
}
func (stubCart) LoadItems(ctx context.Context, sessionID string, lines []cart.Line) ([]cart.Line, error) {
	return lines, nil
}
func (stubCart) Get(ctx context.Context, sessionID string) ([]cart.Line, error) {
	return []cart.Line{}, nil
}
func (stubCart) Clear(ctx context.Context, sessionID string) error { return nil }

type stubCatalog struct{}

func (stubCatalog) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}
func (stubCatalog) ListAvailable(ctx context.Context, params catalog.ListParams) (*catalog.ListResult, error) {
	return &catalog.ListResult{Items: []models.Product{}}, nil
}
func (stubCatalog) ListLowStock(ctx context.Context) ([]models.Product, error) {
	return []models.Product{}, nil
}
func (stubCatalog) ListFavorites(ctx context.Context, limit int) ([]catalog.FavoriteProduct, error) {
	return []catalog.FavoriteProduct{}, nil
}

type stubCheckout struct{}

func (stubCheckout) Checkout(ctx context.Context, sessionID string, input checkoutsvc.Input) (*models.Order, error) {
	return &models.Order{ID: uuid.New()}, nil
}

type stubOrders struct{}

func (stubOrders) List(ctx context.Context, params orders.ListParams) (*orders.ListResult, error) {
	return &orders.ListResult{Items: []models.Order{}}, nil
}
func (stubOrders) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

type stubPaymentMethods struct{}

func (stubPaymentMethods) List(ctx context.Context) ([]models.PaymentMethod, error) {
	return []models.PaymentMethod{}, nil
}
func (stubPaymentMethods) GetByID(ctx context.Context, id uuid.UUID) (*models.PaymentMethod, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment method not found")
}

type stubNotifications struct{}

func (stubNotifications) Notify(ctx context.Context, kind enums.NotificationKind, message string) {}
func (stubNotifications) List(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
	return &notifications.ListResult{Items: []models.Notification{}}, nil
}
func (stubNotifications) MarkRead(ctx context.Context, id uuid.UUID) error { return nil }
func (stubNotifications) MarkAllRead(ctx context.Context) (int64, error)   { return 0, nil }
