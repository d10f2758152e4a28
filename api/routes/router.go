package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/warunglabs/warungpos-backend/api/controllers"
	"github.com/warunglabs/warungpos-backend/api/middleware"
	"github.com/warunglabs/warungpos-backend/internal/cart"
	"github.com/warunglabs/warungpos-backend/internal/catalog"
	checkoutsvc "github.com/warunglabs/warungpos-backend/internal/checkout"
	"github.com/warunglabs/warungpos-backend/internal/notifications"
	"github.com/warunglabs/warungpos-backend/internal/orders"
	"github.com/warunglabs/warungpos-backend/internal/paymentmethods"
	"github.com/warunglabs/warungpos-backend/pkg/config"
	"github.com/warunglabs/warungpos-backend/pkg/logger"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	HealthChecks  map[string]func() error
	Cart          cart.Service
	Catalog       catalog.Service
	Checkout      checkoutsvc.Service
	Orders        orders.Service
	PaymentMethod paymentmethods.Service
	Notifications notifications.Service
	Metrics       prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins...),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.HealthChecks))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(logg))

			r.Route("/pos", func(r chi.Router) {
				r.Get("/cart", controllers.PosCartGet(deps.Cart, logg))
				r.Post("/cart/items", controllers.PosCartAdd(deps.Cart, logg))
				r.Put("/cart/items", controllers.PosCartLoad(deps.Cart, logg))
				r.Post("/cart/items/{productID}/increase", controllers.PosCartIncrease(deps.Cart, logg))
				r.Post("/cart/items/{productID}/decrease", controllers.PosCartDecrease(deps.Cart, logg))
				r.Delete("/cart", controllers.PosCartClear(deps.Cart, logg))
				r.Post("/cart/recompute", controllers.PosRecompute(deps.Cart, deps.PaymentMethod, logg))
				r.Post("/checkout", controllers.Checkout(deps.Checkout, logg))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Catalog, logg))
			r.Get("/low-stock", controllers.ListLowStockProducts(deps.Catalog, logg))
			r.Get("/favorites", controllers.ListFavoriteProducts(deps.Catalog, logg))
			r.Get("/{productID}", controllers.GetProduct(deps.Catalog, logg))
		})

		r.Get("/payment-methods", controllers.ListPaymentMethods(deps.PaymentMethod, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(deps.Orders, logg))
			r.Get("/{orderID}", controllers.GetOrder(deps.Orders, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(deps.Notifications, logg))
			r.Post("/{notificationID}/read", controllers.MarkNotificationRead(deps.Notifications, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(deps.Notifications, logg))
		})
	})

	return r
}
