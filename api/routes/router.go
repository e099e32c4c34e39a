package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stockroomhq/stockroom-backend/api/controllers"
	"github.com/stockroomhq/stockroom-backend/api/middleware"
	cartsvc "github.com/stockroomhq/stockroom-backend/internal/cart"
	catalogsvc "github.com/stockroomhq/stockroom-backend/internal/catalog"
	checkoutsvc "github.com/stockroomhq/stockroom-backend/internal/checkout"
	ledgersvc "github.com/stockroomhq/stockroom-backend/internal/ledger"
	"github.com/stockroomhq/stockroom-backend/pkg/config"
	"github.com/stockroomhq/stockroom-backend/pkg/enums"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	pkgredis "github.com/stockroomhq/stockroom-backend/pkg/redis"
)

// Deps bundles everything the router needs. IdempotencyStore, Registry and
// the redis pinger may be nil; those surfaces degrade gracefully.
type Deps struct {
	Cfg              *config.Config
	Logg             *logger.Logger
	DBPinger         controllers.Pinger
	RedisPinger      controllers.Pinger
	IdempotencyStore pkgredis.IdempotencyStore
	Registry         *prometheus.Registry

	CatalogService  catalogsvc.Service
	CartService     cartsvc.Service
	LedgerService   ledgersvc.Service
	CheckoutService checkoutsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logg),
		middleware.RequestID(deps.Logg),
		middleware.Logging(deps.Logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Cfg))
		r.Get("/ready", controllers.HealthReady(deps.Cfg, deps.Logg, map[string]controllers.Pinger{
			"database": deps.DBPinger,
			"redis":    deps.RedisPinger,
		}))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/parts", controllers.PartsList(deps.CatalogService, deps.Logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Identity(deps.Logg))
			r.Use(middleware.Idempotency(deps.IdempotencyStore, deps.Cfg.Idempotency, deps.Logg))
			r.Use(middleware.RequireAnyRole(deps.Logg, enums.CommitRoles...))

			r.Get("/stock", controllers.StockList(deps.CatalogService, deps.Logg))
			r.Get("/ledger", controllers.LedgerList(deps.LedgerService, deps.Cfg.Ledger, deps.Logg))

			r.Post("/cart", controllers.CartCreate(deps.CartService, deps.Logg))
			r.Post("/cart/lines", controllers.CartAddLine(deps.CartService, deps.Logg))
			r.Get("/cart/summary", controllers.CartSummary(deps.CartService, deps.Logg))
			r.Delete("/cart/clear", controllers.CartClear(deps.CartService, deps.Logg))

			r.Post("/checkout/commit", controllers.CheckoutCommit(deps.CheckoutService, deps.Logg))
			r.Post("/checkin", controllers.Checkin(deps.CheckoutService, deps.Logg))
		})
	})

	return r
}
