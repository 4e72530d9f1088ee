package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shoppu-io/shoppu-backend/api/controllers"
	"github.com/shoppu-io/shoppu-backend/api/middleware"
	"github.com/shoppu-io/shoppu-backend/internal/auth"
	"github.com/shoppu-io/shoppu-backend/internal/cart"
	"github.com/shoppu-io/shoppu-backend/internal/catalog"
	"github.com/shoppu-io/shoppu-backend/pkg/config"
	"github.com/shoppu-io/shoppu-backend/pkg/db"
	"github.com/shoppu-io/shoppu-backend/pkg/enums"
	"github.com/shoppu-io/shoppu-backend/pkg/logger"
	"github.com/shoppu-io/shoppu-backend/pkg/metrics"
	pkgredis "github.com/shoppu-io/shoppu-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger db.Pinger,
	redisClient *pkgredis.Client,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	authService auth.Service,
	catalogService catalog.Service,
	cartService cart.Service,
) http.Handler {
	var redisPinger pkgredis.Pinger
	var idemStore pkgredis.IdempotencyStore
	if redisClient != nil {
		redisPinger = redisClient
		idemStore = redisClient
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbPinger, redisPinger))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	idempotency := middleware.Idempotency(idemStore, cfg.Cart.IdempotencyTTL, logg)
	authn := middleware.Auth(cfg.JWT, logg)
	adminOnly := middleware.RequireRole(string(enums.UserRoleAdmin), logg)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(idempotency).Post("/register", controllers.AuthRegister(authService, logg))
		r.Post("/login", controllers.AuthLogin(authService, logg))
	})

	r.Route("/api/v1/store", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoryList(catalogService, logg))
			r.Get("/{categoryId}", controllers.CategoryDetail(catalogService, logg))

			r.Group(func(r chi.Router) {
				r.Use(authn, adminOnly)
				r.Post("/", controllers.CategoryCreate(catalogService, logg))
				r.Put("/{categoryId}", controllers.CategoryUpdate(catalogService, logg))
				r.Delete("/{categoryId}", controllers.CategoryDelete(catalogService, logg))
			})
		})

		r.Route("/promotions", func(r chi.Router) {
			r.Get("/", controllers.PromotionList(catalogService, logg))
			r.Get("/{promotionId}", controllers.PromotionDetail(catalogService, logg))

			r.Group(func(r chi.Router) {
				r.Use(authn, adminOnly)
				r.Post("/", controllers.PromotionCreate(catalogService, logg))
				r.Put("/{promotionId}", controllers.PromotionUpdate(catalogService, logg))
				r.Delete("/{promotionId}", controllers.PromotionDelete(catalogService, logg))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(catalogService, logg))
			r.Get("/{productId}", controllers.ProductDetail(catalogService, logg))

			r.Group(func(r chi.Router) {
				r.Use(authn, adminOnly)
				r.Post("/", controllers.ProductCreate(catalogService, logg))
				r.Put("/{productId}", controllers.ProductUpdate(catalogService, logg))
				r.Delete("/{productId}", controllers.ProductDelete(catalogService, logg))
			})
		})

		r.Route("/carts", func(r chi.Router) {
			r.Use(authn)
			r.Get("/", controllers.CartHistory(cartService, logg))
			r.Route("/current", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(cartService, logg))
				r.With(idempotency).Put("/", controllers.CartMutate(cartService, logg))
			})
		})
	})

	return r
}
