package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront-checkout/api/controllers"
	"github.com/angelmondragon/storefront-checkout/api/middleware"
	"github.com/angelmondragon/storefront-checkout/internal/checkout"
	"github.com/angelmondragon/storefront-checkout/pkg/config"
	"github.com/angelmondragon/storefront-checkout/pkg/logger"
)

type pinger interface {
	Ping(context.Context) error
}

type pageRouter interface {
	Handle(ctx context.Context, req checkout.Request, scope checkout.Scope) (*checkout.View, error)
}

type scopeBuilder interface {
	Build(r *http.Request) (*controllers.RequestScope, error)
}

type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// Dependencies are the collaborators the HTTP surface is built from.
type Dependencies struct {
	DB       pinger
	Redis    pinger
	Limiter  rateLimiter
	Checkout pageRouter
	Scopes   scopeBuilder
	Metrics  middleware.RequestObserver
	Gatherer prometheus.Gatherer
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	if cfg.App.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, deps.Metrics),
		middleware.CORS(cfg.App.CORSOrigins...),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	keyPolicy := middleware.NewKeyGuessPolicy("order_key", cfg.Checkout.KeyAttemptWindow, cfg.Checkout.KeyAttemptLimit)
	sessionPolicy := middleware.SessionPolicy{
		CookieName: cfg.Checkout.SessionCookie,
		TTL:        cfg.Checkout.SessionTTL,
		Secure:     cfg.App.IsProd(),
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(sessionPolicy, logg))
		r.Use(middleware.OptionalAuth(cfg.JWT, logg))

		page := func(vars controllers.VarsFunc) http.HandlerFunc {
			return controllers.CheckoutPage(deps.Checkout, deps.Scopes, vars, logg)
		}

		r.Route("/checkout", func(r chi.Router) {
			// legacy ?order=&key= links arrive on the bare checkout page
			r.With(middleware.KeyGuessRateLimit(keyPolicy, deps.Limiter, logg)).Get("/", page(controllers.CheckoutVars))
			r.Post("/", page(controllers.CheckoutVars))

			r.Group(func(r chi.Router) {
				r.Use(middleware.KeyGuessRateLimit(keyPolicy, deps.Limiter, logg))
				r.Get("/order-pay/", page(controllers.CheckoutVars))
				r.Get("/order-pay/{orderId}", page(controllers.OrderPayVars))
				r.Get("/order-received/", page(controllers.OrderReceivedVars))
				r.Get("/order-received/{orderId}", page(controllers.OrderReceivedVars))
			})
		})

		r.Put("/cart", controllers.CartReplace(deps.Scopes, logg))
	})

	return r
}
