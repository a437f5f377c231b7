package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/mixtrack-backend/api/controllers"
	"github.com/angelmondragon/mixtrack-backend/api/middleware"
	"github.com/angelmondragon/mixtrack-backend/internal/mixes"
	"github.com/angelmondragon/mixtrack-backend/internal/receipts"
	"github.com/angelmondragon/mixtrack-backend/pkg/config"
	"github.com/angelmondragon/mixtrack-backend/pkg/db"
	"github.com/angelmondragon/mixtrack-backend/pkg/logger"
	"github.com/angelmondragon/mixtrack-backend/pkg/redis"
)

// Deps groups what the router hands to its controllers. Redis and the
// metrics gatherer are optional.
type Deps struct {
	DB       db.Pinger
	Redis    *redis.Client
	Gatherer prometheus.Gatherer
	Receipts receipts.Service
	Mixes    mixes.Service
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()

	var idempotencyStore redis.IdempotencyStore
	ready := map[string]controllers.Pinger{}
	if deps.DB != nil {
		ready["db"] = deps.DB
	}
	if deps.Redis != nil {
		idempotencyStore = deps.Redis
		ready["redis"] = deps.Redis
	}

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.Origins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, ready))
	})

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idempotencyStore, cfg.Idempotency.TTL, logg))

		r.Route("/receipts", func(r chi.Router) {
			r.Post("/", controllers.ReceiptsCreate(deps.Receipts, logg))
			r.Get("/", controllers.ReceiptsList(deps.Receipts, logg))
			r.Get("/{id}", controllers.ReceiptsGet(deps.Receipts, logg))
			r.Put("/{id}", controllers.ReceiptsUpdate(deps.Receipts, logg))
			r.Delete("/{id}", controllers.ReceiptsDelete(deps.Receipts, logg))
			r.Get("/{id}/mixes", controllers.ReceiptMixes(deps.Mixes, logg))
		})

		r.Route("/mixes", func(r chi.Router) {
			r.Post("/", controllers.MixesCreate(deps.Mixes, logg))
			r.Get("/", controllers.MixesSearch(deps.Mixes, logg))
			r.Get("/{id}", controllers.MixesGet(deps.Mixes, logg))
			r.Put("/{id}", controllers.MixesUpdate(deps.Mixes, logg))
			r.Put("/{id}/markAsDelivered", controllers.MixesMarkAsDelivered(deps.Mixes, logg))
			r.Delete("/{id}", controllers.MixesDelete(deps.Mixes, logg))
		})
	})

	return r
}
