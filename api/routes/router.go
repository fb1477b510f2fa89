package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/shopbalance-backend/api/controllers"
	reportcontrollers "github.com/angelmondragon/shopbalance-backend/api/controllers/reports"
	"github.com/angelmondragon/shopbalance-backend/api/middleware"
	"github.com/angelmondragon/shopbalance-backend/internal/reconcile"
	"github.com/angelmondragon/shopbalance-backend/pkg/config"
	"github.com/angelmondragon/shopbalance-backend/pkg/db"
	"github.com/angelmondragon/shopbalance-backend/pkg/logger"
	"github.com/angelmondragon/shopbalance-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	reportService reconcile.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/admin/v1/reports/daily", func(r chi.Router) {
		r.Get("/", reportcontrollers.ListDaily(reportService, logg))
		r.Post("/recalculate", reportcontrollers.Recalculate(reportService, logg))
		r.Get("/{shopId}", reportcontrollers.ShopDetail(reportService, logg))
	})

	return r
}
