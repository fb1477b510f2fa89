package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/shopbalance-backend/api/responses"
	"github.com/angelmondragon/shopbalance-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/shopbalance-backend/pkg/errors"
	"github.com/angelmondragon/shopbalance-backend/pkg/logger"
)

const (
	envHeader        = "X-ShopBalance-Env"
	readinessTimeout = 2 * time.Second
)

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the database and Redis answer a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP pinger) http.HandlerFunc {
	deps := []struct {
		name string
		p    pinger
	}{
		{name: "database", p: dbP},
		{name: "redis", p: redisP},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		for _, dep := range deps {
			if dep.p == nil {
				continue
			}
			if err := dep.p.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, dep.name+" unavailable").
						WithDetails(map[string]any{"dependency": dep.name}))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
