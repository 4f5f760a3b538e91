package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/jcastellanos-dev/mercata-backend/api/responses"
	"github.com/jcastellanos-dev/mercata-backend/pkg/config"
	pkgerrors "github.com/jcastellanos-dev/mercata-backend/pkg/errors"
	"github.com/jcastellanos-dev/mercata-backend/pkg/logger"
)

const readinessTimeout = 2 * time.Second

// Pinger exposes the health check surface a readiness dependency must offer.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Mercata-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every wired dependency answers a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, db, redis Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Mercata-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		checks["db"] = "ok"
		if db == nil {
			checks["db"] = "not configured"
			healthy = false
		} else if err := db.Ping(ctx); err != nil {
			checks["db"] = "unreachable"
			healthy = false
			logg.Error(ctx, "database readiness check failed", err)
		}

		checks["redis"] = "ok"
		if redis == nil {
			checks["redis"] = "not configured"
			healthy = false
		} else if err := redis.Ping(ctx); err != nil {
			checks["redis"] = "unreachable"
			healthy = false
			logg.Error(ctx, "redis readiness check failed", err)
		}

		if !healthy {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "service not ready").WithDetails(checks))
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
