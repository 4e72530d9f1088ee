package controllers

import (
	"net/http"

	"github.com/shoppu-io/shoppu-backend/api/responses"
	"github.com/shoppu-io/shoppu-backend/pkg/config"
	"github.com/shoppu-io/shoppu-backend/pkg/db"
	pkgerrors "github.com/shoppu-io/shoppu-backend/pkg/errors"
	"github.com/shoppu-io/shoppu-backend/pkg/logger"
	pkgredis "github.com/shoppu-io/shoppu-backend/pkg/redis"
)

const envHeader = "X-Shoppu-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every wired dependency answers a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbPinger db.Pinger, redisPinger pkgredis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		checks := map[string]string{}
		healthy := true

		if dbPinger != nil {
			if err := dbPinger.Ping(r.Context()); err != nil {
				checks["database"] = "unreachable"
				healthy = false
			} else {
				checks["database"] = "ok"
			}
		}
		if redisPinger != nil {
			if err := redisPinger.Ping(r.Context()); err != nil {
				checks["redis"] = "unreachable"
				healthy = false
			} else {
				checks["redis"] = "ok"
			}
		}

		if !healthy {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(checks))
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
