package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/ssbcompass-backend/api/responses"
	"github.com/angelmondragon/ssbcompass-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/ssbcompass-backend/pkg/errors"
	"github.com/angelmondragon/ssbcompass-backend/pkg/logger"
)

const (
	envHeader        = "X-SSBCompass-Env"
	readinessTimeout = 2 * time.Second
)

type pinger interface {
	Ping(context.Context) error
}

// ReadinessCheck names one backing dependency probed by HealthReady.
type ReadinessCheck struct {
	Name   string
	Pinger pinger
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every configured dependency and fails with 503 if any is down.
func HealthReady(cfg *config.Config, logg *logger.Logger, checks ...ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		status := map[string]string{}
		for _, check := range checks {
			if check.Pinger == nil {
				continue
			}
			if err := check.Pinger.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, check.Name+" unavailable").
					WithDetails(map[string]any{"dependency": check.Name}))
				return
			}
			status[check.Name] = "ok"
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": status})
	}
}
