package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/ssbcompass-backend/api/routes"
	"github.com/angelmondragon/ssbcompass-backend/internal/analytics"
	"github.com/angelmondragon/ssbcompass-backend/internal/auth"
	"github.com/angelmondragon/ssbcompass-backend/internal/candidates"
	"github.com/angelmondragon/ssbcompass-backend/internal/catalog"
	"github.com/angelmondragon/ssbcompass-backend/internal/events"
	"github.com/angelmondragon/ssbcompass-backend/internal/learners"
	"github.com/angelmondragon/ssbcompass-backend/internal/ledger"
	"github.com/angelmondragon/ssbcompass-backend/internal/payments"
	"github.com/angelmondragon/ssbcompass-backend/internal/seed"
	"github.com/angelmondragon/ssbcompass-backend/pkg/config"
	"github.com/angelmondragon/ssbcompass-backend/pkg/db"
	"github.com/angelmondragon/ssbcompass-backend/pkg/instance"
	"github.com/angelmondragon/ssbcompass-backend/pkg/logger"
	"github.com/angelmondragon/ssbcompass-backend/pkg/metrics"
	"github.com/angelmondragon/ssbcompass-backend/pkg/migrate"
	"github.com/angelmondragon/ssbcompass-backend/pkg/redis"
	"github.com/angelmondragon/ssbcompass-backend/pkg/security"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.JWT.UsingDevSecret {
		logg.Warn(ctx, "using the built-in development jwt secret; set "+config.EnvJWTSecret)
	}

	repos := memoryStores()
	var dbClient *db.Client
	if cfg.DB.Persistent() {
		dbClient, err = db.New(ctx, cfg.DB, logg)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, dbClient.Close())
		}()
		if err := migrate.EnsureSchema(ctx, cfg, logg, dbClient); err != nil {
			return err
		}
		repos = gormStores(dbClient)
	} else {
		logg.Warn(ctx, "running on in-memory stores; data is lost on restart")
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, redisClient.Close())
		}()
	} else {
		redisClient = redis.NewInMemory()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	domainMetrics := metrics.NewDomainMetrics(registry)

	svc, err := buildServices(cfg, repos, domainMetrics)
	if err != nil {
		return err
	}

	if cfg.FeatureFlags.SeedDemoData {
		seeded, err := seed.Load(ctx, seed.Params{
			Learners:    repos.learners,
			Admins:      repos.admins,
			Courses:     repos.courses,
			Purchases:   repos.purchases,
			Candidates:  repos.candidates,
			Events:      repos.events,
			Hasher:      security.NewHasher(cfg.Password),
			GracePeriod: cfg.Ledger.RefundGracePeriod,
		})
		if err != nil {
			return err
		}
		logg.Info(logg.WithField(ctx, "seeded", seeded), "demo data checked")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
		"db":       cfg.DB.NormalizedDriver(),
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, routes.Infra{
			DB:       dbClient,
			Redis:    redisClient,
			Gatherer: registry,
			HTTP:     metrics.NewHTTPMetrics(registry),
		}, svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logg.Info(ctx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func buildServices(cfg *config.Config, repos stores, domainMetrics *metrics.DomainMetrics) (routes.Services, error) {
	catalogService, err := catalog.NewService(repos.courses, nil)
	if err != nil {
		return routes.Services{}, err
	}

	ledgerService, err := ledger.NewService(ledger.ServiceParams{
		Store:        repos.purchases,
		Catalog:      catalogService,
		GracePeriod:  cfg.Ledger.RefundGracePeriod,
		EnforcePrice: cfg.Ledger.EnforcePrice,
		Metrics:      domainMetrics,
	})
	if err != nil {
		return routes.Services{}, err
	}

	authService, err := auth.NewService(auth.ServiceParams{
		Learners:  repos.learners,
		Admins:    repos.admins,
		Ledger:    ledgerService,
		Hasher:    security.NewHasher(cfg.Password),
		JWTConfig: cfg.JWT,
		Metrics:   domainMetrics,
	})
	if err != nil {
		return routes.Services{}, err
	}

	paymentsService, err := payments.NewService(payments.ServiceParams{
		Catalog:      catalogService,
		Ledger:       ledgerService,
		Config:       cfg.Payments,
		EnforcePrice: cfg.Ledger.EnforcePrice,
	})
	if err != nil {
		return routes.Services{}, err
	}

	analyticsService, err := analytics.NewService(repos.learners, ledgerService, catalogService)
	if err != nil {
		return routes.Services{}, err
	}

	directory, err := learners.NewDirectory(repos.learners, ledgerService)
	if err != nil {
		return routes.Services{}, err
	}

	candidateService, err := candidates.NewService(repos.candidates, nil)
	if err != nil {
		return routes.Services{}, err
	}

	eventService, err := events.NewService(repos.events, nil)
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Auth:       authService,
		Catalog:    catalogService,
		Ledger:     ledgerService,
		Payments:   paymentsService,
		Analytics:  analyticsService,
		Directory:  directory,
		Candidates: candidateService,
		Events:     eventService,
	}, nil
}
