package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/ssbcompass-backend/api/controllers"
	"github.com/angelmondragon/ssbcompass-backend/api/middleware"
	"github.com/angelmondragon/ssbcompass-backend/internal/analytics"
	"github.com/angelmondragon/ssbcompass-backend/internal/auth"
	"github.com/angelmondragon/ssbcompass-backend/internal/candidates"
	"github.com/angelmondragon/ssbcompass-backend/internal/catalog"
	"github.com/angelmondragon/ssbcompass-backend/internal/events"
	"github.com/angelmondragon/ssbcompass-backend/internal/learners"
	"github.com/angelmondragon/ssbcompass-backend/internal/ledger"
	"github.com/angelmondragon/ssbcompass-backend/internal/payments"
	"github.com/angelmondragon/ssbcompass-backend/pkg/config"
	"github.com/angelmondragon/ssbcompass-backend/pkg/db"
	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
	"github.com/angelmondragon/ssbcompass-backend/pkg/logger"
	"github.com/angelmondragon/ssbcompass-backend/pkg/metrics"
	"github.com/angelmondragon/ssbcompass-backend/pkg/redis"
)

// Services bundles the domain services exposed over HTTP.
type Services struct {
	Auth       auth.Service
	Catalog    catalog.Service
	Ledger     ledger.Service
	Payments   payments.Service
	Analytics  analytics.Service
	Directory  learners.Directory
	Candidates candidates.Service
	Events     events.Service
}

// Infra carries the shared infrastructure. DB and Redis may be nil when the
// service runs on in-memory stores.
type Infra struct {
	DB       *db.Client
	Redis    *redis.Client
	Gatherer prometheus.Gatherer
	HTTP     *metrics.HTTPMetrics
	Clock    func() time.Time
}

type counterStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

type idempotencyStore interface {
	Get(context.Context, string) (string, error)
	Set(context.Context, string, any, time.Duration) error
	SetNX(context.Context, string, any, time.Duration) (bool, error)
	Del(context.Context, string) error
	IdempotencyKey(scope, id string) string
}

func NewRouter(cfg *config.Config, logg *logger.Logger, infra Infra, svc Services) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Logging(logg),
		middleware.Metrics(infra.HTTP),
	)

	var (
		limiter counterStore
		keys    idempotencyStore
		checks  []controllers.ReadinessCheck
	)
	if infra.Redis != nil {
		limiter = infra.Redis
		keys = infra.Redis
		checks = append(checks, controllers.ReadinessCheck{Name: "redis", Pinger: infra.Redis})
	}
	if infra.DB != nil {
		checks = append(checks, controllers.ReadinessCheck{Name: "database", Pinger: infra.DB})
	}
	clock := controllers.Clock(infra.Clock)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	adminLoginPolicy := middleware.NewAuthRateLimitPolicy(
		"admin-login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	authenticated := middleware.Auth(cfg.JWT, logg)
	learnerOnly := middleware.RequireKind(enums.PrincipalKindLearner, logg)
	adminOnly := middleware.RequireKind(enums.PrincipalKindAdmin, logg)

	if infra.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(infra.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, checks...))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, limiter, logg)).Post("/register", controllers.AuthRegister(svc.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).Post("/login", controllers.AuthLogin(svc.Auth, logg))
		r.With(middleware.AuthRateLimit(adminLoginPolicy, limiter, logg)).Post("/admin-login", controllers.AdminAuthLogin(svc.Auth, logg))
		r.With(authenticated).Get("/verify", controllers.AuthVerify(svc.Auth, logg))
	})

	r.Route("/api/v1/courses", func(r chi.Router) {
		r.Get("/", controllers.ListCourses(svc.Catalog, logg))
		r.Get("/{courseId}", controllers.GetCourse(svc.Catalog, logg))
		r.With(authenticated, learnerOnly).Get("/{courseId}/access", controllers.CourseAccess(svc.Ledger, logg))
	})

	r.Route("/api/v1/payments", func(r chi.Router) {
		r.Use(authenticated, learnerOnly)
		r.Post("/initiate", controllers.PaymentsInitiate(svc.Payments, logg))
		r.With(middleware.Idempotency(keys, cfg.Payments.IdempotencyTTL, logg)).Post("/verify", controllers.PaymentsVerify(svc.Payments, clock, logg))
		r.Get("/history", controllers.PaymentsHistory(svc.Payments, clock, logg))
		r.Get("/{purchaseId}/refund-eligibility", controllers.RefundEligibility(svc.Ledger, clock, logg))
		r.Post("/{purchaseId}/refund", controllers.RequestRefund(svc.Ledger, clock, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(authenticated, adminOnly)
		r.Get("/dashboard", controllers.AdminDashboard(svc.Analytics, clock, logg))
		r.Get("/users", controllers.AdminListUsers(svc.Directory, logg))

		r.Route("/courses", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateCourse(svc.Catalog, logg))
			r.Put("/{courseId}", controllers.AdminUpdateCourse(svc.Catalog, logg))
			r.Delete("/{courseId}", controllers.AdminDeleteCourse(svc.Catalog, logg))
		})

		r.Route("/candidates", func(r chi.Router) {
			r.Get("/", controllers.AdminListCandidates(svc.Candidates, logg))
			r.Post("/", controllers.AdminCreateCandidate(svc.Candidates, logg))
			r.Delete("/{candidateId}", controllers.AdminDeleteCandidate(svc.Candidates, logg))
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", controllers.AdminListEvents(svc.Events, logg))
			r.Post("/", controllers.AdminCreateEvent(svc.Events, logg))
		})
	})

	return r
}
