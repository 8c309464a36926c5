package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ratewise/ratewise-backend/api/controllers"
	"github.com/ratewise/ratewise-backend/api/middleware"
	"github.com/ratewise/ratewise-backend/internal/admin"
	"github.com/ratewise/ratewise-backend/internal/auth"
	"github.com/ratewise/ratewise-backend/internal/ratings"
	"github.com/ratewise/ratewise-backend/internal/stores"
	"github.com/ratewise/ratewise-backend/internal/users"
	"github.com/ratewise/ratewise-backend/pkg/config"
	"github.com/ratewise/ratewise-backend/pkg/db"
	"github.com/ratewise/ratewise-backend/pkg/enums"
	"github.com/ratewise/ratewise-backend/pkg/logger"
	"github.com/ratewise/ratewise-backend/pkg/metrics"
	"github.com/ratewise/ratewise-backend/pkg/redis"
)

// NewRouter assembles the HTTP surface. Every authenticated route sits behind
// the bearer token middleware; role gates narrow access per subtree.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	authService auth.Service,
	userService users.Service,
	storeService stores.Service,
	ratingService ratings.Service,
	adminService admin.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Metrics(httpMetrics),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.SignupWindow,
		cfg.AuthRateLimit.SignupIPLimit,
		cfg.AuthRateLimit.SignupEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbClient, redisClient, logg))
	})

	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(signupPolicy, redisClient, logg)).Post("/signup", controllers.AuthSignup(authService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Put("/v1/auth/password", controllers.AuthChangePassword(authService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.RoleUser, enums.RoleStoreOwner, enums.RoleAdmin))
			r.Get("/v1/stores", controllers.StoreDirectory(storeService, logg))
			r.Post("/v1/stores/{storeId}/rating", controllers.SubmitRating(ratingService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.RoleStoreOwner))
			r.Get("/v1/owner/dashboard", controllers.OwnerDashboard(ratingService, logg))
		})

		r.Route("/admin/v1", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.RoleAdmin))
			r.Get("/dashboard", controllers.AdminDashboard(adminService, logg))
			r.Route("/users", func(r chi.Router) {
				r.Post("/", controllers.AdminCreateUser(userService, logg))
				r.Get("/", controllers.AdminListUsers(userService, logg))
				r.Get("/{userId}", controllers.AdminUserDetails(userService, logg))
			})
			r.Route("/stores", func(r chi.Router) {
				r.Post("/", controllers.AdminCreateStore(storeService, logg))
				r.Get("/", controllers.AdminListStores(storeService, logg))
			})
		})
	})

	return r
}
