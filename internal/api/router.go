package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/bizboard/backoffice/docs"
	"github.com/bizboard/backoffice/internal/api/handler"
	"github.com/bizboard/backoffice/internal/api/middleware"
	"github.com/bizboard/backoffice/internal/core/domain"
	"github.com/bizboard/backoffice/internal/core/service"
	"github.com/bizboard/backoffice/internal/infrastructure/config"
	mongodb "github.com/bizboard/backoffice/internal/infrastructure/db/mongo"
	redisdb "github.com/bizboard/backoffice/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(middleware.Tracing())
	e.Use(echoprometheus.NewMiddleware("backoffice"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	tokenStore := redisdb.NewRefreshTokenStore(rdb)
	authService := service.NewAuthService(userRepo, tokenStore, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	statsService := service.NewStatsService(mongodb.NewStatsRepository(db))

	cookies := handler.NewCookieWriter(cfg.Production(), cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authHandler := handler.NewAuthHandler(authService, cookies, log)
	dashboardHandler := handler.NewDashboardHandler(statsService)
	pageHandler := handler.NewPageHandler()

	authRequired := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/profile", authHandler.Profile, authRequired)

	// --- Role-scoped dashboard endpoints ---
	// RBAC decides the area; the permission check covers the capability.
	areas := []struct {
		area  string
		roles []domain.Role
	}{
		{"admin", []domain.Role{domain.RoleAdmin}},
		{"sales", []domain.Role{domain.RoleSales, domain.RoleAdmin}},
		{"finance", []domain.Role{domain.RoleFinance, domain.RoleAdmin}},
		{"operations", []domain.Role{domain.RoleOperations, domain.RoleAdmin}},
	}
	for _, a := range areas {
		e.GET("/"+a.area+"/dashboard/stats",
			dashboardHandler.Stats(a.area),
			authRequired,
			middleware.RBAC(a.roles...),
			middleware.RequirePermission(a.area+".dashboard.view"),
		)
	}

	// --- Page shell (presence-only guard; role routing happens after the
	// profile is fetched) ---
	pages := e.Group("", middleware.Guard())
	for _, path := range []string{"/login", "/register", "/password-reset", "/dashboard", "/admin", "/sales", "/finance", "/operations"} {
		pages.GET(path, pageHandler.Shell)
	}

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
