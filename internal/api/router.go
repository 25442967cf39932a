// Package api assembles the HTTP surface: routing, middleware, and the
// central error handler.
package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/FelisbertoSilva/RHProjeto/internal/api/handler"
	"github.com/FelisbertoSilva/RHProjeto/internal/api/middleware"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/invariant"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/ports"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/service"
	mongodb "github.com/FelisbertoSilva/RHProjeto/internal/infrastructure/db/mongo"
	redisdb "github.com/FelisbertoSilva/RHProjeto/internal/infrastructure/db/redis"
)

// RouterConfig carries the settings the HTTP layer needs beyond its storage
// handles.
type RouterConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminSetupKey string
}

// NewRouter builds and returns the Echo instance with all routes registered.
// recorder may be nil, in which case no audit trail is kept.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg RouterConfig, recorder ports.AuditRecorder, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("hr"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	credRepo := mongodb.NewCredentialRepository(db)
	deptRepo := mongodb.NewDepartmentRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	revocation := redisdb.NewRevocationList(rdb, cfg.TokenTTL)

	checker := invariant.New(userRepo, deptRepo, nil)

	authService := service.NewAuthService(userRepo, credRepo, deptRepo, checker, cfg.JWTSecret, cfg.TokenTTL, cfg.AdminSetupKey, log)
	userService := service.NewUserService(userRepo, checker, revocation, log)
	deptService := service.NewDepartmentService(deptRepo, userRepo, checker, log)
	taskService := service.NewTaskService(taskRepo, userRepo, checker, nil, log)
	auditService := service.NewAuditService(mongodb.NewAuditRepository(db), nil)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	deptHandler := handler.NewDepartmentHandler(deptService)
	taskHandler := handler.NewTaskHandler(taskService)
	auditHandler := handler.NewAuditHandler(auditService)

	auth := middleware.Auth(cfg.JWTSecret, revocation)
	audit := middleware.Audit(recorder)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	adminOrManager := middleware.RBAC(domain.RoleAdmin, domain.RoleManager)

	// --- Public routes ---
	e.POST("/api/users/login", authHandler.Login)
	e.POST("/api/users/create-admin", authHandler.CreateAdmin)

	// --- Users ---
	users := e.Group("/api/users", auth, audit)
	users.POST("/register-user", authHandler.RegisterUser)
	users.GET("", userHandler.List)
	users.GET("/username/:username", userHandler.GetByUsername)
	users.GET("/by-nif/:nif", userHandler.GetByNIF)
	users.GET("/by-department/:name", userHandler.ListByDepartment, adminOrManager)
	users.PUT("/username/:username", userHandler.Update)
	users.PUT("/inactivate/:username", userHandler.Inactivate)
	users.GET("/balance/:nif", userHandler.GetBalance)
	users.PUT("/balance/:nif", userHandler.UpdateBalance)
	users.POST("/:username/change-password", authHandler.ChangePassword)

	// --- Departments ---
	departments := e.Group("/api/departments", auth, audit)
	departments.POST("", deptHandler.Create, adminOnly)
	departments.GET("", deptHandler.List, adminOrManager)
	departments.GET("/canteen-discount", deptHandler.CanteenDiscount)
	departments.GET("/:name", deptHandler.Get, adminOrManager)
	departments.PUT("/:name", deptHandler.Update, adminOnly)
	departments.DELETE("/:name", deptHandler.Delete, adminOnly)

	// --- Tasks ---
	tasks := e.Group("/api/tasks", auth, audit)
	tasks.POST("", taskHandler.Create, adminOrManager)
	tasks.GET("", taskHandler.List, adminOrManager)
	tasks.GET("/due-next-week", taskHandler.ListDueNextWeek)
	tasks.GET("/:id", taskHandler.GetByID)
	tasks.GET("/user/:username", taskHandler.ListByUser)
	tasks.PUT("/:id", taskHandler.Update)

	// --- Audit trail ---
	e.GET("/api/audit/:username", auditHandler.ListByActor, auth, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
