package router

import (
	"context"
	"time"

	"github.com/Lahari-104/Mediguard/internal/config"
	"github.com/Lahari-104/Mediguard/internal/handler"
	"github.com/Lahari-104/Mediguard/internal/middleware"
	"github.com/Lahari-104/Mediguard/internal/model"
	"github.com/Lahari-104/Mediguard/internal/repository"
	"github.com/Lahari-104/Mediguard/internal/service"
	"github.com/Lahari-104/Mediguard/internal/telemetry"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Auth          service.AuthService
	Manufacturers service.ManufacturerService
	Lifecycle     service.BatchLifecycle
	Ledger        service.StockLedger
	Alerts        service.AlertEngine
	Dashboard     service.DashboardService
}

// NewServices builds the service graph.
// Dependency graph: Service ← Repository ← DB/Redis, with queue for async jobs.
func NewServices(cfg *config.Config, db *gorm.DB, rdb *redis.Client, queue service.TaskQueue) Services {
	userRepo := repository.NewUserRepository(db)
	manufacturerRepo := repository.NewManufacturerRepository(db)
	batchRepo := repository.NewBatchRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	reportRepo := repository.NewQualityReportRepository(db)
	alertRepo := repository.NewAlertRepository(db)

	rules := service.AlertRules{
		ExpiryWindow:  cfg.ExpiryWindow(),
		LowStockRatio: cfg.LowStockThreshold(),
	}
	alerts := service.NewAlertEngine(alertRepo, inventoryRepo, batchRepo, queue, rules)
	notifier := service.NewNotifier(userRepo, queue)

	return Services{
		Auth:          service.NewAuthService(userRepo, cfg),
		Manufacturers: service.NewManufacturerService(manufacturerRepo),
		Lifecycle:     service.NewBatchLifecycle(batchRepo, inventoryRepo, reportRepo, manufacturerRepo, alerts, notifier),
		Ledger:        service.NewStockLedger(inventoryRepo, batchRepo),
		Alerts:        alerts,
		Dashboard:     service.NewDashboardService(batchRepo, manufacturerRepo, inventoryRepo, reportRepo, alertRepo, rdb),
	}
}

// HealthChecks pings Postgres and Redis.
func HealthChecks(db *gorm.DB, rdb *redis.Client) map[string]handler.Check {
	return map[string]handler.Check{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		},
	}
}

// New returns a configured Gin engine.
func New(cfg *config.Config, svc Services, checks map[string]handler.Check) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	authH := handler.NewAuthHandler(svc.Auth)
	manufacturersH := handler.NewManufacturersHandler(svc.Manufacturers)
	batchesH := handler.NewBatchesHandler(svc.Lifecycle, svc.Ledger)
	alertsH := handler.NewAlertsHandler(svc.Alerts)
	dashboardH := handler.NewDashboardHandler(svc.Dashboard)

	// Public
	r.GET("/health", handler.Health(checks))
	r.GET("/metrics", telemetry.Handler())

	auth := r.Group("/v1/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	admin := middleware.RequireRole(model.RoleAdmin)
	producers := middleware.RequireRole(model.RoleAdmin, model.RoleManufacturer)
	operators := middleware.RequireRole(model.RoleAdmin, model.RoleStaff)

	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		v1.GET("/auth/me", authH.Me)

		v1.GET("/manufacturers", manufacturersH.List)
		v1.POST("/manufacturers", admin, manufacturersH.Create)

		v1.GET("/batches", batchesH.ListBatches)
		v1.GET("/batches/:id", batchesH.GetBatch)
		v1.POST("/batches", producers, batchesH.CreateBatch)
		v1.PATCH("/batches/:id/status", producers, batchesH.UpdateStatus)

		v1.GET("/inventory", batchesH.ListInventory)
		v1.POST("/inventory", operators, batchesH.RegisterInventory)
		v1.PUT("/inventory/:id/stock", operators, batchesH.AdjustStock)

		v1.GET("/quality-reports", batchesH.ListQualityReports)
		v1.POST("/quality-reports", operators, batchesH.CreateQualityReport)

		v1.GET("/alerts", alertsH.List)
		v1.PUT("/alerts/:id/read", alertsH.MarkRead)
		v1.POST("/alerts/check", operators, alertsH.Check)

		dash := v1.Group("/dashboard")
		{
			dash.GET("/stats", dashboardH.Stats)
			dash.GET("/batch-traceability/:id", dashboardH.Traceability)
			dash.GET("/batch-traceability/:id/pdf", dashboardH.TraceabilityPDF)
		}
	}

	// Swagger UI only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
