package router

import (
	"time"

	"github.com/paridu/pos-backend/internal/config"
	"github.com/paridu/pos-backend/internal/handler"
	"github.com/paridu/pos-backend/internal/infra"
	"github.com/paridu/pos-backend/internal/middleware"
	"github.com/paridu/pos-backend/internal/repository"
	"github.com/paridu/pos-backend/internal/service"
	"github.com/paridu/pos-backend/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, analystCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	analystClient := infra.NewAnalystClient(cfg.AnalystAPIURL, cfg.AnalystAPIKey, cfg.AnalystModel)

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	historyRepo := repository.NewStockHistoryRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(cfg)
	productSvc := service.NewProductService(productRepo, historyRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	inventorySvc := service.NewInventoryService(productRepo, historyRepo)
	saleSvc := service.NewSaleService(saleRepo, productRepo, customerRepo, historyRepo, dispatcher)
	reportSvc := service.NewReportService(saleRepo, productRepo)
	backupSvc := service.NewBackupService(productRepo, customerRepo, saleRepo, historyRepo)
	analystSvc := service.NewAnalystService(analystClient, analystCB, saleRepo, productRepo)
	settingsSvc := service.NewSettingsService(settingRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	backupH := handler.NewBackupHandler(backupSvc)
	analystH := handler.NewAnalystHandler(analystSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, analystCB))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/v1/sessions", authH.CreateSession)

	// Protected routes
	sessionMW := middleware.SessionAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole(middleware.RoleAdmin, middleware.RoleCashier)
	adminOnly := middleware.RequireRole(middleware.RoleAdmin)

	v1 := r.Group("/v1", sessionMW)
	{
		// Register flow — both roles
		v1.POST("/sales", anyRole, salesH.ProcessSale)
		v1.GET("/sales", anyRole, salesH.List)
		v1.GET("/sales/:id", anyRole, salesH.GetByID)

		// Catalog reads — both roles (the register needs lookups)
		v1.GET("/products", anyRole, productsH.List)
		v1.GET("/products/:id", anyRole, productsH.GetByID)
		// Barcode lookup lives outside /products to keep :id unambiguous
		v1.GET("/barcode/:barcode", anyRole, productsH.GetByBarcode)

		// Catalog writes — admin only
		prods := v1.Group("/products", adminOnly)
		{
			prods.POST("", productsH.Create)
			prods.PUT("/:id", productsH.Update)
			prods.DELETE("/:id", productsH.Archive)
			prods.PATCH("/:id/reactivate", productsH.Reactivate)
		}

		// Customers — both roles can read and enroll at the register
		v1.GET("/customers", anyRole, customersH.List)
		v1.GET("/customers/:id", anyRole, customersH.GetByID)
		v1.POST("/customers", anyRole, customersH.Create)
		v1.PUT("/customers/:id", adminOnly, customersH.Update)
		v1.DELETE("/customers/:id", adminOnly, customersH.Archive)

		// Inventory — admin only
		inv := v1.Group("/inventory", adminOnly)
		{
			inv.POST("/adjust", inventoryH.AdjustStock)
			inv.GET("/history", inventoryH.ListHistory)
			inv.GET("/low-stock", productsH.ListLowStock)
		}

		// Reports — admin only
		reports := v1.Group("/reports", adminOnly)
		{
			reports.GET("/summary", reportsH.Summary)
			reports.GET("/revenue", reportsH.RevenueSeries)
			reports.GET("/sales.csv", reportsH.ExportCSV)
		}

		// Backup — admin only
		backup := v1.Group("/backup", adminOnly)
		{
			backup.GET("", backupH.Export)
			backup.POST("/restore", backupH.Restore)
		}

		// Analyst — admin only
		v1.POST("/analyst/ask", adminOnly, analystH.Ask)

		// Settings — admin only
		settings := v1.Group("/settings", adminOnly)
		{
			settings.GET("", settingsH.Get)
			settings.PUT("", settingsH.Update)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
