package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/resto/backend/internal/application/catalog"
	invapp "github.com/resto/backend/internal/application/inventory"
	orderapp "github.com/resto/backend/internal/application/ordering"
	recipeapp "github.com/resto/backend/internal/application/recipe"
	"github.com/resto/backend/internal/domain/recipe"
	"github.com/resto/backend/internal/infrastructure/auth"
	"github.com/resto/backend/internal/infrastructure/config"
	"github.com/resto/backend/internal/infrastructure/event"
	"github.com/resto/backend/internal/infrastructure/logger"
	"github.com/resto/backend/internal/infrastructure/notify"
	"github.com/resto/backend/internal/infrastructure/persistence"
	"github.com/resto/backend/internal/interfaces/http/handler"
	"github.com/resto/backend/internal/interfaces/http/middleware"
	"github.com/resto/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting resto backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database with zap-backed GORM logging
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	catalogItemRepo := persistence.NewGormCatalogItemRepository(db.DB)
	conversionRepo := persistence.NewGormUnitConversionRepository(db.DB)
	recipeRepo := persistence.NewGormRecipeRepository(db.DB)
	recordRepo := persistence.NewGormInventoryRecordRepository(db.DB)
	entryRepo := persistence.NewGormStockEntryRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Transaction scopes
	txScope := persistence.NewGormTransactionScope(db.DB)
	fulfillmentScope := persistence.NewGormFulfillmentScope(db.DB)
	recipeScope := persistence.NewGormRecipeScope(db.DB)

	// Recipe consumption resolver with unit conversion support
	converter := persistence.NewGormUnitConverter(conversionRepo)
	resolver := recipe.NewConsumptionResolver(recipeRepo, catalogItemRepo, converter)

	// Application services
	catalogService := catalogapp.NewService(catalogItemRepo, conversionRepo)
	recipeService := recipeapp.NewService(recipeScope, recipeRepo, catalogItemRepo)
	stockService := invapp.NewService(txScope, recordRepo, entryRepo, catalogItemRepo)
	fulfillmentService := orderapp.NewFulfillmentService(
		fulfillmentScope, orderRepo, recordRepo, catalogItemRepo, resolver,
	)

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	catalogService.SetEventPublisher(eventBus)
	recipeService.SetEventPublisher(eventBus)
	stockService.SetEventPublisher(eventBus)
	fulfillmentService.SetEventPublisher(eventBus)

	// Redis fan-out of order lifecycle events for kitchen displays
	if cfg.Notify.Enabled {
		notifier, err := notify.NewRedisOrderNotifier(&cfg.Redis, cfg.Notify.Channel, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := notifier.Close(); err != nil {
				log.Error("Error closing Redis notifier", zap.Error(err))
			}
		}()
		eventBus.Subscribe(notifier)
		log.Info("Order notifications enabled",
			zap.String("channel", cfg.Notify.Channel),
			zap.Strings("events", notifier.EventTypes()),
		)
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP handlers
	catalogHandler := handler.NewCatalogHandler(catalogService)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	stockHandler := handler.NewStockHandler(stockService)
	orderHandler := handler.NewOrderHandler(fulfillmentService)
	systemHandler := handler.NewSystemHandler(db, cfg.App.Name, cfg.App.Env)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.GET("/health", systemHandler.Health)

	publicPaths := []string{
		"/api/v1/system/ping",
		"/api/v1/system/info",
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths:  publicPaths,
		Logger:     log,
	}))
	r.Use(middleware.TenantMiddlewareWithConfig(middleware.TenantMiddlewareConfig{
		HeaderEnabled: true,
		JWTEnabled:    true,
		SkipPaths:     publicPaths,
		Required:      true,
		Logger:        log,
	}))

	// Catalog domain: items and unit conversions
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/items", catalogHandler.CreateItem)
	catalogRoutes.GET("/items", catalogHandler.ListItems)
	catalogRoutes.GET("/items/:id", catalogHandler.GetItem)
	catalogRoutes.PUT("/items/:id", catalogHandler.UpdateItem)
	catalogRoutes.POST("/items/:id/activate", catalogHandler.ActivateItem)
	catalogRoutes.POST("/items/:id/deactivate", catalogHandler.DeactivateItem)
	catalogRoutes.POST("/conversions", catalogHandler.CreateConversion)
	catalogRoutes.GET("/conversions", catalogHandler.ListConversions)
	catalogRoutes.PUT("/conversions/:id", catalogHandler.UpdateConversion)
	catalogRoutes.DELETE("/conversions/:id", catalogHandler.DeleteConversion)

	// Menu domain: recipes
	menuRoutes := router.NewDomainGroup("menu", "/menu")
	menuRoutes.POST("/recipes", recipeHandler.CreateRecipe)
	menuRoutes.GET("/recipes", recipeHandler.ListRecipes)
	menuRoutes.GET("/recipes/:id", recipeHandler.GetRecipe)
	menuRoutes.PUT("/recipes/:id", recipeHandler.UpdateRecipe)
	menuRoutes.POST("/recipes/:id/ingredients", recipeHandler.AddIngredient)
	menuRoutes.DELETE("/recipes/:id/ingredients/:ingredient_id", recipeHandler.RemoveIngredient)
	menuRoutes.POST("/recipes/:id/set-default", recipeHandler.SetDefault)
	menuRoutes.POST("/recipes/:id/deactivate", recipeHandler.DeactivateRecipe)

	// Inventory domain: stock operations and the movement ledger
	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.POST("/stock/add", stockHandler.AddStock)
	inventoryRoutes.POST("/stock/remove", stockHandler.RemoveStock)
	inventoryRoutes.POST("/stock/transfer", stockHandler.TransferStock)
	inventoryRoutes.POST("/stock/adjust", stockHandler.AdjustStock)
	inventoryRoutes.POST("/stock/waste", stockHandler.RecordWaste)
	inventoryRoutes.PUT("/thresholds", stockHandler.SetMinStockLevel)
	inventoryRoutes.GET("/branches/:branch_id/stock", stockHandler.ListStock)
	inventoryRoutes.GET("/branches/:branch_id/items/:item_id", stockHandler.GetStock)
	inventoryRoutes.GET("/branches/:branch_id/items/:item_id/ledger-check", stockHandler.CheckLedger)
	inventoryRoutes.GET("/alerts/low-stock", stockHandler.ListBelowMinimum)
	inventoryRoutes.GET("/ledger", stockHandler.StockHistory)
	inventoryRoutes.GET("/reports/consumption", stockHandler.ConsumptionSummary)

	// Ordering domain: fulfillment
	orderingRoutes := router.NewDomainGroup("ordering", "/ordering")
	orderingRoutes.POST("/orders", orderHandler.PlaceOrder)
	orderingRoutes.GET("/orders", orderHandler.ListOrders)
	orderingRoutes.GET("/orders/number/:order_number", orderHandler.GetOrderByNumber)
	orderingRoutes.GET("/orders/:id", orderHandler.GetOrder)
	orderingRoutes.POST("/orders/:id/cancel", orderHandler.CancelOrder)
	orderingRoutes.POST("/orders/:id/complete", orderHandler.CompleteOrder)
	orderingRoutes.POST("/availability/check", orderHandler.CheckAvailability)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/ping", systemHandler.Ping)
	systemRoutes.GET("/info", systemHandler.Info)

	r.Register(catalogRoutes).
		Register(menuRoutes).
		Register(inventoryRoutes).
		Register(orderingRoutes).
		Register(systemRoutes)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
