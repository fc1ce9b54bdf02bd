package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	contractapp "github.com/poloatt/attadia-backend/internal/application/contract"
	financeapp "github.com/poloatt/attadia-backend/internal/application/finance"
	identityapp "github.com/poloatt/attadia-backend/internal/application/identity"
	planningapp "github.com/poloatt/attadia-backend/internal/application/planning"
	realestateapp "github.com/poloatt/attadia-backend/internal/application/realestate"
	"github.com/poloatt/attadia-backend/internal/domain/finance"
	"github.com/poloatt/attadia-backend/internal/infrastructure/auth"
	"github.com/poloatt/attadia-backend/internal/infrastructure/cache"
	"github.com/poloatt/attadia-backend/internal/infrastructure/config"
	"github.com/poloatt/attadia-backend/internal/infrastructure/event"
	"github.com/poloatt/attadia-backend/internal/infrastructure/logger"
	"github.com/poloatt/attadia-backend/internal/infrastructure/persistence"
	"github.com/poloatt/attadia-backend/internal/infrastructure/telemetry"
	"github.com/poloatt/attadia-backend/internal/interfaces/http/handler"
	"github.com/poloatt/attadia-backend/internal/interfaces/http/middleware"
	"github.com/poloatt/attadia-backend/internal/interfaces/http/router"
)

const appVersion = "1.0.0"

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

	log.Info("Starting Attadia backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a zap-backed GORM logger
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Tracing. A disabled config yields a no-op provider.
	tracerProvider, err := telemetry.NewProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()
	if err := tracerProvider.InstrumentGorm(db.DB); err != nil {
		log.Warn("Failed to instrument database tracing", zap.Error(err))
	}

	// Repositories
	contractRepo := persistence.NewGormContractRepository(db.DB)
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	roomRepo := persistence.NewGormRoomRepository(db.DB)
	inventoryRepo := persistence.NewGormInventoryRepository(db.DB)
	occupantRepo := persistence.NewGormOccupantRepository(db.DB)
	currencyRepo := persistence.NewGormCurrencyRepository(db.DB)
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	taskRepo := persistence.NewGormTaskRepository(db.DB)
	routineRepo := persistence.NewGormRoutineRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Balance snapshot cache. Redis when enabled and reachable, otherwise an
	// in-process cache so balance reads still avoid recomputation.
	var balanceCache finance.BalanceCache
	var redisCache *cache.RedisBalanceCache
	if cfg.Cache.Enabled {
		redisCache, err = cache.NewRedisBalanceCache(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cache.WithBalanceTTL(cfg.Cache.BalanceTTL), cache.WithCacheLogger(log))
		if err != nil {
			log.Warn("Redis unavailable, falling back to in-memory balance cache", zap.Error(err))
		} else {
			balanceCache = redisCache
			log.Info("Redis balance cache connected",
				zap.String("host", cfg.Redis.Host),
				zap.Int("port", cfg.Redis.Port),
			)
		}
	}
	var memoryCache *cache.InMemoryBalanceCache
	if balanceCache == nil {
		memoryCache = cache.NewInMemoryBalanceCache()
		balanceCache = memoryCache
	}
	defer func() {
		if redisCache != nil {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing balance cache", zap.Error(err))
			}
		}
		if memoryCache != nil {
			_ = memoryCache.Close()
		}
	}()

	// Application services
	contractService := contractapp.NewService(contractRepo, propertyRepo, occupantRepo, accountRepo, transactionRepo)
	financeService := financeapp.NewService(currencyRepo, accountRepo, transactionRepo)
	transactionService := financeapp.NewTransactionService(transactionRepo, accountRepo)
	balanceService := financeapp.NewBalanceService(transactionRepo, accountRepo, contractRepo, balanceCache, log)
	propertyService := realestateapp.NewPropertyService(propertyRepo, roomRepo, inventoryRepo, contractRepo)
	roomInventoryService := realestateapp.NewRoomInventoryService(propertyRepo, roomRepo, inventoryRepo)
	occupantService := realestateapp.NewOccupantService(occupantRepo, contractRepo)
	planningService := planningapp.NewService(projectRepo, taskRepo, routineRepo)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, identityapp.DefaultAuthServiceConfig(), log)
	userService := identityapp.NewUserService(userRepo)

	// Event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	balanceInvalidationHandler := financeapp.NewBalanceInvalidationHandler(balanceCache, log)
	eventBus.Subscribe(balanceInvalidationHandler)
	log.Info("Event handlers registered",
		zap.Strings("balance_invalidation_events", balanceInvalidationHandler.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	contractService.SetEventPublisher(eventBus)
	transactionService.SetEventPublisher(eventBus)
	authService.SetEventPublisher(eventBus)
	userService.SetEventPublisher(eventBus)

	// HTTP handlers
	contractHandler := handler.NewContractHandler(contractService)
	financeHandler := handler.NewFinanceHandler(financeService, balanceService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	propertyHandler := handler.NewPropertyHandler(propertyService, roomInventoryService)
	occupantHandler := handler.NewOccupantHandler(occupantService)
	planningHandler := handler.NewPlanningHandler(planningService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	systemHandler := handler.NewSystemHandler(cfg.App.Name, appVersion)
	systemHandler.AddCheck("database", func(ctx context.Context) error {
		return db.Ping()
	})

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
	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, tracerProvider.IsEnabled()))

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Bare health probe outside API versioning, for load balancers
	engine.GET("/health", healthHandler(db))

	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/health",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}

	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithGroupMiddleware(middleware.JWTAuthMiddlewareWithConfig(jwtConfig)),
	)
	r.Register(
		authHandler,
		userHandler,
		contractHandler,
		propertyHandler,
		occupantHandler,
		financeHandler,
		transactionHandler,
		planningHandler,
		systemHandler,
	)
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

func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
