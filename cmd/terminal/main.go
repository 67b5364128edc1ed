package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erp/posterminal/internal/application/draft"
	"github.com/erp/posterminal/internal/application/notify"
	onboardingapp "github.com/erp/posterminal/internal/application/onboarding"
	posapp "github.com/erp/posterminal/internal/application/pos"
	settingsapp "github.com/erp/posterminal/internal/application/settings"
	"github.com/erp/posterminal/internal/domain/shared"
	"github.com/erp/posterminal/internal/infrastructure/auth"
	"github.com/erp/posterminal/internal/infrastructure/config"
	"github.com/erp/posterminal/internal/infrastructure/erpclient"
	"github.com/erp/posterminal/internal/infrastructure/localstore"
	"github.com/erp/posterminal/internal/infrastructure/logger"
	"github.com/erp/posterminal/internal/infrastructure/scheduler"
	"github.com/erp/posterminal/internal/infrastructure/telemetry"
	"github.com/erp/posterminal/internal/interfaces/http/handler"
	"github.com/erp/posterminal/internal/interfaces/http/middleware"
	"github.com/erp/posterminal/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting POS terminal",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}

	// Initialize the terminal-local store
	store, err := localstore.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize local store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing local store", zap.Error(err))
		}
	}()

	// Backend client; the token source reads whatever token the login
	// flow last stored
	tokens := auth.NewStoreTokenSource(store, log)
	backendClient := erpclient.New(erpclient.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	}, tokens, log)

	// Application services
	feed := notify.NewFeed(log)
	sessionService := posapp.NewSessionService(store, log)
	sessionService.InitializeFromStorage(ctx)
	registerService := posapp.NewRegisterService(backendClient, store, feed, log)
	onboardingService := onboardingapp.NewService(backendClient, tokens, log)
	settingsService := settingsapp.NewService(store, log)
	draftManager := draft.NewManager(store, cfg.Draft.Debounce, log)
	defer draftManager.Close()

	// Register sync scheduler; the first reconciliation runs on start
	syncScheduler := scheduler.NewRegisterSyncScheduler(registerService, cfg.Sync.Interval, log)
	syncScheduler.Start(ctx)
	defer syncScheduler.Stop()

	// Handlers
	sessionHandler := handler.NewSessionHandler(sessionService, registerService, feed)
	registerHandler := handler.NewRegisterHandler(registerService, syncScheduler)
	onboardingHandler := handler.NewOnboardingHandler(onboardingService)
	authHandler := handler.NewAuthHandler(tokens, sessionService, onboardingService, syncScheduler)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	draftHandler := handler.NewDraftHandler(draftManager)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(store))

	// API routes
	posRoutes := router.NewDomainGroup("/pos")
	posRoutes.
		GET("/session", sessionHandler.GetSession).
		POST("/windows", sessionHandler.CreateWindow).
		PATCH("/windows/:id", sessionHandler.UpdateWindow).
		DELETE("/windows/:id", sessionHandler.CloseWindow).
		POST("/windows/:id/activate", sessionHandler.ActivateWindow).
		POST("/windows/:id/items", sessionHandler.AddItem).
		PUT("/windows/:id/items/:ref", sessionHandler.UpdateItem).
		DELETE("/windows/:id/items/:ref", sessionHandler.RemoveItem).
		GET("/notifications", sessionHandler.Notifications)

	registerRoutes := router.NewDomainGroup("/register")
	registerRoutes.
		POST("/open", registerHandler.Open).
		POST("/close", registerHandler.Close).
		GET("/state", registerHandler.State).
		GET("/validate", registerHandler.Validate).
		POST("/sync", registerHandler.TriggerSync).
		GET("/last-closed-report", registerHandler.LastClosedReport)

	onboardingRoutes := router.NewDomainGroup("/onboarding")
	onboardingRoutes.
		GET("/status", onboardingHandler.Status).
		POST("/complete", onboardingHandler.Complete).
		GET("/pdvs", onboardingHandler.PDVs)

	authRoutes := router.NewDomainGroup("/auth")
	authRoutes.
		GET("/status", authHandler.Status).
		PUT("/token", authHandler.SetToken).
		DELETE("/token", authHandler.ClearToken)

	settingsRoutes := router.NewDomainGroup("/settings")
	settingsRoutes.
		GET("", settingsHandler.Get).
		PUT("", settingsHandler.Put).
		DELETE("", settingsHandler.Delete)

	draftRoutes := router.NewDomainGroup("/drafts")
	draftRoutes.
		GET("/:key", draftHandler.Get).
		PUT("/:key", draftHandler.Update).
		POST("/:key/save", draftHandler.Save).
		GET("/:key/exists", draftHandler.Exists).
		PUT("/:key/enabled", draftHandler.SetEnabled).
		DELETE("/:key", draftHandler.Delete)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(posRoutes).
		Register(registerRoutes).
		Register(onboardingRoutes).
		Register(authRoutes).
		Register(settingsRoutes).
		Register(draftRoutes)
	r.Setup()

	// The control API only serves the UI on this machine
	srv := &http.Server{
		Addr:           "127.0.0.1:" + cfg.App.Port,
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

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down telemetry", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports liveness plus whether the local store answers
func healthHandler(store shared.LocalStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := store.Has(c.Request.Context(), "health_probe"); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"time":   time.Now().Format(time.RFC3339),
				"store":  "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"store":  "ok",
		})
	}
}
