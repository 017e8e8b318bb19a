package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"maternal-care-service/internal/adapters/primary/http/handlers"
	"maternal-care-service/internal/adapters/primary/http/middleware"
	"maternal-care-service/internal/adapters/secondary/kserve"
	"maternal-care-service/internal/adapters/secondary/postgres"
	"maternal-care-service/internal/adapters/secondary/sklearn"
	"maternal-care-service/internal/adapters/secondary/static"
	"maternal-care-service/internal/adapters/secondary/tfserving"
	"maternal-care-service/internal/config"
	"maternal-care-service/internal/core/domain"
	output "maternal-care-service/internal/core/ports/output"
	"maternal-care-service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// ============================================================================
	// Secondary Adapters
	// ============================================================================

	// Content repository: PostgreSQL when enabled, built-in content otherwise
	var contentRepo output.ContentRepository = static.NewContentRepository()
	var pool *pgxpool.Pool
	if cfg.Database.Enabled {
		pool, err = newPool(cfg.Database)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer pool.Close()

		repo := postgres.NewContentRepository(pool)
		if err := repo.Migrate(context.Background()); err != nil {
			log.Fatalf("migrate content: %v", err)
		}
		contentRepo = repo
		log.Info("database connection established")
	} else {
		log.Info("database disabled, serving built-in content")
	}

	// KServe Client (Optional - based on config)
	var kserveClient output.KServeClient
	if cfg.Kubernetes.Enabled {
		client, err := kserve.NewKServeClient(&cfg.Kubernetes)
		if err != nil {
			log.Warnf("KServe client init failed (continuing without K8s integration): %v", err)
		} else {
			kserveClient = client
			log.Info("KServe client initialized")
		}
	} else {
		log.Info("KServe integration disabled")
	}

	// ============================================================================
	// Model Registry (populated once, read-only afterwards)
	// ============================================================================

	registry := services.NewModelRegistry(map[string]output.ArtifactLoader{
		domain.BackendSklearn:    sklearn.NewLoader(),
		domain.BackendTensorFlow: tfserving.NewLoader(&cfg.TFServing, kserveClient),
	})

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 2*time.Minute)
	registry.Load(loadCtx, domain.BackendSklearn, cfg.Models.SklearnPath)
	registry.Load(loadCtx, domain.BackendTensorFlow, cfg.Models.TFPath)
	cancelLoad()

	// Core Services (Application Layer)
	inferenceSvc := services.NewInferenceGateway(registry, domain.NewCoercer(cfg.Models.MaxFeatures))
	contentSvc := services.NewContentCatalog(contentRepo, cfg.Content.DefaultLanguage)
	assistantSvc := services.NewAssistantService(nil)
	authSvc, err := services.NewCredentialChecker(services.DemoAccounts, cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatalf("init credential checker: %v", err)
	}

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(inferenceSvc, registry, contentSvc, assistantSvc, authSvc)
	if pool != nil {
		h.WithDatabase(pool)
	}

	// Setup router
	corsMiddleware, err := middleware.CORS(cfg.CORS.AllowedOrigins)
	if err != nil {
		log.Fatalf("init cors: %v", err)
	}

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), corsMiddleware, gin.Recovery())

	api := router.Group("/api")
	h.RegisterRoutes(api)

	h.RegisterHealthRoutes(router)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func newPool(cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return pool, nil
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
