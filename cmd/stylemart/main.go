package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/stylemart/stylemart/internal/config"
	dbRedis "github.com/stylemart/stylemart/internal/db/redis"
	logpkg "github.com/stylemart/stylemart/internal/logger"
	"github.com/stylemart/stylemart/internal/metrics"
	catalogrepo "github.com/stylemart/stylemart/internal/repository/catalog"
	purchaserepo "github.com/stylemart/stylemart/internal/repository/purchase"
	userrepo "github.com/stylemart/stylemart/internal/repository/user"
	chiTransport "github.com/stylemart/stylemart/internal/transport/chi"
	cataloguc "github.com/stylemart/stylemart/internal/usecase/catalog"
	featureuc "github.com/stylemart/stylemart/internal/usecase/feature"
	healthuc "github.com/stylemart/stylemart/internal/usecase/health"
	historyuc "github.com/stylemart/stylemart/internal/usecase/history"
	modelinfouc "github.com/stylemart/stylemart/internal/usecase/modelinfo"
	recommenduc "github.com/stylemart/stylemart/internal/usecase/recommend"
	similaruc "github.com/stylemart/stylemart/internal/usecase/similar"
	"github.com/stylemart/stylemart/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting stylemart API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Redis and Valkey speak the same protocol; one client covers both drivers.
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register recommender metrics explicitly (no init())
	metrics.RegisterRecommenderMetrics()

	// Create repositories
	catalogRepo := catalogrepo.New(store, cfg.Storage.KeyPrefix)
	userRepo := userrepo.New(store, cfg.Storage.KeyPrefix)
	purchaseRepo := purchaserepo.New(store, cfg.Storage.KeyPrefix)

	// Create use case services — composition root
	catalogSvc := cataloguc.New(catalogRepo)
	featureSvc := featureuc.New(catalogRepo, logger)
	similarSvc := similaruc.New(
		featureSvc,
		cfg.Recommend.BatchSize,
		rand.New(rand.NewSource(time.Now().UnixNano())),
		logger,
	)
	recommendSvc := recommenduc.New(
		userRepo, purchaseRepo, similarSvc, catalogRepo, cfg.Recommend.DefaultK, logger,
	)
	historySvc := historyuc.New(purchaseRepo, catalogRepo, userRepo)
	modelSvc := modelinfouc.New(cfg.Model.Path, logger)
	healthSvc := healthuc.New(store, modelSvc)

	// Warm the feature cache so the first request does not pay the build.
	// A failure here is not fatal; the cache retries lazily on demand.
	if err := featureSvc.Rebuild(ctx); err != nil {
		logger.Warn("Feature cache warmup failed", zap.Error(err))
	}

	// Create chi server
	server := chiTransport.NewServer(
		catalogSvc, similarSvc, recommendSvc, historySvc, modelSvc, healthSvc, logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
