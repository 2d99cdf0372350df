package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/RaxHax/fratak/internal/cache"
	"github.com/RaxHax/fratak/internal/config"
	"github.com/RaxHax/fratak/internal/scenario"
	"github.com/RaxHax/fratak/internal/server"
	"github.com/RaxHax/fratak/internal/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	if err := tracing.Init(cfg.OTELServiceName, cfg.OTELEndpoint); err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}

	var resultCache cache.Cache
	if cfg.RedisAddr != "" {
		rc := cache.NewRedisCache(cfg.RedisAddr)
		defer rc.Close()
		resultCache = rc
		logger.Info("using redis result cache", zap.String("addr", cfg.RedisAddr))
	} else {
		resultCache = cache.NewMockCache()
	}

	var store scenario.Store
	if cfg.SQLitePath != "" {
		ss, err := scenario.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			logger.Fatal("failed to open scenario store", zap.Error(err))
		}
		defer ss.Close()
		store = ss
		logger.Info("using sqlite scenario store", zap.String("path", cfg.SQLitePath))
	} else {
		store = scenario.NewMemoryStore()
	}

	srv := server.New(cfg, logger, resultCache, store)

	limiter := server.NewRateLimiter(60, time.Minute)
	defer limiter.Stop()

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      srv.Routes(limiter),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.Int("port", cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
		return
	case <-quit:
		logger.Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
