package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"praktico/internal/config"
	"praktico/internal/infrastructure/logger"
	"praktico/internal/infrastructure/mysql"
	"praktico/internal/infrastructure/redis"
	"praktico/internal/metrics"
	"praktico/internal/order"
	"praktico/internal/product"
	"praktico/internal/server"
	"praktico/internal/shipping"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	cfg, err := config.Load("internal/config/config.yaml")
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, "praktico")
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()

	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 10*time.Second)
	if err := mysql.EnsureSchema(schemaCtx, db); err != nil {
		cancelSchema()
		zapLogger.Fatal("creating schema", zap.Error(err))
	}
	cancelSchema()
	zapLogger.Info("database connected")

	var redisClient *goredis.Client
	if cfg.Shipping.CacheBackend == config.CacheBackendRedis {
		redisClient, err = redis.NewClient(cfg.Redis)
		if err != nil {
			zapLogger.Fatal("connecting to redis", zap.Error(err))
		}
		defer redisClient.Close()
		zapLogger.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	}

	shopMetrics := metrics.NewShopMetrics(prometheus.DefaultRegisterer)

	quoteCtrl, err := shipping.NewModule(cfg, redisClient, shopMetrics, zapLogger)
	if err != nil {
		zapLogger.Fatal("building shipping module", zap.Error(err))
	}
	productCtrl := product.NewModule(db, zapLogger)
	orderCtrl := order.NewModule(db, cfg, shopMetrics, zapLogger)

	router := server.NewRouter(server.RouterConfig{
		OrderAPIKey: cfg.Order.APIKey,
		DB:          db,
		Gatherer:    prometheus.DefaultGatherer,
	}, quoteCtrl, productCtrl, orderCtrl, zapLogger)

	srv := server.New(cfg.Server.Port, cfg.Shipping.Timeout, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
