package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"praktico/internal/order/controller"
	"praktico/internal/product"
	shippingcontroller "praktico/internal/shipping/controller"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

type Pinger interface {
	PingContext(ctx context.Context) error
}

type RouterConfig struct {
	OrderAPIKey string
	DB          Pinger
	Gatherer    prometheus.Gatherer
}

func NewRouter(
	cfg RouterConfig,
	quoteCtrl *shippingcontroller.QuoteController,
	productCtrl *product.Controller,
	orderCtrl *controller.OrderController,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))

	r.Get("/health", healthHandler(cfg.DB, logger))
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Post("/order-quote/{courier}", quoteCtrl.Quote)
	r.Post("/cart/parcel", productCtrl.HandleCartParcel)
	r.Post("/order", orderCtrl.Create)

	r.Group(func(r chi.Router) {
		r.Use(APIKey(cfg.OrderAPIKey))
		r.Get("/orders", orderCtrl.List)
		r.Patch("/order/{id}/status", orderCtrl.UpdateStatus)
	})

	return r
}

func healthHandler(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, body := http.StatusOK, map[string]any{"ok": true}

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				logger.Warn("health check failed", zap.Error(err))
				status, body = http.StatusServiceUnavailable, map[string]any{"ok": false, "error": "database unavailable"}
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}
