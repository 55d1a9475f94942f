package order

import (
	"database/sql"
	"time"

	"praktico/internal/config"
	"praktico/internal/infrastructure/httpclient"
	"praktico/internal/order/controller"
	"praktico/internal/order/notifier"
	orderrepo "praktico/internal/order/repository"
	"praktico/internal/order/service"
	"praktico/internal/order/usecase"
	"praktico/internal/order/validator"

	"go.uber.org/zap"
)

const webhookTimeout = 10 * time.Second

// NewModule wires order submission and the operator endpoints. Without a
// webhook URL, notifications only go to the log.
func NewModule(db *sql.DB, cfg *config.Config, recorder service.OrderRecorder, logger *zap.Logger) *controller.OrderController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)

	orderValidator := validator.New(validator.CashPolicy{
		Enabled:             cfg.Store.Cash.Enabled,
		AllowedInstitutions: cfg.Store.Cash.AllowedInstitutions,
	})

	var orderNotifier service.Notifier
	if cfg.Order.WebhookURL != "" {
		client := httpclient.NewClient("webhook", webhookTimeout, httpclient.BreakerSettings{
			MaxFailures: cfg.Shipping.Breaker.MaxFailures,
			OpenTimeout: cfg.Shipping.Breaker.OpenTimeout,
		}, logger)
		orderNotifier = notifier.NewWebhookNotifier(cfg.Order.WebhookURL, cfg.Store.Name, client)
	} else {
		logger.Warn("DISCORD_WEBHOOK_URL not set, order notifications go to the log only")
		orderNotifier = notifier.NewLogNotifier(cfg.Store.Name, logger.Named("notifier"))
	}

	submissionSvc := service.NewSubmissionService(orderValidator, orderRepo, orderNotifier, recorder, logger)
	managementUC := usecase.NewOrderManagementUseCase(orderRepo, logger)

	return controller.NewOrderController(submissionSvc, managementUC, logger)
}
