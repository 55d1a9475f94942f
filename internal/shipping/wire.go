package shipping

import (
	"fmt"

	"praktico/internal/config"
	"praktico/internal/infrastructure/httpclient"
	"praktico/internal/shipping/chilexpress"
	"praktico/internal/shipping/controller"
	"praktico/internal/shipping/starken"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewModule builds both courier adapters behind the quote controller. The
// redis client is only used when the redis cache backend is configured.
func NewModule(cfg *config.Config, redisClient *goredis.Client, recorder QuoteRecorder, logger *zap.Logger) (*controller.QuoteController, error) {
	breaker := httpclient.BreakerSettings{
		MaxFailures: cfg.Shipping.Breaker.MaxFailures,
		OpenTimeout: cfg.Shipping.Breaker.OpenTimeout,
	}

	coverage, err := chilexpress.LoadCoverage()
	if err != nil {
		return nil, fmt.Errorf("loading chilexpress coverage: %w", err)
	}

	chilexpressAdapter := chilexpress.NewAdapter(
		chilexpress.Config{
			APIKey:    cfg.Shipping.ChilexpressAPIKey,
			RatingURL: cfg.Shipping.ChilexpressRateURL,
		},
		httpclient.NewClient(chilexpress.ProviderName, cfg.Shipping.Timeout, breaker, logger),
		coverage,
		logger.Named(chilexpress.ProviderName),
	)

	var localityCache starken.LocalityCache
	switch cfg.Shipping.CacheBackend {
	case config.CacheBackendRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("redis locality cache selected without a redis client")
		}
		localityCache = starken.NewRedisLocalityCache(redisClient, cfg.Shipping.StarkenLocalityTTL)
	default:
		localityCache = starken.NewMemoryLocalityCache(cfg.Shipping.StarkenLocalityTTL)
	}

	starkenAdapter := starken.NewAdapter(
		starken.Config{BaseURL: cfg.Shipping.StarkenBaseURL},
		httpclient.NewClient(starken.ProviderName, cfg.Shipping.Timeout, breaker, logger),
		localityCache,
		logger.Named(starken.ProviderName),
	)

	quoteService := NewQuoteService(
		[]Courier{chilexpressAdapter, starkenAdapter},
		recorder,
		logger,
		WithDefaultOrigin(cfg.Shipping.OriginComuna),
	)

	return controller.NewQuoteController(quoteService, logger), nil
}
