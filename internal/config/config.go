package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	Store    StoreConfig
	Shipping ShippingConfig
	Order    OrderConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LogConfig struct {
	Level string
}

type StoreConfig struct {
	Name string
	Cash CashPaymentConfig
}

type CashPaymentConfig struct {
	Enabled             bool
	AllowedInstitutions []string
}

type ShippingConfig struct {
	OriginComuna       string
	Timeout            time.Duration
	CacheBackend       string
	ChilexpressAPIKey  string
	ChilexpressRateURL string
	StarkenBaseURL     string
	StarkenLocalityTTL time.Duration
	Breaker            BreakerConfig
}

type BreakerConfig struct {
	MaxFailures uint32
	OpenTimeout time.Duration
}

type OrderConfig struct {
	WebhookURL string
	APIKey     string
}

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Load reads the optional YAML file at path and overlays environment
// variables on top of it. An empty path or a missing file only uses the
// environment and the defaults below.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "praktico")
	v.SetDefault("DB_PASSWORD", "secret")
	v.SetDefault("DB_NAME", "praktico")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_NAME", "Praktico")
	v.SetDefault("CASH_PAYMENT_ENABLED", true)
	v.SetDefault("CASH_ALLOWED_INSTITUTIONS", "Instituto de Humanidades Luis Campino (IHLC)")
	v.SetDefault("SHIPPING_ORIGIN_COMUNA", "Providencia")
	v.SetDefault("SHIPPING_TIMEOUT", "15s")
	v.SetDefault("SHIPPING_CACHE_BACKEND", CacheBackendMemory)
	v.SetDefault("CHILEXPRESS_API_KEY", "")
	v.SetDefault("CHILEXPRESS_RATING_URL", "https://testservices.wschilexpress.com/rating/api/v1.0/rates/courier")
	v.SetDefault("STARKEN_BASE_URL", "https://apiprod.starkenpro.cl")
	v.SetDefault("STARKEN_LOCALITY_TTL", "12h")
	v.SetDefault("BREAKER_MAX_FAILURES", 5)
	v.SetDefault("BREAKER_OPEN_TIMEOUT", "30s")
	v.SetDefault("DISCORD_WEBHOOK_URL", "")
	v.SetDefault("ORDER_API_KEY", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !isMissingFile(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	durations := map[string]time.Duration{}
	for _, key := range []string{"DB_CONN_MAX_LIFETIME", "SHIPPING_TIMEOUT", "STARKEN_LOCALITY_TTL", "BREAKER_OPEN_TIMEOUT"} {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", key, err)
		}
		durations[key] = d
	}

	cacheBackend := strings.ToLower(v.GetString("SHIPPING_CACHE_BACKEND"))
	if cacheBackend != CacheBackendMemory && cacheBackend != CacheBackendRedis {
		return nil, fmt.Errorf("unsupported SHIPPING_CACHE_BACKEND %q", cacheBackend)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: durations["DB_CONN_MAX_LIFETIME"],
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Store: StoreConfig{
			Name: v.GetString("STORE_NAME"),
			Cash: CashPaymentConfig{
				Enabled:             v.GetBool("CASH_PAYMENT_ENABLED"),
				AllowedInstitutions: splitList(v.GetString("CASH_ALLOWED_INSTITUTIONS")),
			},
		},
		Shipping: ShippingConfig{
			OriginComuna:       v.GetString("SHIPPING_ORIGIN_COMUNA"),
			Timeout:            durations["SHIPPING_TIMEOUT"],
			CacheBackend:       cacheBackend,
			ChilexpressAPIKey:  v.GetString("CHILEXPRESS_API_KEY"),
			ChilexpressRateURL: v.GetString("CHILEXPRESS_RATING_URL"),
			StarkenBaseURL:     strings.TrimRight(v.GetString("STARKEN_BASE_URL"), "/"),
			StarkenLocalityTTL: durations["STARKEN_LOCALITY_TTL"],
			Breaker: BreakerConfig{
				MaxFailures: v.GetUint32("BREAKER_MAX_FAILURES"),
				OpenTimeout: durations["BREAKER_OPEN_TIMEOUT"],
			},
		},
		Order: OrderConfig{
			WebhookURL: v.GetString("DISCORD_WEBHOOK_URL"),
			APIKey:     v.GetString("ORDER_API_KEY"),
		},
	}

	return cfg, nil
}

// splitList parses a ";"-separated list. Institution names contain commas and
// parentheses, so ";" is the separator.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ";") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
