package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment names. Payment simulation is only reachable outside production.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress  string
	DatabaseURI string
	AppEnv      string
	AppURL      string
	FrontendURL string
	TokenSecret string

	DeliveryFee float64

	WaveAPIKey      string
	WaveBaseURL     string
	OrangeMerchant  string
	OrangeBaseURL   string
	ProviderTimeout time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	RelayPollInterval time.Duration
	RelayBatchSize    int
	WorkerPoolSize    int
	ShutdownTimeout   time.Duration

	AdminEmail    string
	AdminPassword string
}

const (
	defaultRunAddress        = ":8080"
	defaultAppEnv            = EnvDevelopment
	defaultTokenSecret       = "change-me-in-production"
	defaultDeliveryFee       = 1000
	defaultWaveBaseURL       = "https://api.wave.com/v1"
	defaultOrangeBaseURL     = "https://api.orange.com/orange-money-webpay/dev/v1"
	defaultProviderTimeout   = 10 * time.Second
	defaultKafkaTopic        = "farm.order-events"
	defaultRelayPollInterval = 3 * time.Second
	defaultRelayBatchSize    = 32
	defaultWorkerPoolSize    = 4
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from .env, environment variables and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		AppEnv:            getString(lookup, "APP_ENV", defaultAppEnv),
		AppURL:            getString(lookup, "APP_URL", "http://localhost:8080"),
		FrontendURL:       getString(lookup, "FRONTEND_URL", "http://localhost:3000"),
		TokenSecret:       getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		DeliveryFee:       getFloat(lookup, "DELIVERY_FEE", defaultDeliveryFee),
		WaveAPIKey:        getString(lookup, "WAVE_API_KEY", ""),
		WaveBaseURL:       getString(lookup, "WAVE_BASE_URL", defaultWaveBaseURL),
		OrangeMerchant:    getString(lookup, "ORANGE_MERCHANT_KEY", ""),
		OrangeBaseURL:     getString(lookup, "ORANGE_BASE_URL", defaultOrangeBaseURL),
		ProviderTimeout:   getDuration(lookup, "PROVIDER_TIMEOUT", defaultProviderTimeout),
		KafkaTopic:        getString(lookup, "KAFKA_TOPIC", defaultKafkaTopic),
		RelayPollInterval: getDuration(lookup, "RELAY_POLL_INTERVAL", defaultRelayPollInterval),
		RelayBatchSize:    getInt(lookup, "RELAY_BATCH_SIZE", defaultRelayBatchSize),
		WorkerPoolSize:    getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		AdminEmail:        getString(lookup, "ADMIN_EMAIL", ""),
		AdminPassword:     getString(lookup, "ADMIN_PASSWORD", ""),
	}

	if brokers := getString(lookup, "KAFKA_BROKERS", ""); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	fs := flag.NewFlagSet("farmshop", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.RelayPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.AppEnv, "env", cfg.AppEnv, "Runtime environment (development|production)")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing auth tokens")
	fs.Float64Var(&cfg.DeliveryFee, "delivery-fee", cfg.DeliveryFee, "Fixed surcharge for delivery orders")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent relay workers")
	fs.StringVar(&pollIntervalStr, "relay-interval", pollIntervalStr, "Interval between outbox polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.RelayBatchSize, "relay-batch", cfg.RelayBatchSize, "Maximum events per relay batch")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.RelayPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid relay interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.AppEnv != EnvDevelopment && cfg.AppEnv != EnvProduction {
		return nil, fmt.Errorf("unknown environment %q", cfg.AppEnv)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.RelayBatchSize <= 0 {
		cfg.RelayBatchSize = defaultRelayBatchSize
	}

	if cfg.RelayPollInterval <= 0 {
		cfg.RelayPollInterval = defaultRelayPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DeliveryFee < 0 {
		return nil, fmt.Errorf("delivery fee must not be negative")
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
