package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress            string
	StoreBaseURL          string
	StoreToken            string
	GatewayBaseURL        string
	GatewayKeyID          string
	GatewayKeySecret      string
	WebhookSecret         string
	RequireSignature      bool
	DedupFilePath         string
	DedupDatabaseURI      string
	DedupRedisAddr        string
	MailAPIKey            string
	MailBaseURL           string
	MailFrom              string
	MaxRetries            int
	RetryBaseDelay        time.Duration
	ReconcilePollInterval time.Duration
	ReconcileBatch        int
	WorkerPoolSize        int
	ShutdownTimeout       time.Duration
}

const (
	defaultRunAddress            = ":4000"
	defaultDedupFilePath         = "processed_webhooks.json"
	defaultGatewayBaseURL        = "https://api.razorpay.com"
	defaultMailBaseURL           = "https://api.sendgrid.com"
	defaultMailFrom              = "admin@kaalikacreations.com"
	defaultMaxRetries            = 2
	defaultRetryBaseDelay        = 500 * time.Millisecond
	defaultReconcilePollInterval = 30 * time.Second
	defaultReconcileBatch        = 16
	defaultWorkerPoolSize        = 4
	defaultShutdownTimeout       = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:            getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		StoreBaseURL:          getString(lookup, "STORE_BASE_URL", ""),
		StoreToken:            getString(lookup, "STORE_API_TOKEN", ""),
		GatewayBaseURL:        getString(lookup, "GATEWAY_BASE_URL", defaultGatewayBaseURL),
		GatewayKeyID:          getString(lookup, "GATEWAY_KEY_ID", ""),
		GatewayKeySecret:      getString(lookup, "GATEWAY_KEY_SECRET", ""),
		WebhookSecret:         getString(lookup, "WEBHOOK_SECRET", ""),
		RequireSignature:      getBool(lookup, "REQUIRE_SIGNATURE", false),
		DedupFilePath:         getString(lookup, "DEDUP_FILE", defaultDedupFilePath),
		DedupDatabaseURI:      getString(lookup, "DEDUP_DATABASE_URI", ""),
		DedupRedisAddr:        getString(lookup, "DEDUP_REDIS_ADDR", ""),
		MailAPIKey:            getString(lookup, "MAIL_API_KEY", ""),
		MailBaseURL:           getString(lookup, "MAIL_BASE_URL", defaultMailBaseURL),
		MailFrom:              getString(lookup, "MAIL_FROM", defaultMailFrom),
		MaxRetries:            getInt(lookup, "MAX_RETRIES", defaultMaxRetries),
		RetryBaseDelay:        getDuration(lookup, "RETRY_BASE_DELAY", defaultRetryBaseDelay),
		ReconcilePollInterval: getDuration(lookup, "RECONCILE_POLL_INTERVAL", defaultReconcilePollInterval),
		ReconcileBatch:        getInt(lookup, "RECONCILE_BATCH", defaultReconcileBatch),
		WorkerPoolSize:        getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	// Production deployments must reject unsigned webhooks.
	if env, ok := lookup("ENVIRONMENT"); ok && env == "production" {
		cfg.RequireSignature = true
	}

	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		retryBaseDelayStr  = cfg.RetryBaseDelay.String()
		pollIntervalStr    = cfg.ReconcilePollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.StoreBaseURL, "store", cfg.StoreBaseURL, "Order store base URL")
	fs.StringVar(&cfg.GatewayBaseURL, "gateway", cfg.GatewayBaseURL, "Payment gateway base URL")
	fs.StringVar(&cfg.DedupFilePath, "dedup-file", cfg.DedupFilePath, "Local dedup persistence file")
	fs.StringVar(&cfg.DedupDatabaseURI, "dedup-db", cfg.DedupDatabaseURI, "PostgreSQL DSN for the dedup store")
	fs.StringVar(&cfg.DedupRedisAddr, "dedup-redis", cfg.DedupRedisAddr, "Redis address for the dedup store")
	fs.BoolVar(&cfg.RequireSignature, "require-signature", cfg.RequireSignature, "Reject webhooks without a signature header")
	fs.IntVar(&cfg.MaxRetries, "max-retries", cfg.MaxRetries, "Additional attempts after a transient store failure")
	fs.StringVar(&retryBaseDelayStr, "retry-base-delay", retryBaseDelayStr, "Base delay for retry backoff")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconciler workers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between pending-order polls")
	fs.IntVar(&cfg.ReconcileBatch, "poll-batch", cfg.ReconcileBatch, "Maximum orders per reconcile batch")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.RetryBaseDelay, err = time.ParseDuration(retryBaseDelayStr); err != nil {
		return nil, fmt.Errorf("invalid retry base delay: %w", err)
	}

	if cfg.ReconcilePollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("WEBHOOK_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read webhook secret file: %w", err)
		}
		cfg.WebhookSecret = string(content)
	}

	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = defaultMaxRetries
	}

	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = defaultRetryBaseDelay
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ReconcileBatch <= 0 {
		cfg.ReconcileBatch = defaultReconcileBatch
	}

	if cfg.ReconcilePollInterval <= 0 {
		cfg.ReconcilePollInterval = defaultReconcilePollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.StoreBaseURL == "" {
		return nil, fmt.Errorf("order store base URL must be provided")
	}

	return cfg, nil
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

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
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
