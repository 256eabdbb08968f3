package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	GistAPIURL      string
	GistToken       string
	GistID          string
	BankAccount     string
	BankName        string
	VendorPrefix    string
	OrderMarker     string
	AdminKeyHash    string
	DefaultKeyHours int
	OrderTTL        time.Duration
	SweepInterval   time.Duration
	ShutdownTimeout time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultGistAPIURL      = "https://api.github.com"
	defaultBankName        = "VietinBank"
	defaultVendorPrefix    = "ARESTOOL"
	defaultOrderMarker     = "DH"
	defaultKeyHours        = 24
	defaultOrderTTL        = 24 * time.Hour
	defaultSweepInterval   = 10 * time.Minute
	defaultShutdownTimeout = 10 * time.Second
)

// Load parses configuration from .env, environment variables and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		GistAPIURL:      getString(lookup, "GIST_API_URL", defaultGistAPIURL),
		GistToken:       getString(lookup, "GIST_TOKEN", ""),
		GistID:          getString(lookup, "GIST_ID", ""),
		BankAccount:     getString(lookup, "BANK_ACCOUNT", ""),
		BankName:        getString(lookup, "BANK_NAME", defaultBankName),
		VendorPrefix:    getString(lookup, "VENDOR_PREFIX", defaultVendorPrefix),
		OrderMarker:     getString(lookup, "ORDER_MARKER", defaultOrderMarker),
		AdminKeyHash:    getString(lookup, "ADMIN_KEY_HASH", ""),
		DefaultKeyHours: getInt(lookup, "DEFAULT_KEY_HOURS", defaultKeyHours),
		OrderTTL:        getDuration(lookup, "ORDER_TTL", defaultOrderTTL),
		SweepInterval:   getDuration(lookup, "SWEEP_INTERVAL", defaultSweepInterval),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("keygate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		orderTTLStr        = cfg.OrderTTL.String()
		sweepIntervalStr   = cfg.SweepInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.GistAPIURL, "gist-api", cfg.GistAPIURL, "GitHub API base URL for the key store")
	fs.StringVar(&cfg.GistID, "gist-id", cfg.GistID, "Gist id holding issued keys")
	fs.StringVar(&cfg.BankAccount, "bank-account", cfg.BankAccount, "Bank account receiving transfers")
	fs.StringVar(&cfg.BankName, "bank-name", cfg.BankName, "Bank name used in QR payloads")
	fs.StringVar(&cfg.VendorPrefix, "vendor-prefix", cfg.VendorPrefix, "Vendor prefix in transfer descriptions")
	fs.StringVar(&cfg.OrderMarker, "order-marker", cfg.OrderMarker, "Order marker token in transfer descriptions")
	fs.IntVar(&cfg.DefaultKeyHours, "default-key-hours", cfg.DefaultKeyHours, "Key duration for unrecognized packages")
	fs.StringVar(&orderTTLStr, "order-ttl", orderTTLStr, "Lifetime of an unpaid pending order")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between expiry sweeps")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.OrderTTL, err = time.ParseDuration(orderTTLStr); err != nil {
		return nil, fmt.Errorf("invalid order ttl: %w", err)
	}

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if tokenFile, ok := lookup("GIST_TOKEN_FILE"); ok && tokenFile != "" {
		content, err := os.ReadFile(tokenFile)
		if err != nil {
			return nil, fmt.Errorf("read gist token file: %w", err)
		}
		cfg.GistToken = string(content)
	}

	if cfg.DefaultKeyHours <= 0 {
		cfg.DefaultKeyHours = defaultKeyHours
	}

	if cfg.OrderTTL <= 0 {
		cfg.OrderTTL = defaultOrderTTL
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.GistToken == "" {
		return nil, fmt.Errorf("gist token must be provided")
	}

	if cfg.GistID == "" {
		return nil, fmt.Errorf("gist id must be provided")
	}

	if cfg.BankAccount == "" {
		return nil, fmt.Errorf("bank account must be provided")
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
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			return n
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
