package config

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	RunAddress        string
	OrdersFile        string
	DatabaseURI       string
	ProductsFile      string
	DeliveryRulesFile string
	AdminPassword     string
	AdminPasswordHash string
	JWTSecret         string
	TokenTTL          time.Duration
	HeartbeatInterval time.Duration
	ReloadInterval    time.Duration
	LogLevel          slog.Level
	CORSOrigins       []string
}

// New reads flags from args, then lets environment variables override them.
func New(args []string) (*Config, error) {
	cfg := &Config{}
	var logLevel, origins string

	fs := flag.NewFlagSet("campania", flag.ContinueOnError)
	fs.StringVar(&cfg.RunAddress, "a", "localhost:4000", "server address and port")
	fs.StringVar(&cfg.OrdersFile, "orders", "data/orders.json", "orders JSON file")
	fs.StringVar(&cfg.DatabaseURI, "d", "", "postgres URI; when set, orders are stored in the database instead of the JSON file")
	fs.StringVar(&cfg.ProductsFile, "products", "data/products.json", "products JSON file")
	fs.StringVar(&cfg.DeliveryRulesFile, "delivery", "data/delivery.yaml", "delivery rules YAML file")
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "admin password in clear text")
	fs.StringVar(&cfg.AdminPasswordHash, "admin-password-hash", "", "bcrypt hash of the admin password")
	fs.StringVar(&cfg.JWTSecret, "s", "", "jwt signing key")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", 12*time.Hour, "admin token lifetime")
	fs.DurationVar(&cfg.HeartbeatInterval, "heartbeat", 25*time.Second, "stream heartbeat interval")
	fs.DurationVar(&cfg.ReloadInterval, "reload", 30*time.Second, "catalog and delivery rules reload interval")
	fs.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&origins, "cors", "*", "comma separated allowed CORS origins")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.RunAddress = getEnv("RUN_ADDRESS", cfg.RunAddress)
	cfg.OrdersFile = getEnv("ORDERS_FILE", cfg.OrdersFile)
	cfg.DatabaseURI = getEnv("DATABASE_URI", cfg.DatabaseURI)
	cfg.ProductsFile = getEnv("PRODUCTS_FILE", cfg.ProductsFile)
	cfg.DeliveryRulesFile = getEnv("DELIVERY_RULES_FILE", cfg.DeliveryRulesFile)
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", cfg.AdminPassword)
	cfg.AdminPasswordHash = getEnv("ADMIN_PASSWORD_HASH", cfg.AdminPasswordHash)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.TokenTTL = getDuration("TOKEN_TTL", cfg.TokenTTL)
	cfg.HeartbeatInterval = getDuration("HEARTBEAT_INTERVAL", cfg.HeartbeatInterval)
	cfg.ReloadInterval = getDuration("RELOAD_INTERVAL", cfg.ReloadInterval)
	logLevel = getEnv("LOG_LEVEL", logLevel)
	origins = getEnv("CORS_ORIGINS", origins)

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		slog.Warn("invalid log level, using info", "value", logLevel)
		cfg.LogLevel = slog.LevelInfo
	}
	cfg.CORSOrigins = splitList(origins)

	for name, d := range map[string]time.Duration{
		"token ttl":          cfg.TokenTTL,
		"heartbeat interval": cfg.HeartbeatInterval,
		"reload interval":    cfg.ReloadInterval,
	} {
		if d <= 0 {
			return nil, fmt.Errorf("%s must be positive, got %v", name, d)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", value)
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
