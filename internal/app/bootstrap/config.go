package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends the snapshot store can run on.
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Config is the resolved runtime configuration for the storefront.
// It merges file defaults and environment overrides to support both local
// and deployed runs.
type Config struct {
	ServiceID string
	HTTPPort  int

	StorageBackend string
	SQLitePath     string
	RedisURL       string

	JWTPrivateKeyPEM  string
	JWTPublicKeyPEM   string
	JWTKeyID          string
	AllowEphemeralJWT bool

	BcryptCost int

	TokenTTL      time.Duration
	SyncNoticeTTL time.Duration

	GatewayAuthLatency  time.Duration
	GatewayCartLatency  time.Duration
	GatewayOrderLatency time.Duration
}

// configFile mirrors the YAML schema used by configs/default.yaml.
// It is intentionally separate from Config so runtime-only fields stay internal.
type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
	} `yaml:"service"`
	Storage struct {
		Backend    string `yaml:"backend"`
		SQLitePath string `yaml:"sqlite_path"`
		RedisURL   string `yaml:"redis_url"`
	} `yaml:"storage"`
	Session struct {
		TokenTTLHours     int `yaml:"token_ttl_hours"`
		SyncNoticeSeconds int `yaml:"sync_notice_seconds"`
	} `yaml:"session"`
	Gateway struct {
		AuthLatencyMS  int `yaml:"auth_latency_ms"`
		CartLatencyMS  int `yaml:"cart_latency_ms"`
		OrderLatencyMS int `yaml:"order_latency_ms"`
	} `yaml:"gateway"`
}

// LoadConfig resolves configuration in priority order: defaults -> file -> env.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:           "merkato-storefront",
		HTTPPort:            8080,
		StorageBackend:      StorageSQLite,
		SQLitePath:          "data/storefront.db",
		JWTKeyID:            "storefront-key-1",
		AllowEphemeralJWT:   true,
		BcryptCost:          12,
		TokenTTL:            24 * time.Hour,
		SyncNoticeTTL:       10 * time.Second,
		GatewayAuthLatency:  time.Second,
		GatewayCartLatency:  500 * time.Millisecond,
		GatewayOrderLatency: 1500 * time.Millisecond,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Storage.Backend != "" {
			cfg.StorageBackend = f.Storage.Backend
		}
		if f.Storage.SQLitePath != "" {
			cfg.SQLitePath = f.Storage.SQLitePath
		}
		if f.Storage.RedisURL != "" {
			cfg.RedisURL = f.Storage.RedisURL
		}
		if f.Session.TokenTTLHours > 0 {
			cfg.TokenTTL = time.Duration(f.Session.TokenTTLHours) * time.Hour
		}
		if f.Session.SyncNoticeSeconds > 0 {
			cfg.SyncNoticeTTL = time.Duration(f.Session.SyncNoticeSeconds) * time.Second
		}
		if f.Gateway.AuthLatencyMS > 0 {
			cfg.GatewayAuthLatency = time.Duration(f.Gateway.AuthLatencyMS) * time.Millisecond
		}
		if f.Gateway.CartLatencyMS > 0 {
			cfg.GatewayCartLatency = time.Duration(f.Gateway.CartLatencyMS) * time.Millisecond
		}
		if f.Gateway.OrderLatencyMS > 0 {
			cfg.GatewayOrderLatency = time.Duration(f.Gateway.OrderLatencyMS) * time.Millisecond
		}
	}

	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(envOrDefault("STORAGE_BACKEND", cfg.StorageBackend)))
	cfg.SQLitePath = envOrDefault("SQLITE_PATH", cfg.SQLitePath)
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.JWTPrivateKeyPEM = envOrDefault("JWT_PRIVATE_KEY_PEM", cfg.JWTPrivateKeyPEM)
	cfg.JWTPublicKeyPEM = envOrDefault("JWT_PUBLIC_KEY_PEM", cfg.JWTPublicKeyPEM)
	cfg.JWTKeyID = envOrDefault("JWT_KEY_ID", cfg.JWTKeyID)
	cfg.AllowEphemeralJWT = envBool("JWT_ALLOW_EPHEMERAL", cfg.AllowEphemeralJWT)
	cfg.BcryptCost = envInt("BCRYPT_ROUNDS", cfg.BcryptCost)
	cfg.TokenTTL = time.Duration(envInt("TOKEN_EXPIRY_HOURS", int(cfg.TokenTTL.Hours()))) * time.Hour
	cfg.SyncNoticeTTL = time.Duration(envInt("SYNC_NOTICE_SECONDS", int(cfg.SyncNoticeTTL.Seconds()))) * time.Second

	switch cfg.StorageBackend {
	case StorageSQLite, StorageMemory:
	case StorageRedis:
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("storage backend %q requires REDIS_URL", cfg.StorageBackend)
		}
	default:
		return Config{}, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
	if (cfg.JWTPrivateKeyPEM == "" || cfg.JWTPublicKeyPEM == "") && !cfg.AllowEphemeralJWT {
		return Config{}, fmt.Errorf("missing JWT_PRIVATE_KEY_PEM or JWT_PUBLIC_KEY_PEM")
	}

	return cfg, nil
}

// envOrDefault returns an env var when present, otherwise the provided fallback.
func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// envInt parses integer env vars with safe fallback on empty/invalid values.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// envBool parses common boolean env forms while keeping a deterministic fallback.
func envBool(name string, fallback bool) bool {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return fallback
	}
}
