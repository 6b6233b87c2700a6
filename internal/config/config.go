package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kevin07696/worldnet-gateway/internal/adapters/secrets"
	"github.com/kevin07696/worldnet-gateway/internal/adapters/worldnet"
	"github.com/kevin07696/worldnet-gateway/pkg/timeutil"
)

// Config holds all application configuration
type Config struct {
	Gateway GatewayConfig
	Secrets SecretsConfig
	Logger  LoggerConfig
	Metrics MetricsConfig
}

// GatewayConfig holds WorldNet terminal configuration
type GatewayConfig struct {
	URL            string // XML payment endpoint (default: sandbox)
	TerminalID     string // Terminal the requests are sent for
	Secret         string // Shared secret; may instead come from a secret source
	DateTimeFormat string // Token pattern for DATETIME (default: DD-MM-YYYY:HH:mm:ss:SSS)
	Timezone       string // IANA zone DATETIME is rendered in (default: local)
	Timeout        int    // Request timeout in seconds (default: 30)
}

// SecretsConfig selects where the shared secret is read from when it is not set directly
type SecretsConfig struct {
	Source      string // env, file, aws or vault; empty uses Gateway.Secret
	Path        string // Variable name, file path, secret name or KV path
	SecretsDir  string // Base directory of the file source
	AWSRegion   string
	AWSEndpoint string // Optional custom endpoint (LocalStack)
	VaultAddr   string
	VaultToken  string
	VaultMount  string
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// MetricsConfig holds the Prometheus endpoint configuration
type MetricsConfig struct {
	Port int // 0 disables the metrics server
}

// LoadFromEnv loads configuration from environment variables. A .env file in the
// working directory, or the file named by WORLDNET_ENV_FILE, is loaded first;
// variables already set in the environment take precedence.
func LoadFromEnv() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	cfg := &Config{
		Gateway: GatewayConfig{
			URL:            getEnv("WORLDNET_GATEWAY_URL", worldnet.SandboxURL),
			TerminalID:     getEnv("WORLDNET_TERMINAL_ID", ""),
			Secret:         getEnv("WORLDNET_SECRET", ""),
			DateTimeFormat: getEnv("WORLDNET_DATETIME_FORMAT", timeutil.DefaultDateTimePattern),
			Timezone:       getEnv("WORLDNET_TIMEZONE", ""),
			Timeout:        getEnvAsInt("WORLDNET_TIMEOUT", 30),
		},
		Secrets: SecretsConfig{
			Source:      getEnv("WORLDNET_SECRET_SOURCE", ""),
			Path:        getEnv("WORLDNET_SECRET_PATH", ""),
			SecretsDir:  getEnv("WORLDNET_SECRETS_DIR", "./secrets"),
			AWSRegion:   getEnv("AWS_REGION", ""),
			AWSEndpoint: getEnv("AWS_SECRETS_ENDPOINT", ""),
			VaultAddr:   getEnv("VAULT_ADDR", ""),
			VaultToken:  getEnv("VAULT_TOKEN", ""),
			VaultMount:  getEnv("VAULT_MOUNT", "secret"),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
		Metrics: MetricsConfig{
			Port: getEnvAsInt("METRICS_PORT", 0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and value ranges
func (c *Config) Validate() error {
	if c.Gateway.TerminalID == "" {
		return fmt.Errorf("WORLDNET_TERMINAL_ID is required")
	}
	if c.Gateway.Timeout <= 0 {
		return fmt.Errorf("WORLDNET_TIMEOUT must be positive")
	}
	if _, err := c.Gateway.Location(); err != nil {
		return err
	}

	switch c.Secrets.Source {
	case "":
		if c.Gateway.Secret == "" {
			return fmt.Errorf("WORLDNET_SECRET is required when WORLDNET_SECRET_SOURCE is not set")
		}
	case secrets.SourceEnv, secrets.SourceFile:
		if c.Secrets.Path == "" {
			return fmt.Errorf("WORLDNET_SECRET_PATH is required for the %s secret source", c.Secrets.Source)
		}
	case secrets.SourceAWS:
		if c.Secrets.Path == "" || c.Secrets.AWSRegion == "" {
			return fmt.Errorf("WORLDNET_SECRET_PATH and AWS_REGION are required for the aws secret source")
		}
	case secrets.SourceVault:
		if c.Secrets.Path == "" || c.Secrets.VaultAddr == "" || c.Secrets.VaultToken == "" {
			return fmt.Errorf("WORLDNET_SECRET_PATH, VAULT_ADDR and VAULT_TOKEN are required for the vault secret source")
		}
	default:
		return fmt.Errorf("unsupported WORLDNET_SECRET_SOURCE: %q", c.Secrets.Source)
	}

	return nil
}

// Location resolves the configured timezone; empty means local time
func (g *GatewayConfig) Location() (*time.Location, error) {
	if g.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(g.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid WORLDNET_TIMEZONE %q: %w", g.Timezone, err)
	}
	return loc, nil
}

// RequestTimeout returns the HTTP timeout as a duration
func (g *GatewayConfig) RequestTimeout() time.Duration {
	return time.Duration(g.Timeout) * time.Second
}

// ClientConfig maps the gateway settings to a client config. secret overrides
// Gateway.Secret when non-empty.
func (g *GatewayConfig) ClientConfig(secret string) (worldnet.Config, error) {
	loc, err := g.Location()
	if err != nil {
		return worldnet.Config{}, err
	}
	if secret == "" {
		secret = g.Secret
	}
	return worldnet.Config{
		GatewayURL:     g.URL,
		TerminalID:     g.TerminalID,
		Secret:         secret,
		DateTimeFormat: g.DateTimeFormat,
		Location:       loc,
	}, nil
}

// SourceConfig maps the secrets settings to a secret source config
func (s *SecretsConfig) SourceConfig() secrets.SourceConfig {
	cfg := secrets.SourceConfig{
		Kind:       s.Source,
		SecretsDir: s.SecretsDir,
	}
	switch s.Source {
	case secrets.SourceAWS:
		cfg.AWS = secrets.DefaultAWSSecretsManagerConfig(s.AWSRegion)
		cfg.AWS.Endpoint = s.AWSEndpoint
	case secrets.SourceVault:
		cfg.Vault = secrets.DefaultVaultConfig(s.VaultAddr)
		cfg.Vault.Token = s.VaultToken
		cfg.Vault.MountPath = s.VaultMount
	}
	return cfg
}

// Helper functions

func loadEnvFile() error {
	path := os.Getenv("WORLDNET_ENV_FILE")
	if path == "" {
		path = ".env"
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
