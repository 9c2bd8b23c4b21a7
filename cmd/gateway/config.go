package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// AppConfig holds all process-level configuration for the gateway, loaded
// from the environment and the optional config.yaml. Integration secrets are
// not part of it; those are read by the configuration snapshot and the
// backend adapters in the composition root.
type AppConfig struct {
	Name      string `envconfig:"APP_NAME" default:"standup-sydney-mcp-gateway"`
	Env       string `envconfig:"APP_ENV" default:"development"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	Host      string `envconfig:"HOST" default:"0.0.0.0"`
	Port      int    `envconfig:"PORT" default:"8080"`
	RedisAddr string `envconfig:"REDIS_ADDR"`

	Gateway GatewayFileConfig `ignored:"true"`
}

// GatewayFileConfig is the tuning section read from config.yaml.
type GatewayFileConfig struct {
	// InvokeTimeout bounds every tool handler call. A call that exceeds it is
	// reported as an error, not retried.
	InvokeTimeout time.Duration `yaml:"invoke_timeout"`
	// AuditStream is the Redis stream invocation results are appended to
	// when REDIS_ADDR is configured.
	AuditStream string `yaml:"audit_stream"`
	AuditMaxLen int64  `yaml:"audit_max_len"`
}

// LoadConfig loads configuration from a .env file (local development only),
// environment variables, and the optional config.yaml.
func LoadConfig() (*AppConfig, error) {
	// In Docker (GIN_MODE="release") configuration comes straight from the
	// environment; only local development reads a .env file.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("WARNING: No .env file found for local development.")
		}
	}

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	cfg.Gateway = GatewayFileConfig{
		InvokeTimeout: 30 * time.Second,
		AuditStream:   "gateway:invocations",
		AuditMaxLen:   10000,
	}
	data, err := os.ReadFile("config.yaml")
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg.Gateway); err != nil {
		return nil, fmt.Errorf("failed to parse config.yaml: %w", err)
	}

	return cfg, nil
}
