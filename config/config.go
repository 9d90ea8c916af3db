package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Churn-Demo/frontend/log_messages"
	"github.com/Churn-Demo/frontend/logger"
)

const DefaultConfigPath = "configs/config.yaml"

// ServerConfig holds server-level config
type ServerConfig struct {
	ServiceName     string        `yaml:"service_name"`
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	LogLevel string `yaml:"level"`
}

// GatewayConfig points at the prediction gateway. A zero Timeout means no
// client-side deadline.
type GatewayConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type SessionConfig struct {
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

type UIConfig struct {
	ModelLabel string   `yaml:"model_label"`
	SampleIDs  []string `yaml:"sample_ids"`
}

// AppConfig is the main config struct that holds all configs
type AppConfig struct {
	Server   ServerConfig  `yaml:"server"`
	Logging  LogConfig     `yaml:"logging"`
	Gateway  GatewayConfig `yaml:"gateway"`
	Sessions SessionConfig `yaml:"sessions"`
	UI       UIConfig      `yaml:"ui"`
}

// Default returns the configuration used when no file is present.
func Default() *AppConfig {
	cfg := &AppConfig{}
	assignDefaultConfigValues(cfg)
	return cfg
}

func assignDefaultConfigValues(cfg *AppConfig) {
	// server config defaults
	cfg.Server.ServiceName = GetEnvOrDefaultAsString("SERVICE_NAME", orString(cfg.Server.ServiceName, "churn-panel"))
	cfg.Server.Port = GetEnvOrDefaultAsInt("SERVER_PORT", orInt(cfg.Server.Port, 5173))
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = 8 * time.Second
	}

	// log config defaults
	cfg.Logging.LogLevel = GetEnvOrDefaultAsString("LOGGING_LEVEL", orString(cfg.Logging.LogLevel, "info"))

	// gateway defaults
	cfg.Gateway.BaseURL = strings.TrimRight(
		GetEnvOrDefaultAsString("GATEWAY_URL", orString(cfg.Gateway.BaseURL, "http://localhost:8080")), "/")
	cfg.Gateway.Timeout = GetEnvOrDefaultAsDuration("GATEWAY_TIMEOUT", cfg.Gateway.Timeout)

	// session defaults
	cfg.Sessions.IdleTimeout = GetEnvOrDefaultAsDuration("SESSION_IDLE_TIMEOUT", cfg.Sessions.IdleTimeout)
	if cfg.Sessions.IdleTimeout <= 0 {
		cfg.Sessions.IdleTimeout = 30 * time.Minute
	}
	if cfg.Sessions.SweepInterval <= 0 {
		cfg.Sessions.SweepInterval = time.Minute
	}

	// ui defaults
	cfg.UI.ModelLabel = GetEnvOrDefaultAsString("MODEL_LABEL", orString(cfg.UI.ModelLabel, "dataset-demo-v1"))
	if len(cfg.UI.SampleIDs) == 0 {
		cfg.UI.SampleIDs = []string{"N001", "N002", "N003"}
	}
}

func orString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// LoadFromConfigFilePath loads and parses config file into AppConfig
func LoadFromConfigFilePath(configPath string) (*AppConfig, error) {
	// #nosec G304: configPath comes from operator-controlled env or flag
	data, err := os.ReadFile(configPath)
	if err != nil {
		logger.Error("Failed to read config file", err, map[string]any{"path": configPath})
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("Failed to unmarshal config", err)
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	assignDefaultConfigValues(&cfg)

	logger.Info("Configuration loaded successfully", map[string]any{"path": configPath})

	return &cfg, nil
}

// LoadEnv loads environment variables from a .env file if one exists.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		logger.Debug(log_messages.EnvFileNotFound)
	}
}

// LoadFromConfig loads .env, then the config file named by CONFIG_PATH.
// Only a missing file at the default path falls back to defaults.
func LoadFromConfig() (*AppConfig, error) {
	LoadEnv()

	configPath, explicit := os.LookupEnv("CONFIG_PATH")
	if !explicit || configPath == "" {
		configPath = DefaultConfigPath
		if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
			logger.Warn(log_messages.ConfigFileNotFound, map[string]any{"path": configPath})
			return Default(), nil
		}
	}

	cfg, err := LoadFromConfigFilePath(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	return cfg, nil
}

func GetEnvOrDefaultAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return int(value)
}

// GetEnvOrDefaultAsString returns the value of the given env variable or the default value if not set.
func GetEnvOrDefaultAsString(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

// GetEnvOrDefaultAsDuration parses values like "5s" or "2m".
func GetEnvOrDefaultAsDuration(key string, defaultVal time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	d, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultVal
	}
	return d
}
