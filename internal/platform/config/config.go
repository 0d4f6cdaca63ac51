package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

// StorageConfig selects where the cart snapshot lives. Driver is one of
// "sqlite", "pgx", "postgres" or "memory".
type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Table  string `yaml:"table"`
	Key    string `yaml:"key"`
}

type CheckoutConfig struct {
	ProcessingDelay time.Duration `yaml:"processing_delay"`
}

type CatalogConfig struct {
	SeedHTML string `yaml:"seed_html"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Checkout CheckoutConfig `yaml:"checkout"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Log      LogConfig      `yaml:"log"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8085"},
		Storage: StorageConfig{
			Driver: "sqlite",
			DSN:    "file:sorav_cart.db",
			Table:  "cart_snapshots",
			Key:    "sorav_cart",
		},
		Checkout: CheckoutConfig{ProcessingDelay: 1200 * time.Millisecond},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads defaults, then the YAML file at path (a missing file is not an error), then env overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.Server.Port = GetEnv("SERVER_PORT", c.Server.Port)
	c.Storage.Driver = GetEnv("STORAGE_DRIVER", c.Storage.Driver)
	c.Storage.DSN = GetEnv("STORAGE_DSN", c.Storage.DSN)
	c.Storage.Table = GetEnv("STORAGE_TABLE", c.Storage.Table)
	c.Storage.Key = GetEnv("CART_STORAGE_KEY", c.Storage.Key)
	c.Checkout.ProcessingDelay = GetEnvAsDuration("CHECKOUT_PROCESSING_DELAY", c.Checkout.ProcessingDelay)
	c.Catalog.SeedHTML = GetEnv("CATALOG_SEED_HTML", c.Catalog.SeedHTML)
	c.Log.Level = GetEnv("LOG_LEVEL", c.Log.Level)
}

// ListenAddr returns the port in the ":port" form gin and net/http expect.
func (c *Config) ListenAddr() string {
	return ":" + c.Server.Port
}

func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func GetEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := GetEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	// bare numbers are milliseconds
	if ms, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}
