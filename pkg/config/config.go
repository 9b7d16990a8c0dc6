package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// FileEnv names the environment variable pointing at an optional config file
// (yaml, json, toml or .env). Environment variables always win over the file.
const FileEnv = "STOREFRONT_CONFIG"

type Config struct {
	AppEnv    string
	LogLevel  string
	LogFormat string

	HTTPPort int

	Storage StorageConfig
	Catalog CatalogConfig
}

type StorageConfig struct {
	Driver    string // memory, file or redis
	Dir       string
	Namespace string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// CatalogConfig selects the catalog source. URL wins over File.
type CatalogConfig struct {
	URL     string
	File    string
	Timeout time.Duration
}

var defaults = map[string]any{
	"APP_ENV":           "dev",
	"LOG_LEVEL":         "info",
	"LOG_FORMAT":        "json",
	"HTTP_PORT":         8080,
	"STORAGE_DRIVER":    "file",
	"STORAGE_DIR":       "./data",
	"STORAGE_NAMESPACE": "freshmart",
	"REDIS_ADDR":        "localhost:6379",
	"REDIS_PASSWORD":    "",
	"REDIS_DB":          0,
	"CATALOG_URL":       "",
	"CATALOG_FILE":      "catalog.yaml",
	"CATALOG_TIMEOUT":   "10s",
}

func Load() (Config, error) {
	return load(viper.New(), os.Getenv(FileEnv))
}

func load(v *viper.Viper, file string) (Config, error) {
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	cfg := Config{
		AppEnv:    v.GetString("APP_ENV"),
		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),
		HTTPPort:  v.GetInt("HTTP_PORT"),
		Storage: StorageConfig{
			Driver:        strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
			Dir:           v.GetString("STORAGE_DIR"),
			Namespace:     v.GetString("STORAGE_NAMESPACE"),
			RedisAddr:     v.GetString("REDIS_ADDR"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
		},
		Catalog: CatalogConfig{
			URL:     v.GetString("CATALOG_URL"),
			File:    v.GetString("CATALOG_FILE"),
			Timeout: v.GetDuration("CATALOG_TIMEOUT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case "memory", "file", "redis":
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "file" && c.Storage.Dir == "" {
		return fmt.Errorf("STORAGE_DIR is required for the file driver")
	}
	if c.HTTPPort <= 0 {
		return fmt.Errorf("HTTP_PORT must be positive, got %d", c.HTTPPort)
	}
	if c.Catalog.URL == "" && c.Catalog.File == "" {
		return fmt.Errorf("one of CATALOG_URL or CATALOG_FILE is required")
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("CATALOG_TIMEOUT must be positive, got %s", c.Catalog.Timeout)
	}
	return nil
}
