package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "freshmart", cfg.Storage.Namespace)
	assert.Equal(t, 10*time.Second, cfg.Catalog.Timeout)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "Redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CATALOG_TIMEOUT", "2s")

	cfg, err := load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "redis", cfg.Storage.Driver)
	assert.Equal(t, 3, cfg.Storage.RedisDB)
	assert.Equal(t, 2*time.Second, cfg.Catalog.Timeout)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	body := "storage_driver: memory\ncatalog_url: http://catalog.local/products\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "http://catalog.local/products", cfg.Catalog.URL)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := load(viper.New(), "")
	require.Error(t, err)
}
