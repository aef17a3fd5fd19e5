package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	t.Setenv(EnvHTTPAddr, ":9999")
	t.Setenv(EnvDatabaseDSN, "postgres://env")
	t.Setenv(EnvSecretKey, "env-secret")
	t.Setenv(EnvTokenValidity, "2d")
	t.Setenv(EnvBcryptCost, "4")
	t.Setenv(EnvSettingsSecret, "env-pass")
	t.Setenv(EnvDataServiceURL, "http://env-data")
	t.Setenv(EnvDataServiceTimeout, "3s")
	t.Setenv(EnvLogLevel, "error")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":9999", cfg.EndpointAddrHTTP)
	assert.Equal(t, "postgres://env", cfg.DatabaseDSN)
	assert.Equal(t, "env-secret", cfg.SecretKey)
	assert.Equal(t, 48*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, 4, cfg.BcryptCost)
	assert.Equal(t, "env-pass", cfg.SettingsSecret)
	assert.Equal(t, "http://env-data", cfg.DataServiceURL)
	assert.Equal(t, 3*time.Second, cfg.DataServiceTimeout)
	assert.Equal(t, "error", cfg.LogLevel)
}

func Test_parseEnv_EmptyValuesIgnored(t *testing.T) {
	t.Setenv(EnvHTTPAddr, "")
	t.Setenv(EnvTokenValidity, "")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":8000", cfg.EndpointAddrHTTP)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenValidityDuration)
}

func Test_parseEnv_Malformed(t *testing.T) {
	t.Setenv(EnvBcryptCost, "ten")
	require.Panics(t, func() { parseEnv(&Config{}) })
}
