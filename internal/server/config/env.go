package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Austin-Patrician/eastmoney/internal/timex"
)

// Environment variables understood by parseEnv.
const (
	EnvHTTPAddr           = "HTTP_ADDR"
	EnvDatabaseDSN        = "DATABASE_DSN"
	EnvSecretKey          = "JWT_SECRET"
	EnvTokenValidity      = "JWT_EXPIRES_IN"
	EnvBcryptCost         = "BCRYPT_COST"
	EnvSettingsSecret     = "SETTINGS_SECRET"
	EnvDataServiceURL     = "DATA_SERVICE_URL"
	EnvDataServiceTimeout = "DATA_SERVICE_TIMEOUT"
	EnvLogLevel           = "LOG_LEVEL"
)

// parseEnv overlays non-empty environment variables. Malformed numeric or
// duration values panic, like malformed flags do.
func parseEnv(config *Config) {
	lookup := func(name string, dst *string) {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*dst = v
		}
	}

	lookup(EnvHTTPAddr, &config.EndpointAddrHTTP)
	lookup(EnvDatabaseDSN, &config.DatabaseDSN)
	lookup(EnvSecretKey, &config.SecretKey)
	lookup(EnvSettingsSecret, &config.SettingsSecret)
	lookup(EnvDataServiceURL, &config.DataServiceURL)
	lookup(EnvLogLevel, &config.LogLevel)

	if v := os.Getenv(EnvTokenValidity); v != "" {
		config.TokenValidityDuration = mustDuration(EnvTokenValidity, v)
	}
	if v := os.Getenv(EnvDataServiceTimeout); v != "" {
		config.DataServiceTimeout = mustDuration(EnvDataServiceTimeout, v)
	}
	if v := os.Getenv(EnvBcryptCost); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvBcryptCost, err))
		}
		config.BcryptCost = cost
	}
}

func mustDuration(name, v string) time.Duration {
	d, err := timex.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", name, err))
	}
	return d
}
