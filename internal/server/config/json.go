package config

import (
	"encoding/json"
	"os"

	"github.com/Austin-Patrician/eastmoney/internal/flagx"
	"github.com/Austin-Patrician/eastmoney/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "30s"/"7d" strings and integer nanoseconds work.
// Only keys present in the file override the current values.
type JsonConfig struct {
	EndpointAddrHTTP      *string         `json:"endpoint_addr_http"`
	DatabaseDSN           *string         `json:"database_dsn"`
	SecretKey             *string         `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	TokenIssuer           *string         `json:"token_issuer"`
	BcryptCost            *int            `json:"bcrypt_cost"`
	SettingsSecret        *string         `json:"settings_secret"`
	DataServiceURL        *string         `json:"data_service_url"`
	DataServiceTimeout    *timex.Duration `json:"data_service_timeout"`
	LogLevel              *string         `json:"log_level"`
}

// parseJson overlays values from the file named by -c/-config (or the CONFIG
// environment variable). A missing path is a no-op; an unreadable file or
// invalid JSON panics, since the server cannot start with a config it was
// explicitly pointed at but could not read.
func parseJson(config *Config) {
	path := flagx.ConfigFilePath()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setIf(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.SecretKey, c.SecretKey)
	setIf(&config.TokenIssuer, c.TokenIssuer)
	setIf(&config.BcryptCost, c.BcryptCost)
	setIf(&config.SettingsSecret, c.SettingsSecret)
	setIf(&config.DataServiceURL, c.DataServiceURL)
	setIf(&config.LogLevel, c.LogLevel)
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.DataServiceTimeout != nil {
		config.DataServiceTimeout = c.DataServiceTimeout.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
