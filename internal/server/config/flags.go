package config

import (
	"flag"
	"os"

	"github.com/Austin-Patrician/eastmoney/internal/flagx"
	"github.com/Austin-Patrician/eastmoney/internal/timex"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t string   token validity ("168h", "7d")
//	-b int      bcrypt cost
//	-k string   settings encryption passphrase
//	-m string   market data service base URL
//	-l string   log level
//
// Only these flags are parsed from os.Args (see flagx.FilterArgs).
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-b", "-k", "-m", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenValidity := fs.String("t", config.TokenValidityDuration.String(), "token validity duration")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.SettingsSecret, "k", config.SettingsSecret, "settings encryption passphrase")
	fs.StringVar(&config.DataServiceURL, "m", config.DataServiceURL, "market data service URL")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	d, err := timex.ParseDuration(*tokenValidity)
	if err != nil {
		panic(err)
	}
	config.TokenValidityDuration = d
}
