// Package server initializes and runs the main application server.
// It opens the database, applies migrations, builds the services and serves
// the REST API until the process is told to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Austin-Patrician/eastmoney/internal/common"
	"github.com/Austin-Patrician/eastmoney/internal/cryptox"
	"github.com/Austin-Patrician/eastmoney/internal/dbx"
	"github.com/Austin-Patrician/eastmoney/internal/logging"
	"github.com/Austin-Patrician/eastmoney/internal/server/auth"
	"github.com/Austin-Patrician/eastmoney/internal/server/config"
	"github.com/Austin-Patrician/eastmoney/internal/server/httpapi"
	"github.com/Austin-Patrician/eastmoney/internal/server/marketdata"
	"github.com/Austin-Patrician/eastmoney/internal/server/repositories/repomanager"
	"github.com/Austin-Patrician/eastmoney/internal/server/services"
)

// generatedSecretBytes is the size of the signing key made up when none is
// configured.
const generatedSecretBytes = 32

// settingsKeySalt is the Argon2 salt for the settings encryption key. The
// key is derived from the configured passphrase alone, so the salt is fixed.
const settingsKeySalt = "eastmoney/settings/v1"

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := sqlOpen("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	tokens, err := newTokenIssuer(ctx, c, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	settingsOpts, err := settingsOptions(ctx, c, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	hasher := auth.NewPasswordHasher(c.BcryptCost)
	market := marketdata.New(c.DataServiceURL, c.DataServiceTimeout)

	users, err := services.NewUserService(db, dbx.NewSQLTransactor(db, nil), rm, hasher, tokens)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	srv := httpapi.NewServer(c.EndpointAddrHTTP, httpapi.Deps{
		Users:    users,
		Funds:    services.NewFundService(db, rm, market),
		Settings: services.NewSettingsService(db, rm, settingsOpts...),
		Tokens:   tokens,
		DB:       db,
		Market:   market,
		Logger:   logger,
	})

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

// newTokenIssuer builds the issuer from config. Without a configured secret
// a random one is generated, so tokens stop verifying after a restart.
func newTokenIssuer(ctx context.Context, c *config.Config, logger logging.Logger) (*auth.TokenIssuer, error) {
	secret := []byte(c.SecretKey)
	if len(secret) == 0 {
		s, err := common.MakeRandHexString(generatedSecretBytes)
		if err != nil {
			return nil, fmt.Errorf("generate token secret: %w", err)
		}
		secret = []byte(s)
		logger.Warn(ctx, "no token secret configured, using a random one; tokens will not survive a restart")
	}
	defer common.WipeByteArray(secret)

	tokens, err := auth.NewTokenIssuer(auth.TokenConfig{
		Secret: secret,
		TTL:    c.TokenValidityDuration,
		Issuer: c.TokenIssuer,
	})
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}
	return tokens, nil
}

// settingsOptions enables API key encryption when a passphrase is set.
func settingsOptions(ctx context.Context, c *config.Config, logger logging.Logger) ([]services.SettingsOption, error) {
	if c.SettingsSecret == "" {
		logger.Warn(ctx, "no settings secret configured, API keys in user settings are stored unencrypted")
		return nil, nil
	}

	key := cryptox.DeriveKey([]byte(c.SettingsSecret), []byte(settingsKeySalt))
	defer common.WipeByteArray(key)

	sealer, err := cryptox.NewSealer(key)
	if err != nil {
		return nil, fmt.Errorf("settings sealer: %w", err)
	}
	return []services.SettingsOption{services.WithSecretSealer(sealer)}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "close db", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
