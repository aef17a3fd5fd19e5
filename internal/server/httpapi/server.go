// Package httpapi exposes the REST API over fiber.
package httpapi

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Austin-Patrician/eastmoney/internal/logging"
	"github.com/Austin-Patrician/eastmoney/internal/server/auth"
	"github.com/Austin-Patrician/eastmoney/internal/server/models"
	"github.com/Austin-Patrician/eastmoney/internal/server/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const shutdownTimeout = 10 * time.Second

type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, in services.LoginInput) (*services.AuthResult, error)
	GetCurrentUser(ctx context.Context, userID string) (*models.User, error)
	ChangePassword(ctx context.Context, userID string, in services.ChangePasswordInput) error
}

type FundService interface {
	List(ctx context.Context, userID string) ([]*models.Fund, error)
	Add(ctx context.Context, userID string, in services.FundInput) (*models.Fund, error)
	Update(ctx context.Context, userID, id string, patch models.FundPatch) (*models.Fund, error)
	Delete(ctx context.Context, userID, id string) error
	Search(ctx context.Context, keyword string) ([]json.RawMessage, error)
}

type SettingsService interface {
	Get(ctx context.Context, userID string) (*models.Settings, error)
	Update(ctx context.Context, userID string, patch models.SettingsPatch) (*models.Settings, error)
}

// TokenVerifier is the part of auth.TokenIssuer the gate needs.
type TokenVerifier interface {
	Verify(token string) (*auth.Identity, error)
}

// Pinger reports database reachability (*sql.DB satisfies it).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// DataServiceProbe reports market data service reachability.
type DataServiceProbe interface {
	Health(ctx context.Context) bool
}

// Deps are the collaborators the handlers call.
type Deps struct {
	Users    UserService
	Funds    FundService
	Settings SettingsService
	Tokens   TokenVerifier
	DB       Pinger
	Market   DataServiceProbe
	Logger   logging.Logger
}

type Server struct {
	address string
	app     *fiber.App
	logger  logging.Logger
}

// NewServer builds the fiber app with all routes registered.
func NewServer(address string, d Deps) *Server {
	if d.Logger == nil {
		d.Logger = logging.Nop{}
	}
	logger := d.Logger.With("module", "http_server")

	app := fiber.New(fiber.Config{
		AppName:               "eastmoney",
		DisableStartupMessage: true,
		// Values read from the request outlive the handler.
		Immutable:             true,
		ErrorHandler:          errorHandler(logger),
	})
	app.Use(requestLogger(logger))
	app.Use(recover.New())

	h := &handlers{deps: d, logger: logger}
	gate := authGate(d.Tokens)

	app.Get("/health", h.health)

	api := app.Group("/api")
	api.Get("/market/health", h.marketHealth)

	ag := api.Group("/auth")
	ag.Post("/register", h.register)
	ag.Post("/login", h.login)
	ag.Get("/me", gate, h.me)
	ag.Put("/password", gate, h.changePassword)

	fg := api.Group("/funds", gate)
	fg.Get("/", h.listFunds)
	fg.Get("/search", h.searchFunds)
	fg.Post("/", h.addFund)
	fg.Put("/:id", h.updateFund)
	fg.Delete("/:id", h.deleteFund)

	sg := api.Group("/settings", gate)
	sg.Get("/", h.getSettings)
	sg.Put("/", h.updateSettings)

	return &Server{address: address, app: app, logger: logger}
}

// App returns the underlying fiber app, e.g. for app.Test.
func (s *Server) App() *fiber.App { return s.app }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		errCh <- s.app.Listen(s.address)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
