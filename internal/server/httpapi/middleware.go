package httpapi

import (
	"strings"
	"time"

	"github.com/Austin-Patrician/eastmoney/internal/common"
	"github.com/Austin-Patrician/eastmoney/internal/logging"
	"github.com/Austin-Patrician/eastmoney/internal/server/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	msgNoToken      = "No token provided"
	msgInvalidToken = "Invalid or expired token"

	requestIDHeader = "X-Request-ID"
)

// authGate admits requests that carry "Authorization: Bearer <token>" with a
// token the verifier accepts. The decoded identity is bound to the request's
// user context; nothing else about the request is changed.
func authGate(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := strings.CutPrefix(c.Get(common.AuthorizationHeaderName), common.BearerScheme)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, titleUnauthorized, msgNoToken)
		}

		id, err := tokens.Verify(raw)
		if err != nil {
			return writeError(c, fiber.StatusUnauthorized, titleUnauthorized, msgInvalidToken)
		}

		c.SetUserContext(auth.WithIdentity(c.UserContext(), id))
		return c.Next()
	}
}

// currentIdentity returns the identity bound by authGate. Handlers behind the
// gate can rely on it being present.
func currentIdentity(c *fiber.Ctx) *auth.Identity {
	id, _ := auth.IdentityFromContext(c.UserContext())
	return id
}

// requestLogger tags each request with an id and writes one line when it
// completes.
func requestLogger(logger logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		reqID := c.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(requestIDHeader, reqID)

		if err := c.Next(); err != nil {
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		args := []any{
			"request_id", reqID,
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"latency_ms", time.Since(start).Milliseconds(),
		}
		if id := currentIdentity(c); id != nil {
			args = append(args, "user_id", id.UserID)
		}
		logger.Info(c.UserContext(), "request", args...)
		return nil
	}
}
