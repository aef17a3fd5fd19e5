package httpapi

import (
	"errors"

	"github.com/Austin-Patrician/eastmoney/internal/common"
	"github.com/Austin-Patrician/eastmoney/internal/logging"
	"github.com/Austin-Patrician/eastmoney/internal/netx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// Error titles, the "error" field of every error body.
const (
	titleValidation     = "Validation Error"
	titleAuthFailed     = "Authentication Failed"
	titleUnauthorized   = "Unauthorized"
	titleNotFound       = "Not Found"
	titleBadGateway     = "Bad Gateway"
	titleInternal       = "Internal Server Error"
	titleServiceUnavail = "Service Unavailable"

	msgInvalidCredentials = "Invalid email or password"
	msgWrongPassword      = "Current password is incorrect"
	msgInvalidBody        = "Invalid request body"
	msgInternal           = "An unexpected error occurred"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeError(c *fiber.Ctx, status int, title, msg string) error {
	return c.Status(status).JSON(errorBody{Error: title, Message: msg})
}

// fail maps a service error onto a response. notFound is the message used
// for common.ErrorNotFound. Anything unrecognised is logged and answered
// with a generic 500 body.
func (h *handlers) fail(c *fiber.Ctx, err error, notFound string) error {
	var (
		ve *common.ValidationError
		se *netx.StatusError
	)
	switch {
	case errors.As(err, &ve):
		return writeError(c, fiber.StatusBadRequest, titleValidation, ve.Msg)
	case errors.Is(err, common.ErrUsernameExists):
		return writeError(c, fiber.StatusBadRequest, titleValidation, "Username already exists")
	case errors.Is(err, common.ErrEmailExists):
		return writeError(c, fiber.StatusBadRequest, titleValidation, "Email already exists")
	case errors.Is(err, common.ErrFundExists):
		return writeError(c, fiber.StatusBadRequest, titleValidation, "Fund already exists")
	case errors.Is(err, common.ErrAlreadyExists):
		return writeError(c, fiber.StatusBadRequest, titleValidation, "Already exists")
	case errors.Is(err, common.ErrWrongPassword):
		return writeError(c, fiber.StatusUnauthorized, titleAuthFailed, msgWrongPassword)
	case errors.Is(err, common.ErrorUnauthorized):
		return writeError(c, fiber.StatusUnauthorized, titleAuthFailed, msgInvalidCredentials)
	case errors.Is(err, common.ErrorNotFound):
		return writeError(c, fiber.StatusNotFound, titleNotFound, notFound)
	case errors.As(err, &se):
		return writeError(c, fiber.StatusBadGateway, titleBadGateway, se.Detail)
	case errors.Is(err, common.ErrUnavailable):
		return writeError(c, fiber.StatusBadGateway, titleBadGateway, "Data service unavailable")
	default:
		h.logger.Error(c.UserContext(), "request failed", "path", c.Path(), "error", err)
		return writeError(c, fiber.StatusInternalServerError, titleInternal, msgInternal)
	}
}

// errorHandler renders errors that escape the handlers: unknown routes,
// wrong methods and recovered panics.
func errorHandler(logger logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return writeError(c, fe.Code, titleFor(fe.Code), fe.Message)
		}
		logger.Error(c.UserContext(), "unhandled error", "path", c.Path(), "error", err)
		return writeError(c, fiber.StatusInternalServerError, titleInternal, msgInternal)
	}
}

func titleFor(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return titleValidation
	case fiber.StatusUnauthorized:
		return titleUnauthorized
	case fiber.StatusNotFound:
		return titleNotFound
	default:
		return utils.StatusMessage(status)
	}
}
