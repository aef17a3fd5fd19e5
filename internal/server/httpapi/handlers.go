package httpapi

import (
	"context"
	"time"

	"github.com/Austin-Patrician/eastmoney/internal/logging"
	"github.com/Austin-Patrician/eastmoney/internal/server/models"
	"github.com/Austin-Patrician/eastmoney/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

const (
	msgUserNotFound = "User not found"
	msgFundNotFound = "Fund not found"

	dbPingTimeout = 2 * time.Second
)

type handlers struct {
	deps   Deps
	logger logging.Logger
}

type authResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    models.UserView `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *handlers) register(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, titleValidation, msgInvalidBody)
	}

	res, err := h.deps.Users.Register(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err, msgUserNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(authResponse{
		Message: "User registered successfully",
		Token:   res.Token,
		User:    res.User.View(),
	})
}

func (h *handlers) login(c *fiber.Ctx) error {
	var in services.LoginInput
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, titleValidation, msgInvalidBody)
	}

	res, err := h.deps.Users.Login(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err, msgUserNotFound)
	}
	return c.JSON(authResponse{
		Message: "Login successful",
		Token:   res.Token,
		User:    res.User.View(),
	})
}

func (h *handlers) me(c *fiber.Ctx) error {
	user, err := h.deps.Users.GetCurrentUser(c.UserContext(), currentIdentity(c).UserID)
	if err != nil {
		return h.fail(c, err, msgUserNotFound)
	}
	return c.JSON(fiber.Map{"user": user.View()})
}

func (h *handlers) changePassword(c *fiber.Ctx) error {
	var in services.ChangePasswordInput
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, titleValidation, msgInvalidBody)
	}

	if err := h.deps.Users.ChangePassword(c.UserContext(), currentIdentity(c).UserID, in); err != nil {
		return h.fail(c, err, msgUserNotFound)
	}
	return c.JSON(messageResponse{Message: "Password updated successfully"})
}

func (h *handlers) listFunds(c *fiber.Ctx) error {
	funds, err := h.deps.Funds.List(c.UserContext(), currentIdentity(c).UserID)
	if err != nil {
		return h.fail(c, err, msgFundNotFound)
	}
	return c.JSON(fiber.Map{"funds": funds})
}

func (h *handlers) searchFunds(c *fiber.Ctx) error {
	results, err := h.deps.Funds.Search(c.UserContext(), c.Query("keyword"))
	if err != nil {
		return h.fail(c, err, msgFundNotFound)
	}
	return c.JSON(fiber.Map{"results": results})
}

func (h *handlers) addFund(c *fiber.Ctx) error {
	var in services.FundInput
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, titleValidation, msgInvalidBody)
	}

	fund, err := h.deps.Funds.Add(c.UserContext(), currentIdentity(c).UserID, in)
	if err != nil {
		return h.fail(c, err, msgFundNotFound)
	}
	return c.JSON(fiber.Map{"message": "Fund added successfully", "fund": fund})
}

func (h *handlers) updateFund(c *fiber.Ctx) error {
	var patch models.FundPatch
	if err := c.BodyParser(&patch); err != nil {
		return writeError(c, fiber.StatusBadRequest, titleValidation, msgInvalidBody)
	}

	fund, err := h.deps.Funds.Update(c.UserContext(), currentIdentity(c).UserID, c.Params("id"), patch)
	if err != nil {
		return h.fail(c, err, msgFundNotFound)
	}
	return c.JSON(fiber.Map{"message": "Fund updated successfully", "fund": fund})
}

func (h *handlers) deleteFund(c *fiber.Ctx) error {
	if err := h.deps.Funds.Delete(c.UserContext(), currentIdentity(c).UserID, c.Params("id")); err != nil {
		return h.fail(c, err, msgFundNotFound)
	}
	return c.JSON(messageResponse{Message: "Fund deleted successfully"})
}

func (h *handlers) getSettings(c *fiber.Ctx) error {
	st, err := h.deps.Settings.Get(c.UserContext(), currentIdentity(c).UserID)
	if err != nil {
		return h.fail(c, err, "Settings not found")
	}
	return c.JSON(fiber.Map{"settings": st})
}

func (h *handlers) updateSettings(c *fiber.Ctx) error {
	var patch models.SettingsPatch
	if err := c.BodyParser(&patch); err != nil {
		return writeError(c, fiber.StatusBadRequest, titleValidation, msgInvalidBody)
	}

	st, err := h.deps.Settings.Update(c.UserContext(), currentIdentity(c).UserID, patch)
	if err != nil {
		return h.fail(c, err, "Settings not found")
	}
	return c.JSON(fiber.Map{"message": "Settings updated successfully", "settings": st})
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Time     string `json:"time"`
}

// health reports the process and database status; 503 when the database
// cannot be pinged.
func (h *handlers) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), dbPingTimeout)
	defer cancel()

	resp := healthResponse{Status: "ok", Database: "up", Time: time.Now().UTC().Format(time.RFC3339)}
	status := fiber.StatusOK
	if err := h.deps.DB.PingContext(ctx); err != nil {
		resp.Status, resp.Database = "degraded", "down"
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(resp)
}

func (h *handlers) marketHealth(c *fiber.Ctx) error {
	if !h.deps.Market.Health(c.UserContext()) {
		return writeError(c, fiber.StatusServiceUnavailable, titleServiceUnavail, "Data service unavailable")
	}
	return c.JSON(fiber.Map{"status": "ok", "dataService": "up"})
}
