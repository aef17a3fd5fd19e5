package services

import (
	"errors"
	"strings"

	"github.com/Austin-Patrician/eastmoney/internal/common"
	"github.com/Austin-Patrician/eastmoney/internal/server/auth"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Messages shown to clients for missing fields.
const (
	MsgRegisterRequired       = "Username, email, and password are required"
	MsgLoginRequired          = "Email and password are required"
	MsgChangePasswordRequired = "Current and new password are required"
	MsgFundRequired           = "Fund code and name are required"
	MsgKeywordRequired        = "Keyword is required"
)

// RegisterInput is the registration payload.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in *RegisterInput) normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = normalizeEmail(in.Email)
}

// Validate checks presence first so that a missing field always yields the
// same message, then the format rules.
func (in RegisterInput) Validate() error {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return common.NewValidationError(MsgRegisterRequired)
	}
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Username, validation.RuneLength(3, 50)),
		validation.Field(&in.Email, validation.Length(0, 255), is.Email),
		validation.Field(&in.Password, validation.Length(0, auth.MaxPasswordBytes)),
	))
}

// LoginInput is the login payload.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in LoginInput) Validate() error {
	if in.Email == "" || in.Password == "" {
		return common.NewValidationError(MsgLoginRequired)
	}
	return nil
}

// ChangePasswordInput is the password change payload.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (in ChangePasswordInput) Validate() error {
	if in.CurrentPassword == "" || in.NewPassword == "" {
		return common.NewValidationError(MsgChangePasswordRequired)
	}
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.NewPassword, validation.Length(0, auth.MaxPasswordBytes)),
	))
}

// FundInput is the payload for adding a fund to the watch list.
type FundInput struct {
	FundCode         string   `json:"fundCode"`
	FundName         string   `json:"fundName"`
	FundType         string   `json:"fundType"`
	Style            string   `json:"style"`
	FocusBoards      []string `json:"focusBoards"`
	ScheduleEnabled  bool     `json:"scheduleEnabled"`
	ScheduleTime     string   `json:"scheduleTime"`
	ScheduleInterval string   `json:"scheduleInterval"`
}

func (in FundInput) Validate() error {
	if strings.TrimSpace(in.FundCode) == "" || strings.TrimSpace(in.FundName) == "" {
		return common.NewValidationError(MsgFundRequired)
	}
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.FundCode, validation.RuneLength(1, 20)),
		validation.Field(&in.FundName, validation.RuneLength(1, 255)),
	))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// asValidationError converts ozzo-validation errors into the common type.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if errors.As(err, &errs) {
		return common.NewValidationError(errs.Error())
	}
	return err
}
