package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/terraincognita07/kira/internal/models"
	"github.com/terraincognita07/kira/internal/services"
)

type credentialsInput struct {
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
	RememberMe      bool   `json:"remember_me" form:"remember_me"`
}

type userView struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

func newUserView(user *models.User) userView {
	return userView{ID: user.ID, Email: user.Email}
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.ConfirmPassword != "" && input.ConfirmPassword != input.Password {
		return apiError(c, fiber.StatusBadRequest, "password mismatch")
	}

	user, err := handler.authService.Register(input.Email, input.Password)
	switch {
	case errors.Is(err, services.ErrAuthCredentialsInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	case errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, "weak password")
	case errors.Is(err, services.ErrAuthEmailExists):
		return apiError(c, fiber.StatusConflict, "email already exists")
	case err != nil:
		log.Error().Err(err).Msg("register failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}

	if err := handler.startSession(c, &user, input.RememberMe); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": newUserView(&user)})
}

// Login authenticates and sets the session cookie. Accounts flagged for a
// forced password change must send new_password in the same request.
func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	now := handler.now()
	if handler.loginLimiter.tooManyRecent(limiterKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.Authenticate(input.Email, input.Password)
	if errors.Is(err, services.ErrAuthPasswordRequired) {
		if input.NewPassword == "" {
			handler.loginLimiter.reset(limiterKey)
			return apiError(c, fiber.StatusForbidden, "password change required")
		}
		if changeErr := handler.authService.ChangePassword(user.ID, input.NewPassword); changeErr != nil {
			if errors.Is(changeErr, services.ErrWeakPassword) {
				return apiError(c, fiber.StatusBadRequest, "weak password")
			}
			log.Error().Err(changeErr).Uint("user_id", user.ID).Msg("password change failed")
			return apiError(c, fiber.StatusInternalServerError, "failed to update password")
		}
		user.MustChangePassword = false
		err = nil
	}
	if err != nil {
		if errors.Is(err, services.ErrAuthCredentialsInvalid) {
			handler.loginLimiter.addFailure(limiterKey, now)
			return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		log.Error().Err(err).Msg("login failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to sign in")
	}

	handler.loginLimiter.reset(limiterKey)
	if err := handler.startSession(c, &user, input.RememberMe); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(fiber.Map{"user": newUserView(&user)})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.endSession(c)
	return c.JSON(fiber.Map{"ok": true})
}
