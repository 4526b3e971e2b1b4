package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/kira/internal/models"
)

const (
	authCookieName = "kira_auth"
	contextUserKey = "current_user"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok && user != nil
}

// AuthRequired rejects requests without a valid session.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.sessionUser(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	c.Locals(contextUserKey, user)
	return c.Next()
}

// OptionalAuth attaches the session user when present. Read endpoints use it
// to answer anonymous callers with empty data instead of 401.
func (handler *Handler) OptionalAuth(c *fiber.Ctx) error {
	if user, err := handler.sessionUser(c); err == nil {
		c.Locals(contextUserKey, user)
	}
	return c.Next()
}
