package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ABeGood/klim-fit/internal/services"
)

var errInvalidToken = errors.New("invalid token")

// currentActor resolves the authenticated caller from the token
// claims placed in Locals by the auth middleware.
func currentActor(c *fiber.Ctx) (services.Actor, error) {
	idValue, ok := c.Locals("user_id").(string)
	if !ok {
		return services.Actor{}, errInvalidToken
	}
	role, ok := c.Locals("role").(string)
	if !ok {
		return services.Actor{}, errInvalidToken
	}
	id, err := strconv.ParseInt(idValue, 10, 64)
	if err != nil {
		return services.Actor{}, errInvalidToken
	}
	return services.Actor{ID: id, Role: role}, nil
}

// mapServiceError translates service sentinels to HTTP statuses.
// Validation messages pass through; everything else collapses to a
// generic message so storage detail never leaks.
func mapServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	case errors.Is(err, services.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already registered"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
