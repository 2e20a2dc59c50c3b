package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	config "github.com/mkamau589/cowork_hub/configs"
	"github.com/mkamau589/cowork_hub/models"
)

func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(config.Config("JWT_SECRET")),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}

// ClaimedRole parses the role claim of the verified token into the closed
// role enum. Tokens minted before a role rename, or tampered claims, fail
// closed here instead of being trusted as free-form strings downstream.
func ClaimedRole(c *fiber.Ctx) (models.Role, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return "", fiber.NewError(fiber.StatusUnauthorized, "missing token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fiber.NewError(fiber.StatusUnauthorized, "malformed claims")
	}
	raw, _ := claims["role"].(string)
	role, err := models.ParseRole(raw)
	if err != nil {
		return "", fiber.NewError(fiber.StatusUnauthorized, "unrecognized role claim")
	}
	return role, nil
}

func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, err := ClaimedRole(c)
		if err != nil {
			return err
		}
		if role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: Admin access required",
			})
		}
		return c.Next()
	}
}

func StaffRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, err := ClaimedRole(c)
		if err != nil {
			return err
		}
		if !role.CanManageBookings() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: Staff access required",
			})
		}
		return c.Next()
	}
}
