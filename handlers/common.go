package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mkamau589/cowork_hub/booking"
	"github.com/mkamau589/cowork_hub/middleware"
)

var validate = validator.New()

// currentActor reads the verified JWT into the engine's Actor value. The
// role claim goes through the closed-enum parser, never trusted raw.
func currentActor(c *fiber.Ctx) (booking.Actor, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return booking.Actor{}, fiber.NewError(fiber.StatusUnauthorized, "missing token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return booking.Actor{}, fiber.NewError(fiber.StatusUnauthorized, "malformed claims")
	}
	rawID, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return booking.Actor{}, fiber.NewError(fiber.StatusUnauthorized, "malformed user id claim")
	}
	role, err := middleware.ClaimedRole(c)
	if err != nil {
		return booking.Actor{}, err
	}
	return booking.Actor{UserID: userID, Role: role}, nil
}

// engineError maps the engine's typed errors onto HTTP responses. Unknown
// errors are logged and reported as a plain 500 so internals never leak.
func engineError(c *fiber.Ctx, err error) error {
	var e *booking.Error
	if !errors.As(err, &e) {
		log.Printf("🔥 Unexpected engine error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	body := fiber.Map{"error": e.Message, "kind": e.Kind}
	if e.Conflict != nil {
		body["conflict"] = e.Conflict
	}
	return c.Status(statusForKind(e.Kind)).JSON(body)
}

func statusForKind(k booking.Kind) int {
	switch k {
	case booking.KindValidation, booking.KindInvalidState:
		return fiber.StatusBadRequest
	case booking.KindUnauthenticated:
		return fiber.StatusUnauthorized
	case booking.KindForbidden:
		return fiber.StatusForbidden
	case booking.KindNotFound:
		return fiber.StatusNotFound
	case booking.KindConflict:
		return fiber.StatusConflict
	case booking.KindPersistenceTimeout:
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}
