package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	apperrors "github.com/structure-inspection/internal/pkg/errors"
)

// uuidParam - path-параметр в виде UUID
func uuidParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidRequest.WithMessage("%s must be a UUID", name)
	}
	return id, nil
}

// parseBody - разбор JSON тела; ошибка разбора превращается в INVALID_REQUEST
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.ErrInvalidRequest.WithMessage("Invalid request body")
	}
	return nil
}
