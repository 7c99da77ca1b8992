package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	apperrors "github.com/structure-inspection/internal/pkg/errors"
	"github.com/structure-inspection/internal/pkg/utils"
)

// OwnerHeader - заголовок с id аккаунта; аутентификация выполняется выше по цепочке
const OwnerHeader = "X-User-ID"

const ownerLocalsKey = "owner_id"

// Owner - middleware, требующий X-User-ID и кладущий владельца в Locals
func Owner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Get(OwnerHeader))
		if raw == "" {
			return utils.SendError(c, apperrors.ErrMissingOwner)
		}

		ownerID, err := uuid.Parse(raw)
		if err != nil {
			return utils.SendError(c, apperrors.ErrMissingOwner.WithMessage("%s must be a UUID", OwnerHeader))
		}

		c.Locals(ownerLocalsKey, ownerID)
		return c.Next()
	}
}

// OwnerID - владелец текущего запроса. uuid.Nil, если Owner не отработал.
func OwnerID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(ownerLocalsKey).(uuid.UUID)
	return id
}
