package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/structure-inspection/internal/pkg/utils"
	"github.com/structure-inspection/internal/pkg/validator"
	"github.com/structure-inspection/internal/usecase"
	"github.com/structure-inspection/internal/usecase/dto"
)

// IdentityHandler - разбор и проверка идентификационных номеров
type IdentityHandler struct {
	identityUC *usecase.IdentityUseCase
	logger     *zap.Logger
}

// NewIdentityHandler - создание нового IdentityHandler
func NewIdentityHandler(identityUC *usecase.IdentityUseCase, logger *zap.Logger) *IdentityHandler {
	return &IdentityHandler{
		identityUC: identityUC,
		logger:     logger,
	}
}

// Decode godoc
// @Summary Разобрать идентификационный номер
// @Description Делит 17-символьный номер на поля по фиксированной раскладке
// @Tags Identity
// @Produce json
// @Param number path string true "Идентификационный номер"
// @Success 200 {object} utils.SuccessResponse{data=dto.IdentityResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/identity/{number} [get]
func (h *IdentityHandler) Decode(c *fiber.Ctx) error {
	result, err := h.identityUC.Decode(c.Params("number"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Check godoc
// @Summary Проверить номер на корректность и занятость
// @Tags Identity
// @Accept json
// @Produce json
// @Param request body dto.IdentityCheckRequest true "Номер"
// @Success 200 {object} utils.SuccessResponse{data=dto.IdentityCheckResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/identity/check [post]
func (h *IdentityHandler) Check(c *fiber.Ctx) error {
	var req dto.IdentityCheckRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.identityUC.CheckAvailable(c.Context(), req.IdentityNumber)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
