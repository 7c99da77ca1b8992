package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/structure-inspection/internal/delivery/http/middleware"
	"github.com/structure-inspection/internal/pkg/utils"
	"github.com/structure-inspection/internal/pkg/validator"
	"github.com/structure-inspection/internal/usecase"
	"github.com/structure-inspection/internal/usecase/dto"
)

// RatingHandler - запись рейтингов компонентов
type RatingHandler struct {
	ratingUC *usecase.RatingUseCase
	logger   *zap.Logger
}

// NewRatingHandler - создание нового RatingHandler
func NewRatingHandler(ratingUC *usecase.RatingUseCase, logger *zap.Logger) *RatingHandler {
	return &RatingHandler{
		ratingUC: ratingUC,
		logger:   logger,
	}
}

// UpdateFlatRatings godoc
// @Summary Обновить рейтинги помещения
// @Description Перезаписывает только переданные компоненты; средние, состояние и комбинированная оценка пересчитываются целиком
// @Tags Ratings
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ID аккаунта"
// @Param id path string true "UID структуры"
// @Param floor_id path string true "ID этажа"
// @Param flat_id path string true "ID помещения"
// @Param request body dto.FlatRatingsRequest true "Рейтинги по группам"
// @Success 200 {object} utils.SuccessResponse{data=dto.FlatRatingsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/structures/{id}/floors/{floor_id}/flats/{flat_id}/ratings [put]
func (h *RatingHandler) UpdateFlatRatings(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}
	floorID, err := uuidParam(c, "floor_id")
	if err != nil {
		return utils.SendError(c, err)
	}
	flatID, err := uuidParam(c, "flat_id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.FlatRatingsRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.ratingUC.UpdateFlatRatings(c.Context(), middleware.OwnerID(c), id, floorID, flatID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// ApplyBulk godoc
// @Summary Пакетное обновление рейтингов
// @Description Этажи и помещения ищутся по номерам. Ненайденные попадают в errors, остальные обновления сохраняются; ответ 200 и при частичном успехе.
// @Tags Ratings
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ID аккаунта"
// @Param id path string true "UID структуры"
// @Param request body dto.BulkRatingsRequest true "Пакет обновлений"
// @Success 200 {object} utils.SuccessResponse{data=domain.BulkResult}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/structures/{id}/ratings/bulk [post]
func (h *RatingHandler) ApplyBulk(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.BulkRatingsRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.ratingUC.ApplyBulk(c.Context(), middleware.OwnerID(c), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:   result.UpdatedFlats,
		Partial: result.Partial(),
		Errors:  result.Errors,
	})
}

// EnqueueBulk godoc
// @Summary Пакетное обновление рейтингов в фоне
// @Description Пакет ставится в Redis Stream и применяется воркером
// @Tags Ratings
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ID аккаунта"
// @Param id path string true "UID структуры"
// @Param request body dto.BulkRatingsRequest true "Пакет обновлений"
// @Success 202 {object} utils.SuccessResponse{data=dto.BulkAcceptedResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/structures/{id}/ratings/bulk/async [post]
func (h *RatingHandler) EnqueueBulk(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.BulkRatingsRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.ratingUC.EnqueueBulk(c.Context(), middleware.OwnerID(c), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(utils.SuccessResponse{Data: result})
}
