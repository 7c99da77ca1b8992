package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/structure-inspection/internal/delivery/http/middleware"
	apperrors "github.com/structure-inspection/internal/pkg/errors"
	"github.com/structure-inspection/internal/pkg/utils"
	"github.com/structure-inspection/internal/pkg/validator"
	"github.com/structure-inspection/internal/usecase"
	"github.com/structure-inspection/internal/usecase/dto"
)

// StructureHandler - обработчик структур, этажей и помещений
type StructureHandler struct {
	structureUC *usecase.StructureUseCase
	logger      *zap.Logger
}

// NewStructureHandler - создание нового StructureHandler
func NewStructureHandler(structureUC *usecase.StructureUseCase, logger *zap.Logger) *StructureHandler {
	return &StructureHandler{
		structureUC: structureUC,
		logger:      logger,
	}
}

// Create godoc
// @Summary Создать черновик структуры
// @Description Создаёт структуру в статусе draft без идентификационного номера
// @Tags Structures
// @Produce json
// @Param X-User-ID header string true "ID аккаунта"
// @Success 201 {object} utils.SuccessResponse{data=domain.Structure}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/structures [post]
func (h *StructureHandler) Create(c *fiber.Ctx) error {
	s, err := h.structureUC.Create(c.Context(), middleware.OwnerID(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, s)
}

// List godoc
// @Summary Список структур аккаунта
// @Tags Structures
// @Produce json
// @Param X-User-ID header string true "ID аккаунта"
// @Param status query []string false "Фильтр по статусам" collectionFormat(multi)
// @Param limit query int false "Лимит" default(50)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} utils.SuccessResponse{data=dto.StructureListResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/structures [get]
func (h *StructureHandler) List(c *fiber.Ctx) error {
	var req dto.ListStructuresRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithMessage("Invalid query parameters"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.structureUC.List(c.Context(), middleware.OwnerID(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
		Limit: req.Limit,
	})
}

// Get godoc
// @Summary Получить структуру
// @Tags Structures
// @Produce json
// @Param X-User-ID header string true "ID аккаунта"
// @Param id path string true "UID структуры"
// @Success 200 {object} utils.SuccessResponse{data=domain.Structure}
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/structures/{id} [get]
func (h *StructureHandler) Get(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	s, err := h.structureUC.Get(c.Context(), middleware.OwnerID(c), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, s, nil)
}

// Delete godoc
// @Summary Удалить структуру
// @Tags Structures
// @Param X-User-ID header string true "ID аккаунта"
// @Param id path string true "UID структуры"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/structures/{id} [delete]
func (h *StructureHandler) Delete(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.structureUC.Delete(c.Context(), middleware.OwnerID(c), id); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SaveLocation godoc
// @Summary Сохранить экран локации
// @Description При первом сохранении выдаёт 17-символьный идентификационный номер
// @Tags Structures
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ID аккаунта"
// @Param id path string true "UID структуры"
// @Param request body dto.LocationRequest true "Локация"
// @Success 200 {object} utils.SuccessResponse{data=domain.Structure}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/structures/{id}/location [put]
func (h *StructureHandler) SaveLocation(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.LocationRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	s, err := h.structureUC.SaveLocation(c.Context(), middleware.OwnerID(c), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, s, nil)
}

// SaveAdministration godoc
// @Summary Сохранить административные данные
// @Tags Structures
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ID аккаунта"
// @Param id path string true "UID структуры"
// @Param request body dto.AdministrationRequest true "Административные данные"
// @Success 200 {object} utils.SuccessResponse{data=domain.Structure}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/structures/{id}/administration [put]
func (h *StructureHandler) SaveAdministration(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.AdministrationRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	s, err := h.structureUC.SaveAdministration(c.Context(), middleware.OwnerID(c), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, s, nil)
}

// SaveGeometric godoc
// @Summary Сохранить геометрию
// @Tags Structures
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ID аккаунта"
// @Param id path string true "UID структуры"
// @Param request body dto.GeometricRequest true "Геометрия"
// @Success 200 {object} utils.SuccessResponse{data=domain.Structure}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/structures/{id}/geometric [put]
func (h *StructureHandler) SaveGeometric(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.GeometricRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	s, err := h.structureUC.SaveGeometric(c.Context(), middleware.OwnerID(c), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, s, nil)
}

// AddFloor godoc
// @Summary Добавить этаж
// @Tags Floors
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ID аккаунта"
// @Param id path string true "UID структуры"
// @Param request body dto.FloorRequest true "Этаж"
// @Success 201 {object} utils.SuccessResponse{data=domain.Floor}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/structures/{id}/floors [post]
func (h *StructureHandler) AddFloor(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.FloorRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	floor, err := h.structureUC.AddFloor(c.Context(), middleware.OwnerID(c), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, floor)
}

// DeleteFloor godoc
// @Summary Удалить этаж вместе с помещениями
// @Tags Floors
// @Param X-User-ID header string true "ID аккаунта"
// @Param id path string true "UID структуры"
// @Param floor_id path string true "ID этажа"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/structures/{id}/floors/{floor_id} [delete]
func (h *StructureHandler) DeleteFloor(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}
	floorID, err := uuidParam(c, "floor_id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.structureUC.DeleteFloor(c.Context(), middleware.OwnerID(c), id, floorID); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// AddFlat godoc
// @Summary Добавить помещение
// @Description Помещение создаётся со всеми компонентами без рейтинга
// @Tags Flats
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ID аккаунта"
// @Param id path string true "UID структуры"
// @Param floor_id path string true "ID этажа"
// @Param request body dto.FlatRequest true "Помещение"
// @Success 201 {object} utils.SuccessResponse{data=domain.Flat}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/structures/{id}/floors/{floor_id}/flats [post]
func (h *StructureHandler) AddFlat(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}
	floorID, err := uuidParam(c, "floor_id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.FlatRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	flat, err := h.structureUC.AddFlat(c.Context(), middleware.OwnerID(c), id, floorID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, flat)
}

// GetFlat godoc
// @Summary Получить помещение
// @Tags Flats
// @Produce json
// @Param X-User-ID header string true "ID аккаунта"
// @Param id path string true "UID структуры"
// @Param floor_id path string true "ID этажа"
// @Param flat_id path string true "ID помещения"
// @Success 200 {object} utils.SuccessResponse{data=domain.Flat}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/structures/{id}/floors/{floor_id}/flats/{flat_id} [get]
func (h *StructureHandler) GetFlat(c *fiber.Ctx) error {
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

	flat, err := h.structureUC.GetFlat(c.Context(), middleware.OwnerID(c), id, floorID, flatID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, flat, nil)
}

// DeleteFlat godoc
// @Summary Удалить помещение
// @Tags Flats
// @Param X-User-ID header string true "ID аккаунта"
// @Param id path string true "UID структуры"
// @Param floor_id path string true "ID этажа"
// @Param flat_id path string true "ID помещения"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/structures/{id}/floors/{floor_id}/flats/{flat_id} [delete]
func (h *StructureHandler) DeleteFlat(c *fiber.Ctx) error {
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

	if err := h.structureUC.DeleteFlat(c.Context(), middleware.OwnerID(c), id, floorID, flatID); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Progress godoc
// @Summary Прогресс заполнения структуры
// @Tags Structures
// @Produce json
// @Param X-User-ID header string true "ID аккаунта"
// @Param id path string true "UID структуры"
// @Success 200 {object} utils.SuccessResponse{data=domain.Progress}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/structures/{id}/progress [get]
func (h *StructureHandler) Progress(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	p, err := h.structureUC.Progress(c.Context(), middleware.OwnerID(c), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, p, nil)
}

// Submit godoc
// @Summary Отправить структуру
// @Description Разрешено только при 100% прогресса, иначе 422 с процентом и списком невыполненных этапов
// @Tags Structures
// @Produce json
// @Param X-User-ID header string true "ID аккаунта"
// @Param id path string true "UID структуры"
// @Success 200 {object} utils.SuccessResponse{data=dto.SubmitResponse}
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/structures/{id}/submit [post]
func (h *StructureHandler) Submit(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.structureUC.Submit(c.Context(), middleware.OwnerID(c), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Nearby godoc
// @Summary Структуры рядом с точкой
// @Description Ищет структуры аккаунта в ячейке geohash точки и восьми соседних
// @Tags Structures
// @Produce json
// @Param X-User-ID header string true "ID аккаунта"
// @Param lat query number true "Широта"
// @Param lon query number true "Долгота"
// @Param precision query int false "Длина geohash" default(6)
// @Param limit query int false "Лимит" default(50)
// @Success 200 {object} utils.SuccessResponse{data=dto.NearbyResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/structures/nearby [get]
func (h *StructureHandler) Nearby(c *fiber.Ctx) error {
	if c.Query("lat") == "" || c.Query("lon") == "" {
		return utils.SendError(c, apperrors.ErrInvalidCoordinates.WithMessage("lat and lon are required"))
	}

	var req dto.NearbyRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidCoordinates)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.structureUC.Nearby(c.Context(), middleware.OwnerID(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}
