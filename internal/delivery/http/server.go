package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/structure-inspection/internal/config"
	"github.com/structure-inspection/internal/delivery/http/handler"
	"github.com/structure-inspection/internal/delivery/http/middleware"
	apperrors "github.com/structure-inspection/internal/pkg/errors"
	"github.com/structure-inspection/internal/pkg/utils"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	structureHandler *handler.StructureHandler
	ratingHandler    *handler.RatingHandler
	identityHandler  *handler.IdentityHandler
	statsHandler     *handler.StatsHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	structureHandler *handler.StructureHandler,
	ratingHandler *handler.RatingHandler,
	identityHandler *handler.IdentityHandler,
	statsHandler *handler.StatsHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Structure Inspection Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		structureHandler: structureHandler,
		ratingHandler:    ratingHandler,
		identityHandler:  identityHandler,
		statsHandler:     statsHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Health check
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api := s.app.Group("/api/v1", middleware.Owner())

	// Structures; nearby регистрируется раньше /:id
	structures := api.Group("/structures")
	structures.Post("/", s.structureHandler.Create)
	structures.Get("/", s.structureHandler.List)
	structures.Get("/nearby", s.structureHandler.Nearby)
	structures.Get("/:id", s.structureHandler.Get)
	structures.Delete("/:id", s.structureHandler.Delete)
	structures.Put("/:id/location", s.structureHandler.SaveLocation)
	structures.Put("/:id/administration", s.structureHandler.SaveAdministration)
	structures.Put("/:id/geometric", s.structureHandler.SaveGeometric)
	structures.Get("/:id/progress", s.structureHandler.Progress)
	structures.Post("/:id/submit", s.structureHandler.Submit)

	// Floors & flats
	structures.Post("/:id/floors", s.structureHandler.AddFloor)
	structures.Delete("/:id/floors/:floor_id", s.structureHandler.DeleteFloor)
	structures.Post("/:id/floors/:floor_id/flats", s.structureHandler.AddFlat)
	structures.Get("/:id/floors/:floor_id/flats/:flat_id", s.structureHandler.GetFlat)
	structures.Delete("/:id/floors/:floor_id/flats/:flat_id", s.structureHandler.DeleteFlat)

	// Ratings
	structures.Put("/:id/floors/:floor_id/flats/:flat_id/ratings", s.ratingHandler.UpdateFlatRatings)
	structures.Post("/:id/ratings/bulk", s.ratingHandler.ApplyBulk)
	structures.Post("/:id/ratings/bulk/async", s.ratingHandler.EnqueueBulk)

	// Identity
	api.Post("/identity/check", s.identityHandler.Check)
	api.Get("/identity/:number", s.identityHandler.Decode)

	// Stats
	api.Get("/stats", s.statsHandler.GetStatistics)
}

// App - fiber приложение (для тестов через app.Test)
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if _, ok := apperrors.As(err); ok {
			return utils.SendError(c, err)
		}

		code := fiber.StatusInternalServerError
		message := err.Error()

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    httpErrorCode(code),
				"message": message,
			},
		})
	}
}

// httpErrorCode - код ошибки для ответов самого fiber (404 маршрута, 405 и т.п.)
func httpErrorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "ROUTE_NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "REQUEST_TOO_LARGE"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
