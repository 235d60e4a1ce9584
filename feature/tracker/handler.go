package tracker

import (
	"errors"
	"strconv"

	"rank-tracker/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for the tracker.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, l *zap.Logger) *Handler {
	return &Handler{service: service, logger: l}
}

// RegisterRoutes registers the tracker routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/tracker")
	group.Get("/status", h.HandleStatus)
	group.Get("/users", h.HandleListUsers)
	group.Get("/users/:id", h.HandleGetUser)
	group.Post("/sync", h.HandleSync)
}

// HandleStatus returns the last pass summary.
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	summary, passErr := h.service.LastPass()
	if summary == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no pass has run yet",
		})
	}

	resp := fiber.Map{
		"running":      h.service.Running(),
		"last_pass":    summary,
		"last_elapsed": summary.ElapsedSeconds(),
	}
	if passErr != nil {
		resp["last_error"] = passErr.Error()
	}
	return c.JSON(resp)
}

// HandleListUsers returns every tracked user.
func (h *Handler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(c.Context())
	if err != nil {
		l := logger.WithRayID(h.logger, c)
		l.Error("Failed to list tracked users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list users",
		})
	}
	return c.JSON(users)
}

// HandleGetUser returns a single tracked user by osu id.
func (h *Handler) HandleGetUser(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid user id",
		})
	}

	user, err := h.service.GetUser(c.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "user not tracked",
		})
	}
	if err != nil {
		l := logger.WithRayID(h.logger, c)
		l.Error("Failed to load tracked user", zap.Int64("osu_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load user",
		})
	}
	return c.JSON(user)
}

// HandleSync triggers a reconciliation pass. The pass runs synchronously;
// a concurrent trigger gets a 409 instead of a second pass.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	l.Info("Manual pass triggered")

	summary, err := h.service.RunPass(c.Context())
	if errors.Is(err, ErrPassInProgress) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		l.Error("Manual pass failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   err.Error(),
			"summary": summary,
		})
	}
	return c.JSON(summary)
}
