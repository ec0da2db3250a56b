package validation

import (
	"errors"

	"tool-compare-data/core/logger"
	"tool-compare-data/core/reconcile"
	"tool-compare-data/core/report"
	"tool-compare-data/feature/validation/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RunIDHeader carries the id of the run that produced a report.
const RunIDHeader = "X-Run-ID"

// Handler handles HTTP requests for validations.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the validation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/validations")
	group.Post("/", h.HandleRun)
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
}

// HandleRun runs a validation and returns its report.
// @Summary Run Validation
// @Description Compare source and target records using a mapping configuration. Empty fields use the server defaults.
// @Tags validations
// @Accept json
// @Produce json
// @Param request body models.RunRequest false "Locations and duplicate key policy"
// @Success 200 {object} reconcile.ValidationResult "Validation report"
// @Header 200 {string} X-Run-ID "Run identifier"
// @Failure 400 {object} map[string]string "Invalid mapping configuration or location not allowed"
// @Failure 422 {object} map[string]string "Unreadable source or target"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /validations [post]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var body models.RunRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body: " + err.Error(),
			})
		}
	}

	req := Request{
		Source:        body.Source,
		Target:        body.Target,
		Mapping:       body.Mapping,
		DuplicateKeys: body.DuplicateKeys,
	}
	if err := h.service.Permit(req); err != nil {
		l.Warn("Validation location refused", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	outcome, err := h.service.Run(c.UserContext(), req)
	if err != nil {
		status := statusFor(err)
		if status == fiber.StatusInternalServerError {
			l.Error("Validation run failed", zap.Error(err))
		} else {
			l.Warn("Validation rejected", zap.Int("status", status), zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	data, err := report.Marshal(outcome.Result)
	if err != nil {
		l.Error("Report encoding failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(RunIDHeader, outcome.RunID)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// HandleList returns the most recent runs.
// @Summary List Validations
// @Description List recent validation runs, newest first.
// @Tags validations
// @Produce json
// @Param limit query int false "Maximum number of runs" default(20)
// @Success 200 {array} models.ValidationRun "Runs"
// @Failure 503 {object} map[string]string "History disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /validations [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	runs, err := h.service.History(c.UserContext(), c.QueryInt("limit", 20))
	if err != nil {
		return h.historyError(c, err)
	}
	return c.JSON(runs)
}

// HandleGet returns a stored run with its report.
// @Summary Get Validation
// @Description Get a stored validation run and its report.
// @Tags validations
// @Produce json
// @Param id path string true "Run identifier"
// @Success 200 {object} models.RunDetail "Run"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 503 {object} map[string]string "History disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /validations/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	run, err := h.service.GetRun(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.historyError(c, err)
	}
	return c.JSON(models.NewRunDetail(*run))
}

func (h *Handler) historyError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrHistoryDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrRunNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.WithRayID(h.service.logger, c).Error("History lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

// statusFor maps run errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case reconcile.IsConfigError(err):
		return fiber.StatusBadRequest
	case reconcile.IsSourceReadError(err):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
