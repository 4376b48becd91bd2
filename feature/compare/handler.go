package compare

import (
	"context"
	"errors"
	"strconv"
	"time"

	"table-reconciler/core/logger"
	"table-reconciler/core/reconcile"
	"table-reconciler/feature/results"
	"table-reconciler/feature/samples"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RunResponse is returned by POST /runs.
type RunResponse struct {
	Processed int    `json:"processed"`
	RunID     string `json:"run_id"`
	Message   string `json:"message"`
	Shared    bool   `json:"shared"`
}

// Handler handles HTTP requests for comparison runs and results.
type Handler struct {
	service    *Service
	runTimeout time.Duration
}

// NewHandler creates a new HTTP handler. Runs are bounded by runTimeout.
func NewHandler(service *Service, runTimeout time.Duration) *Handler {
	return &Handler{service: service, runTimeout: runTimeout}
}

// RegisterRoutes registers the compare routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/runs", h.HandleRun)
	app.Get("/results", h.HandleListResults)
	app.Get("/results/:rule_id", h.HandleGetResult)
	app.Get("/rules", h.HandleListRules)
	app.Get("/samples/:name", h.HandleGetSample)
}

// HandleRun triggers a comparison run.
// @Summary Run Comparison
// @Description Compares every configured rule once and records the outcome on the result surface. Concurrent requests share one run.
// @Tags runs
// @Produce json
// @Success 200 {object} RunResponse "Run Summary"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /runs [post]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering comparison run")

	// The run outlives a disconnecting client; other callers may share it.
	ctx, cancel := context.WithTimeout(context.Background(), h.runTimeout)
	defer cancel()

	summary, shared, err := h.service.Run(ctx)
	if err != nil {
		l.Error("Comparison run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Comparison run completed", zap.String("run_id", summary.RunID), zap.Int("processed", summary.Processed), zap.Bool("shared", shared))
	return c.JSON(RunResponse{
		Processed: summary.Processed,
		RunID:     summary.RunID,
		Message:   summary.String(),
		Shared:    shared,
	})
}

// HandleListResults lists the result surface.
// @Summary List Results
// @Description Returns the latest outcome of every rule.
// @Tags results
// @Produce json
// @Param failures_first query boolean false "Order non-PASS results first"
// @Success 200 {array} reconcile.Result "Results"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /results [get]
func (h *Handler) HandleListResults(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	list, err := h.service.Results(c.Context(), c.QueryBool("failures_first"))
	if err != nil {
		l.Error("Listing results failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(list)
}

// HandleGetResult returns one rule's result.
// @Summary Get Result
// @Description Returns the latest outcome of a single rule.
// @Tags results
// @Produce json
// @Param rule_id path int true "Rule ID"
// @Success 200 {object} reconcile.Result "Result"
// @Failure 400 {object} map[string]string "Invalid Rule ID"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /results/{rule_id} [get]
func (h *Handler) HandleGetResult(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	ruleID, err := strconv.ParseInt(c.Params("rule_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid rule_id"})
	}

	res, err := h.service.Result(c.Context(), ruleID)
	if errors.Is(err, results.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Getting result failed", zap.Int64("rule_id", ruleID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(res)
}

// HandleListRules lists the configured rules.
// @Summary List Rules
// @Description Returns every configured comparison rule ordered by rule id, active or not.
// @Tags rules
// @Produce json
// @Success 200 {array} reconcile.Rule "Rules"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /rules [get]
func (h *Handler) HandleListRules(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	list, err := h.service.Rules(c.Context())
	if err != nil {
		l.Error("Listing rules failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(list)
}

// HandleGetSample returns a stored sample dataset.
// @Summary Get Sample
// @Description Returns a sample or transposed sample dataset by its qualified name, e.g. UTIL.SAMPLE_T_7_20250811091523456.
// @Tags samples
// @Produce json
// @Param name path string true "Dataset Name"
// @Success 200 {object} reconcile.Dataset "Dataset"
// @Failure 400 {object} map[string]string "Invalid Name"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /samples/{name} [get]
func (h *Handler) HandleGetSample(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	name := c.Params("name")
	if _, err := reconcile.ParseDatasetName(name); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ds, err := h.service.Sample(c.Context(), name)
	if errors.Is(err, samples.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Reading sample failed", zap.String("name", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(ds)
}
