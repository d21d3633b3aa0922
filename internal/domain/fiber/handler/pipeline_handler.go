package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tomasrg/jobhunter/internal/middleware"
	"github.com/tomasrg/jobhunter/internal/service"
	"github.com/tomasrg/jobhunter/internal/usecase"
	"github.com/tomasrg/jobhunter/internal/util"
)

type PipelineHandler struct {
	uc *usecase.PipelineUsecase
}

func NewPipelineHandler(uc *usecase.PipelineUsecase) *PipelineHandler {
	return &PipelineHandler{uc: uc}
}

func (h *PipelineHandler) RegisterRoutes(app *fiber.App) {
	// Collection hammers every upstream, so it gets a tight limit.
	app.Post("/api/v1/pipeline/collect", middleware.RateLimiter(1, 1*time.Minute), h.Collect)
	app.Post("/api/v1/pipeline/embed", h.Embed)
	app.Post("/api/v1/pipeline/score", h.Score)
	app.Post("/api/v1/pipeline/run", middleware.RateLimiter(1, 1*time.Minute), h.Run)
}

func (h *PipelineHandler) Collect(c *fiber.Ctx) error {
	report := h.uc.CollectAll(c.Context())
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success run collection",
		Data:    report,
	})
}

func (h *PipelineHandler) Embed(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 500)
	count, err := h.uc.EmbedNew(c.Context(), limit)
	if errors.Is(err, service.ErrNotConfigured) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusConflict,
			Message: "embedding service not configured",
		}, err)
	}
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to embed jobs",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success embed jobs",
		Data:    fiber.Map{"embedded": count},
	})
}

func (h *PipelineHandler) Score(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 500)
	count, err := h.uc.ScoreNew(c.Context(), limit)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to score jobs",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success score jobs",
		Data:    fiber.Map{"scored": count},
	})
}

func (h *PipelineHandler) Run(c *fiber.Ctx) error {
	report, err := h.uc.RunAll(c.Context())
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "pipeline run failed",
			Details: report,
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success run pipeline",
		Data:    report,
	})
}
