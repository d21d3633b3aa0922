package handler

import (
	"slices"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tomasrg/jobhunter/internal/dto"
	"github.com/tomasrg/jobhunter/internal/model"
	"github.com/tomasrg/jobhunter/internal/repository"
	"github.com/tomasrg/jobhunter/internal/util"
)

var applicationStatuses = []string{
	model.ApplicationApplied, model.ApplicationResponded,
	model.ApplicationInterviewing, model.ApplicationTechnicalTest,
	model.ApplicationOffer, model.ApplicationRejected,
}

type ApplicationHandler struct {
	appRepo *repository.ApplicationRepository
	jobRepo *repository.JobRepository
}

func NewApplicationHandler(appRepo *repository.ApplicationRepository, jobRepo *repository.JobRepository) *ApplicationHandler {
	return &ApplicationHandler{appRepo: appRepo, jobRepo: jobRepo}
}

func (h *ApplicationHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/v1/jobs/:id/applications", h.Create)
	app.Get("/api/v1/jobs/:id/applications", h.ListByJob)
	app.Patch("/api/v1/applications/:id/status", h.UpdateStatus)
}

// Create records an application and moves the job to applied.
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	var req dto.ApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid job id",
		}, err)
	}
	if _, err := h.jobRepo.FindByID(c.Context(), jobID.String()); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "job not found",
		}, err)
	}

	application := req.ToModel(jobID)
	if err := h.appRepo.Create(c.Context(), application); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to create application",
		}, err)
	}
	if err := h.jobRepo.UpdateStatus(c.Context(), jobID.String(), model.StatusApplied); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to update job status",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create application",
		Data:    application,
	})
}

func (h *ApplicationHandler) ListByJob(c *fiber.Ctx) error {
	apps, err := h.appRepo.FindByJob(c.Context(), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list applications",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get applications",
		Data:    apps,
	})
}

func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if !slices.Contains(applicationStatuses, req.Status) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid status",
			Details: fiber.Map{"allowed": applicationStatuses},
		})
	}

	id := c.Params("id")
	if err := h.appRepo.UpdateStatus(c.Context(), id, req.Status); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to update application status",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update application status",
		Data:    fiber.Map{"id": id, "status": req.Status},
	})
}
