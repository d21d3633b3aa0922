package handler

import (
	"errors"
	"slices"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/tomasrg/jobhunter/internal/dto"
	"github.com/tomasrg/jobhunter/internal/matcher"
	"github.com/tomasrg/jobhunter/internal/model"
	"github.com/tomasrg/jobhunter/internal/repository"
	"github.com/tomasrg/jobhunter/internal/response"
	"github.com/tomasrg/jobhunter/internal/service"
	"github.com/tomasrg/jobhunter/internal/util"
)

type JobHandler struct {
	jobRepo     *repository.JobRepository
	profileRepo *repository.ProfileRepository
	embedder    service.EmbeddingServiceInterface
}

func NewJobHandler(
	jobRepo *repository.JobRepository,
	profileRepo *repository.ProfileRepository,
	embedder service.EmbeddingServiceInterface,
) *JobHandler {
	return &JobHandler{jobRepo: jobRepo, profileRepo: profileRepo, embedder: embedder}
}

func (h *JobHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/v1/jobs", h.List)
	app.Get("/api/v1/jobs/:id", h.Get)
	app.Patch("/api/v1/jobs/:id/status", h.UpdateStatus)
	app.Get("/api/v1/jobs/:id/score", h.Explain)
	app.Get("/api/v1/stats", h.Stats)
}

func (h *JobHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("page_size", 50)
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	filter := repository.ListFilter{
		Status:   c.Query("status"),
		Source:   c.Query("source"),
		MinScore: c.QueryFloat("min_score"),
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	}

	jobs, err := h.jobRepo.List(c.Context(), filter)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list jobs",
		}, err)
	}
	total, err := h.jobRepo.Count(c.Context(), filter)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to count jobs",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get jobs",
		Data:       dto.NewJobDTOs(jobs),
		Pagination: response.NewPagination(page, pageSize, total),
	})
}

func (h *JobHandler) Get(c *fiber.Ctx) error {
	job, err := h.jobRepo.FindByID(c.Context(), c.Params("id"))
	if err != nil {
		code := fiber.StatusInternalServerError
		if errors.Is(err, gorm.ErrRecordNotFound) {
			code = fiber.StatusNotFound
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    code,
			Message: "job not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get job",
		Data:    dto.NewJobDTO(job),
	})
}

func (h *JobHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateJobStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if !slices.Contains(model.JobStatuses, req.Status) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid status",
			Details: fiber.Map{"allowed": model.JobStatuses},
		})
	}

	id := c.Params("id")
	if _, err := h.jobRepo.FindByID(c.Context(), id); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "job not found",
		}, err)
	}
	if err := h.jobRepo.UpdateStatus(c.Context(), id, req.Status); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to update job status",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update job status",
		Data:    fiber.Map{"id": id, "status": req.Status},
	})
}

// Explain recomputes the score breakdown for one job on demand.
func (h *JobHandler) Explain(c *fiber.Ctx) error {
	job, err := h.jobRepo.FindByID(c.Context(), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "job not found",
		}, err)
	}

	profile, err := h.profileRepo.First(c.Context())
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to load profile",
		}, err)
	}
	if profile == nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusConflict,
			Message: "no user profile configured",
		})
	}

	var profileVec []float32
	if vec, err := h.embedder.Embed(c.Context(), service.ProfileText(profile)); err == nil {
		profileVec = vec
	}

	m := matcher.New(profile, profileVec)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success explain job score",
		Data:    m.Explain(job),
	})
}

func (h *JobHandler) Stats(c *fiber.Ctx) error {
	bySource, err := h.jobRepo.CountBySource(c.Context())
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to load stats",
		}, err)
	}
	byStatus, err := h.jobRepo.CountByStatus(c.Context())
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to load stats",
		}, err)
	}
	avg, err := h.jobRepo.AverageScore(c.Context())
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to load stats",
		}, err)
	}

	var total int64
	for _, n := range bySource {
		total += n
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get stats",
		Data: fiber.Map{
			"total_jobs":    total,
			"by_source":     bySource,
			"by_status":     byStatus,
			"average_score": avg,
		},
	})
}
