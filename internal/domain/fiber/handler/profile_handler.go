package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tomasrg/jobhunter/internal/dto"
	"github.com/tomasrg/jobhunter/internal/repository"
	"github.com/tomasrg/jobhunter/internal/util"
)

type ProfileHandler struct {
	profileRepo *repository.ProfileRepository
}

func NewProfileHandler(profileRepo *repository.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{profileRepo: profileRepo}
}

func (h *ProfileHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/v1/profile", h.Get)
	app.Put("/api/v1/profile", h.Save)
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	profile, err := h.profileRepo.First(c.Context())
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to load profile",
		}, err)
	}
	if profile == nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "no profile configured yet",
		})
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get profile",
		Data:    profile,
	})
}

func (h *ProfileHandler) Save(c *fiber.Ctx) error {
	var req dto.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if strings.TrimSpace(req.FullName) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "full_name is required",
		})
	}

	profile := req.ToModel()
	if err := h.profileRepo.Save(c.Context(), profile); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to save profile",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success save profile",
		Data:    profile,
	})
}
