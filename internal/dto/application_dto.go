package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/tomasrg/jobhunter/internal/model"
)

type ApplicationRequest struct {
	CoverLetter   *string    `json:"cover_letter"`
	ResumeVersion *string    `json:"resume_version"`
	FollowUpDate  *time.Time `json:"follow_up_date"`
	Notes         *string    `json:"notes"`
}

func (r *ApplicationRequest) ToModel(jobID uuid.UUID) *model.Application {
	return &model.Application{
		JobID:         jobID,
		AppliedAt:     time.Now().UTC(),
		CoverLetter:   r.CoverLetter,
		ResumeVersion: r.ResumeVersion,
		Status:        model.ApplicationApplied,
		FollowUpDate:  r.FollowUpDate,
		Notes:         r.Notes,
	}
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status"`
}
