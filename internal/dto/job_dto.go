package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/tomasrg/jobhunter/internal/model"
)

type JobDTO struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Company        string     `json:"company"`
	Location       string     `json:"location"`
	SalaryMin      *int       `json:"salary_min"`
	SalaryMax      *int       `json:"salary_max"`
	SalaryCurrency string     `json:"salary_currency"`
	Description    string     `json:"description"`
	URL            string     `json:"url"`
	Source         string     `json:"source"`
	PostedAt       *time.Time `json:"posted_at"`
	ScrapedAt      time.Time  `json:"scraped_at"`
	IsRemote       bool       `json:"is_remote"`
	Tags           []string   `json:"tags"`
	MatchScore     *float64   `json:"match_score"`
	Status         string     `json:"status"`
	Notes          *string    `json:"notes"`
}

func NewJobDTO(job *model.Job) JobDTO {
	return JobDTO{
		ID:             job.ID,
		Title:          job.Title,
		Company:        job.Company,
		Location:       job.Location,
		SalaryMin:      job.SalaryMin,
		SalaryMax:      job.SalaryMax,
		SalaryCurrency: job.SalaryCurrency,
		Description:    job.Description,
		URL:            job.URL,
		Source:         job.Source,
		PostedAt:       job.PostedAt,
		ScrapedAt:      job.ScrapedAt,
		IsRemote:       job.IsRemote,
		Tags:           job.Tags,
		MatchScore:     job.MatchScore,
		Status:         job.Status,
		Notes:          job.Notes,
	}
}

func NewJobDTOs(jobs []model.Job) []JobDTO {
	out := make([]JobDTO, len(jobs))
	for i := range jobs {
		out[i] = NewJobDTO(&jobs[i])
	}
	return out
}

type UpdateJobStatusRequest struct {
	Status string `json:"status"`
}
