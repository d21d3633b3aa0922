package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Job lifecycle statuses.
const (
	StatusNew       = "new"
	StatusReviewed  = "reviewed"
	StatusApplied   = "applied"
	StatusRejected  = "rejected"
	StatusInterview = "interview"
	StatusOffer     = "offer"
)

// JobStatuses is the closed set of valid lifecycle values.
var JobStatuses = []string{
	StatusNew, StatusReviewed, StatusApplied,
	StatusRejected, StatusInterview, StatusOffer,
}

// Job is a listing collected from any data source. Identity is the URL:
// duplicate fetches never create a second row.
type Job struct {
	ID             uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title          string           `gorm:"type:varchar(255);not null" json:"title"`
	Company        string           `gorm:"type:varchar(255);not null" json:"company"`
	Location       string           `gorm:"type:varchar(255)" json:"location"`
	SalaryMin      *int             `json:"salary_min"`
	SalaryMax      *int             `json:"salary_max"`
	SalaryCurrency string           `gorm:"type:varchar(10);default:USD" json:"salary_currency"`
	Description    string           `gorm:"type:text;not null" json:"description"`
	Requirements   *string          `gorm:"type:text" json:"requirements"`
	URL            string           `gorm:"type:varchar(500);uniqueIndex;not null" json:"url"`
	Source         string           `gorm:"type:varchar(50);index" json:"source"`
	PostedAt       *time.Time       `json:"posted_at"`
	ScrapedAt      time.Time        `json:"scraped_at"`
	IsRemote       bool             `gorm:"default:true" json:"is_remote"`
	Tags           []string         `gorm:"type:jsonb;serializer:json" json:"tags"`
	Embedding      *pgvector.Vector `gorm:"type:vector(768)" json:"-"`
	MatchScore     *float64         `gorm:"index" json:"match_score"`
	Status         string           `gorm:"type:varchar(20);default:new;index" json:"status"`
	Notes          *string          `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func (j *Job) TableName() string {
	return "jobs"
}

// CanonicalJob is the normalized, source-agnostic output of one adapter,
// ready for persistence. Title, Company, URL and Description are required
// non-empty; everything else defaults at normalize time.
type CanonicalJob struct {
	Title          string
	Company        string
	Location       string
	SalaryMin      *int
	SalaryMax      *int
	SalaryCurrency string
	Description    string
	Requirements   *string
	URL            string
	PostedAt       *time.Time
	IsRemote       *bool
	Tags           []string
	Source         string
	ScrapedAt      time.Time
	Status         string
}

// ToJob converts a canonical record into a persistable row. An unset remote
// flag defaults to true: every upstream here is a remote-first board.
func (c *CanonicalJob) ToJob() Job {
	remote := true
	if c.IsRemote != nil {
		remote = *c.IsRemote
	}
	return Job{
		Title:          c.Title,
		Company:        c.Company,
		Location:       c.Location,
		SalaryMin:      c.SalaryMin,
		SalaryMax:      c.SalaryMax,
		SalaryCurrency: c.SalaryCurrency,
		Description:    c.Description,
		Requirements:   c.Requirements,
		URL:            c.URL,
		Source:         c.Source,
		PostedAt:       c.PostedAt,
		ScrapedAt:      c.ScrapedAt,
		IsRemote:       remote,
		Tags:           c.Tags,
		Status:         c.Status,
	}
}
