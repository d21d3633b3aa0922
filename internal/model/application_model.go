package model

import (
	"time"

	"github.com/google/uuid"
)

// Application statuses.
const (
	ApplicationApplied       = "applied"
	ApplicationResponded     = "responded"
	ApplicationInterviewing  = "interviewing"
	ApplicationTechnicalTest = "technical_test"
	ApplicationOffer         = "offer"
	ApplicationRejected      = "rejected"
)

// Application is one submitted application against a stored job.
type Application struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	JobID         uuid.UUID `gorm:"type:uuid;not null;index" json:"job_id"`
	AppliedAt     time.Time `json:"applied_at"`
	CoverLetter   *string   `gorm:"type:text" json:"cover_letter"`
	ResumeVersion *string   `gorm:"type:varchar(255)" json:"resume_version"`
	Status        string    `gorm:"type:varchar(20);default:applied" json:"status"`
	FollowUpDate  *time.Time `json:"follow_up_date"`
	Notes         *string   `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Job *Job `gorm:"foreignKey:JobID" json:"-"`
}

func (a *Application) TableName() string {
	return "applications"
}
