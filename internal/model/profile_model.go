package model

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is the singleton profile consumed by the matching pipeline.
// The scoring engine reads it; it never writes back.
type UserProfile struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FullName         string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Email            string    `gorm:"type:varchar(255)" json:"email"`
	Location         string    `gorm:"type:varchar(100)" json:"location"`
	Timezone         string    `gorm:"type:varchar(50)" json:"timezone"`
	LinkedinURL      string    `gorm:"type:varchar(500)" json:"linkedin_url"`
	GithubURL        string    `gorm:"type:varchar(500)" json:"github_url"`
	PrimarySkills    []string  `gorm:"type:jsonb;serializer:json" json:"primary_skills"`
	YearsExperience  int       `json:"years_experience"`
	DesiredSalaryMin int       `json:"desired_salary_min"`
	DesiredSalaryMax int       `json:"desired_salary_max"`
	Bio              string    `gorm:"type:text" json:"bio"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (p *UserProfile) TableName() string {
	return "user_profiles"
}
