package dto

import "github.com/tomasrg/jobhunter/internal/model"

type ProfileRequest struct {
	FullName         string   `json:"full_name"`
	Email            string   `json:"email"`
	Location         string   `json:"location"`
	Timezone         string   `json:"timezone"`
	LinkedinURL      string   `json:"linkedin_url"`
	GithubURL        string   `json:"github_url"`
	PrimarySkills    []string `json:"primary_skills"`
	YearsExperience  int      `json:"years_experience"`
	DesiredSalaryMin int      `json:"desired_salary_min"`
	DesiredSalaryMax int      `json:"desired_salary_max"`
	Bio              string   `json:"bio"`
}

func (r *ProfileRequest) ToModel() *model.UserProfile {
	return &model.UserProfile{
		FullName:         r.FullName,
		Email:            r.Email,
		Location:         r.Location,
		Timezone:         r.Timezone,
		LinkedinURL:      r.LinkedinURL,
		GithubURL:        r.GithubURL,
		PrimarySkills:    r.PrimarySkills,
		YearsExperience:  r.YearsExperience,
		DesiredSalaryMin: r.DesiredSalaryMin,
		DesiredSalaryMax: r.DesiredSalaryMax,
		Bio:              r.Bio,
	}
}
