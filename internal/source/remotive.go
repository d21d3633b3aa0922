package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/tomasrg/jobhunter/internal/model"
	"github.com/tomasrg/jobhunter/internal/util"
)

const remotiveAPIURL = "https://remotive.com/api/remote-jobs"

// Remotive allows 2 requests per minute; a single software-dev request keeps
// us well inside the quota and still returns a few hundred listings.
type Remotive struct {
	client *resty.Client
	logger *zap.Logger
	apiURL string
}

func NewRemotive(logger *zap.Logger) *Remotive {
	return &Remotive{client: newClient(), logger: logger, apiURL: remotiveAPIURL}
}

func (s *Remotive) Name() string { return "remotive" }

func (s *Remotive) Fetch(ctx context.Context) ([]gjson.Result, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"category": "software-dev",
			"limit":    "300",
		}).
		Get(s.apiURL)
	if err != nil {
		return nil, fmt.Errorf("remotive fetch: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("remotive returned %s", resp.Status())
	}

	return gjson.ParseBytes(resp.Body()).Get("jobs").Array(), nil
}

func (s *Remotive) Normalize(raw gjson.Result) (*model.CanonicalJob, error) {
	title := strings.TrimSpace(raw.Get("title").String())
	company := strings.TrimSpace(raw.Get("company_name").String())
	jobURL := raw.Get("url").String()

	if title == "" || company == "" || jobURL == "" {
		return nil, skipf("missing title, company or url")
	}

	description := util.CleanHTML(raw.Get("description").String())
	if description == "" {
		return nil, skipf("empty description")
	}

	// Remotive publishes salary as free text ("$60,000 - $80,000").
	salaryMin, salaryMax, currency := util.ParseSalary(raw.Get("salary").String())

	location := strings.TrimSpace(raw.Get("candidate_required_location").String())
	if location == "" {
		location = "Remote"
	}

	return &model.CanonicalJob{
		Title:          title,
		Company:        company,
		Location:       location,
		SalaryMin:      salaryMin,
		SalaryMax:      salaryMax,
		SalaryCurrency: currency,
		Description:    description,
		URL:            jobURL,
		PostedAt:       isoTime(raw.Get("publication_date").String()),
		Tags:           mergeTags(lowerTags(raw.Get("tags").Array()), title+" "+description),
	}, nil
}
