package source

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/tomasrg/jobhunter/internal/model"
	"github.com/tomasrg/jobhunter/internal/util"
)

const joobleAPIURL = "https://jooble.org/api/"

var joobleKeywords = []string{
	"remote python developer",
	"remote ruby rails developer",
	"remote golang developer",
	"remote fullstack developer",
	"remote react developer",
}

// Jooble requires an API key. Without one the adapter logs and contributes
// nothing instead of failing the run.
type Jooble struct {
	client *resty.Client
	logger *zap.Logger
	apiKey string
	apiURL string
}

func NewJooble(apiKey string, logger *zap.Logger) *Jooble {
	return &Jooble{client: newClient(), logger: logger, apiKey: apiKey, apiURL: joobleAPIURL}
}

func (s *Jooble) Name() string { return "jooble" }

func (s *Jooble) Fetch(ctx context.Context) ([]gjson.Result, error) {
	if s.apiKey == "" {
		s.logger.Warn("jooble api key not set, skipping")
		return nil, nil
	}

	var all []gjson.Result
	seen := map[string]bool{}

	for _, keywords := range joobleKeywords {
		resp, err := s.client.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(map[string]any{
				"keywords": keywords,
				"location": "remote",
				"salary":   "50000",
				"page":     1,
			}).
			Post(s.apiURL + s.apiKey)
		if err != nil || resp.StatusCode() != http.StatusOK {
			s.logger.Warn("jooble search failed", zap.String("keywords", keywords), zap.Error(err))
			continue
		}

		for _, job := range gjson.ParseBytes(resp.Body()).Get("jobs").Array() {
			link := job.Get("link").String()
			if link == "" || seen[link] {
				continue
			}
			seen[link] = true
			all = append(all, job)
		}
	}

	return all, nil
}

func (s *Jooble) Normalize(raw gjson.Result) (*model.CanonicalJob, error) {
	title := strings.TrimSpace(raw.Get("title").String())
	jobURL := raw.Get("link").String()

	if title == "" || jobURL == "" {
		return nil, skipf("missing title or link")
	}

	company := strings.TrimSpace(raw.Get("company").String())
	if company == "" {
		company = "Unknown"
	}

	// Jooble only ships a short snippet; fall back to the title so the
	// record still embeds.
	description := util.CleanHTML(raw.Get("snippet").String())
	if description == "" {
		description = title
	}

	salaryMin, salaryMax, currency := util.ParseSalary(raw.Get("salary").String())

	location := strings.TrimSpace(raw.Get("location").String())
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
		Tags:           util.ExtractTags(title + " " + description),
	}, nil
}
