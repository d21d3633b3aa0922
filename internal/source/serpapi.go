package source

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/tomasrg/jobhunter/internal/model"
	"github.com/tomasrg/jobhunter/internal/util"
)

const serpAPIURL = "https://serpapi.com/search"

var serpQueries = []string{
	"remote python developer",
	"remote ruby on rails developer",
	"remote golang developer",
	"remote fullstack developer",
	"remote react developer",
}

// SerpAPI proxies Google Jobs. Paid tier, so queries are few and results are
// deduplicated on title+company before normalization.
type SerpAPI struct {
	client *resty.Client
	logger *zap.Logger
	apiKey string
	apiURL string
}

func NewSerpAPI(apiKey string, logger *zap.Logger) *SerpAPI {
	return &SerpAPI{client: newClient(), logger: logger, apiKey: apiKey, apiURL: serpAPIURL}
}

func (s *SerpAPI) Name() string { return "serpapi" }

func (s *SerpAPI) Fetch(ctx context.Context) ([]gjson.Result, error) {
	if s.apiKey == "" {
		s.logger.Warn("serpapi key not set, skipping")
		return nil, nil
	}

	var all []gjson.Result
	seen := map[string]bool{}

	for _, query := range serpQueries {
		resp, err := s.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"engine":  "google_jobs",
				"q":       query,
				"api_key": s.apiKey,
				"hl":      "en",
			}).
			Get(s.apiURL)
		if err != nil || resp.StatusCode() != http.StatusOK {
			s.logger.Warn("serpapi search failed", zap.String("query", query), zap.Error(err))
		} else {
			for _, job := range gjson.ParseBytes(resp.Body()).Get("jobs_results").Array() {
				key := job.Get("title").String() + "-" + job.Get("company_name").String()
				if seen[key] {
					continue
				}
				seen[key] = true
				all = append(all, job)
			}
		}

		if err := sleepCtx(ctx, time.Second); err != nil {
			return all, err
		}
	}

	return all, nil
}

func (s *SerpAPI) Normalize(raw gjson.Result) (*model.CanonicalJob, error) {
	title := strings.TrimSpace(raw.Get("title").String())
	company := strings.TrimSpace(raw.Get("company_name").String())

	if title == "" || company == "" {
		return nil, skipf("missing title or company")
	}

	description := util.CleanHTML(raw.Get("description").String())
	if description == "" {
		description = title
	}

	salaryMin, salaryMax, currency := util.ParseSalary(raw.Get("detected_extensions.salary").String())

	// Google Jobs results carry no canonical link; take the first related
	// link, then the first apply option, otherwise skip the record.
	jobURL := firstLink(raw.Get("related_links").Array())
	if jobURL == "" {
		jobURL = firstLink(raw.Get("apply_options").Array())
	}
	if jobURL == "" {
		return nil, skipf("no usable url")
	}

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

func firstLink(items []gjson.Result) string {
	for _, item := range items {
		if link := item.Get("link").String(); link != "" {
			return link
		}
	}
	return ""
}
