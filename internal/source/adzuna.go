package source

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/tomasrg/jobhunter/internal/model"
	"github.com/tomasrg/jobhunter/internal/util"
)

const adzunaAPIBase = "https://api.adzuna.com/v1/api/jobs"

var (
	adzunaCountries = []string{"us", "gb", "ca", "de"}
	adzunaTerms     = []string{
		"python developer",
		"ruby rails developer",
		"golang developer",
		"react developer",
	}
	adzunaCurrency = map[string]string{
		"us": "USD", "gb": "GBP", "ca": "CAD", "de": "EUR",
	}
)

// Adzuna searches four countries crossed with four terms, half a second
// between requests. App id and key are both required.
type Adzuna struct {
	client  *resty.Client
	logger  *zap.Logger
	appID   string
	appKey  string
	apiBase string
}

func NewAdzuna(appID, appKey string, logger *zap.Logger) *Adzuna {
	return &Adzuna{
		client:  newClient(),
		logger:  logger,
		appID:   appID,
		appKey:  appKey,
		apiBase: adzunaAPIBase,
	}
}

func (s *Adzuna) Name() string { return "adzuna" }

func (s *Adzuna) Fetch(ctx context.Context) ([]gjson.Result, error) {
	if s.appID == "" || s.appKey == "" {
		s.logger.Warn("adzuna app id/key not set, skipping")
		return nil, nil
	}

	var all []gjson.Result
	seen := map[string]bool{}

	for _, country := range adzunaCountries {
		for _, term := range adzunaTerms {
			resp, err := s.client.R().
				SetContext(ctx).
				SetQueryParams(map[string]string{
					"app_id":           s.appID,
					"app_key":          s.appKey,
					"what":             term,
					"where":            "remote",
					"salary_min":       "50000",
					"full_time":        "1",
					"results_per_page": "50",
				}).
				Get(s.apiBase + "/" + country + "/search/1")
			if err != nil || resp.StatusCode() != http.StatusOK {
				s.logger.Warn("adzuna search failed",
					zap.String("country", country),
					zap.String("term", term),
					zap.Error(err),
				)
			} else {
				for _, job := range gjson.ParseBytes(resp.Body()).Get("results").Array() {
					id := job.Get("id").String()
					if id == "" || seen[id] {
						continue
					}
					seen[id] = true
					all = append(all, tagCountry(job, country))
				}
			}

			if err := sleepCtx(ctx, 500*time.Millisecond); err != nil {
				return all, err
			}
		}
	}

	return all, nil
}

// tagCountry rewraps a result with the country it was fetched from, so the
// pure Normalize can pick the right currency.
func tagCountry(job gjson.Result, country string) gjson.Result {
	var m map[string]any
	if err := json.Unmarshal([]byte(job.Raw), &m); err != nil {
		return job
	}
	m["_country"] = country
	b, err := json.Marshal(m)
	if err != nil {
		return job
	}
	return gjson.ParseBytes(b)
}

func (s *Adzuna) Normalize(raw gjson.Result) (*model.CanonicalJob, error) {
	title := strings.TrimSpace(raw.Get("title").String())
	jobURL := raw.Get("redirect_url").String()

	if title == "" || jobURL == "" {
		return nil, skipf("missing title or redirect_url")
	}

	company := strings.TrimSpace(raw.Get("company.display_name").String())
	if company == "" {
		company = "Unknown"
	}

	description := util.CleanHTML(raw.Get("description").String())
	if description == "" {
		description = title
	}

	location := strings.TrimSpace(raw.Get("location.display_name").String())
	if location == "" {
		location = "Remote"
	}

	currency, ok := adzunaCurrency[raw.Get("_country").String()]
	if !ok {
		currency = "USD"
	}

	return &model.CanonicalJob{
		Title:          title,
		Company:        company,
		Location:       location,
		SalaryMin:      intPtr(raw.Get("salary_min")),
		SalaryMax:      intPtr(raw.Get("salary_max")),
		SalaryCurrency: currency,
		Description:    description,
		URL:            jobURL,
		PostedAt:       isoTime(raw.Get("created").String()),
		Tags:           util.ExtractTags(title + " " + description),
	}, nil
}
