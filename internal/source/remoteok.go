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

const remoteOKAPIURL = "https://remoteok.com/api"

// RemoteOK pulls the public JSON feed at remoteok.com/api. Single request,
// no pagination; the first array element is a legal notice, not a listing.
type RemoteOK struct {
	client *resty.Client
	logger *zap.Logger
	apiURL string
}

func NewRemoteOK(logger *zap.Logger) *RemoteOK {
	return &RemoteOK{client: newClient(), logger: logger, apiURL: remoteOKAPIURL}
}

func (s *RemoteOK) Name() string { return "remoteok" }

func (s *RemoteOK) Fetch(ctx context.Context) ([]gjson.Result, error) {
	resp, err := s.client.R().SetContext(ctx).Get(s.apiURL)
	if err != nil {
		return nil, fmt.Errorf("remoteok fetch: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("remoteok returned %s", resp.Status())
	}

	items := gjson.ParseBytes(resp.Body()).Array()
	if len(items) > 0 && (items[0].Get("legal").Exists() || items[0].Get("0").Exists()) {
		items = items[1:]
	}
	return items, nil
}

func (s *RemoteOK) Normalize(raw gjson.Result) (*model.CanonicalJob, error) {
	title := strings.TrimSpace(raw.Get("position").String())
	company := strings.TrimSpace(raw.Get("company").String())
	jobURL := raw.Get("url").String()

	if title == "" || company == "" || jobURL == "" {
		return nil, skipf("missing title, company or url")
	}

	// The feed links listings relative to the site root.
	if strings.HasPrefix(jobURL, "/") {
		jobURL = "https://remoteok.com" + jobURL
	}

	description := util.CleanHTML(raw.Get("description").String())
	if description == "" {
		return nil, skipf("empty description")
	}

	location := strings.TrimSpace(raw.Get("location").String())
	if location == "" {
		location = "Remote"
	}

	return &model.CanonicalJob{
		Title:          title,
		Company:        company,
		Location:       location,
		SalaryMin:      intPtr(raw.Get("salary_min")),
		SalaryMax:      intPtr(raw.Get("salary_max")),
		SalaryCurrency: "USD",
		Description:    description,
		URL:            jobURL,
		PostedAt:       isoTime(raw.Get("date").String()),
		Tags:           mergeTags(lowerTags(raw.Get("tags").Array()), title+" "+description),
	}, nil
}
