package source

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/tomasrg/jobhunter/internal/model"
	"github.com/tomasrg/jobhunter/internal/util"
)

const (
	arbeitnowAPIURL   = "https://www.arbeitnow.com/api/job-board-api"
	arbeitnowMaxPages = 5
)

// Arbeitnow pages through the public job-board API, one second between
// requests. Listings are Europe-centric; salaries are EUR.
type Arbeitnow struct {
	client *resty.Client
	logger *zap.Logger
	apiURL string
}

func NewArbeitnow(logger *zap.Logger) *Arbeitnow {
	return &Arbeitnow{client: newClient(), logger: logger, apiURL: arbeitnowAPIURL}
}

func (s *Arbeitnow) Name() string { return "arbeitnow" }

func (s *Arbeitnow) Fetch(ctx context.Context) ([]gjson.Result, error) {
	var all []gjson.Result

	for page := 1; page <= arbeitnowMaxPages; page++ {
		resp, err := s.client.R().
			SetContext(ctx).
			SetQueryParam("page", strconv.Itoa(page)).
			Get(s.apiURL)
		if err != nil {
			return all, fmt.Errorf("arbeitnow page %d: %w", page, err)
		}
		if resp.StatusCode() != http.StatusOK {
			return all, fmt.Errorf("arbeitnow page %d returned %s", page, resp.Status())
		}

		body := gjson.ParseBytes(resp.Body())
		jobs := body.Get("data").Array()
		if len(jobs) == 0 {
			break
		}
		all = append(all, jobs...)

		if body.Get("links.next").String() == "" {
			break
		}
		if err := sleepCtx(ctx, time.Second); err != nil {
			return all, err
		}
	}

	return all, nil
}

func (s *Arbeitnow) Normalize(raw gjson.Result) (*model.CanonicalJob, error) {
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

	location := strings.TrimSpace(raw.Get("location").String())
	if location == "" {
		location = "Remote"
	}

	remote := raw.Get("remote").Bool()

	return &model.CanonicalJob{
		Title:          title,
		Company:        company,
		Location:       location,
		SalaryCurrency: "EUR",
		Description:    description,
		URL:            jobURL,
		PostedAt:       unixTime(raw.Get("created_at")),
		IsRemote:       &remote,
		Tags:           mergeTags(lowerTags(raw.Get("tags").Array()), title+" "+description),
	}, nil
}
