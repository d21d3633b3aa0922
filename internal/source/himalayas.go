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
	himalayasAPIURL   = "https://himalayas.app/jobs/api"
	himalayasPageSize = 20
	himalayasMaxPages = 10
)

// Himalayas uses limit/offset pagination with a two second pause between
// pages. A 429 stops pagination but keeps whatever was collected.
type Himalayas struct {
	client *resty.Client
	logger *zap.Logger
	apiURL string
}

func NewHimalayas(logger *zap.Logger) *Himalayas {
	return &Himalayas{client: newClient(), logger: logger, apiURL: himalayasAPIURL}
}

func (s *Himalayas) Name() string { return "himalayas" }

func (s *Himalayas) Fetch(ctx context.Context) ([]gjson.Result, error) {
	var all []gjson.Result
	offset := 0

	for page := 0; page < himalayasMaxPages; page++ {
		resp, err := s.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"limit":  strconv.Itoa(himalayasPageSize),
				"offset": strconv.Itoa(offset),
			}).
			Get(s.apiURL)
		if err != nil {
			return all, fmt.Errorf("himalayas offset %d: %w", offset, err)
		}

		if resp.StatusCode() == http.StatusTooManyRequests {
			s.logger.Warn("himalayas rate limited", zap.Int("offset", offset))
			break
		}
		if resp.StatusCode() != http.StatusOK {
			return all, fmt.Errorf("himalayas offset %d returned %s", offset, resp.Status())
		}

		jobs := gjson.ParseBytes(resp.Body()).Get("jobs").Array()
		if len(jobs) == 0 {
			break
		}

		all = append(all, jobs...)
		offset += himalayasPageSize

		if len(jobs) < himalayasPageSize {
			break
		}
		if err := sleepCtx(ctx, 2*time.Second); err != nil {
			return all, err
		}
	}

	return all, nil
}

func (s *Himalayas) Normalize(raw gjson.Result) (*model.CanonicalJob, error) {
	title := strings.TrimSpace(raw.Get("title").String())
	company := strings.TrimSpace(raw.Get("companyName").String())

	if title == "" || company == "" {
		return nil, skipf("missing title or company")
	}

	// Prefer the himalayas listing page, fall back to the application link.
	jobURL := raw.Get("guid").String()
	if jobURL == "" {
		jobURL = raw.Get("applicationLink").String()
	}
	if jobURL == "" {
		return nil, skipf("no usable url")
	}

	description := util.CleanHTML(raw.Get("description").String())
	if description == "" {
		return nil, skipf("empty description")
	}

	currency := raw.Get("currency").String()
	if currency == "" {
		currency = "USD"
	}

	var upstream []string
	for _, c := range raw.Get("categories").Array() {
		if c.Type == gjson.String {
			upstream = append(upstream, strings.ReplaceAll(trimLower(c.String()), "-", " "))
		}
	}

	return &model.CanonicalJob{
		Title:          title,
		Company:        company,
		Location:       himalayasLocation(raw),
		SalaryMin:      intPtr(raw.Get("minSalary")),
		SalaryMax:      intPtr(raw.Get("maxSalary")),
		SalaryCurrency: currency,
		Description:    description,
		URL:            jobURL,
		PostedAt:       unixTime(raw.Get("pubDate")),
		Tags:           mergeTags(upstream, title+" "+description),
	}, nil
}

// himalayasLocation builds a display location from the listing's location or
// timezone restrictions, at most three entries each.
func himalayasLocation(raw gjson.Result) string {
	if restrictions := raw.Get("locationRestrictions").Array(); len(restrictions) > 0 {
		if len(restrictions) > 3 {
			restrictions = restrictions[:3]
		}
		parts := make([]string, 0, len(restrictions))
		for _, r := range restrictions {
			parts = append(parts, r.String())
		}
		return strings.Join(parts, ", ")
	}

	if zones := raw.Get("timezoneRestrictions").Array(); len(zones) > 0 {
		if len(zones) > 3 {
			zones = zones[:3]
		}
		parts := make([]string, 0, len(zones))
		for _, z := range zones {
			if z.Type == gjson.Number {
				parts = append(parts, fmt.Sprintf("UTC%+d", int(z.Int())))
			} else {
				parts = append(parts, z.String())
			}
		}
		return fmt.Sprintf("Remote (%s)", strings.Join(parts, ", "))
	}

	return "Remote (Worldwide)"
}
