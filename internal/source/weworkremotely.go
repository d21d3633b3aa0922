package source

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/tomasrg/jobhunter/internal/model"
	"github.com/tomasrg/jobhunter/internal/util"
)

var wwrFeeds = []string{
	"https://weworkremotely.com/categories/remote-back-end-programming-jobs.rss",
	"https://weworkremotely.com/categories/remote-full-stack-programming-jobs.rss",
	"https://weworkremotely.com/categories/remote-front-end-programming-jobs.rss",
	"https://weworkremotely.com/categories/remote-devops-sysadmin-jobs.rss",
}

// WeWorkRemotely aggregates four category RSS feeds. A failing feed is
// logged and skipped; entries are deduplicated by link across feeds.
type WeWorkRemotely struct {
	client *resty.Client
	parser *gofeed.Parser
	logger *zap.Logger
	feeds  []string
}

func NewWeWorkRemotely(logger *zap.Logger) *WeWorkRemotely {
	return &WeWorkRemotely{
		client: newClient(),
		parser: gofeed.NewParser(),
		logger: logger,
		feeds:  wwrFeeds,
	}
}

func (s *WeWorkRemotely) Name() string { return "weworkremotely" }

func (s *WeWorkRemotely) Fetch(ctx context.Context) ([]gjson.Result, error) {
	var all []gjson.Result
	seen := map[string]bool{}

	for _, feedURL := range s.feeds {
		resp, err := s.client.R().
			SetContext(ctx).
			SetHeader("Accept", "application/rss+xml").
			Get(feedURL)
		if err != nil || resp.StatusCode() != http.StatusOK {
			s.logger.Warn("wwr feed failed", zap.String("feed", feedURL), zap.Error(err))
			continue
		}

		feed, err := s.parser.ParseString(resp.String())
		if err != nil {
			s.logger.Warn("wwr feed parse failed", zap.String("feed", feedURL), zap.Error(err))
			continue
		}

		for _, item := range feed.Items {
			if item.Link == "" || seen[item.Link] {
				continue
			}
			seen[item.Link] = true
			all = append(all, feedEntry(item))
		}

		if err := sleepCtx(ctx, time.Second); err != nil {
			return all, err
		}
	}

	return all, nil
}

// feedEntry flattens an RSS item into the JSON raw-record shape shared by
// all adapters.
func feedEntry(item *gofeed.Item) gjson.Result {
	entry := map[string]string{
		"title":   item.Title,
		"link":    item.Link,
		"summary": item.Description,
	}
	if item.PublishedParsed != nil {
		entry["published"] = item.PublishedParsed.UTC().Format(time.RFC3339)
	}
	b, _ := json.Marshal(entry)
	return gjson.ParseBytes(b)
}

// Normalize splits the feed's "Company: Job Title" convention; entries
// without the separator keep the whole title and get company "Unknown".
func (s *WeWorkRemotely) Normalize(raw gjson.Result) (*model.CanonicalJob, error) {
	rawTitle := strings.TrimSpace(raw.Get("title").String())
	jobURL := raw.Get("link").String()

	if rawTitle == "" || jobURL == "" {
		return nil, skipf("missing title or link")
	}

	title := rawTitle
	company := "Unknown"
	if i := strings.Index(rawTitle, ": "); i >= 0 {
		company = strings.TrimSpace(rawTitle[:i])
		title = strings.TrimSpace(rawTitle[i+2:])
	}
	if title == "" {
		return nil, skipf("empty title after company split")
	}

	description := util.CleanHTML(raw.Get("summary").String())
	if description == "" {
		return nil, skipf("empty description")
	}

	return &model.CanonicalJob{
		Title:          title,
		Company:        company,
		Location:       "Remote",
		SalaryCurrency: "USD",
		Description:    description,
		URL:            jobURL,
		PostedAt:       isoTime(raw.Get("published").String()),
		Tags:           util.ExtractTags(title + " " + description),
	}, nil
}
