// Package source implements the per-upstream job feed adapters. Every adapter
// fetches raw records from one board and maps them to the canonical job
// shape; fetch and normalize failures degrade to empty or skipped results so
// that no single upstream can abort an ingestion run.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/tomasrg/jobhunter/internal/model"
)

const (
	userAgent      = "JobHunterPro/0.1 (personal job search automation; contact: tomas@example.com)"
	defaultTimeout = 30 * time.Second
)

// Source is the contract every upstream adapter implements. Fetch performs
// network I/O under the upstream's own pagination and rate-limit rules;
// Normalize is pure and side-effect free.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]gjson.Result, error)
	Normalize(raw gjson.Result) (*model.CanonicalJob, error)
}

// ErrSkipRecord marks a raw record that cannot become a canonical job
// (missing title, url, company or description). Not an upstream failure.
var ErrSkipRecord = errors.New("record skipped")

func skipf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrSkipRecord}, args...)...)
}

// JobStore is the persistence surface adapters save into.
type JobStore interface {
	InsertIgnore(ctx context.Context, jobs []model.Job) (int, error)
}

// RecordFailure describes one raw record dropped during normalization.
type RecordFailure struct {
	URL    string `json:"url,omitempty"`
	Reason string `json:"reason"`
}

// CollectResult is the outcome of one adapter run. Collection never fails as
// a whole; callers inspect Skipped / Failures for the per-record reasons.
type CollectResult struct {
	Source   string
	Fetched  int
	Records  []*model.CanonicalJob
	Skipped  int
	Failures []RecordFailure
}

func newClient() *resty.Client {
	return resty.New().
		SetTimeout(defaultTimeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))
}

// Collect runs one adapter end to end: fetch, then normalize each raw record,
// stamping source, scrape time and defaults on every surviving one. A fetch
// error is logged and converted to an empty result.
func Collect(ctx context.Context, src Source, logger *zap.Logger) *CollectResult {
	result := &CollectResult{Source: src.Name()}

	logger.Info("source fetch start", zap.String("source", src.Name()))

	raws, err := src.Fetch(ctx)
	if err != nil {
		logger.Error("source fetch failed",
			zap.String("source", src.Name()),
			zap.Error(err),
		)
		return result
	}

	result.Fetched = len(raws)
	logger.Info("source fetch done",
		zap.String("source", src.Name()),
		zap.Int("raw_count", len(raws)),
	)

	now := time.Now().UTC()
	for _, raw := range raws {
		rec, err := src.Normalize(raw)
		if err != nil {
			result.Skipped++
			result.Failures = append(result.Failures, RecordFailure{
				URL:    raw.Get("url").String(),
				Reason: err.Error(),
			})
			if !errors.Is(err, ErrSkipRecord) {
				logger.Warn("source normalize failed",
					zap.String("source", src.Name()),
					zap.Error(err),
				)
			}
			continue
		}

		rec.Source = src.Name()
		if rec.ScrapedAt.IsZero() {
			rec.ScrapedAt = now
		}
		if rec.IsRemote == nil {
			remote := true
			rec.IsRemote = &remote
		}
		if rec.Status == "" {
			rec.Status = model.StatusNew
		}
		result.Records = append(result.Records, rec)
	}

	logger.Info("source normalize done",
		zap.String("source", src.Name()),
		zap.Int("normalized", len(result.Records)),
		zap.Int("skipped", result.Skipped),
	)

	return result
}

// Save persists canonical records with insert-or-ignore semantics keyed on
// url, in a single transaction per source run. Returns the number of rows
// actually inserted; duplicates are silently skipped.
func Save(ctx context.Context, records []*model.CanonicalJob, store JobStore, logger *zap.Logger) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	jobs := make([]model.Job, 0, len(records))
	for _, rec := range records {
		jobs = append(jobs, rec.ToJob())
	}

	inserted, err := store.InsertIgnore(ctx, jobs)
	if err != nil {
		return 0, fmt.Errorf("save %s batch: %w", records[0].Source, err)
	}

	logger.Info("source save done",
		zap.String("source", records[0].Source),
		zap.Int("inserted", inserted),
		zap.Int("duplicates", len(jobs)-inserted),
	)
	return inserted, nil
}

// sleepCtx pauses between paginated requests without ignoring cancellation.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// lowerTags normalizes upstream-provided tag arrays.
func lowerTags(arr []gjson.Result) []string {
	tags := make([]string, 0, len(arr))
	for _, t := range arr {
		if t.Type != gjson.String {
			continue
		}
		if s := trimLower(t.String()); s != "" {
			tags = append(tags, s)
		}
	}
	return tags
}
