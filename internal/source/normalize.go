package source

import (
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/tomasrg/jobhunter/internal/util"
)

func trimLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// mergeTags unions upstream tags with tags extracted from the given text and
// returns them sorted and deduplicated.
func mergeTags(upstream []string, text string) []string {
	set := map[string]bool{}
	for _, t := range upstream {
		set[t] = true
	}
	for _, t := range util.ExtractTags(text) {
		set[t] = true
	}
	if len(set) == 0 {
		return nil
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// intPtr converts a numeric gjson field to *int, nil when absent or zero.
// Zero salaries from upstreams mean "not provided".
func intPtr(v gjson.Result) *int {
	if !v.Exists() {
		return nil
	}
	n := int(v.Int())
	if n == 0 {
		return nil
	}
	return &n
}

// isoTime parses an RFC3339-ish timestamp, tolerating a trailing Z.
func isoTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// unixTime converts an epoch-seconds field, nil when absent or implausible.
func unixTime(v gjson.Result) *time.Time {
	if !v.Exists() {
		return nil
	}
	sec := v.Int()
	if sec <= 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}
