package util

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// knownSkills is the fixed tag-extraction vocabulary. Entries of one or two
// characters are matched on word boundaries, longer ones by substring.
var knownSkills = []string{
	"python", "javascript", "typescript", "ruby", "go", "golang", "rust", "java",
	"c#", "c++", "php", "swift", "kotlin", "scala", "elixir", "clojure", "haskell",
	"smalltalk", "perl", "r", "sql", "nosql", "graphql",
	"react", "angular", "vue", "svelte", "next.js", "nextjs", "nuxt", "remix",
	"node.js", "nodejs", "express", "fastapi", "django", "flask",
	"ruby on rails", "rails", "spring", "laravel", ".net", "asp.net",
	"aws", "gcp", "azure", "docker", "kubernetes", "k8s", "terraform",
	"postgresql", "postgres", "mysql", "mongodb", "redis", "elasticsearch",
	"kafka", "rabbitmq", "celery",
	"git", "ci/cd", "jenkins", "github actions",
	"linux", "devops", "sre", "mlops",
	"machine learning", "deep learning", "ai", "llm", "nlp",
	"rest", "api", "microservices", "grpc",
	"agile", "scrum",
}

// currencyAlias maps a symbol or code to an ISO currency. Symbols are checked
// before three-letter codes, first hit wins.
var currencyAliases = []struct {
	alias string
	code  string
}{
	{"$", "USD"}, {"€", "EUR"}, {"£", "GBP"}, {"¥", "JPY"},
	{"usd", "USD"}, {"eur", "EUR"}, {"gbp", "GBP"}, {"cad", "CAD"}, {"aud", "AUD"},
}

// periodMultipliers annualize a detected pay period. Ordered scan, first
// substring hit wins.
var periodMultipliers = []struct {
	keyword string
	mult    int
}{
	{"year", 1}, {"yr", 1}, {"annual", 1}, {"annually", 1}, {"pa", 1}, {"p.a.", 1},
	{"month", 12}, {"mo", 12}, {"monthly", 12},
	{"week", 52}, {"wk", 52}, {"weekly", 52},
	{"hour", 2080}, {"hr", 2080}, {"hourly", 2080},
}

var (
	salaryNumberRe  = regexp.MustCompile(`(\d[\d,.]*)\s*k?`)
	blankLinesRe    = regexp.MustCompile(`\n{3,}`)
	shortSkillRegex = map[string]*regexp.Regexp{}
)

func init() {
	for _, skill := range knownSkills {
		if utf8.RuneCountInString(skill) <= 2 {
			shortSkillRegex[skill] = regexp.MustCompile(`\b` + regexp.QuoteMeta(skill) + `\b`)
		}
	}
}

// CleanHTML strips tags from markup and returns plain text with runs of three
// or more newlines collapsed to a single blank line. Empty input yields an
// empty string. The output is for embedding and keyword use only; no script
// sanitizing is guaranteed.
func CleanHTML(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return strings.TrimSpace(markup)
	}

	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, root := range doc.Nodes {
		walk(root)
	}

	text := strings.Join(parts, "\n")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// ParseSalary extracts an annualized (min, max, currency) triple from free
// salary text. Best effort: ambiguous or malformed input degrades to
// (nil, nil, "USD") and never errors. The annualization factors and the
// 10k-1M plausibility window are fixed policy; downstream scoring depends on
// these exact thresholds.
func ParseSalary(text string) (*int, *int, string) {
	currency := "USD"
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil, nil, currency
	}

	for _, c := range currencyAliases {
		if strings.Contains(text, c.alias) {
			currency = c.code
			break
		}
	}

	var numbers []int
	for _, m := range salaryNumberRe.FindAllStringSubmatch(text, -1) {
		raw := strings.ReplaceAll(m[1], ",", "")
		// European grouping: a final dot group of exactly three digits is a
		// thousands separator, not a decimal (50.000 == 50000).
		if i := strings.LastIndex(raw, "."); i >= 0 && len(raw)-i-1 == 3 {
			raw = strings.ReplaceAll(raw, ".", "")
		}
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if strings.HasSuffix(strings.TrimRightFunc(m[0], unicode.IsSpace), "k") {
			val *= 1000
		}
		numbers = append(numbers, int(val))
	}

	if len(numbers) == 0 {
		return nil, nil, currency
	}

	multiplier := 1
	for _, p := range periodMultipliers {
		if strings.Contains(text, p.keyword) {
			multiplier = p.mult
			break
		}
	}

	var plausible []int
	for _, n := range numbers {
		n *= multiplier
		if n >= 10000 && n <= 1000000 {
			plausible = append(plausible, n)
		}
	}

	if len(plausible) == 0 {
		return nil, nil, currency
	}

	salMin, salMax := plausible[0], plausible[0]
	for _, n := range plausible[1:] {
		if n < salMin {
			salMin = n
		}
		if n > salMax {
			salMax = n
		}
	}

	return &salMin, &salMax, currency
}

// ExtractTags matches the skill vocabulary against text and returns the
// sorted, deduplicated hits.
func ExtractTags(text string) []string {
	if text == "" {
		return nil
	}

	textLower := strings.ToLower(text)
	found := map[string]bool{}

	for _, skill := range knownSkills {
		if re, ok := shortSkillRegex[skill]; ok {
			if re.MatchString(textLower) {
				found[skill] = true
			}
		} else if strings.Contains(textLower, skill) {
			found[skill] = true
		}
	}

	if len(found) == 0 {
		return nil
	}

	tags := make([]string, 0, len(found))
	for t := range found {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
