package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

func TestRemoteOKNormalize(t *testing.T) {
	src := NewRemoteOK(zap.NewNop())
	raw := gjson.Parse(`{
		"position": "Senior Go Engineer",
		"company": "Acme",
		"url": "/remote-jobs/12345",
		"description": "<p>Build services in <b>Go</b> and React.</p>",
		"location": "Worldwide",
		"salary_min": 90000,
		"salary_max": 120000,
		"tags": ["golang", "backend"],
		"date": "2026-08-20T12:00:00Z"
	}`)

	rec, err := src.Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, "Senior Go Engineer", rec.Title)
	assert.Equal(t, "Acme", rec.Company)
	assert.Equal(t, "https://remoteok.com/remote-jobs/12345", rec.URL)
	assert.Equal(t, "Worldwide", rec.Location)
	assert.Equal(t, "USD", rec.SalaryCurrency)
	require.NotNil(t, rec.SalaryMin)
	assert.Equal(t, 90000, *rec.SalaryMin)
	require.NotNil(t, rec.SalaryMax)
	assert.Equal(t, 120000, *rec.SalaryMax)
	assert.NotContains(t, rec.Description, "<p>")
	assert.Contains(t, rec.Tags, "golang")
	assert.Contains(t, rec.Tags, "backend")
	assert.Contains(t, rec.Tags, "react")
	require.NotNil(t, rec.PostedAt)
	assert.Equal(t, 2026, rec.PostedAt.Year())
}

func TestRemoteOKNormalizeSkipsIncomplete(t *testing.T) {
	src := NewRemoteOK(zap.NewNop())

	_, err := src.Normalize(gjson.Parse(`{"position":"X","url":"/j/1"}`))
	require.ErrorIs(t, err, ErrSkipRecord)

	_, err = src.Normalize(gjson.Parse(`{"position":"X","company":"A","url":"/j/1","description":""}`))
	require.ErrorIs(t, err, ErrSkipRecord)
}

func TestRemoteOKZeroSalaryMeansUnset(t *testing.T) {
	src := NewRemoteOK(zap.NewNop())
	rec, err := src.Normalize(gjson.Parse(`{
		"position": "Engineer", "company": "A", "url": "/j/1",
		"description": "work", "salary_min": 0, "salary_max": 0
	}`))
	require.NoError(t, err)
	assert.Nil(t, rec.SalaryMin)
	assert.Nil(t, rec.SalaryMax)
}

func TestArbeitnowNormalizeRemoteFlag(t *testing.T) {
	src := NewArbeitnow(zap.NewNop())
	rec, err := src.Normalize(gjson.Parse(`{
		"title": "Backend Developer",
		"company_name": "Berlin GmbH",
		"url": "https://arbeitnow.com/jobs/1",
		"description": "Kubernetes and Go.",
		"location": "Berlin",
		"remote": false,
		"created_at": 1755600000,
		"tags": ["devops"]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "EUR", rec.SalaryCurrency)
	require.NotNil(t, rec.IsRemote)
	assert.False(t, *rec.IsRemote)
	require.NotNil(t, rec.PostedAt)
}

func TestWeWorkRemotelyNormalizeSplitsCompany(t *testing.T) {
	src := NewWeWorkRemotely(zap.NewNop())
	rec, err := src.Normalize(gjson.Parse(`{
		"title": "Acme Corp: Staff Software Engineer",
		"link": "https://weworkremotely.com/jobs/1",
		"summary": "<p>Work on Go services.</p>"
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Staff Software Engineer", rec.Title)
	assert.Equal(t, "Acme Corp", rec.Company)
	assert.Equal(t, "Remote", rec.Location)
}

func TestWeWorkRemotelyNormalizeNoSeparator(t *testing.T) {
	src := NewWeWorkRemotely(zap.NewNop())
	rec, err := src.Normalize(gjson.Parse(`{
		"title": "Staff Software Engineer",
		"link": "https://weworkremotely.com/jobs/2",
		"summary": "details"
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Staff Software Engineer", rec.Title)
	assert.Equal(t, "Unknown", rec.Company)
}

func TestRemotiveNormalizeParsesSalaryText(t *testing.T) {
	src := NewRemotive(zap.NewNop())
	rec, err := src.Normalize(gjson.Parse(`{
		"title": "Python Developer",
		"company_name": "Remoteco",
		"url": "https://remotive.com/jobs/1",
		"description": "Django work.",
		"salary": "$60,000 - $80,000",
		"candidate_required_location": "LATAM",
		"tags": ["python"]
	}`))
	require.NoError(t, err)

	require.NotNil(t, rec.SalaryMin)
	assert.Equal(t, 60000, *rec.SalaryMin)
	require.NotNil(t, rec.SalaryMax)
	assert.Equal(t, 80000, *rec.SalaryMax)
	assert.Equal(t, "USD", rec.SalaryCurrency)
	assert.Equal(t, "LATAM", rec.Location)
}

func TestAdzunaNormalizeCurrencyByCountry(t *testing.T) {
	src := NewAdzuna("id", "key", zap.NewNop())

	rec, err := src.Normalize(gjson.Parse(`{
		"title": "Golang Developer",
		"redirect_url": "https://adzuna.com/land/1",
		"company": {"display_name": "UK Ltd"},
		"description": "Remote role.",
		"location": {"display_name": "London"},
		"salary_min": 70000,
		"_country": "gb"
	}`))
	require.NoError(t, err)
	assert.Equal(t, "GBP", rec.SalaryCurrency)
	assert.Equal(t, "UK Ltd", rec.Company)

	// Unknown country falls back to USD; missing company to Unknown.
	rec, err = src.Normalize(gjson.Parse(`{
		"title": "Dev",
		"redirect_url": "https://adzuna.com/land/2",
		"description": "x"
	}`))
	require.NoError(t, err)
	assert.Equal(t, "USD", rec.SalaryCurrency)
	assert.Equal(t, "Unknown", rec.Company)
}

func TestAdzunaTagCountry(t *testing.T) {
	raw := gjson.Parse(`{"id":"1","title":"Dev"}`)
	tagged := tagCountry(raw, "de")
	assert.Equal(t, "de", tagged.Get("_country").String())
	assert.Equal(t, "Dev", tagged.Get("title").String())
}

func TestHimalayasLocation(t *testing.T) {
	loc := himalayasLocation(gjson.Parse(`{"locationRestrictions":["United States","Canada"]}`))
	assert.Equal(t, "United States, Canada", loc)

	loc = himalayasLocation(gjson.Parse(`{"timezoneRestrictions":[-3, 0, 2]}`))
	assert.Equal(t, "Remote (UTC-3, UTC+0, UTC+2)", loc)

	loc = himalayasLocation(gjson.Parse(`{}`))
	assert.Equal(t, "Remote (Worldwide)", loc)
}

func TestHimalayasNormalizeURLFallback(t *testing.T) {
	src := NewHimalayas(zap.NewNop())
	rec, err := src.Normalize(gjson.Parse(`{
		"title": "SRE",
		"companyName": "Peaks",
		"applicationLink": "https://apply.example.com/1",
		"description": "Terraform and AWS.",
		"categories": ["site-reliability"]
	}`))
	require.NoError(t, err)
	assert.Equal(t, "https://apply.example.com/1", rec.URL)
	assert.Contains(t, rec.Tags, "site reliability")
	assert.Equal(t, "USD", rec.SalaryCurrency)
}

func TestJoobleNormalizeFallbacks(t *testing.T) {
	src := NewJooble("key", zap.NewNop())
	rec, err := src.Normalize(gjson.Parse(`{
		"title": "Rails Developer",
		"link": "https://jooble.org/j/1",
		"salary": "$90k - $120k"
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Unknown", rec.Company)
	assert.Equal(t, "Rails Developer", rec.Description)
	assert.Equal(t, "Remote", rec.Location)
	require.NotNil(t, rec.SalaryMin)
	assert.Equal(t, 90000, *rec.SalaryMin)
}

func TestSerpAPINormalizeURLSelection(t *testing.T) {
	src := NewSerpAPI("key", zap.NewNop())

	rec, err := src.Normalize(gjson.Parse(`{
		"title": "Backend Engineer",
		"company_name": "Searchio",
		"description": "Go microservices.",
		"related_links": [{"link": "https://company.example.com/job"}],
		"apply_options": [{"link": "https://apply.example.com/job"}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, "https://company.example.com/job", rec.URL)

	rec, err = src.Normalize(gjson.Parse(`{
		"title": "Backend Engineer",
		"company_name": "Searchio",
		"description": "Go microservices.",
		"apply_options": [{"link": "https://apply.example.com/job"}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, "https://apply.example.com/job", rec.URL)

	_, err = src.Normalize(gjson.Parse(`{
		"title": "Backend Engineer",
		"company_name": "Searchio",
		"description": "Go microservices."
	}`))
	require.ErrorIs(t, err, ErrSkipRecord)
}

func TestMergeTagsUnion(t *testing.T) {
	tags := mergeTags([]string{"backend", "golang"}, "We use React and PostgreSQL")
	assert.Contains(t, tags, "backend")
	assert.Contains(t, tags, "golang")
	assert.Contains(t, tags, "react")
	assert.Contains(t, tags, "postgresql")
	// Sorted output.
	for i := 1; i < len(tags); i++ {
		assert.Less(t, tags[i-1], tags[i])
	}
}

func TestIntPtr(t *testing.T) {
	assert.Nil(t, intPtr(gjson.Parse(`{}`).Get("missing")))
	assert.Nil(t, intPtr(gjson.Parse(`{"v":0}`).Get("v")))
	got := intPtr(gjson.Parse(`{"v":50000}`).Get("v"))
	require.NotNil(t, got)
	assert.Equal(t, 50000, *got)
}

func TestIsoTime(t *testing.T) {
	assert.Nil(t, isoTime(""))
	assert.Nil(t, isoTime("not a date"))
	got := isoTime("2026-08-20T12:00:00Z")
	require.NotNil(t, got)
	assert.Equal(t, 20, got.Day())
}
