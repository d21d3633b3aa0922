package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSalaryRange(t *testing.T) {
	min, max, currency := ParseSalary("$120k - $150k")
	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, 120000, *min)
	assert.Equal(t, 150000, *max)
	assert.Equal(t, "USD", currency)
}

func TestParseSalaryEuroWithCommas(t *testing.T) {
	min, max, currency := ParseSalary("€60,000 - €80,000 per year")
	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, 60000, *min)
	assert.Equal(t, 80000, *max)
	assert.Equal(t, "EUR", currency)
}

func TestParseSalaryEuropeanDotGrouping(t *testing.T) {
	min, max, currency := ParseSalary("50.000€ - 60.000€")
	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, 50000, *min)
	assert.Equal(t, 60000, *max)
	assert.Equal(t, "EUR", currency)
}

func TestParseSalaryHourlyAnnualized(t *testing.T) {
	min, max, _ := ParseSalary("$50 - $60 per hour")
	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, 50*2080, *min)
	assert.Equal(t, 60*2080, *max)
}

func TestParseSalaryMonthlyAnnualized(t *testing.T) {
	min, max, _ := ParseSalary("$3,000/month")
	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, 36000, *min)
	assert.Equal(t, 36000, *max)
}

func TestParseSalarySingleValue(t *testing.T) {
	min, max, _ := ParseSalary("up to $200k")
	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, 200000, *min)
	assert.Equal(t, 200000, *max)
}

func TestParseSalaryCurrencyCode(t *testing.T) {
	_, _, currency := ParseSalary("100k - 140k usd")
	assert.Equal(t, "USD", currency)

	_, _, currency = ParseSalary("90k - 110k cad")
	assert.Equal(t, "CAD", currency)
}

func TestParseSalaryImplausibleDropped(t *testing.T) {
	min, max, currency := ParseSalary("$5")
	assert.Nil(t, min)
	assert.Nil(t, max)
	assert.Equal(t, "USD", currency)
}

func TestParseSalaryNoNumbers(t *testing.T) {
	min, max, currency := ParseSalary("competitive salary")
	assert.Nil(t, min)
	assert.Nil(t, max)
	assert.Equal(t, "USD", currency)
}

func TestParseSalaryEmpty(t *testing.T) {
	min, max, currency := ParseSalary("")
	assert.Nil(t, min)
	assert.Nil(t, max)
	assert.Equal(t, "USD", currency)
}

func TestExtractTags(t *testing.T) {
	tags := ExtractTags("Senior Go Developer with PostgreSQL and React experience")
	assert.Equal(t, []string{"go", "postgres", "postgresql", "react", "sql"}, tags)
}

func TestExtractTagsShortSkillsNeedWordBoundary(t *testing.T) {
	// "going" must not hit "go", "cairo" must not hit "ai" or "r".
	tags := ExtractTags("going to cairo")
	assert.Empty(t, tags)
}

func TestExtractTagsEmpty(t *testing.T) {
	assert.Empty(t, ExtractTags(""))
}

func TestCleanHTML(t *testing.T) {
	text := CleanHTML("<p>Hello <b>World</b></p><p>Second paragraph</p>")
	assert.Equal(t, "Hello\nWorld\nSecond paragraph", text)
}

func TestCleanHTMLEmpty(t *testing.T) {
	assert.Equal(t, "", CleanHTML(""))
	assert.Equal(t, "", CleanHTML("   \n  "))
}

func TestCleanHTMLPlainTextPassthrough(t *testing.T) {
	assert.Equal(t, "just plain text", CleanHTML("just plain text"))
}
