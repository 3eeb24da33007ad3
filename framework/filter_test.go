package framework

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(path ...string) TestID {
	return TestID{Path: path}
}

func TestNoFilters(t *testing.T) {
	var filters RegexFilters
	assert.True(t, filters.AsFilter(id("api", "homepage", "returns 200")))
}

func TestMustMatchIsAppliedPerLevel(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("api/homepage/200"))

	assert.True(t, filters.AsFilter(id("api")))
	assert.True(t, filters.AsFilter(id("api", "homepage")))
	assert.True(t, filters.AsFilter(id("api", "homepage", "returns 200")))
	assert.True(t, filters.AsFilter(id("api", "homepage", "returns 200", "deeper")))
	assert.False(t, filters.AsFilter(id("api", "homepage", "has security headers")))
	assert.False(t, filters.AsFilter(id("api", "endpoints")))
	assert.False(t, filters.AsFilter(id("ui")))
}

func TestAnyMustMatchPatternSelects(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("^api$/endpoints"))
	require.NoError(t, filters.MustMatch.Set("ui"))

	assert.True(t, filters.AsFilter(id("api", "endpoints", "GET /maps")))
	assert.True(t, filters.AsFilter(id("ui", "google_search")))
	assert.False(t, filters.AsFilter(id("api", "homepage")))
}

func TestMustNotMatchUsesWholeID(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("homepage/responds"))

	assert.True(t, filters.AsFilter(id("api", "homepage")))
	assert.False(t, filters.AsFilter(id("api", "homepage", "responds within timeout")))

	require.NoError(t, filters.MustNotMatch.Set("^ui"))
	assert.False(t, filters.AsFilter(id("ui")))
	assert.False(t, filters.AsFilter(id("ui", "google_search", "Search for Playwright")))
}

func TestInvalidPattern(t *testing.T) {
	var list RegexList
	assert.Error(t, list.Set("("))
	assert.False(t, list.IsDefined())
}

func TestPrintFilterDescription(t *testing.T) {
	var buf bytes.Buffer
	PrintFilterDescription(&buf, RegexFilters{})
	assert.Empty(t, buf.String())

	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("api"))
	require.NoError(t, filters.MustNotMatch.Set("maps"))
	PrintFilterDescription(&buf, filters)
	assert.Contains(t, buf.String(), `skip any not matching "api"`)
	assert.Contains(t, buf.String(), `skip any matching "maps"`)
}

func TestCategoriesSelectOnlyCategorizedTests(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.Categories.Set("Smoke"))
	require.NoError(t, filters.Categories.Set("security"))

	assert.True(t, filters.AsFilter(id("api")))
	assert.True(t, filters.AsFilter(id("api", "homepage")))
	assert.True(t, filters.AsFilter(TestID{Path: []string{"api", "homepage", "returns 200"}, Categories: []string{"api", "smoke"}}))
	assert.True(t, filters.AsFilter(TestID{Path: []string{"api", "homepage", "has security headers"}, Categories: []string{"API", "Security"}}))
	assert.False(t, filters.AsFilter(TestID{Path: []string{"api", "homepage", "responds within timeout"}, Categories: []string{"api", "performance"}}))
}

func TestCategoriesCombineWithPatterns(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.Categories.Set("smoke"))
	require.NoError(t, filters.MustNotMatch.Set("^ui"))

	assert.False(t, filters.AsFilter(TestID{Path: []string{"ui", "google_search", "Search for Playwright"}, Categories: []string{"ui", "smoke"}}))
	assert.True(t, filters.AsFilter(TestID{Path: []string{"api", "homepage", "returns 200"}, Categories: []string{"api", "smoke"}}))
}

func TestEmptyCategoryIsRejected(t *testing.T) {
	var categories CategoryFilter
	assert.Error(t, categories.Set("  "))
	assert.False(t, categories.IsDefined())
}

func TestPrintFilterDescriptionWithCategories(t *testing.T) {
	var buf bytes.Buffer
	var filters RegexFilters
	require.NoError(t, filters.Categories.Set("smoke"))
	require.NoError(t, filters.Categories.Set("security"))
	PrintFilterDescription(&buf, filters)
	assert.Contains(t, buf.String(), "skip any not in categories smoke, security")
}
