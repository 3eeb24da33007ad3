package apitests

import (
	"bytes"
	"net/http"

	"github.com/PuerkitoBio/goquery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoHomepageTests(t *T) {
	t.RunWithCategories("returns 200", categories(CategorySmoke), func(t *T) {
		resp := t.RequireGet(t.Site().HomePath)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "unexpected status")
		assert.NotEmpty(t, resp.Body, "response body was empty")
		assert.Contains(t, resp.Content(), t.Site().Name)
	})

	t.RunWithCategories("contains expected elements", categories(CategoryRegression), func(t *T) {
		resp := t.RequireGet(t.Site().HomePath)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "unexpected status")
		for _, s := range t.Site().HomeContains {
			assert.Contains(t, resp.Content(), s)
		}
	})

	t.RunWithCategories("has search form", categories(CategoryRegression), func(t *T) {
		resp := t.RequireGet(t.Site().HomePath)
		require.Equal(t, http.StatusOK, resp.StatusCode, "unexpected status")

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
		require.NoError(t, err, "homepage is not parseable HTML")

		title := doc.Find("title").First().Text()
		assert.Contains(t, title, t.Site().Name, "page title")
		inputs := doc.Find(`input[name="q"], textarea[name="q"]`)
		assert.NotZero(t, inputs.Length(), "no search input named \"q\" on the page")
	})

	t.RunWithCategories("responds within timeout", categories(CategoryPerformance), func(t *T) {
		maxLatency := t.Site().MaxLatency()
		resp := t.RequireGet(t.Site().HomePath)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "unexpected status")
		assert.Less(t, int64(resp.Latency), int64(maxLatency),
			"response should be received within %s but took %s", maxLatency, resp.Latency)
	})

	t.RunWithCategories("has security headers", categories(CategorySecurity), func(t *T) {
		resp := t.RequireGet(t.Site().HomePath)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "unexpected status")

		var present []string
		for _, name := range t.Site().SecurityHeaders {
			if resp.HasHeader(name) {
				present = append(present, name)
			}
		}
		assert.NotEmpty(t, present, "at least one of these security headers should be present: %v",
			t.Site().SecurityHeaders)
	})

	// Passing the check above only needs one of the headers, which would hide the loss of the
	// others. This reports each missing one in the debug output without failing.
	t.RunWithCategories("reports missing security headers", categories(CategorySecurity), func(t *T) {
		resp := t.RequireGet(t.Site().HomePath)
		for _, name := range t.Site().SecurityHeaders {
			if resp.HasHeader(name) {
				t.Debug("security header %s: %q", name, resp.Header.Get(name))
			} else {
				t.Debug("security header %s is missing", name)
			}
		}
	})
}
