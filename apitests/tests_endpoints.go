package apitests

import (
	"github.com/stretchr/testify/assert"
)

func DoEndpointTests(t *T) {
	for _, path := range t.Site().Endpoints {
		t.RunWithCategories("GET "+path, categories(CategoryRegression), func(t *T) {
			resp := t.RequireGet(path)
			assert.True(t, t.Site().Accepts(resp.StatusCode),
				"status %d is not one of %v", resp.StatusCode, t.Site().AcceptedStatuses)
			assert.NotEmpty(t, resp.Body, "response body was empty")
		})
	}
}
