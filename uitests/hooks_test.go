package uitests

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScreenshotFileName(t *testing.T) {
	at := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

	assert.Equal(t, "Search_for_Playwright_20240305_140709.png", screenshotFileName("Search for Playwright", at))
	assert.Equal(t, "a_b_20240305_140709.png", screenshotFileName("a/b: ", at))
	assert.Equal(t, "scenario_20240305_140709.png", screenshotFileName("???", at))
}

func TestFeatureName(t *testing.T) {
	assert.Equal(t, "google_search", featureName("features/google_search.feature"))
	assert.Equal(t, "search", featureName("search.feature"))
	assert.Equal(t, "plain", featureName("plain"))
}

func TestAssertHelpers(t *testing.T) {
	assert.NoError(t, assertTrue(true, "fine"))
	err := assertTrue(false, "logo should be visible")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "logo should be visible")
	}

	assert.NoError(t, assertContains("Playwright - Google Search", "Playwright"))
	err = assertContains("Google", "Playwright", "title")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "Playwright")
	}
}
