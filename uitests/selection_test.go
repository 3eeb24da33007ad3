package uitests

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFeatures(t *testing.T) {
	fsys := fstest.MapFS{
		"features/b.feature": {Data: []byte(`@web
Feature: b

  @Smoke @smoke
  Scenario: one
    Given I navigate to Google homepage

  Rule: rules

    @security
    Scenario: two
      Given I navigate to Google homepage
`)},
		"features/a.feature": {Data: []byte("Feature: a\n\n  Scenario: only\n    Given I navigate to Google homepage\n")},
		"features/notes.txt": {Data: []byte("not a feature")},
	}

	all, err := loadFeatures(fsys, []string{"features"})
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.Equal(t, "features/a.feature", all[0].uri)
	assert.Equal(t, []scenarioInfo{{name: "only", line: 3, categories: []string{"ui"}}}, all[0].scenarios)

	assert.Equal(t, "features/b.feature", all[1].uri)
	assert.Equal(t, []scenarioInfo{
		{name: "one", line: 5, categories: []string{"ui", "web", "smoke"}},
		{name: "two", line: 11, categories: []string{"ui", "web", "security"}},
	}, all[1].scenarios)
}

func TestLoadFeaturesReportsFile(t *testing.T) {
	fsys := fstest.MapFS{"features/bad.feature": {Data: []byte("nonsense\n")}}
	_, err := loadFeatures(fsys, []string{"features"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "features/bad.feature")
}

func TestPlanRuns(t *testing.T) {
	all := []featureFile{
		{uri: "features/a.feature", scenarios: []scenarioInfo{{line: 3}, {line: 8}}},
		{uri: "features/b.feature", scenarios: []scenarioInfo{{line: 2}, {line: 6}, {line: 9}}},
		{uri: "features/c.feature", scenarios: []scenarioInfo{{line: 4}}},
	}

	runs := planRuns(map[string][]int64{
		"features/a.feature": {3, 8},
		"features/b.feature": {2, 9},
		"features/c.feature": {4},
	}, all)
	assert.Equal(t, []godogRun{
		{paths: []string{"features/a.feature", "features/c.feature"}},
		{paths: []string{"features/b.feature:2"}},
		{paths: []string{"features/b.feature:9"}},
	}, runs)

	assert.Empty(t, planRuns(map[string][]int64{}, all))
	assert.Equal(t, []godogRun{{paths: []string{"features/a.feature:8"}}},
		planRuns(map[string][]int64{"features/a.feature": {8}}, all))
}

func TestScenarioCategories(t *testing.T) {
	assert.Equal(t, []string{"ui"}, scenarioCategories(nil))
	assert.Equal(t, []string{"ui", "smoke", "regression"}, scenarioCategories([]string{"@smoke", "@UI", "@Regression", "@"}))
}
