package uitests

import (
	"bytes"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/webqa/google-e2e/framework"
	"github.com/webqa/google-e2e/target"

	"github.com/cucumber/godog"
	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
)

const searchFeature = `Feature: Google search

  @smoke
  Scenario: Search for Playwright
    Given I navigate to Google homepage
    When I search for "Playwright"
    Then I should see search results
    And the page title should contain "Playwright"

  @regression
  Scenario: Homepage elements are present
    Given I navigate to Google homepage
    Then the Google logo should be visible
    And the search box should be present
    And the search button should be present
`

type fakeHomePage struct {
	calls         []string
	title         string
	logoVisible   bool
	boxPresent    bool
	buttonPresent bool
	results       bool
	navigateErr   error
}

func newFakeHomePage() *fakeHomePage {
	return &fakeHomePage{
		title:         "Playwright - Google Search",
		logoVisible:   true,
		boxPresent:    true,
		buttonPresent: true,
		results:       true,
	}
}

func (f *fakeHomePage) Navigate() error {
	f.calls = append(f.calls, "Navigate")
	return f.navigateErr
}

func (f *fakeHomePage) SearchFor(term string) error {
	f.calls = append(f.calls, "SearchFor "+term)
	return nil
}

func (f *fakeHomePage) ClickSearchButton() error {
	f.calls = append(f.calls, "ClickSearchButton")
	return nil
}

func (f *fakeHomePage) IsLogoVisible() (bool, error) {
	f.calls = append(f.calls, "IsLogoVisible")
	return f.logoVisible, nil
}

func (f *fakeHomePage) IsSearchBoxPresent() (bool, error) {
	f.calls = append(f.calls, "IsSearchBoxPresent")
	return f.boxPresent, nil
}

func (f *fakeHomePage) IsSearchButtonPresent() (bool, error) {
	f.calls = append(f.calls, "IsSearchButtonPresent")
	return f.buttonPresent, nil
}

func (f *fakeHomePage) AreSearchResultsVisible() (bool, error) {
	f.calls = append(f.calls, "AreSearchResultsVisible")
	return f.results, nil
}

func (f *fakeHomePage) VerifyTitleContains(text string) error {
	f.calls = append(f.calls, "VerifyTitleContains "+text)
	return assertContains(f.title, text, "page title should contain %q", text)
}

// fakeBrowserContext counts how many times it is closed. Any other method panics, since the
// embedded interface is nil.
type fakeBrowserContext struct {
	playwright.BrowserContext
	closed int
}

func (c *fakeBrowserContext) Close(options ...playwright.BrowserContextCloseOptions) error {
	c.closed++
	return nil
}

// fakeOpener stands in for a Browser. It opens a fake context with no page, so no screenshot
// is taken.
type fakeOpener struct {
	err      error
	contexts []*fakeBrowserContext

	// stillOpen counts contexts that had not been closed by the time another one was opened.
	stillOpen int
}

func (o *fakeOpener) NewScenarioPage(string) (playwright.BrowserContext, playwright.Page, error) {
	if o.err != nil {
		return nil, nil, o.err
	}
	for _, bc := range o.contexts {
		if bc.closed == 0 {
			o.stillOpen++
		}
	}
	bc := &fakeBrowserContext{}
	o.contexts = append(o.contexts, bc)
	return bc, nil, nil
}

func (o *fakeOpener) opened() int {
	return len(o.contexts)
}

func (o *fakeOpener) closeCounts() []int {
	var ret []int
	for _, bc := range o.contexts {
		ret = append(ret, bc.closed)
	}
	return ret
}

const testFeaturePath = "features/search.feature"

type scenarioRun struct {
	opener   *fakeOpener
	home     *fakeHomePage
	filter   framework.Filter
	files    fstest.MapFS
	output   bytes.Buffer
	starts   int
	artifact string
}

func newScenarioRun(t *testing.T, contents string) *scenarioRun {
	return &scenarioRun{
		opener:   &fakeOpener{},
		home:     newFakeHomePage(),
		files:    fstest.MapFS{testFeaturePath: {Data: []byte(contents)}},
		artifact: t.TempDir(),
	}
}

func (r *scenarioRun) run() framework.Results {
	factory := func(playwright.Page) homePageActions { return r.home }
	return r.runWith(r.opener, factory)
}

func (r *scenarioRun) runWith(opener pageOpener, factory homePageFactory) framework.Results {
	opts := godog.Options{
		Format: "progress",
		Output: &r.output,
		FS:     r.files,
		Paths:  []string{"features"},
	}
	start := func() { r.starts++ }
	return framework.Run(r.filter, nil, func(c *framework.Context) {
		c.Run(GroupName, func(c *framework.Context) {
			runScenarios(c, opts, opener, factory, start, r.artifact)
		})
	})
}

func mustFilter(t *testing.T, run string) framework.Filter {
	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set(run))
	return filters.AsFilter
}

func mustCategoryFilter(t *testing.T, categories ...string) framework.Filter {
	var filters framework.RegexFilters
	for _, c := range categories {
		require.NoError(t, filters.Categories.Set(c))
	}
	return filters.AsFilter
}

func ids(tests []framework.TestResult) []string {
	var ret []string
	for _, r := range tests {
		ret = append(ret, r.TestID.String())
	}
	return ret
}

func skippedIDs(results framework.Results) []string {
	var ret []string
	for _, r := range results.Tests {
		if r.Skipped {
			ret = append(ret, r.TestID.String())
		}
	}
	return ret
}

func errorText(result framework.TestResult) string {
	return errors.Join(result.Errors...).Error()
}

func runWithBrowser(r *scenarioRun, b *Browser, site target.Site) framework.Results {
	return r.runWith(b, func(page playwright.Page) homePageActions { return NewHomePage(page, site) })
}
