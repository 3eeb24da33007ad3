package uitests

import (
	"fmt"
	"time"

	"github.com/webqa/google-e2e/target"

	"github.com/playwright-community/playwright-go"
)

const (
	searchBoxSelector    = "[name='q']"
	searchButtonSelector = "[name='btnK']"
	logoSelector         = "img[alt*='Google']"
	resultsSelector      = "#search"
)

// HomePage is the page object for the search homepage and the results page it leads to.
type HomePage struct {
	page           playwright.Page
	url            string
	resultsTimeout time.Duration
	searchBox      playwright.Locator
	searchButton   playwright.Locator
	logo           playwright.Locator
	results        playwright.Locator
}

func NewHomePage(page playwright.Page, site target.Site) *HomePage {
	return &HomePage{
		page:           page,
		url:            site.URL(site.HomePath),
		resultsTimeout: site.ResultsTimeout(),
		searchBox:      page.Locator(searchBoxSelector),
		searchButton:   page.Locator(searchButtonSelector).First(),
		logo:           page.Locator(logoSelector),
		results:        page.Locator(resultsSelector),
	}
}

// Navigate opens the homepage and waits until the network is idle.
func (h *HomePage) Navigate() error {
	if _, err := h.page.Goto(h.url); err != nil {
		return fmt.Errorf("could not navigate to %s: %w", h.url, err)
	}
	return h.waitForNetworkIdle()
}

// SearchFor types the term into the search box and submits it with Enter.
func (h *HomePage) SearchFor(term string) error {
	if err := h.searchBox.Fill(term); err != nil {
		return fmt.Errorf("could not fill search box: %w", err)
	}
	if err := h.searchBox.Press("Enter"); err != nil {
		return fmt.Errorf("could not submit search: %w", err)
	}
	return h.waitForNetworkIdle()
}

func (h *HomePage) ClickSearchButton() error {
	if err := h.searchButton.Click(); err != nil {
		return fmt.Errorf("could not click search button: %w", err)
	}
	return h.waitForNetworkIdle()
}

func (h *HomePage) IsLogoVisible() (bool, error) {
	return h.logo.IsVisible()
}

func (h *HomePage) IsSearchBoxPresent() (bool, error) {
	return h.searchBox.IsVisible()
}

func (h *HomePage) IsSearchButtonPresent() (bool, error) {
	return h.searchButton.IsVisible()
}

// AreSearchResultsVisible waits for the results container for up to the site's results timeout.
// Running out of time is an error, not a false result.
func (h *HomePage) AreSearchResultsVisible() (bool, error) {
	err := h.results.WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(float64(h.resultsTimeout.Milliseconds())),
	})
	if err != nil {
		return false, fmt.Errorf("search results did not appear within %s: %w", h.resultsTimeout, err)
	}
	return h.results.IsVisible()
}

func (h *HomePage) Title() (string, error) {
	return h.page.Title()
}

// VerifyTitleContains fails if the page title does not contain the text.
func (h *HomePage) VerifyTitleContains(text string) error {
	title, err := h.Title()
	if err != nil {
		return err
	}
	return assertContains(title, text, "page title should contain %q", text)
}

func (h *HomePage) waitForNetworkIdle() error {
	return h.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	})
}
