package uitests

import (
	"context"
	"errors"

	"github.com/cucumber/godog"
	"github.com/playwright-community/playwright-go"
)

// homePageActions is what the step definitions do with a HomePage.
type homePageActions interface {
	Navigate() error
	SearchFor(term string) error
	ClickSearchButton() error
	IsLogoVisible() (bool, error)
	IsSearchBoxPresent() (bool, error)
	IsSearchButtonPresent() (bool, error)
	AreSearchResultsVisible() (bool, error)
	VerifyTitleContains(text string) error
}

type homePageFactory func(page playwright.Page) homePageActions

type searchSteps struct {
	newHomePage homePageFactory
}

func registerSteps(sc *godog.ScenarioContext, newHomePage homePageFactory) {
	s := &searchSteps{newHomePage: newHomePage}

	sc.Step(`^I navigate to Google homepage$`, s.iNavigateToGoogleHomepage)
	sc.Step(`^I search for "([^"]*)"$`, s.iSearchFor)
	sc.Step(`^I click the search button$`, s.iClickTheSearchButton)
	sc.Step(`^I should see search results$`, s.iShouldSeeSearchResults)
	sc.Step(`^the page title should contain "([^"]*)"$`, s.thePageTitleShouldContain)
	sc.Step(`^the Google logo should be visible$`, s.theGoogleLogoShouldBeVisible)
	sc.Step(`^the search box should be present$`, s.theSearchBoxShouldBePresent)
	sc.Step(`^the search button should be present$`, s.theSearchButtonShouldBePresent)
}

func (s *searchSteps) iNavigateToGoogleHomepage(ctx context.Context) error {
	state, err := stateFrom(ctx)
	if err != nil {
		return err
	}
	state.home = s.newHomePage(state.page)
	return state.home.Navigate()
}

func (s *searchSteps) iSearchFor(ctx context.Context, term string) error {
	home, err := homePageFrom(ctx)
	if err != nil {
		return err
	}
	return home.SearchFor(term)
}

func (s *searchSteps) iClickTheSearchButton(ctx context.Context) error {
	home, err := homePageFrom(ctx)
	if err != nil {
		return err
	}
	return home.ClickSearchButton()
}

func (s *searchSteps) iShouldSeeSearchResults(ctx context.Context) error {
	return requireVisible(ctx, homePageActions.AreSearchResultsVisible, "search results should be visible")
}

func (s *searchSteps) thePageTitleShouldContain(ctx context.Context, text string) error {
	home, err := homePageFrom(ctx)
	if err != nil {
		return err
	}
	return home.VerifyTitleContains(text)
}

func (s *searchSteps) theGoogleLogoShouldBeVisible(ctx context.Context) error {
	return requireVisible(ctx, homePageActions.IsLogoVisible, "Google logo should be visible")
}

func (s *searchSteps) theSearchBoxShouldBePresent(ctx context.Context) error {
	return requireVisible(ctx, homePageActions.IsSearchBoxPresent, "search box should be present")
}

func (s *searchSteps) theSearchButtonShouldBePresent(ctx context.Context) error {
	return requireVisible(ctx, homePageActions.IsSearchButtonPresent, "search button should be present")
}

func requireVisible(ctx context.Context, query func(homePageActions) (bool, error), message string) error {
	home, err := homePageFrom(ctx)
	if err != nil {
		return err
	}
	visible, err := query(home)
	if err != nil {
		return err
	}
	return assertTrue(visible, message)
}

func homePageFrom(ctx context.Context) (homePageActions, error) {
	state, err := stateFrom(ctx)
	if err != nil {
		return nil, err
	}
	if state.home == nil {
		return nil, errors.New(`no page object yet; scenarios must start with "I navigate to Google homepage"`)
	}
	return state.home, nil
}
