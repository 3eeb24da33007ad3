package uitests

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/webqa/google-e2e/framework"

	"github.com/cucumber/godog"
	"github.com/playwright-community/playwright-go"
)

const screenshotTimeFormat = "20060102_150405"

var unsafeFileNameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// pageOpener is the part of Browser that scenario hooks need.
type pageOpener interface {
	NewScenarioPage(videoDir string) (playwright.BrowserContext, playwright.Page, error)
}

type scenarioStateKey struct{}

// scenarioState is what the hooks hand to the step definitions for one scenario. It is stored in
// the scenario's context.Context.
type scenarioState struct {
	test    *framework.Context
	context playwright.BrowserContext
	page    playwright.Page
	home    homePageActions
	ended   bool
}

func stateFrom(ctx context.Context) (*scenarioState, error) {
	state, ok := ctx.Value(scenarioStateKey{}).(*scenarioState)
	if !ok || state == nil {
		return nil, errors.New("no scenario state; the before-scenario hook did not run")
	}
	return state, nil
}

// scenarioHooks opens a browsing context for each scenario and closes it afterward, and reports
// each scenario to the test harness as a subtest of its feature.
type scenarioHooks struct {
	group         *framework.Context
	browser       pageOpener
	videoDir      string
	screenshotDir string
	features      map[string]*framework.Context
	featureOrder  []string
	current       *scenarioState
	failures      int
	now           func() time.Time
}

func newScenarioHooks(group *framework.Context, browser pageOpener, artifactsDir string) *scenarioHooks {
	return &scenarioHooks{
		group:         group,
		browser:       browser,
		videoDir:      filepath.Join(artifactsDir, "videos") + string(filepath.Separator),
		screenshotDir: filepath.Join(artifactsDir, "screenshots"),
		features:      make(map[string]*framework.Context),
		now:           time.Now,
	}
}

func (h *scenarioHooks) register(sc *godog.ScenarioContext) {
	sc.Before(h.before)
	sc.After(h.after)
}

func (h *scenarioHooks) before(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
	// Excluded scenarios are normally never given to godog; this covers a pickle whose tags differ
	// from those of its scenario, such as an outline with tagged examples.
	feature := h.featureContext(sc.Uri)
	if feature == nil {
		return ctx, godog.ErrSkip
	}
	test := feature.Begin(sc.Name, pickleCategories(sc)...)
	if test == nil {
		return ctx, godog.ErrSkip
	}

	state := &scenarioState{test: test}
	h.current = state
	ctx = context.WithValue(ctx, scenarioStateKey{}, state)

	bc, page, err := h.browser.NewScenarioPage(h.videoDir)
	if err != nil {
		h.finish(state, err)
		return ctx, err
	}
	state.context = bc
	state.page = page
	if bc != nil {
		test.Defer(func() {
			if err := bc.Close(); err != nil {
				test.Debug("error closing browser context: %s", err)
			}
		})
	}
	return ctx, nil
}

func (h *scenarioHooks) after(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
	if state, ok := ctx.Value(scenarioStateKey{}).(*scenarioState); ok && state != nil {
		h.finish(state, err)
	}
	return ctx, nil
}

// finish records the outcome of a scenario, takes a screenshot if it failed, and closes its
// browsing context. It is safe to call more than once.
func (h *scenarioHooks) finish(state *scenarioState, err error) {
	if state.ended {
		return
	}
	state.ended = true
	if h.current == state {
		h.current = nil
	}

	if err != nil && !errors.Is(err, godog.ErrSkip) {
		state.test.Errorf("%s", err)
	}
	if state.test.Failed() {
		h.failures++
		if state.page != nil {
			h.captureScreenshot(state)
		}
	}
	state.test.End()
}

// captureScreenshot is best effort: a failure here is only logged.
func (h *scenarioHooks) captureScreenshot(state *scenarioState) {
	name := screenshotFileName(state.test.ID().Path[len(state.test.ID().Path)-1], h.now())
	p := filepath.Join(h.screenshotDir, name)
	if err := os.MkdirAll(h.screenshotDir, 0o755); err != nil {
		state.test.Debug("could not create screenshot directory: %s", err)
		return
	}
	_, err := state.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(p),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		state.test.Debug("could not capture screenshot: %s", err)
		return
	}
	state.test.Debug("saved screenshot %s", p)
}

// finishCurrent finishes a scenario that godog left open.
func (h *scenarioHooks) finishCurrent() {
	if h.current != nil {
		h.finish(h.current, errors.New("scenario did not finish"))
	}
}

// closeAll finishes any scenario that godog left open, then the feature subtests.
func (h *scenarioHooks) closeAll() {
	h.finishCurrent()
	for _, uri := range h.featureOrder {
		if f := h.features[uri]; f != nil {
			f.End()
		}
	}
	h.features = make(map[string]*framework.Context)
	h.featureOrder = nil
}

// featureContext returns the subtest for a feature file, starting it on first use. It returns nil
// if the feature is excluded by the filter.
func (h *scenarioHooks) featureContext(uri string) *framework.Context {
	if f, ok := h.features[uri]; ok {
		return f
	}
	f := h.group.Begin(featureName(uri))
	h.features[uri] = f
	h.featureOrder = append(h.featureOrder, uri)
	return f
}

func pickleCategories(sc *godog.Scenario) []string {
	names := make([]string, 0, len(sc.Tags))
	for _, t := range sc.Tags {
		names = append(names, t.Name)
	}
	return scenarioCategories(names)
}

func screenshotFileName(testName string, t time.Time) string {
	safe := strings.Trim(unsafeFileNameChars.ReplaceAllString(testName, "_"), "_")
	if safe == "" {
		safe = "scenario"
	}
	return fmt.Sprintf("%s_%s.png", safe, t.Format(screenshotTimeFormat))
}
