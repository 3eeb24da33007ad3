package uitests

import (
	"embed"
	"io"
	"os"

	"github.com/webqa/google-e2e/framework"
	"github.com/webqa/google-e2e/target"

	"github.com/cucumber/godog"
	"github.com/playwright-community/playwright-go"
)

// GroupName is the first element of the ID of every test in this group.
const GroupName = "ui"

const defaultFormat = "progress"

//go:embed features/*.feature
var features embed.FS

// Config holds everything the UI group needs to run.
type Config struct {
	Site   target.Site
	Launch LaunchOptions

	// ArtifactsDir is the parent of the videos and screenshots directories.
	ArtifactsDir string

	// Format is the godog output format; the default is "progress".
	Format string

	// Output receives godog's output. It defaults to os.Stdout.
	Output io.Writer

	// Logger receives debug messages about the browser lifecycle.
	Logger framework.Logger
}

// RunTestSuite runs every embedded feature in a real browser. The browser is launched before the
// first scenario, and only if at least one scenario is selected. It is closed after the last.
func RunTestSuite(
	cfg Config,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	browser := NewBrowser(cfg.Logger)
	defer func() {
		if err := browser.Close(); err != nil && cfg.Logger != nil {
			cfg.Logger.Printf("%s", err)
		}
	}()

	newHomePage := func(page playwright.Page) homePageActions {
		return NewHomePage(page, cfg.Site)
	}
	launch := func() {
		if err := browser.Launch(cfg.Launch); err != nil && cfg.Logger != nil {
			cfg.Logger.Printf("Browser launch failed: %s", err)
		}
	}

	return framework.Run(filter, testLogger, func(c *framework.Context) {
		c.Run(GroupName, func(c *framework.Context) {
			opts := godog.Options{
				Format: cfg.Format,
				Output: cfg.Output,
				FS:     features,
				Paths:  []string{"features"},
			}
			runScenarios(c, opts, browser, newHomePage, launch, cfg.ArtifactsDir)
		})
	})
}

// runScenarios runs the selected scenarios of the feature files under opts.Paths in opts.FS,
// reporting each one as a subtest of the group context. Scenarios excluded by the filter are
// recorded as skipped without being given to godog. start is called once before the first
// scenario runs.
func runScenarios(
	group *framework.Context,
	opts godog.Options,
	browser pageOpener,
	newHomePage homePageFactory,
	start func(),
	artifactsDir string,
) {
	if opts.Format == "" {
		opts.Format = defaultFormat
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	opts.Strict = true
	opts.Concurrency = 1

	all, err := loadFeatures(opts.FS, opts.Paths)
	if err != nil {
		group.Errorf("could not read features: %s", err)
		return
	}

	hooks := newScenarioHooks(group, browser, artifactsDir)
	defer hooks.closeAll()

	selected := make(map[string][]int64)
	for _, f := range all {
		feature := hooks.featureContext(f.uri)
		if feature == nil {
			continue
		}
		for _, sc := range f.scenarios {
			if feature.Selects(sc.name, sc.categories...) {
				selected[f.uri] = append(selected[f.uri], sc.line)
			} else {
				_ = feature.Begin(sc.name, sc.categories...) // records the skip
			}
		}
	}

	runs := planRuns(selected, all)
	if len(runs) > 0 && start != nil {
		start()
	}
	for _, run := range runs {
		runOpts := opts
		runOpts.Paths = run.paths
		suite := godog.TestSuite{
			Name: "google-e2e",
			ScenarioInitializer: func(sc *godog.ScenarioContext) {
				hooks.register(sc)
				registerSteps(sc, newHomePage)
			},
			Options: &runOpts,
		}
		failuresBefore := hooks.failures
		status := suite.Run()
		hooks.finishCurrent()

		if status != 0 && hooks.failures == failuresBefore {
			group.Errorf("godog exited with status %d for %v", status, run.paths)
		}
	}
}
