package uitests

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/webqa/google-e2e/framework"

	"github.com/playwright-community/playwright-go"
)

const (
	defaultSlowMo  = time.Millisecond * 100
	viewportWidth  = 1920
	viewportHeight = 1080
)

var errBrowserNotInitialized = errors.New("browser is not initialized")

// LaunchOptions controls how the browser is started.
type LaunchOptions struct {
	Headless bool

	// SlowMo is a delay added to every browser interaction. Zero means the default of 100ms.
	SlowMo time.Duration
}

// Browser owns the Playwright driver and the one Chromium instance shared by every scenario in
// a run. It is launched at most once and closed at most once.
type Browser struct {
	pw        *playwright.Playwright
	browser   playwright.Browser
	launched  bool
	launchErr error
	closeOnce sync.Once
	closeErr  error
	logger    framework.Logger
	lock      sync.Mutex
}

func NewBrowser(logger framework.Logger) *Browser {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Browser{logger: framework.LoggerWithPrefix(logger, "[browser] ")}
}

// Launch starts Playwright and Chromium. Calling it again after the first attempt returns the
// result of that attempt. The error is also remembered, so that every scenario set up later
// reports why there is no browser.
func (b *Browser) Launch(opts LaunchOptions) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.launched || b.launchErr != nil {
		return b.launchErr
	}

	slowMo := opts.SlowMo
	if slowMo == 0 {
		slowMo = defaultSlowMo
	}
	b.logger.Printf("Launching Chromium (headless: %t, slowMo: %s)", opts.Headless, slowMo)

	pw, err := playwright.Run()
	if err != nil {
		b.launchErr = fmt.Errorf("could not start Playwright: %w", err)
		return b.launchErr
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		SlowMo:   playwright.Float(float64(slowMo.Milliseconds())),
	})
	if err != nil {
		_ = pw.Stop()
		b.launchErr = fmt.Errorf("could not launch Chromium: %w", err)
		return b.launchErr
	}
	b.pw = pw
	b.browser = browser
	b.launched = true
	return nil
}

// NewScenarioPage opens an isolated browsing context with one page in it. Videos of everything
// that happens in the context are saved in videoDir when the context is closed.
func (b *Browser) NewScenarioPage(videoDir string) (playwright.BrowserContext, playwright.Page, error) {
	b.lock.Lock()
	browser := b.browser
	launchErr := b.launchErr
	b.lock.Unlock()

	if browser == nil {
		if launchErr != nil {
			return nil, nil, fmt.Errorf("%w: %s", errBrowserNotInitialized, launchErr)
		}
		return nil, nil, errBrowserNotInitialized
	}

	bc, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport:    &playwright.Size{Width: viewportWidth, Height: viewportHeight},
		RecordVideo: &playwright.RecordVideo{Dir: videoDir},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("could not create browser context: %w", err)
	}
	page, err := bc.NewPage()
	if err != nil {
		_ = bc.Close()
		return nil, nil, fmt.Errorf("could not open page: %w", err)
	}
	return bc, page, nil
}

// Close shuts down the browser and the Playwright driver. Only the first call does anything.
func (b *Browser) Close() error {
	b.closeOnce.Do(func() {
		b.lock.Lock()
		defer b.lock.Unlock()
		if b.browser != nil {
			b.logger.Printf("Closing browser")
			if err := b.browser.Close(); err != nil {
				b.closeErr = fmt.Errorf("error closing browser: %w", err)
			}
			b.browser = nil
		}
		if b.pw != nil {
			if err := b.pw.Stop(); err != nil && b.closeErr == nil {
				b.closeErr = fmt.Errorf("error stopping Playwright: %w", err)
			}
			b.pw = nil
		}
		if b.launchErr == nil {
			b.launchErr = errors.New("browser was already closed")
		}
	})
	return b.closeErr
}
