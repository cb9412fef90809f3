package helpers

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/vuori/storefront-e2e/internal/suite"
)

// BrowserHelper provides browser setup and teardown for storefront tests.
// Every helper starts from the storage state written by global setup, so
// pages are already past the automation gate.
type BrowserHelper struct {
	Playwright *playwright.Playwright
	Browser    playwright.Browser
	Context    playwright.BrowserContext
	Page       playwright.Page
	Config     *suite.Config
	t          *testing.T
}

// NewBrowserHelper creates a new browser helper instance
func NewBrowserHelper(t *testing.T) *BrowserHelper {
	return &BrowserHelper{
		Config: suite.Load(),
		t:      t,
	}
}

// Setup initializes the browser and creates a new page. Resources acquired
// before a failure are released so no driver process outlives the error.
func (b *BrowserHelper) Setup() error {
	opts, err := b.contextOptions()
	if err != nil {
		return err
	}

	var pw *playwright.Playwright
	if os.Getenv("PLAYWRIGHT_PREINSTALLED") != "1" {
		if err = playwright.Install(); err != nil {
			return fmt.Errorf("could not install playwright browsers: %w", err)
		}
	}
	pw, err = playwright.Run()
	if err != nil {
		// Fallback: attempt install driver explicitly then retry
		_ = playwright.Install()
		pw, err = playwright.Run()
		if err != nil {
			return fmt.Errorf("could not start playwright after retry: %w", err)
		}
	}
	b.Playwright = pw

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(b.Config.Headless),
		SlowMo:   playwright.Float(float64(b.Config.SlowMo.Milliseconds())),
	})
	if err != nil {
		b.TearDown()
		return fmt.Errorf("could not launch browser: %w", err)
	}
	b.Browser = browser

	context, err := browser.NewContext(opts)
	if err != nil {
		b.TearDown()
		return fmt.Errorf("could not create context: %w", err)
	}
	b.Context = context

	page, err := context.NewPage()
	if err != nil {
		b.TearDown()
		return fmt.Errorf("could not create page: %w", err)
	}
	b.Page = page

	page.SetDefaultTimeout(float64(b.Config.Timeout.Milliseconds()))

	return nil
}

// contextOptions builds the context options for a test session. The
// storage state written by global setup is mandatory: a session without it
// would run against the storefront unauthenticated, and every result after
// that is meaningless.
func (b *BrowserHelper) contextOptions() (playwright.BrowserNewContextOptions, error) {
	opts := playwright.BrowserNewContextOptions{
		BaseURL: playwright.String(b.Config.BaseURL),
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
	}
	if _, err := os.Stat(b.Config.StorageStatePath); err != nil {
		return opts, fmt.Errorf("storage state %s not found, global setup must run first: %w", b.Config.StorageStatePath, err)
	}
	opts.StorageStatePath = playwright.String(b.Config.StorageStatePath)
	if b.Config.Videos {
		opts.RecordVideo = &playwright.RecordVideo{
			Dir: filepath.Join(b.Config.ArtifactDir, "videos"),
		}
	}
	return opts, nil
}

// TearDown closes the browser and cleans up resources
func (b *BrowserHelper) TearDown() {
	// Take screenshot on failure
	if b.t.Failed() && b.Config.Screenshots && b.Page != nil {
		screenshotPath := filepath.Join(b.Config.ArtifactDir, "screenshots",
			fmt.Sprintf("%s_%d.png", b.t.Name(), time.Now().Unix()))
		b.Page.Screenshot(playwright.PageScreenshotOptions{
			Path: playwright.String(screenshotPath),
		})
	}

	if b.Page != nil {
		b.Page.Close()
	}
	if b.Context != nil {
		b.Context.Close()
	}
	if b.Browser != nil {
		b.Browser.Close()
	}
	if b.Playwright != nil {
		b.Playwright.Stop()
	}
}

// NavigateTo navigates to a path relative to the resolved base URL
func (b *BrowserHelper) NavigateTo(path string) error {
	_, err := b.Page.Goto(b.Config.BaseURL + path)
	return err
}

// WaitForIdle waits until in-flight storefront requests settle
func (b *BrowserHelper) WaitForIdle() error {
	return b.Page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	})
}
