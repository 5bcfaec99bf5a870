package checker

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/playwright-community/playwright-go"

	"carneiros_checker/config"
)

// SessionDriver owns the Playwright runtime and opens one throwaway
// browser per listing check. Sessions share nothing: no cookies, cache
// or storage carry over between listings, so the target site cannot
// adapt to prior requests.
type SessionDriver struct {
	cfg *config.CheckerConfig

	mu sync.Mutex
	pw *playwright.Playwright
}

func NewSessionDriver(cfg *config.CheckerConfig) *SessionDriver {
	return &SessionDriver{cfg: cfg}
}

// Ready starts the Playwright runtime if needed. Used by the periodic
// healthcheck and implicitly by the first capture.
func (d *SessionDriver) Ready() error {
	_, err := d.runtime()
	return err
}

func (d *SessionDriver) runtime() (*playwright.Playwright, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pw != nil {
		return d.pw, nil
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}
	d.pw = pw
	return pw, nil
}

// Stop shuts the Playwright runtime down. Further captures fail.
func (d *SessionDriver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pw != nil {
		if err := d.pw.Stop(); err != nil {
			log.Printf("Warning: playwright stop failed: %v", err)
		}
		d.pw = nil
	}
}

// CapturePage navigates an isolated session to pageURL with the traffic
// filter installed, waits the fixed settle interval for the client-side
// render and returns the rendered document. The session is torn down on
// every exit path; a leaked browser is a real OS process.
func (d *SessionDriver) CapturePage(pageURL string) (string, error) {
	pw, err := d.runtime()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNavigation, err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(d.cfg.Headless),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: launch browser: %v", ErrNavigation, err)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			log.Printf("Warning: browser teardown failed: %v", err)
		}
	}()

	bctx, err := browser.NewContext()
	if err != nil {
		return "", fmt.Errorf("%w: new context: %v", ErrNavigation, err)
	}

	err = bctx.Route("**/*", func(route playwright.Route) {
		if ShouldAllow(route.Request().URL()) {
			route.Continue()
		} else {
			route.Abort()
		}
	})
	if err != nil {
		return "", fmt.Errorf("%w: install route filter: %v", ErrNavigation, err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		return "", fmt.Errorf("%w: new page: %v", ErrNavigation, err)
	}

	if _, err := page.Goto(pageURL, playwright.PageGotoOptions{
		Timeout: playwright.Float(float64(d.cfg.NavTimeout.Milliseconds())),
	}); err != nil {
		return "", classify(err)
	}

	// The booking page is a SPA; the initial HTML is not representative.
	page.WaitForTimeout(float64(d.cfg.SettleDelay.Milliseconds()))

	content, err := page.Content()
	if err != nil {
		return "", classify(err)
	}

	return content, nil
}

// classify splits driver errors into the two failure classes the batch
// loop distinguishes.
func classify(err error) error {
	if strings.Contains(err.Error(), "Timeout") {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrNavigation, err)
}
