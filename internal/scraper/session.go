package scraper

import (
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/HolyKasra/NezamPezeshki-Crawler/config"
	errs "github.com/HolyKasra/NezamPezeshki-Crawler/pkg/errors"
)

// Session is the browser surface the scraper drives. Production code runs a
// headless Chromium page; tests substitute a scripted session.
type Session interface {
	// Navigate loads the URL and waits for the page to finish loading
	Navigate(url string) error

	// HTML returns the markup of the current page state
	HTML() (string, error)

	// ClickNext clicks the element at the selector and waits for the table
	// to re-render
	ClickNext(selector string) error

	// Close releases the browser. Safe to call more than once.
	Close() error
}

// BrowserSession implements Session over a rod-controlled Chromium instance.
// One crawl owns the session exclusively; the owner must Close it on every
// exit path.
type BrowserSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	timeout  time.Duration
}

var _ Session = (*BrowserSession)(nil)

// NewBrowserSession launches a browser and opens a single blank page
func NewBrowserSession(cfg *config.Config) (*BrowserSession, error) {
	l := launcher.New().Headless(cfg.Headless)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, errs.NewSession("launch", "failed to launch browser", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, errs.NewSession("connect", "failed to connect to browser", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		browser.Close()
		l.Cleanup()
		return nil, errs.NewSession("page", "failed to open page", err)
	}

	return &BrowserSession{
		launcher: l,
		browser:  browser,
		page:     page,
		timeout:  cfg.PageLoadTimeout,
	}, nil
}

// Navigate loads the URL and blocks until the load event fires
func (s *BrowserSession) Navigate(url string) error {
	if err := s.page.Navigate(url); err != nil {
		return errs.NewNetwork("navigate", "failed to navigate to "+url, err)
	}
	if err := s.page.Timeout(s.timeout).WaitLoad(); err != nil {
		return errs.NewNetwork("navigate", "page did not finish loading: "+url, err)
	}
	return nil
}

// HTML returns the rendered markup of the current page
func (s *BrowserSession) HTML() (string, error) {
	html, err := s.page.HTML()
	if err != nil {
		return "", errs.NewSession("html", "failed to read page markup", err)
	}
	return html, nil
}

// ClickNext clicks the pagination control. The table widget swaps rows in
// place without a page load, so completion is detected by the DOM settling.
func (s *BrowserSession) ClickNext(selector string) error {
	el, err := s.page.Timeout(s.timeout).Element(selector)
	if err != nil {
		return errs.NewNavigation("paginate", "next page control not found: "+selector, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return errs.NewNavigation("paginate", "failed to click next page control", err)
	}
	if err := s.page.Timeout(s.timeout).WaitDOMStable(300*time.Millisecond, 0); err != nil {
		return errs.NewNavigation("paginate", "page did not settle after pagination", err)
	}
	return nil
}

// Close tears down the page, the browser, and the launcher process
func (s *BrowserSession) Close() error {
	if s.browser == nil {
		return nil
	}
	err := s.browser.Close()
	s.launcher.Cleanup()
	s.browser = nil
	s.page = nil
	return err
}
