// Package scraper drives a headless browser against the booking site and
// turns result listings into FlightRecords, falling back to the static
// catalog when the live page yields nothing usable.
package scraper

import (
	"log/slog"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/use-agent/farescout/config"
	"github.com/use-agent/farescout/models"
)

// Scraper manages the global browser lifecycle. Each search borrows its own
// page (tab) and closes it before returning, so it is safe for concurrent use.
type Scraper struct {
	browser        *rod.Browser
	browserCfg     config.BrowserConfig
	searchCfg      config.SearchConfig
	activeSearches atomic.Int32
}

// NewScraper launches a headless browser and connects to it.
func NewScraper(browserCfg config.BrowserConfig, searchCfg config.SearchConfig) (*Scraper, error) {
	l := launcher.New().
		Headless(browserCfg.Headless).
		NoSandbox(browserCfg.NoSandbox)

	if browserCfg.BrowserBin != "" {
		l = l.Bin(browserCfg.BrowserBin)
	}
	if browserCfg.Proxy != "" {
		l = l.Proxy(browserCfg.Proxy)
	}

	// ── Stealth flags ────────────────────────────────────────────────
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewSearchError(
			models.ErrCodeBrowserCrash,
			"failed to launch browser",
			err,
		)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, models.NewSearchError(
			models.ErrCodeBrowserCrash,
			"failed to connect to browser",
			err,
		)
	}

	return &Scraper{
		browser:    browser,
		browserCfg: browserCfg,
		searchCfg:  searchCfg,
	}, nil
}

// Stats returns a snapshot of the scraper's current load.
func (s *Scraper) Stats() models.SearchStats {
	return models.SearchStats{
		MaxConcurrent:  s.searchCfg.MaxConcurrent,
		ActiveSearches: int(s.activeSearches.Load()),
	}
}

// Close kills the browser process. Call this on graceful shutdown to prevent
// zombie Chrome processes.
func (s *Scraper) Close() {
	slog.Info("scraper shutting down: closing browser")
	s.browser.MustClose()
	slog.Info("scraper shutdown complete")
}
