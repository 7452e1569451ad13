package scraper

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/use-agent/farescout/catalog"
	"github.com/use-agent/farescout/extract"
	"github.com/use-agent/farescout/models"
	"github.com/ysmood/gson"
)

// scanFunc produces the candidate element texts for one search. The live
// implementation drives the browser; tests substitute canned texts.
type scanFunc func(ctx context.Context) ([]string, error)

// Search runs one flight search end to end.
//
// State machine: Scanning → Extracting → Accepted | Fallback.
// Any engine failure (navigation, selector, interaction, timeout) is caught
// here and treated the same as an empty scan: the search falls back to the
// mock catalog rather than surfacing an error. The caller always gets a
// result — possibly with zero records when the route has no catalog entry.
func (s *Scraper) Search(ctx context.Context, q models.SearchQuery) models.SearchResult {
	return runSearch(ctx, q, func(ctx context.Context) ([]string, error) {
		return s.scrapeCandidates(ctx, q)
	})
}

// runSearch is the engine-independent half of Search: scan, extract, decide.
func runSearch(ctx context.Context, q models.SearchQuery, scan scanFunc) models.SearchResult {
	// ── Scanning ────────────────────────────────────────────────────
	texts, err := scan(ctx)
	if err != nil {
		slog.Warn("live scrape failed, using mock catalog",
			"origin", q.Origin,
			"destination", q.Destination,
			"error", err,
		)
		texts = nil
	}

	// ── Extracting ──────────────────────────────────────────────────
	// One timestamp for the whole batch: records of a single search must
	// carry identical capture times.
	records := extract.Records(texts, q.Origin, q.Destination, time.Now())

	// ── Accepted ────────────────────────────────────────────────────
	if len(records) > 0 {
		slog.Info("search accepted live records",
			"origin", q.Origin,
			"destination", q.Destination,
			"candidates", len(texts),
			"retained", len(records),
		)
		return models.SearchResult{Source: models.SourceLive, Records: records}
	}

	// ── Fallback ────────────────────────────────────────────────────
	if err == nil {
		slog.Warn("no usable flight candidates, using mock catalog",
			"origin", q.Origin,
			"destination", q.Destination,
			"candidates", len(texts),
		)
	}
	return models.SearchResult{
		Source:  models.SourceMock,
		Records: catalog.Lookup(q.Origin, q.Destination, time.Now()),
	}
}

// scrapeCandidates owns the page for one search: navigate, fill the form,
// trigger the search, wait for results, scan.
//
// Lifecycle:
//
//  1. Timeout guard   – hard deadline on the entire search
//  2. Open page       – a fresh tab per search, never shared
//  3. DEFER: close    – page released on every exit path
//  4. Stealth + headers – must be installed before navigation
//  5. Navigate + load wait
//  6. Fill form, click search
//  7. DOM-stable wait + settle pause
//  8. Scan candidates
func (s *Scraper) scrapeCandidates(ctx context.Context, q models.SearchQuery) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.searchCfg.Timeout)
	defer cancel()

	s.activeSearches.Add(1)
	defer s.activeSearches.Add(-1)

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, models.NewSearchError(
			models.ErrCodeBrowserCrash,
			"failed to open search page",
			err,
		)
	}
	defer func() {
		if closeErr := page.Close(); closeErr != nil {
			slog.Warn("cleanup: failed to close search page", "error", closeErr)
		}
	}()

	if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
		slog.Warn("stealth injection failed, proceeding without stealth", "error", evalErr)
	}

	// A plausible Referer makes the first navigation look organic.
	_ = proto.NetworkSetExtraHTTPHeaders{
		Headers: toHeadersMap(map[string]string{
			"Referer": "https://www.google.com/",
		}),
	}.Call(page)

	p := page.Context(ctx)

	slog.Info("opening booking site", "url", s.searchCfg.URL)
	if navErr := p.Navigate(s.searchCfg.URL); navErr != nil {
		return nil, categorizeError(navErr, "navigation to booking site failed")
	}
	if loadErr := p.WaitLoad(); loadErr != nil {
		return nil, categorizeError(loadErr, "booking site did not finish loading")
	}
	if pauseErr := pause(ctx, s.searchCfg.FormDelay); pauseErr != nil {
		return nil, categorizeError(pauseErr, "search aborted before form fill")
	}

	slog.Info("filling search form",
		"origin", q.Origin,
		"destination", q.Destination,
		"journeyDate", q.JourneyDate,
	)
	if fillErr := fillSearchForm(p, q); fillErr != nil {
		return nil, fillErr
	}
	if clickErr := clickSearchButton(p); clickErr != nil {
		return nil, clickErr
	}

	// Results arrive asynchronously. Wait for the DOM to stop mutating,
	// then give late listings a short fixed settle window.
	if stableErr := p.WaitDOMStable(300*time.Millisecond, 0.1); stableErr != nil {
		slog.Debug("WaitDOMStable did not converge, scanning current DOM", "error", stableErr)
	}
	if pauseErr := pause(ctx, s.searchCfg.SettleDelay); pauseErr != nil {
		return nil, categorizeError(pauseErr, "search aborted before results settled")
	}

	return scanCandidates(p), nil
}

// fillSearchForm types origin and destination into the first two text inputs
// and the journey date into the first date input. Missing inputs are not an
// error — the page may lay the form out differently and the scan phase will
// simply find nothing.
func fillSearchForm(p *rod.Page, q models.SearchQuery) error {
	inputs, err := p.Elements(`input[type="text"]`)
	if err != nil {
		return categorizeError(err, "failed to locate search form inputs")
	}
	if len(inputs) > 0 {
		if inputErr := inputs[0].Input(q.Origin); inputErr != nil {
			return categorizeError(inputErr, "failed to fill origin input")
		}
	}
	if len(inputs) > 1 {
		if inputErr := inputs[1].Input(q.Destination); inputErr != nil {
			return categorizeError(inputErr, "failed to fill destination input")
		}
	}

	dates, err := p.Elements(`input[type="date"]`)
	if err != nil {
		return categorizeError(err, "failed to locate date input")
	}
	if len(dates) > 0 {
		if inputErr := dates[0].Input(q.JourneyDate); inputErr != nil {
			return categorizeError(inputErr, "failed to fill journey date")
		}
	}
	return nil
}

// clickSearchButton clicks the first button whose visible label contains
// "search" (case-insensitive). A page without such a button is tolerated;
// some layouts submit the form from the date picker.
func clickSearchButton(p *rod.Page) error {
	buttons, err := p.Elements("button")
	if err != nil {
		return categorizeError(err, "failed to enumerate buttons")
	}
	for _, btn := range buttons {
		label, textErr := btn.Text()
		if textErr != nil {
			continue
		}
		if strings.Contains(strings.ToLower(label), "search") {
			if clickErr := btn.Click(proto.InputMouseButtonLeft, 1); clickErr != nil {
				return categorizeError(clickErr, "failed to click search button")
			}
			return nil
		}
	}
	slog.Warn("no search button found on booking site")
	return nil
}

// pause sleeps for d or until the context expires.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}

// categorizeError wraps raw engine errors into typed SearchErrors. The
// orchestrator swallows them all the same way, but the codes keep logs
// and tests precise.
func categorizeError(err error, msg string) *models.SearchError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewSearchError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewSearchError(models.ErrCodeTimeout, "search canceled", err)
	default:
		return models.NewSearchError(models.ErrCodeNavigation, msg, err)
	}
}
