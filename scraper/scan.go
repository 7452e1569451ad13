package scraper

import (
	"log/slog"

	"github.com/go-rod/rod"
)

// candidateSelectors is the ordered chain of element-selection strategies.
// The first strategy that yields any element wins; later ones are never
// tried. Order matters: the broad class-substring matches come first because
// the booking site renders listings with generated class names.
var candidateSelectors = []string{
	`div[class*='flight']`,
	`div[class*='result']`,
	`.flight-card`,
	`.result-item`,
	`[data-testid*='flight']`,
}

// maxCandidates caps how many elements of the winning strategy are read.
const maxCandidates = 15

// selectorQuery returns the visible texts of every element matching one
// selector. The live implementation queries the rod page; tests fake it.
type selectorQuery func(selector string) ([]string, error)

// scanCandidates runs the strategy chain against a rendered page.
func scanCandidates(page *rod.Page) []string {
	return scanWith(func(selector string) ([]string, error) {
		elements, err := page.Elements(selector)
		if err != nil {
			return nil, err
		}
		texts := make([]string, 0, len(elements))
		for _, el := range elements {
			text, textErr := el.Text()
			if textErr != nil {
				slog.Debug("candidate scan: element text failed", "error", textErr)
				continue
			}
			texts = append(texts, text)
		}
		return texts, nil
	})
}

// scanWith evaluates the selector strategies in priority order and returns
// the texts of the first strategy matching at least one element, capped at
// maxCandidates. It performs no text analysis — that is the extractors' job.
//
// A strategy that errors is skipped, not fatal; a page where no strategy
// matches returns nil.
func scanWith(query selectorQuery) []string {
	for _, selector := range candidateSelectors {
		texts, err := query(selector)
		if err != nil {
			slog.Debug("candidate scan: selector failed", "selector", selector, "error", err)
			continue
		}
		if len(texts) == 0 {
			continue
		}

		slog.Info("candidate scan: strategy matched",
			"selector", selector,
			"elements", len(texts),
		)

		if len(texts) > maxCandidates {
			texts = texts[:maxCandidates]
		}
		return texts
	}
	return nil
}
