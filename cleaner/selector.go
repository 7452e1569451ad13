package cleaner

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// narrowToSelector reduces a fetched page to the elements matching a
// caller-supplied CSS selector, so summarisation can focus on the article
// body of a known site (say "#mw-content-text" on Wikipedia) instead of the
// whole document.
//
// It returns the matched elements rendered back to HTML plus the match
// count. Zero matches is not an error: the page is returned whole, because
// summarising the full document beats summarising nothing, and the caller
// can log the miss.
func narrowToSelector(rawHTML, selector string) (string, int, error) {
	sel, err := cascadia.Parse(selector)
	if err != nil {
		return "", 0, fmt.Errorf("parse selector %q: %w", selector, err)
	}

	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", 0, fmt.Errorf("parse page: %w", err)
	}

	nodes := cascadia.QueryAll(root, sel)
	if len(nodes) == 0 {
		return rawHTML, 0, nil
	}

	var b strings.Builder
	for _, node := range nodes {
		if err := html.Render(&b, node); err != nil {
			return "", 0, fmt.Errorf("render selected fragment: %w", err)
		}
	}
	return b.String(), len(nodes), nil
}
