// Package cleaner reduces a fetched page to the content worth summarising:
// optional CSS-selector targeting, boilerplate stripping, readability
// extraction, and conversion to plain text or Markdown with a size cap.
package cleaner

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/farescout/models"
)

// boilerplateTags are elements that never carry article content.
var boilerplateTags = []string{
	"script", "style", "nav", "header", "footer",
	"aside", "noscript", "meta", "link", "iframe",
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Cleaner runs the cleaning pipeline. The Markdown converter is created once
// and reused across all requests (goroutine-safe).
type Cleaner struct {
	mdConverter *converter.Converter
}

// NewCleaner initialises the Cleaner. The converter lives for the package
// lifetime; ConvertString is safe to call from concurrent requests.
func NewCleaner() *Cleaner {
	return &Cleaner{
		mdConverter: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				// Minimal cell padding keeps table markdown narrow;
				// summariser prompts pay per token.
				table.NewTablePlugin(
					table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
				),
			),
		),
	}
}

// CleanOptions carries per-request cleaning parameters.
type CleanOptions struct {
	// Selector optionally narrows the page to matching elements before
	// anything else runs.
	Selector string

	// Format is "text" (default) or "markdown".
	Format string

	// MaxChars caps the output length. <= 0 means no cap.
	MaxChars int
}

// CleanResult is the cleaned content plus the metadata the pipeline found.
type CleanResult struct {
	Content       string
	Title         string
	TokenEstimate int
}

// Clean runs the full pipeline.
//
// Flow:
//  1. Apply the CSS selector, if given (no match falls back to the full page).
//  2. Strip boilerplate tags with goquery.
//  3. Readability extracts the main content; raw HTML is the fallback.
//  4. Convert to the requested format; plain text gets whitespace collapsed.
//  5. Cap the length and estimate tokens.
func (c *Cleaner) Clean(rawHTML string, sourceURL string, opts CleanOptions) (*CleanResult, error) {
	// ── 1. Selector targeting ───────────────────────────────────────
	if opts.Selector != "" {
		fragment, matched, err := narrowToSelector(rawHTML, opts.Selector)
		if err != nil {
			return nil, models.NewSearchError(
				models.ErrCodeInvalidInput,
				"invalid CSS selector",
				err,
			)
		}
		if matched == 0 {
			slog.Warn("cleaner: selector matched nothing, keeping full page",
				"selector", opts.Selector, "url", sourceURL)
		}
		rawHTML = fragment
	}

	// ── 2. Boilerplate strip ────────────────────────────────────────
	stripped := stripBoilerplate(rawHTML)

	// ── 3. Main-content extraction ──────────────────────────────────
	article := extractMainContent(stripped, sourceURL)

	// ── 4. Format conversion ────────────────────────────────────────
	var content string
	switch opts.Format {
	case "markdown":
		// WithDomain resolves relative links against the source page, so
		// the markdown stands on its own when handed to the model.
		md, err := c.mdConverter.ConvertString(article.Content, converter.WithDomain(sourceURL))
		if err != nil {
			return nil, models.NewSearchError(
				models.ErrCodeCleanFailed,
				"markdown conversion failed",
				err,
			)
		}
		content = strings.TrimSpace(md)
	default:
		// "text": collapse runs of whitespace the way rendered text would.
		content = strings.TrimSpace(whitespaceRe.ReplaceAllString(article.TextContent, " "))
	}

	// ── 5. Cap + token estimate ─────────────────────────────────────
	if opts.MaxChars > 0 && len(content) > opts.MaxChars {
		content = content[:opts.MaxChars]
		// Do not cut a rune in half.
		content = strings.ToValidUTF8(content, "")
	}

	return &CleanResult{
		Content:       content,
		Title:         article.Title,
		TokenEstimate: estimateTokens(content),
	}, nil
}

// stripBoilerplate removes elements that never carry content. On parse
// failure the input is returned unchanged — downstream stages have their own
// fallbacks.
func stripBoilerplate(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		slog.Warn("cleaner: HTML parse failed, skipping boilerplate strip", "error", err)
		return rawHTML
	}

	for _, tag := range boilerplateTags {
		doc.Find(tag).Remove()
	}

	result, err := doc.Html()
	if err != nil {
		return rawHTML
	}
	return result
}

// stripTags extracts visible text from an HTML fragment by parsing it with
// goquery. Returns trimmed plain text.
func stripTags(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return strings.TrimSpace(doc.Text())
}

// estimateTokens guesses how many model tokens the content will occupy,
// counting one token per three runes. Coarse, but the figure is only
// advisory: it is reported to callers and never used to cut content.
func estimateTokens(content string) int {
	runes := utf8.RuneCountInString(content)
	switch {
	case runes == 0:
		return 0
	case runes < 3:
		return 1
	default:
		return runes / 3
	}
}
