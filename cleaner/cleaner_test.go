package cleaner

import (
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Fare Watch Weekly</title><script>track()</script></head>
<body>
<nav>Home | Flights | Hotels</nav>
<article>
<h1>Fare Watch Weekly</h1>
<p>Domestic fares on the Bangalore to Delhi route fell for the third week in a row,
with morning departures now averaging under six thousand rupees.</p>
<p>Analysts attribute the drop to added capacity from two low-cost carriers and a
seasonal dip in business travel demand across the southern metros.</p>
</article>
<footer>© 2025 Fare Watch</footer>
</body>
</html>`

func TestClean_TextFormat(t *testing.T) {
	c := NewCleaner()

	result, err := c.Clean(samplePage, "https://example.com/fares", CleanOptions{Format: "text"})
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}

	if !strings.Contains(result.Content, "Bangalore to Delhi") {
		t.Errorf("article body missing from output: %q", result.Content)
	}
	if strings.Contains(result.Content, "track()") {
		t.Errorf("script content leaked into output")
	}
	if strings.Contains(result.Content, "Home | Flights") {
		t.Errorf("nav boilerplate leaked into output")
	}
	if strings.Contains(result.Content, "\n") || strings.Contains(result.Content, "  ") {
		t.Errorf("text output not whitespace-collapsed: %q", result.Content)
	}
	if result.TokenEstimate <= 0 {
		t.Errorf("token estimate = %d", result.TokenEstimate)
	}
}

func TestClean_MarkdownFormat(t *testing.T) {
	c := NewCleaner()

	result, err := c.Clean(samplePage, "https://example.com/fares", CleanOptions{Format: "markdown"})
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if !strings.Contains(result.Content, "Fare Watch Weekly") {
		t.Errorf("heading missing from markdown: %q", result.Content)
	}
}

func TestClean_MaxCharsCap(t *testing.T) {
	c := NewCleaner()

	result, err := c.Clean(samplePage, "https://example.com/fares", CleanOptions{Format: "text", MaxChars: 50})
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if len(result.Content) > 50 {
		t.Errorf("content length %d exceeds cap 50", len(result.Content))
	}
}

func TestClean_SelectorTargeting(t *testing.T) {
	c := NewCleaner()

	page := `<html><body>
<div class="sidebar"><p>Trending destinations this month include Goa and Jaipur for the festival season.</p></div>
<div class="main"><p>The airline announced a new daily non-stop service between Bangalore and Delhi starting next quarter.</p></div>
</body></html>`

	result, err := c.Clean(page, "https://example.com", CleanOptions{Selector: ".main", Format: "text"})
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if !strings.Contains(result.Content, "non-stop service") {
		t.Errorf("selected content missing: %q", result.Content)
	}
	if strings.Contains(result.Content, "Trending destinations") {
		t.Errorf("content outside selector leaked: %q", result.Content)
	}
}

func TestClean_InvalidSelector(t *testing.T) {
	c := NewCleaner()

	if _, err := c.Clean(samplePage, "https://example.com", CleanOptions{Selector: "[[["}); err == nil {
		t.Error("invalid selector accepted")
	}
}

func TestClean_ShortContentFallback(t *testing.T) {
	c := NewCleaner()

	// Too short for readability: the raw-HTML fallback must still answer.
	page := `<html><body><p>Fares dropped today.</p></body></html>`
	result, err := c.Clean(page, "https://example.com", CleanOptions{Format: "text"})
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if !strings.Contains(result.Content, "Fares dropped today.") {
		t.Errorf("fallback lost the content: %q", result.Content)
	}
}

func TestStripBoilerplate(t *testing.T) {
	in := `<html><body><script>x</script><p>keep</p><style>y</style></body></html>`
	out := stripBoilerplate(in)
	if strings.Contains(out, "<script>") || strings.Contains(out, "<style>") {
		t.Errorf("boilerplate survived: %q", out)
	}
	if !strings.Contains(out, "keep") {
		t.Errorf("content removed: %q", out)
	}
}

func TestNarrowToSelector_NoMatchKeepsPage(t *testing.T) {
	fragment, matched, err := narrowToSelector(samplePage, ".does-not-exist")
	if err != nil {
		t.Fatalf("narrowToSelector: %v", err)
	}
	if matched != 0 {
		t.Errorf("matched = %d, want 0", matched)
	}
	if fragment != samplePage {
		t.Errorf("no-match should return the page unchanged")
	}
}

func TestNarrowToSelector_ReportsMatchCount(t *testing.T) {
	page := `<html><body><p class="fare">one</p><p class="fare">two</p></body></html>`
	fragment, matched, err := narrowToSelector(page, ".fare")
	if err != nil {
		t.Fatalf("narrowToSelector: %v", err)
	}
	if matched != 2 {
		t.Errorf("matched = %d, want 2", matched)
	}
	if !strings.Contains(fragment, "one") || !strings.Contains(fragment, "two") {
		t.Errorf("fragment lost matched elements: %q", fragment)
	}
	if strings.Contains(fragment, "<body>") {
		t.Errorf("fragment kept surrounding document: %q", fragment)
	}
}

func TestEstimateTokens(t *testing.T) {
	if got := estimateTokens(""); got != 0 {
		t.Errorf("estimateTokens(empty) = %d", got)
	}
	if got := estimateTokens("ab"); got != 1 {
		t.Errorf("estimateTokens(2 chars) = %d, want 1", got)
	}
	if got := estimateTokens(strings.Repeat("a", 300)); got != 100 {
		t.Errorf("estimateTokens(300 chars) = %d, want 100", got)
	}
}
