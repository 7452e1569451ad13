// pagebrief fetches a webpage, cleans it down to its main content, and asks
// an OpenAI-compatible model for a bullet summary plus a one-line insight.
//
// Usage:
//
//	FARESCOUT_LLM_API_KEY=... pagebrief -url https://en.wikipedia.org/wiki/Artificial_intelligence
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/use-agent/farescout/cleaner"
	"github.com/use-agent/farescout/config"
	"github.com/use-agent/farescout/fetch"
	"github.com/use-agent/farescout/llm"
)

func main() {
	urlFlag := flag.String("url", "", "page to summarise (required)")
	selectorFlag := flag.String("selector", "", "optional CSS selector narrowing the page before cleaning")
	formatFlag := flag.String("format", "text", "cleaned-content format handed to the model: text or markdown")
	maxCharsFlag := flag.Int("max-chars", 0, "cap on cleaned content length (default from FARESCOUT_LLM_MAX_CHARS)")
	outFlag := flag.String("o", "", "also write the summary to this file")
	flag.Parse()

	if *urlFlag == "" {
		fmt.Fprintln(os.Stderr, "pagebrief: -url is required")
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.Load()

	// CLI output goes to stdout; keep logs terse and on stderr.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	lc := llm.NewClient(cfg.Summarizer)
	if lc == nil {
		fmt.Fprintln(os.Stderr, "pagebrief: FARESCOUT_LLM_API_KEY is required")
		os.Exit(1)
	}

	maxChars := *maxCharsFlag
	if maxChars == 0 {
		maxChars = cfg.Summarizer.MaxChars
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Summarizer.Timeout)
	defer cancel()

	body, err := fetch.New(cfg.Summarizer.Proxy).Fetch(ctx, *urlFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pagebrief: fetch failed: %v\n", err)
		os.Exit(1)
	}

	cleaned, err := cleaner.NewCleaner().Clean(string(body), *urlFlag, cleaner.CleanOptions{
		Selector: *selectorFlag,
		Format:   *formatFlag,
		MaxChars: maxChars,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "pagebrief: cleaning failed: %v\n", err)
		os.Exit(1)
	}

	summary, err := lc.Summarize(ctx, cleaned.Content)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pagebrief: summarisation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(summary)

	if *outFlag != "" {
		if err := os.WriteFile(*outFlag, []byte(summary+"\n"), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "pagebrief: write %s: %v\n", *outFlag, err)
			os.Exit(1)
		}
	}
}
