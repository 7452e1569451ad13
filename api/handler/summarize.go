package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/farescout/cleaner"
	"github.com/use-agent/farescout/fetch"
	"github.com/use-agent/farescout/llm"
	"github.com/use-agent/farescout/models"
)

// Summarize returns a handler for POST /api/v1/summarize.
//
// Orchestration flow:
//  1. Parse & validate request, apply defaults.
//  2. Fetcher.Fetch    → raw page HTML
//  3. Cleaner.Clean    → boilerplate-free text/markdown, capped
//  4. Client.Summarize → bullet summary + insight
//
// If no LLM client is configured the endpoint answers 503.
func Summarize(f *fetch.Fetcher, cl *cleaner.Cleaner, lc *llm.Client, maxChars int) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		var req models.SummarizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.SummarizeResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		// The configured cap fills an omitted max_chars before Defaults
		// falls back to its built-in value; a request-supplied cap wins.
		if req.MaxChars == 0 && maxChars > 0 {
			req.MaxChars = maxChars
		}
		req.Defaults()

		if lc == nil {
			c.JSON(http.StatusServiceUnavailable, models.SummarizeResponse{
				Success:   false,
				SourceURL: req.URL,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeLLMDisabled,
					Message: "summariser not configured: set FARESCOUT_LLM_API_KEY",
				},
			})
			return
		}

		ctx := c.Request.Context()

		body, err := f.Fetch(ctx, req.URL)
		if err != nil {
			respondSummarizeError(c, req.URL, models.NewSearchError(
				models.ErrCodeFetchFailed, "failed to fetch page", err,
			), totalStart)
			return
		}

		cleaned, err := cl.Clean(string(body), req.URL, cleaner.CleanOptions{
			Selector: req.Selector,
			Format:   req.Format,
			MaxChars: req.MaxChars,
		})
		if err != nil {
			respondSummarizeError(c, req.URL, models.NewSearchError(
				models.ErrCodeCleanFailed, "failed to clean page content", err,
			), totalStart)
			return
		}

		summary, err := lc.Summarize(ctx, cleaned.Content)
		if err != nil {
			respondSummarizeError(c, req.URL, err, totalStart)
			return
		}

		c.JSON(http.StatusOK, models.SummarizeResponse{
			Success:       true,
			Summary:       summary,
			Title:         cleaned.Title,
			SourceURL:     req.URL,
			ContentTokens: cleaned.TokenEstimate,
			Timing: models.TimingInfo{
				TotalMs: time.Since(totalStart).Milliseconds(),
			},
		})
	}
}

// respondSummarizeError maps a SearchError to the correct HTTP status and
// writes a structured JSON error response.
func respondSummarizeError(c *gin.Context, sourceURL string, err error, totalStart time.Time) {
	searchErr, ok := err.(*models.SearchError)
	if !ok {
		searchErr = models.NewSearchError(models.ErrCodeInternal, err.Error(), err)
	}

	var status int
	switch searchErr.Code {
	case models.ErrCodeFetchFailed:
		status = http.StatusBadGateway
	case models.ErrCodeLLMAuthFailure:
		status = http.StatusBadGateway
	case models.ErrCodeLLMRateLimited:
		status = http.StatusTooManyRequests
	case models.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}

	c.JSON(status, models.SummarizeResponse{
		Success:   false,
		SourceURL: sourceURL,
		Error:     searchErr.ToDetail(),
		Timing: models.TimingInfo{
			TotalMs: time.Since(totalStart).Milliseconds(),
		},
	})
}
