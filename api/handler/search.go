package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/farescout/cache"
	"github.com/use-agent/farescout/models"
)

// Core is the search engine the handlers talk to. *scraper.Scraper satisfies
// it; tests substitute a stub so no browser is needed.
type Core interface {
	Search(ctx context.Context, q models.SearchQuery) models.SearchResult
	Stats() models.SearchStats
}

// FlightSearch returns a handler for GET /api/v1/flight-search.
//
// Flow:
//  1. Bind & validate query params (journey_date must be YYYY-MM-DD).
//  2. Cache lookup keyed by (origin, destination, journey_date).
//  3. Core.Search — never errors; empty record list means no flights.
//  4. Empty ⇒ 404 NO_FLIGHTS_FOUND; otherwise 200 with the record list.
//  5. Live-sourced responses are cached; mock fallbacks are not, so a
//     recovering site is retried on the next request.
func FlightSearch(core Core, cc *cache.Cache, cacheTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		// ── 1. Bind query ───────────────────────────────────────────
		var q models.SearchQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, models.SearchResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		// ── 2. Cache lookup ─────────────────────────────────────────
		key := cache.Key(q.Origin, q.Destination, q.JourneyDate)
		if cc != nil {
			if cached, hit := cc.Get(key, cacheTTL); hit {
				resp := *cached
				resp.CacheStatus = "hit"
				resp.Timing = models.TimingInfo{
					TotalMs: time.Since(totalStart).Milliseconds(),
				}
				c.JSON(http.StatusOK, &resp)
				return
			}
		}

		// ── 3. Search ───────────────────────────────────────────────
		scrapeStart := time.Now()
		result := core.Search(c.Request.Context(), q)
		scrapeMs := time.Since(scrapeStart).Milliseconds()

		timing := models.TimingInfo{
			TotalMs:  time.Since(totalStart).Milliseconds(),
			ScrapeMs: scrapeMs,
		}

		// ── 4. Empty ⇒ not found ────────────────────────────────────
		if len(result.Records) == 0 {
			c.JSON(http.StatusNotFound, models.SearchResponse{
				Success: false,
				Source:  result.Source,
				Timing:  timing,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeNoFlights,
					Message: "no flights found for this route",
				},
			})
			return
		}

		resp := &models.SearchResponse{
			Success: true,
			Source:  result.Source,
			Count:   len(result.Records),
			Flights: result.Records,
			Timing:  timing,
		}

		// ── 5. Cache store (live data only) ─────────────────────────
		// A snapshot goes into the cache: concurrent requests for the
		// same key read the stored struct, so it must never alias the
		// response this goroutine is still writing.
		if cc != nil && cacheTTL > 0 && result.Source == models.SourceLive {
			resp.CacheStatus = "miss"
			snapshot := *resp
			cc.Set(key, &snapshot)
		}

		c.JSON(http.StatusOK, resp)
	}
}
