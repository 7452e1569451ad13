package models

// Sentinel marks a field the extractors could not recover from page text.
const Sentinel = "N/A"

// Data sources for a search result.
const (
	SourceLive = "live" // scraped from the booking site
	SourceMock = "mock" // served from the static catalog fallback
)

// FlightRecord is one flight listing, either scraped or from the mock catalog.
// Field values other than origin/destination/searchdatetime may be the "N/A"
// sentinel when the page text did not yield them.
type FlightRecord struct {
	Airline      string `json:"airline"`
	FlightNumber string `json:"flight_number"`
	Departure    string `json:"departure"`
	Arrival      string `json:"arrival"`
	Price        string `json:"price"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`

	// SearchDatetime is the UTC capture time, ISO-8601 with a trailing Z.
	// All records of one search share the same value.
	SearchDatetime string `json:"searchdatetime"`
}

// SearchQuery is the input for one flight search.
// Bound from query parameters on GET /api/v1/flight-search.
type SearchQuery struct {
	Origin      string `form:"origin" binding:"required"`
	Destination string `form:"destination" binding:"required"`
	JourneyDate string `form:"journey_date" binding:"required,datetime=2006-01-02"`
}

// SearchResult is the outcome of one search. Source tells callers whether the
// records came from a live scrape or the mock catalog, so degraded answers
// stay distinguishable from genuine ones.
type SearchResult struct {
	Source  string
	Records []FlightRecord
}

// SearchResponse is the response for GET /api/v1/flight-search.
type SearchResponse struct {
	Success bool `json:"success"`

	// Source is "live" or "mock" (see SearchResult).
	Source string `json:"source,omitempty"`

	Count   int            `json:"count"`
	Flights []FlightRecord `json:"flights,omitempty"`

	// CacheStatus is "hit" or "miss" when caching is enabled, else empty.
	CacheStatus string `json:"cache_status,omitempty"`

	Timing TimingInfo `json:"timing"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// TimingInfo breaks down the time spent serving a request.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// ScrapeMs is the time spent in the scraping core (zero on cache hits).
	ScrapeMs int64 `json:"scrape_ms,omitempty"`
}

// SearchStats reports the scraper's current load for the health endpoint.
type SearchStats struct {
	MaxConcurrent  int `json:"max_concurrent"`
	ActiveSearches int `json:"active_searches"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string      `json:"status"` // "healthy" or "degraded"
	Uptime  string      `json:"uptime"`
	Stats   SearchStats `json:"stats"`
	Version string      `json:"version"`
}
