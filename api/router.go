package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/farescout/api/handler"
	"github.com/use-agent/farescout/api/middleware"
	"github.com/use-agent/farescout/cache"
	"github.com/use-agent/farescout/cleaner"
	"github.com/use-agent/farescout/config"
	"github.com/use-agent/farescout/fetch"
	"github.com/use-agent/farescout/llm"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(core handler.Core, f *fetch.Fetcher, cl *cleaner.Cleaner, lc *llm.Client, cfg *config.Config, cc *cache.Cache, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(core, startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Flight search
	protected.GET("/flight-search", handler.FlightSearch(core, cc, cfg.Cache.TTL))

	// Webpage summarisation
	protected.POST("/summarize", handler.Summarize(f, cl, lc, cfg.Summarizer.MaxChars))

	return r
}
