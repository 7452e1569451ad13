package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/farescout/models"
)

// apiKeyContextKey is where Auth stores the caller's key so later middleware
// can identify the caller (the rate limiter buckets per key).
const apiKeyContextKey = "api_key"

// Auth guards the search and summarise endpoints with static API keys.
// Callers present a key as either
//
//	X-API-Key: <key>
//	Authorization: Bearer <key>
//
// With no keys configured the guard disables itself; that is the
// local-development mode.
func Auth(apiKeys []string) gin.HandlerFunc {
	valid := make(map[string]bool, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			valid[k] = true
		}
	}
	if len(valid) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := requestAPIKey(c)
		switch {
		case key == "":
			abortUnauthorized(c, "API key required: send X-API-Key or a Bearer token")
		case !valid[key]:
			abortUnauthorized(c, "API key not recognised")
		default:
			c.Set(apiKeyContextKey, key)
			c.Next()
		}
	}
}

// requestAPIKey reads the caller's key, preferring X-API-Key over the
// Authorization header.
func requestAPIKey(c *gin.Context) string {
	if k := c.GetHeader("X-API-Key"); k != "" {
		return k
	}
	const bearer = "Bearer "
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, bearer) {
		return strings.TrimSpace(auth[len(bearer):])
	}
	return ""
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.SearchResponse{
		Success: false,
		Error: &models.ErrorDetail{
			Code:    models.ErrCodeUnauthorized,
			Message: msg,
		},
	})
}
