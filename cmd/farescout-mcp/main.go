// farescout-mcp is an MCP stdio server exposing the farescout HTTP API as a
// tool, so agent clients can run flight searches without speaking HTTP
// themselves.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	apiURL := os.Getenv("FARESCOUT_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("FARESCOUT_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "FARESCOUT_API_KEY is required")
		os.Exit(1)
	}

	s := server.NewMCPServer(
		"farescout",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	flightSearchTool := mcp.NewTool("flight_search",
		mcp.WithDescription("Search flights for a route and date. Scrapes the booking site with a headless browser and falls back to catalog data when the site is unavailable; the response's 'source' field says which."),
		mcp.WithString("origin",
			mcp.Required(),
			mcp.Description("Departure city, e.g. Bangalore"),
		),
		mcp.WithString("destination",
			mcp.Required(),
			mcp.Description("Arrival city, e.g. Delhi"),
		),
		mcp.WithString("journey_date",
			mcp.Required(),
			mcp.Description("Journey date in YYYY-MM-DD format"),
		),
	)
	s.AddTool(flightSearchTool, handleFlightSearch(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleFlightSearch(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		origin, err := request.RequireString("origin")
		if err != nil {
			return mcp.NewToolResultError("origin is required"), nil
		}
		destination, err := request.RequireString("destination")
		if err != nil {
			return mcp.NewToolResultError("destination is required"), nil
		}
		journeyDate, err := request.RequireString("journey_date")
		if err != nil {
			return mcp.NewToolResultError("journey_date is required"), nil
		}

		params := url.Values{}
		params.Set("origin", origin)
		params.Set("destination", destination)
		params.Set("journey_date", journeyDate)

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
			apiURL+"/api/v1/flight-search?"+params.Encode(), nil)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
		}
		httpReq.Header.Set("X-API-Key", apiKey)

		resp, err := client.Do(httpReq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
		}

		// The API answers structured JSON for both hits and misses; hand it
		// to the client verbatim.
		return mcp.NewToolResultText(string(body)), nil
	}
}
