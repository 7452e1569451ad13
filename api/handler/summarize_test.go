package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/farescout/cleaner"
	"github.com/use-agent/farescout/config"
	"github.com/use-agent/farescout/fetch"
	"github.com/use-agent/farescout/llm"
	"github.com/use-agent/farescout/models"
)

// newPageServer serves an article long enough that any cap under test
// actually truncates.
func newPageServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><head><title>Fare Watch</title></head><body><article><p>",
			strings.Repeat("Domestic fares on the Bangalore to Delhi route fell again this week. ", 60),
			"</p></article></body></html>")
	}))
	t.Cleanup(srv.Close)
	return srv
}

// newLLMServer answers any chat-completions call with a canned summary.
func newLLMServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"Summary:\n• fares fell\n\nInsight:\ncapacity is up"}}]}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newSummarizeRouter(t *testing.T, llmURL string, configuredMaxChars int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	lc := llm.NewClient(config.SummarizerConfig{
		APIKey:  "test-key",
		BaseURL: llmURL,
		Model:   "test-model",
	})
	if lc == nil {
		t.Fatal("llm client not constructed")
	}

	r := gin.New()
	r.POST("/api/v1/summarize", Summarize(fetch.New(""), cleaner.NewCleaner(), lc, configuredMaxChars))
	return r
}

func doSummarize(t *testing.T, r *gin.Engine, body string) (*httptest.ResponseRecorder, models.SummarizeResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/summarize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var resp models.SummarizeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v\nbody: %s", err, w.Body.String())
	}
	return w, resp
}

func TestSummarize_ConfiguredCapApplies(t *testing.T) {
	page := newPageServer(t)
	llmSrv := newLLMServer(t)

	// Configured cap 150 chars; the article is thousands. Content handed to
	// the model must be truncated to the configured value, not the built-in
	// request default.
	r := newSummarizeRouter(t, llmSrv.URL, 150)

	w, resp := doSummarize(t, r, fmt.Sprintf(`{"url":%q}`, page.URL))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", w.Code, w.Body.String())
	}
	if !resp.Success || resp.Summary == "" {
		t.Errorf("response = %+v", resp)
	}

	// 150 chars ⇒ at most 50 estimated tokens. The uncapped article would
	// report hundreds.
	if resp.ContentTokens == 0 || resp.ContentTokens > 50 {
		t.Errorf("content tokens = %d, want 1..50 under the configured cap", resp.ContentTokens)
	}
}

func TestSummarize_RequestCapBeatsConfigured(t *testing.T) {
	page := newPageServer(t)
	llmSrv := newLLMServer(t)

	r := newSummarizeRouter(t, llmSrv.URL, 3000)

	_, resp := doSummarize(t, r, fmt.Sprintf(`{"url":%q,"max_chars":120}`, page.URL))
	if !resp.Success {
		t.Fatalf("response = %+v", resp)
	}
	if resp.ContentTokens == 0 || resp.ContentTokens > 40 {
		t.Errorf("content tokens = %d, want 1..40 under the request cap", resp.ContentTokens)
	}
}

func TestSummarize_DisabledWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/summarize", Summarize(fetch.New(""), cleaner.NewCleaner(), nil, 5000))

	w, resp := doSummarize(t, r, `{"url":"https://example.com"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	if resp.Error == nil || resp.Error.Code != models.ErrCodeLLMDisabled {
		t.Errorf("error = %+v, want LLM_DISABLED", resp.Error)
	}
}
