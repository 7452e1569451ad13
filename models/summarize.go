package models

// SummarizeRequest is the payload for POST /api/v1/summarize.
type SummarizeRequest struct {
	// URL is the page to fetch, clean, and summarise. Required.
	URL string `json:"url" binding:"required,url"`

	// Selector optionally restricts cleaning to elements matching a CSS
	// selector (e.g. "#mw-content-text" for Wikipedia articles).
	Selector string `json:"selector,omitempty"`

	// Format of the cleaned content handed to the model.
	// "text" (default) or "markdown".
	Format string `json:"format,omitempty" binding:"omitempty,oneof=text markdown"`

	// MaxChars caps the cleaned content length to bound the prompt.
	// Default: 5000.
	MaxChars int `json:"max_chars,omitempty" binding:"omitempty,min=100,max=100000"`
}

// Defaults applies default values to unset fields.
func (r *SummarizeRequest) Defaults() {
	if r.Format == "" {
		r.Format = "text"
	}
	if r.MaxChars == 0 {
		r.MaxChars = 5000
	}
}

// SummarizeResponse is the response for POST /api/v1/summarize.
type SummarizeResponse struct {
	Success   bool   `json:"success"`
	Summary   string `json:"summary,omitempty"`
	Title     string `json:"title,omitempty"`
	SourceURL string `json:"source_url"`

	// ContentTokens estimates how many tokens of cleaned content were
	// handed to the model.
	ContentTokens int `json:"content_tokens,omitempty"`

	Timing TimingInfo `json:"timing"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}
