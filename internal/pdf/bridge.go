// Package pdf bridges to the headless-browser rendering microservice and
// exposes the PDF download endpoint.
package pdf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const renderTimeout = 30 * time.Second
const healthTimeout = 5 * time.Second

// Margin is a set of page margins passed through to the renderer.
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Options mirrors the pdfOptions object of the rendering service contract.
type Options struct {
	Format            string  `json:"format"`
	PrintBackground   bool    `json:"printBackground"`
	PreferCSSPageSize bool    `json:"preferCSSPageSize"`
	Scale             float64 `json:"scale"`
	Margin            Margin  `json:"margin"`
}

// DefaultOptions are the fixed options used for card downloads: A4, CSS page
// size preferred, backgrounds on, no margins.
func DefaultOptions() Options {
	return Options{
		Format:            "A4",
		PrintBackground:   true,
		PreferCSSPageSize: true,
		Scale:             1,
	}
}

// RenderError is the typed failure for anything that kept the rendering
// service from producing a PDF: unreachable, timed out, or a non-200 reply.
type RenderError struct {
	Status  int // 0 for transport-level failures
	Message string
}

func (e *RenderError) Error() string {
	return "pdf rendering failed: " + e.Message
}

// Client calls the rendering microservice. The zero value is not usable;
// construct with NewClient.
type Client struct {
	baseURL string
	render  *http.Client
	health  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		render:  &http.Client{Timeout: renderTimeout},
		health:  &http.Client{Timeout: healthTimeout},
	}
}

// Render asks the service to print the page at pageURL and returns the raw
// PDF bytes. The call blocks for up to 30 seconds; callers must tolerate
// multi-second latency. The bytes are trusted as-is, no PDF validation.
func (c *Client) Render(ctx context.Context, pageURL string, opts Options) ([]byte, error) {
	body, err := json.Marshal(map[string]any{
		"url":        pageURL,
		"pdfOptions": opts,
	})
	if err != nil {
		return nil, &RenderError{Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/render-pdf", bytes.NewReader(body))
	if err != nil {
		return nil, &RenderError{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.render.Do(req)
	if err != nil {
		return nil, &RenderError{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RenderError{Status: resp.StatusCode, Message: err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &RenderError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, data)}
	}
	return data, nil
}

// errorMessage pulls the service's {"error": ...} message out of a failure
// body, falling back to the status text.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return fmt.Sprintf("rendering service returned %d %s", status, http.StatusText(status))
}

// Healthy probes the service's /health path. Every failure mode reads as
// "unavailable".
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.health.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}
