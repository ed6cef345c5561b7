package util

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"jobsearch-engine/internal/config"

	"github.com/PuerkitoBio/goquery"
)

const maxBodyBytes = 8 << 20

// StatusError is returned for HTTP responses with status >= 400.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.URL, e.Code)
}

// Client is the outbound fetch capability shared by all adapters: GET with a
// browser user agent, a per-request timeout, redirects and per-host limiting.
type Client struct {
	hc      *http.Client
	ua      string
	limiter *HostLimiter
}

func NewClient(cfg config.HTTPConfig, limiter *HostLimiter) *Client {
	ua := strings.TrimSpace(cfg.UserAgent)
	if ua == "" {
		ua = config.DefaultUserAgent
	}
	return &Client{
		hc:      &http.Client{Timeout: cfg.Timeout()},
		ua:      ua,
		limiter: limiter,
	}
}

// Get returns the response body of rawURL, capped at 8 MiB.
func (c *Client) Get(ctx context.Context, rawURL, accept string) ([]byte, error) {
	if err := c.limiter.WaitURL(ctx, rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.ua)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", rawURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, &StatusError{URL: rawURL, Code: res.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}
	return body, nil
}

func (c *Client) GetJSON(ctx context.Context, rawURL string, v any) error {
	body, err := c.Get(ctx, rawURL, "application/json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return nil
}

// GetHTML fetches rawURL and parses it. The raw body is returned too so
// callers can pattern-match the page source.
func (c *Client) GetHTML(ctx context.Context, rawURL string) (*goquery.Document, []byte, error) {
	body, err := c.Get(ctx, rawURL, "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	if err != nil {
		return nil, nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("parse html %s: %w", rawURL, err)
	}
	return doc, body, nil
}
