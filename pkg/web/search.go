// Package web gathers and extracts documents for the research pipeline:
// search, fetch, extract, and the environment that orchestrates them,
// grounded on the original WebSearch/WebFetcher/WebExtractor/WebEnvironment
// trio and on hyperifyio-goresearch's internal/search, internal/fetch, and
// internal/extract packages for Go-idiomatic shapes.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SearchResult is one ranked hit from a search provider.
type SearchResult struct {
	URL   string
	Title string
}

// SearchClient issues a web search and returns up to limit results.
type SearchClient interface {
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

// GoogleSearch implements SearchClient against the Google Custom Search
// JSON API, the provider the original research agent preferred over its
// scraping-based fallbacks.
type GoogleSearch struct {
	APIKey     string
	CX         string
	Endpoint   string
	HTTPClient *http.Client
}

// NewGoogleSearch builds a GoogleSearch client. endpoint is typically
// "https://www.googleapis.com/customsearch/v1".
func NewGoogleSearch(apiKey, cx, endpoint string) *GoogleSearch {
	return &GoogleSearch{
		APIKey:     apiKey,
		CX:         cx,
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *GoogleSearch) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if g.APIKey == "" || g.CX == "" {
		return nil, fmt.Errorf("web search: missing API credentials")
	}

	u, err := url.Parse(g.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("web search: parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("key", g.APIKey)
	q.Set("cx", g.CX)
	q.Set("q", query)
	q.Set("num", strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("web search: build request: %w", err)
	}

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("web search: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("web search: status %d", resp.StatusCode)
	}

	var body googleSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("web search: decode response: %w", err)
	}

	out := make([]SearchResult, 0, len(body.Items))
	for _, item := range body.Items {
		if strings.TrimSpace(item.Link) == "" {
			continue
		}
		out = append(out, SearchResult{URL: item.Link, Title: item.Title})
	}
	return out, nil
}

type googleSearchResponse struct {
	Items []struct {
		Link  string `json:"link"`
		Title string `json:"title"`
	} `json:"items"`
}
