package web

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/models"
)

// MaxPages bounds how many documents a single Run call will gather,
// independent of what the caller requests.
const MaxPages = 5

// MinTextLength is the shortest extracted page text worth keeping.
const MinTextLength = 200

// BlockedDomains lists hosts the environment refuses to fetch from
// regardless of search ranking. Empty by default; operators needing a
// denylist set it on the Environment value they construct.
var BlockedDomains []string

// DocumentFetcher retrieves raw HTML for a URL. *Fetcher is the production
// implementation; tests substitute a fake to avoid real network calls.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Environment gathers documents for one query via search, fetch, and
// extract, swallowing per-result errors rather than aborting the whole
// run — one bad page or one unreachable host should never fail the
// attempt that happens to rank it first.
type Environment struct {
	Search  SearchClient
	Fetcher DocumentFetcher
	Blocked []string
}

// NewEnvironment builds an Environment with the package default blocklist.
func NewEnvironment(search SearchClient, fetcher DocumentFetcher) *Environment {
	return &Environment{Search: search, Fetcher: fetcher, Blocked: BlockedDomains}
}

// Run searches for query, clamps numDocs into [1, MaxPages] (an under-cap
// value is raised to 1, an over-cap value is lowered to MaxPages), and
// fetches+extracts each non-blocked, unvisited result. It returns whatever
// documents it managed to gather along with the errors it swallowed along
// the way — a degraded result, never a hard failure, since a partial
// document set still lets the pipeline run.
func (e *Environment) Run(ctx context.Context, query string, numDocs int) ([]models.Document, []string) {
	limit := numDocs
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPages {
		limit = MaxPages
	}

	var errs []string

	results, err := e.Search.Search(ctx, query, limit)
	if err != nil {
		errs = append(errs, err.Error())
		return nil, errs
	}

	var documents []models.Document
	visited := make(map[string]bool)

	for _, result := range results {
		if e.isBlockedDomain(result.URL) {
			continue
		}
		if visited[result.URL] {
			continue
		}

		rawHTML, err := e.Fetcher.Fetch(ctx, result.URL)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", result.URL, err))
			continue
		}

		extracted := Extract(rawHTML)
		if len(extracted.Text) < MinTextLength {
			continue
		}

		title := extracted.Title
		if title == "" {
			title = result.Title
		}

		visited[result.URL] = true
		documents = append(documents, models.Document{
			URL:   result.URL,
			Title: title,
			Text:  extracted.Text,
			Meta:  map[string]string{"title": title},
		})
	}

	return documents, errs
}

func (e *Environment) isBlockedDomain(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, blocked := range e.Blocked {
		if strings.Contains(host, blocked) {
			return true
		}
	}
	return false
}
