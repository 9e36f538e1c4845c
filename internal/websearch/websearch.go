// Package websearch answers queries from DuckDuckGo's HTML results page.
//
// The non-JS endpoint at html.duckduckgo.com serves plain server-rendered
// HTML, so a few regexes are enough to pull results out of it. No API
// key, no browser, no client library. Each result contributes its
// snippet text, or its title when the snippet is empty.
package websearch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	// searchURL is DuckDuckGo's HTML (non-JS) results endpoint. The one
	// %s slot takes the already-escaped query.
	searchURL = "https://html.duckduckgo.com/html/?q=%s"

	// userAgent identifies us politely; DDG rejects empty user agents.
	userAgent = "Mozilla/5.0 (compatible; Memex/1.0)"

	// defaultTimeout bounds a single search round-trip.
	defaultTimeout = 8 * time.Second

	// defaultMaxResults caps how many snippets feed one answer.
	defaultMaxResults = 3
)

var (
	// ddgResultRe matches one organic result link on the DDG HTML page.
	ddgResultRe = regexp.MustCompile(`<a rel="nofollow" class="result__a" href="([^"]*)"[^>]*>(.*?)</a>`)

	// ddgSnippetRe matches one result snippet on the DDG HTML page.
	ddgSnippetRe = regexp.MustCompile(`<a class="result__snippet"[^>]*>(.*?)</a>`)

	// htmlTagRe matches any HTML tag, for stripping.
	htmlTagRe = regexp.MustCompile(`<[^>]*>`)

	// htmlEntityRe matches named and numeric HTML entities.
	htmlEntityRe = regexp.MustCompile(`&[a-z]+;|&#[0-9]+;`)
)

// Client performs web searches against DuckDuckGo.
type Client struct {
	http       *http.Client
	endpoint   string // printf format with one %s for the escaped query
	maxResults int
}

// New returns a Client with the given round-trip timeout and snippet cap.
// Zero or negative arguments fall back to the package defaults.
func New(timeout time.Duration, maxResults int) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return &Client{
		http:       &http.Client{Timeout: timeout},
		endpoint:   searchURL,
		maxResults: maxResults,
	}
}

// Search runs the query and returns the top result snippets joined by
// single spaces. It is best-effort: network failures, bad statuses and
// empty result pages all come back as ok=false, never as an error.
func (c *Client) Search(ctx context.Context, query string) (string, bool) {
	endpoint := fmt.Sprintf(c.endpoint, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false
	}

	texts := parseResults(string(body), c.maxResults)
	if len(texts) == 0 {
		return "", false
	}
	return strings.Join(texts, " "), true
}

// parseResults extracts up to max result texts from a DDG results page,
// in page order. Result links and snippets appear pairwise, so the two
// match lists line up by index.
func parseResults(body string, max int) []string {
	links := ddgResultRe.FindAllStringSubmatch(body, -1)
	snippets := ddgSnippetRe.FindAllStringSubmatch(body, -1)

	texts := make([]string, 0, max)
	for i, link := range links {
		var text string
		if i < len(snippets) {
			text = stripHTML(snippets[i][1])
		}
		if text == "" {
			text = stripHTML(link[2])
		}
		if text == "" {
			continue
		}
		texts = append(texts, text)
		if len(texts) == max {
			break
		}
	}
	return texts
}

// stripHTML removes tags and decodes the handful of entities DDG
// actually emits. Unknown entities are dropped rather than kept raw.
func stripHTML(s string) string {
	s = htmlTagRe.ReplaceAllString(s, "")
	s = htmlEntityRe.ReplaceAllStringFunc(s, func(e string) string {
		switch e {
		case "&amp;":
			return "&"
		case "&lt;":
			return "<"
		case "&gt;":
			return ">"
		case "&quot;":
			return `"`
		case "&#39;", "&apos;":
			return "'"
		case "&nbsp;":
			return " "
		default:
			return ""
		}
	})
	return strings.TrimSpace(s)
}
