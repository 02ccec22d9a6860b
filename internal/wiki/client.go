package wiki

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Endpoints are deliberately hardcoded: the toolkit targets one reference
// source and carries no configuration for it.
const (
	defaultSearchEndpoint  = "https://en.wikipedia.org/w/api.php"
	defaultSummaryEndpoint = "https://en.wikipedia.org/api/rest_v1/page/summary/%s"

	userAgent      = "sidekick/1.0 (+https://github.com/ahmarkhann/sidekick)"
	requestTimeout = 8 * time.Second
)

// ErrNoMatch reports that the search returned an empty title list.
var ErrNoMatch = errors.New("no matching title")

// ErrNoExtract reports that a page exists but exposes no summary extract.
var ErrNoExtract = errors.New("no summary extract")

// Client talks to the encyclopedia's open-search and page-summary APIs.
// Every call is bounded by requestTimeout on top of the caller's context.
type Client struct {
	httpClient      *http.Client
	searchEndpoint  string
	summaryEndpoint string
}

func NewClient() *Client {
	return &Client{
		httpClient:      &http.Client{Timeout: requestTimeout},
		searchEndpoint:  defaultSearchEndpoint,
		summaryEndpoint: defaultSummaryEndpoint,
	}
}

// SearchTitle resolves free text to the best-matching canonical page title.
func (c *Client) SearchTitle(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("action", "opensearch")
	params.Set("search", query)
	params.Set("limit", "1")
	params.Set("namespace", "0")
	params.Set("format", "json")

	body, err := c.get(ctx, c.searchEndpoint+"?"+params.Encode())
	if err != nil {
		return "", err
	}

	// The opensearch response is [query, [titles], [descriptions], [urls]].
	titles := gjson.GetBytes(body, "1")
	if !titles.IsArray() {
		return "", fmt.Errorf("unexpected opensearch response: %s", excerpt(body))
	}
	matches := titles.Array()
	if len(matches) == 0 || matches[0].String() == "" {
		return "", ErrNoMatch
	}
	return matches[0].String(), nil
}

// Summary fetches the extract for a canonical page title.
func (c *Client) Summary(ctx context.Context, title string) (string, error) {
	body, err := c.get(ctx, fmt.Sprintf(c.summaryEndpoint, url.PathEscape(title)))
	if err != nil {
		return "", err
	}

	extract := gjson.GetBytes(body, "extract").String()
	if extract == "" {
		return "", ErrNoExtract
	}
	return extract, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wiki request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("wiki API %d: %s", resp.StatusCode, excerpt(b))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}

func excerpt(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
