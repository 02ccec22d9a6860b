package automate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	scrapeTimeout   = 10 * time.Second
	scrapeUserAgent = "sidekick/1.0 (+https://github.com/ahmarkhann/sidekick)"

	maxScrapedSummary = 500
)

var (
	titleRe  = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	scriptRe = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
)

// Summarizer provides a proper extract for encyclopedia pages, where
// scraping raw HTML would only yield chrome and navigation text.
type Summarizer interface {
	Summary(ctx context.Context, title string) (string, error)
}

// PageInfo is what a scrape yields: the page title and a short summary.
type PageInfo struct {
	URL     string
	Title   string
	Summary string
}

// Scraper fetches a page and distills a title plus a couple of sentences.
type Scraper struct {
	httpClient *http.Client
	summarizer Summarizer
}

func NewScraper(summarizer Summarizer) *Scraper {
	return &Scraper{
		httpClient: &http.Client{Timeout: scrapeTimeout},
		summarizer: summarizer,
	}
}

// Scrape fetches rawURL and extracts a title and summary. A missing scheme
// defaults to https.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*PageInfo, error) {
	rawURL = strings.TrimSpace(rawURL)
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing url: %w", err)
	}

	body, err := s.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	info := &PageInfo{URL: rawURL, Title: pageTitle(body)}

	// Encyclopedia pages get their summary from the proper API instead of
	// scraped markup.
	if s.summarizer != nil && isWikipedia(parsed.Host) {
		if title, ok := wikiTitleFromPath(parsed.Path); ok {
			extract, err := s.summarizer.Summary(ctx, title)
			if err == nil {
				info.Summary = extract
				if info.Title == "" {
					info.Title = title
				}
				return info, nil
			}
			log.WithError(err).WithField("title", title).Debug("summary API failed, scraping body")
		}
	}

	info.Summary = summarizeBody(body)
	return info, nil
}

func (s *Scraper) fetch(ctx context.Context, rawURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, scrapeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", scrapeUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return "", fmt.Errorf("reading page: %w", err)
	}
	return string(body), nil
}

// SaveResult writes the title and summary as two text files in dir and
// returns the paths written.
func SaveResult(dir string, info *PageInfo) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	files := []struct {
		name    string
		content string
	}{
		{"web_title.txt", info.Title},
		{"web_summary.txt", info.Summary},
	}

	var paths []string
	for _, f := range files {
		p := filepath.Join(dir, f.name)
		if err := os.WriteFile(p, []byte(f.content+"\n"), 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.name, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func pageTitle(body string) string {
	m := titleRe.FindStringSubmatch(body)
	if m == nil {
		return ""
	}
	return strings.Join(strings.Fields(m[1]), " ")
}

func isWikipedia(host string) bool {
	host = strings.ToLower(host)
	return host == "wikipedia.org" || strings.HasSuffix(host, ".wikipedia.org")
}

// wikiTitleFromPath turns "/wiki/Albert_Einstein" into "Albert Einstein".
func wikiTitleFromPath(p string) (string, bool) {
	seg := path.Base(path.Clean(p))
	if seg == "" || seg == "/" || seg == "." || seg == "wiki" {
		return "", false
	}
	decoded, err := url.PathUnescape(seg)
	if err != nil {
		decoded = seg
	}
	return strings.ReplaceAll(decoded, "_", " "), true
}

// summarizeBody strips markup and keeps the first couple of sentences,
// capped at a word boundary.
func summarizeBody(body string) string {
	text := stripTags(scriptRe.ReplaceAllString(body, " "))
	if text == "" {
		return ""
	}

	sent := firstTwoSentences(text)
	if len(sent) <= maxScrapedSummary {
		return sent
	}
	cut := strings.LastIndex(sent[:maxScrapedSummary], " ")
	if cut <= 0 {
		cut = maxScrapedSummary
	}
	return sent[:cut] + "..."
}

func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func firstTwoSentences(text string) string {
	count := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.', '!', '?':
			if i+1 >= len(runes) || runes[i+1] == ' ' {
				count++
				if count == 2 {
					return strings.TrimSpace(string(runes[:i+1]))
				}
			}
		}
	}
	return strings.TrimSpace(text)
}
