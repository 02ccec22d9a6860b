package chat

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	log "github.com/sirupsen/logrus"
)

const (
	msgEmpty     = "Type something and I'll do my best to help."
	msgNoMatch   = "Sorry, I couldn't find anything about that. Try asking another way?"
	msgNoSummary = "I found the page \"%s\" but it has no summary.\n\nRead more: %s"

	articleBaseURL      = "https://en.wikipedia.org/wiki/"
	maxSummarySentences = 2
)

// Lookup resolves free text to a page title and a title to its summary.
// *wiki.Client satisfies it; tests substitute stubs.
type Lookup interface {
	SearchTitle(ctx context.Context, query string) (string, error)
	Summary(ctx context.Context, title string) (string, error)
}

// Responder answers free-text input: small-talk rules first, then an
// encyclopedia lookup. Remote failures never surface as errors, only as
// apologetic messages, so the conversation always continues.
type Responder struct {
	lookup Lookup
	rules  []Rule
	cache  *Cache
}

func NewResponder(lookup Lookup) *Responder {
	return &Responder{
		lookup: lookup,
		rules:  defaultRules(),
		cache:  NewCache(),
	}
}

func (r *Responder) Respond(ctx context.Context, input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return msgEmpty
	}

	if rule := matchRule(r.rules, input); rule != nil {
		return rule.Replies[0]
	}

	title, ok := r.resolveTitle(ctx, input)
	if !ok {
		return msgNoMatch
	}
	link := articleLink(title)

	summary, ok := r.resolveSummary(ctx, title)
	if !ok {
		return fmt.Sprintf(msgNoSummary, title, link)
	}

	return fmt.Sprintf("**%s**\n%s\n\nRead more: %s", title, firstSentences(summary, maxSummarySentences), link)
}

func (r *Responder) resolveTitle(ctx context.Context, query string) (string, bool) {
	if title, ok := r.cache.Title(query); ok {
		return title, true
	}

	title, err := r.lookup.SearchTitle(ctx, query)
	if err != nil {
		log.WithError(err).WithField("query", query).Debug("title search failed")
		return "", false
	}
	r.cache.SetTitle(query, title)
	return title, true
}

func (r *Responder) resolveSummary(ctx context.Context, title string) (string, bool) {
	if summary, ok := r.cache.Summary(title); ok {
		return summary, true
	}

	summary, err := r.lookup.Summary(ctx, title)
	if err != nil {
		log.WithError(err).WithField("title", title).Debug("summary fetch failed")
		return "", false
	}
	r.cache.SetSummary(title, summary)
	return summary, true
}

// articleLink builds the canonical page URL: spaces become underscores and
// the rest is percent-encoded.
func articleLink(title string) string {
	return articleBaseURL + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}

// firstSentences keeps at most n sentences of text, joined by single spaces.
func firstSentences(text string, n int) string {
	parts := splitSentences(text)
	if len(parts) > n {
		parts = parts[:n]
	}
	return strings.Join(parts, " ")
}

// splitSentences cuts after runs of ". ! ?" that are followed by whitespace.
// A period closing a dotted abbreviation ("U.S.A.", "e.g.") is not a cut,
// and a trailing fragment without a terminator still counts as a sentence.
func splitSentences(text string) []string {
	var parts []string
	runes := []rune(strings.TrimSpace(text))

	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}
		// Swallow the whole terminator run ("?!", "...").
		end := i
		for end+1 < len(runes) && isTerminator(runes[end+1]) {
			end++
		}
		// A lone period preceded by a dotted single letter continues an
		// abbreviation rather than ending a sentence.
		if end == i && runes[i] == '.' && i >= 2 && unicode.IsLetter(runes[i-1]) && runes[i-2] == '.' {
			continue
		}
		if end+1 < len(runes) && !unicode.IsSpace(runes[end+1]) {
			i = end
			continue
		}
		if s := strings.TrimSpace(string(runes[start : end+1])); s != "" {
			parts = append(parts, s)
		}
		i = end
		start = end + 1
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		parts = append(parts, s)
	}
	return parts
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
