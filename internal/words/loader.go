package words

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode"

	log "github.com/sirupsen/logrus"
)

const fetchTimeout = 6 * time.Second

// defaultSources are tried in order; each is a URL template taking the
// number of words to fetch.
var defaultSources = []string{
	"https://random-word-api.herokuapp.com/word?number=%d",
	"https://random-word-api.vercel.app/api?words=%d",
}

// defaultDictPaths are common system word lists checked before going online.
var defaultDictPaths = []string{
	"/usr/share/dict/words",
	"/usr/dict/words",
}

// builtin keeps the game playable with no file and no network.
var builtin = []string{
	"gopher", "channel", "routine", "pointer", "variable",
	"function", "interface", "package", "compile", "runtime",
	"keyboard", "monitor", "network", "program", "language",
	"garden", "bottle", "window", "planet", "silver",
}

// Options control where words come from and which ones qualify.
type Options struct {
	File       string
	MinLength  int
	MaxLength  int
	FetchCount int
	Offline    bool
}

// Loader assembles a word list from the first source that yields usable
// words: an explicit file, a local dictionary, an online word API, and
// finally a builtin list.
type Loader struct {
	httpClient *http.Client
	sources    []string
	dictPaths  []string
}

func NewLoader() *Loader {
	return &Loader{
		httpClient: &http.Client{Timeout: fetchTimeout},
		sources:    defaultSources,
		dictPaths:  defaultDictPaths,
	}
}

// Load returns a sanitized, deduplicated word list. It only fails when an
// explicitly requested file cannot be used; every implicit source falls
// through to the next one.
func (l *Loader) Load(ctx context.Context, opts Options) ([]string, error) {
	if opts.File != "" {
		ws, err := readWordFile(opts.File, opts)
		if err != nil {
			return nil, err
		}
		if len(ws) == 0 {
			return nil, fmt.Errorf("no usable words in %s", opts.File)
		}
		return ws, nil
	}

	if ws, err := readWordFile("words.txt", opts); err == nil && len(ws) > 0 {
		log.WithField("count", len(ws)).Debug("loaded words from ./words.txt")
		return ws, nil
	}

	for _, path := range l.dictPaths {
		ws, err := readWordFile(path, opts)
		if err != nil || len(ws) == 0 {
			continue
		}
		log.WithFields(log.Fields{"path": path, "count": len(ws)}).Debug("loaded system dictionary")
		return ws, nil
	}

	if !opts.Offline {
		if ws := l.fetch(ctx, opts); len(ws) > 0 {
			return ws, nil
		}
	}

	log.Debug("falling back to builtin word list")
	return Sanitize(builtin, opts), nil
}

func (l *Loader) fetch(ctx context.Context, opts Options) []string {
	count := opts.FetchCount
	if count <= 0 {
		count = 200
	}

	for _, tmpl := range l.sources {
		ws, err := l.fetchOne(ctx, fmt.Sprintf(tmpl, count), opts)
		if err != nil {
			log.WithError(err).Debug("word fetch failed")
			continue
		}
		if len(ws) > 0 {
			log.WithField("count", len(ws)).Debug("fetched online word list")
			return ws
		}
	}
	return nil
}

func (l *Loader) fetchOne(ctx context.Context, rawURL string, opts Options) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("word API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("word API status %d", resp.StatusCode)
	}

	var raw []string
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding word list: %w", err)
	}
	return Sanitize(raw, opts), nil
}

func readWordFile(path string, opts Options) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading word file: %w", err)
	}
	return Sanitize(strings.Fields(string(data)), opts), nil
}

// Sanitize lowercases, drops anything with non-letter runes or out-of-range
// length, and deduplicates while preserving order.
func Sanitize(raw []string, opts Options) []string {
	min, max := opts.MinLength, opts.MaxLength
	if min <= 0 {
		min = 1
	}

	seen := make(map[string]struct{}, len(raw))
	var out []string
	for _, w := range raw {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" || !allLetters(w) {
			continue
		}
		n := len([]rune(w))
		if n < min || (max > 0 && n > max) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func allLetters(w string) bool {
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
