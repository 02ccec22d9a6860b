package hangman

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultTries is the classic six-part gallows figure.
const DefaultTries = 6

// Outcome classifies a single guess.
type Outcome int

const (
	Invalid Outcome = iota
	Repeat
	Correct
	Wrong
)

// Game tracks one round: the secret word, every letter guessed so far, and
// the remaining tries. A repeated guess never costs a try.
type Game struct {
	secret    string
	guessed   map[rune]bool
	triesLeft int
}

// New starts a round over the given secret. Hint letters that actually occur
// in the secret are revealed up front without costing tries.
func New(secret string, hints []rune, tries int) *Game {
	if tries <= 0 {
		tries = DefaultTries
	}
	g := &Game{
		secret:    strings.ToLower(secret),
		guessed:   make(map[rune]bool),
		triesLeft: tries,
	}
	for _, h := range hints {
		h = unicode.ToLower(h)
		if strings.ContainsRune(g.secret, h) {
			g.guessed[h] = true
		}
	}
	return g
}

// Guess plays one letter and reports what happened.
func (g *Game) Guess(r rune) Outcome {
	if g.Over() {
		return Invalid
	}
	r = unicode.ToLower(r)
	if !unicode.IsLetter(r) {
		return Invalid
	}
	if g.guessed[r] {
		return Repeat
	}
	g.guessed[r] = true

	if strings.ContainsRune(g.secret, r) {
		return Correct
	}
	g.triesLeft--
	return Wrong
}

// Masked renders the secret with unguessed letters as underscores.
func (g *Game) Masked() string {
	var b strings.Builder
	for i, r := range g.secret {
		if i > 0 {
			b.WriteByte(' ')
		}
		if g.guessed[r] {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Guessed returns every letter played so far, sorted for stable display.
func (g *Game) Guessed() []rune {
	out := make([]rune, 0, len(g.guessed))
	for r := range g.guessed {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (g *Game) TriesLeft() int { return g.triesLeft }

func (g *Game) Secret() string { return g.secret }

func (g *Game) Won() bool {
	for _, r := range g.secret {
		if !g.guessed[r] {
			return false
		}
	}
	return true
}

func (g *Game) Lost() bool { return g.triesLeft <= 0 && !g.Won() }

func (g *Game) Over() bool { return g.Won() || g.Lost() }

// HintCount follows the house rule: longer words earn an extra free letter.
func HintCount(secret string) int {
	if len([]rune(secret)) >= 5 {
		return 2
	}
	return 1
}

// PickHints chooses n distinct letters of the secret using the supplied
// random source, so callers control determinism.
func PickHints(secret string, n int, intn func(int) int) []rune {
	seen := make(map[rune]bool)
	var letters []rune
	for _, r := range strings.ToLower(secret) {
		if !seen[r] {
			seen[r] = true
			letters = append(letters, r)
		}
	}
	if n > len(letters) {
		n = len(letters)
	}
	for i := 0; i < n; i++ {
		j := i + intn(len(letters)-i)
		letters[i], letters[j] = letters[j], letters[i]
	}
	return letters[:n]
}
