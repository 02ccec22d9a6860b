package tui

import (
	"strings"
	"testing"

	"github.com/ahmarkhann/sidekick/internal/hangman"
	"github.com/ahmarkhann/sidekick/internal/words"
)

func TestGallowsStages(t *testing.T) {
	if got := gallows(hangman.DefaultTries); strings.Contains(got, "O") {
		t.Errorf("fresh game already shows the figure:\n%s", got)
	}
	if got := gallows(0); !strings.Contains(got, `/ \`) {
		t.Errorf("final stage missing both legs:\n%s", got)
	}
	// Out-of-range values clamp instead of panicking.
	if got := gallows(-3); got != gallowsStages[len(gallowsStages)-1] {
		t.Error("negative tries did not clamp to the final stage")
	}
	if got := gallows(99); got != gallowsStages[0] {
		t.Error("excess tries did not clamp to the empty gallows")
	}
}

func TestSpellGuessed(t *testing.T) {
	if got := spellGuessed(nil); got != "nothing yet" {
		t.Errorf("spellGuessed(nil) = %q", got)
	}
	if got := spellGuessed([]rune{'a', 'b', 'c'}); got != "a b c" {
		t.Errorf("spellGuessed() = %q, want %q", got, "a b c")
	}
}

func TestPlayTransitions(t *testing.T) {
	a := NewApp(nil, words.Options{})
	a.words = []string{"go"}
	a.startRound()

	if a.mode != modePlaying {
		t.Fatalf("mode after startRound = %v, want modePlaying", a.mode)
	}

	a.play('g')
	a.play('o')

	if a.mode != modeWon {
		t.Errorf("mode after completing the word = %v, want modeWon", a.mode)
	}
	if a.wins != 1 {
		t.Errorf("wins = %d, want 1", a.wins)
	}
}
