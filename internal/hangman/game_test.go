package hangman

import (
	"reflect"
	"testing"
)

func TestGameWalkthrough(t *testing.T) {
	g := New("gopher", nil, 3)

	if g.Masked() != "_ _ _ _ _ _" {
		t.Errorf("initial mask = %q", g.Masked())
	}

	steps := []struct {
		letter rune
		want   Outcome
		tries  int
	}{
		{'g', Correct, 3},
		{'z', Wrong, 2},
		{'z', Repeat, 2}, // repeats never cost a try
		{'o', Correct, 2},
		{'p', Correct, 2},
		{'h', Correct, 2},
		{'e', Correct, 2},
		{'r', Correct, 2},
	}
	for _, s := range steps {
		if got := g.Guess(s.letter); got != s.want {
			t.Errorf("Guess(%q) = %v, want %v", s.letter, got, s.want)
		}
		if g.TriesLeft() != s.tries {
			t.Errorf("after %q: tries = %d, want %d", s.letter, g.TriesLeft(), s.tries)
		}
	}

	if !g.Won() || g.Lost() {
		t.Errorf("Won() = %v, Lost() = %v after completing the word", g.Won(), g.Lost())
	}
	if g.Guess('x') != Invalid {
		t.Error("guessing after the game ended should be Invalid")
	}
}

func TestGameLoss(t *testing.T) {
	g := New("ab", nil, 2)

	g.Guess('x')
	if g.Over() {
		t.Fatal("game over after one wrong guess with two tries")
	}
	g.Guess('y')

	if !g.Lost() {
		t.Error("Lost() = false after using every try")
	}
	if g.Won() {
		t.Error("Won() = true on a lost game")
	}
}

func TestGameRejectsNonLetters(t *testing.T) {
	g := New("go", nil, 1)

	for _, r := range []rune{'1', ' ', '-', '!'} {
		if got := g.Guess(r); got != Invalid {
			t.Errorf("Guess(%q) = %v, want Invalid", r, got)
		}
	}
	if g.TriesLeft() != 1 {
		t.Errorf("invalid guesses cost tries: left = %d, want 1", g.TriesLeft())
	}
}

func TestGameUppercaseAndHints(t *testing.T) {
	g := New("Gopher", []rune{'G', 'z'}, DefaultTries)

	// 'g' was hinted and revealed; 'z' is not in the word and is ignored.
	if g.Masked() != "g _ _ _ _ _" {
		t.Errorf("mask with hint = %q", g.Masked())
	}
	if got := g.Guess('O'); got != Correct {
		t.Errorf("Guess('O') = %v, want Correct", got)
	}
	if got := g.Guess('G'); got != Repeat {
		t.Errorf("re-guessing a hinted letter = %v, want Repeat", got)
	}
}

func TestGuessedSorted(t *testing.T) {
	g := New("cab", nil, DefaultTries)
	g.Guess('c')
	g.Guess('b')
	g.Guess('a')

	if got := g.Guessed(); !reflect.DeepEqual(got, []rune{'a', 'b', 'c'}) {
		t.Errorf("Guessed() = %q, want [a b c]", string(got))
	}
}

func TestHintCount(t *testing.T) {
	if got := HintCount("cat"); got != 1 {
		t.Errorf("HintCount(cat) = %d, want 1", got)
	}
	if got := HintCount("gopher"); got != 2 {
		t.Errorf("HintCount(gopher) = %d, want 2", got)
	}
}

func TestPickHintsDeterministic(t *testing.T) {
	// A stub source that always picks the first remaining letter keeps the
	// original order of first occurrence.
	first := func(int) int { return 0 }

	got := PickHints("banana", 2, first)
	if !reflect.DeepEqual(got, []rune{'b', 'a'}) {
		t.Errorf("PickHints() = %q, want [b a]", string(got))
	}

	if got := PickHints("go", 5, first); len(got) != 2 {
		t.Errorf("PickHints() returned %d letters for a 2-letter word", len(got))
	}
}
