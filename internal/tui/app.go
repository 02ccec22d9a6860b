package tui

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ahmarkhann/sidekick/internal/hangman"
	"github.com/ahmarkhann/sidekick/internal/words"
)

type mode int

const (
	modeLoading mode = iota
	modePlaying
	modeWon
	modeLost
	modeError
)

type App struct {
	loader *words.Loader
	opts   words.Options

	words []string
	game  *hangman.Game
	mode  mode

	width  int
	height int

	// Sub-components
	guessInput textinput.Model
	spinner    spinner.Model

	// State
	wins   int
	losses int
	notice string
	err    error
}

func NewApp(loader *words.Loader, opts words.Options) *App {
	ti := textinput.New()
	ti.Placeholder = "guess a letter"
	ti.Prompt = promptStyle.Render("> ")
	ti.CharLimit = 1
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		loader:     loader,
		opts:       opts,
		guessInput: ti,
		spinner:    sp,
		mode:       modeLoading,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadWordsCmd(), a.spinner.Tick)
}

// loadWordsCmd captures the loader and options into the closure so the
// fetch runs off the update loop.
func (a *App) loadWordsCmd() tea.Cmd {
	loader := a.loader
	opts := a.opts
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		ws, err := loader.Load(ctx, opts)
		if err != nil {
			return wordErrMsg{err: err}
		}
		return wordsLoadedMsg{words: ws}
	}
}

func (a *App) startRound() {
	secret := a.words[rand.Intn(len(a.words))]
	hints := hangman.PickHints(secret, hangman.HintCount(secret), rand.Intn)
	a.game = hangman.New(secret, hints, hangman.DefaultTries)
	a.mode = modePlaying
	a.notice = ""
	a.guessInput.SetValue("")
	a.guessInput.Focus()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case wordsLoadedMsg:
		if len(msg.words) == 0 {
			a.err = fmt.Errorf("no usable words match the configured length bounds")
			a.mode = modeError
			return a, nil
		}
		a.words = msg.words
		a.startRound()
		return a, textinput.Blink

	case wordErrMsg:
		a.err = msg.err
		a.mode = modeError
		return a, nil

	case spinner.TickMsg:
		if a.mode == modeLoading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return a, tea.Quit
	}

	switch a.mode {
	case modePlaying:
		return a.handlePlayKey(msg)
	case modeWon, modeLost:
		switch msg.String() {
		case "r":
			a.startRound()
			return a, textinput.Blink
		case "q", "enter":
			return a, tea.Quit
		}
		return a, nil
	case modeError:
		return a, tea.Quit
	}

	return a, nil
}

// handlePlayKey feeds typed letters through the input field; "q" is a valid
// guess mid-game, so only esc and ctrl+c quit here.
func (a *App) handlePlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		value := strings.TrimSpace(a.guessInput.Value())
		a.guessInput.SetValue("")
		if value == "" {
			return a, nil
		}
		a.play([]rune(value)[0])
		return a, nil
	}

	var cmd tea.Cmd
	a.guessInput, cmd = a.guessInput.Update(msg)
	return a, cmd
}

func (a *App) play(r rune) {
	if a.game.Over() {
		return
	}
	switch a.game.Guess(r) {
	case hangman.Invalid:
		a.notice = "Letters only."
	case hangman.Repeat:
		a.notice = fmt.Sprintf("You already tried %q.", r)
	case hangman.Correct:
		a.notice = "Nice one!"
	case hangman.Wrong:
		a.notice = fmt.Sprintf("No %q in there.", r)
	}

	if a.game.Won() {
		a.mode = modeWon
		a.wins++
	} else if a.game.Lost() {
		a.mode = modeLost
		a.losses++
	}
}

func (a *App) View() string {
	switch a.mode {
	case modeLoading:
		return "\n  " + a.spinner.View() + " fetching a word list...\n"
	case modeError:
		return "\n  " + errorStyle.Render(a.err.Error()) + "\n\n  press any key to exit\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("hangman") + "\n\n")
	b.WriteString(gallowsStyle.Render(gallows(a.game.TriesLeft())) + "\n\n")
	b.WriteString("  " + wordStyle.Render(a.game.Masked()) + "\n\n")
	b.WriteString("  " + dimStyle.Render(fmt.Sprintf("tried: %s", spellGuessed(a.game.Guessed()))) + "\n")
	b.WriteString("  " + dimStyle.Render(fmt.Sprintf("tries left: %d", a.game.TriesLeft())) + "\n\n")

	switch a.mode {
	case modeWon:
		b.WriteString("  " + winStyle.Render("You got it!") + "\n")
		b.WriteString(a.scoreLine())
		b.WriteString("\n  " + dimStyle.Render("r play again  ·  q quit") + "\n")
	case modeLost:
		b.WriteString("  " + loseStyle.Render(fmt.Sprintf("Out of tries. The word was %q.", a.game.Secret())) + "\n")
		b.WriteString(a.scoreLine())
		b.WriteString("\n  " + dimStyle.Render("r play again  ·  q quit") + "\n")
	default:
		if a.notice != "" {
			b.WriteString("  " + noticeStyle.Render(a.notice) + "\n\n")
		}
		b.WriteString("  " + a.guessInput.View() + "\n")
		b.WriteString("\n  " + dimStyle.Render("type a letter and press enter  ·  esc quit") + "\n")
	}

	if a.width > 0 {
		return lipgloss.NewStyle().MaxWidth(a.width).Render(b.String())
	}
	return b.String()
}

func (a *App) scoreLine() string {
	return "  " + dimStyle.Render(fmt.Sprintf("score: %d won / %d lost", a.wins, a.losses)) + "\n"
}

func spellGuessed(rs []rune) string {
	if len(rs) == 0 {
		return "nothing yet"
	}
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

// gallows renders the figure for the given number of remaining tries,
// assuming the classic six-try game.
func gallows(triesLeft int) string {
	stage := hangman.DefaultTries - triesLeft
	if stage < 0 {
		stage = 0
	}
	if stage >= len(gallowsStages) {
		stage = len(gallowsStages) - 1
	}
	return gallowsStages[stage]
}

var gallowsStages = []string{
	`
   +---+
   |   |
       |
       |
       |
       |
  =========`,
	`
   +---+
   |   |
   O   |
       |
       |
       |
  =========`,
	`
   +---+
   |   |
   O   |
   |   |
       |
       |
  =========`,
	`
   +---+
   |   |
   O   |
  /|   |
       |
       |
  =========`,
	`
   +---+
   |   |
   O   |
  /|\  |
       |
       |
  =========`,
	`
   +---+
   |   |
   O   |
  /|\  |
  /    |
       |
  =========`,
	`
   +---+
   |   |
   O   |
  /|\  |
  / \  |
       |
  =========`,
}

// Run starts the hangman TUI.
func Run(loader *words.Loader, opts words.Options) error {
	app := NewApp(loader, opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
