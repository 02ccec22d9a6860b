package portfolio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ahmarkhann/sidekick/internal/store"
)

// PriceSource returns the current market price for a symbol.
// *quote.Client satisfies it; tests substitute stubs.
type PriceSource interface {
	Price(ctx context.Context, symbol string) (float64, error)
}

// SessionOpts holds all parameters for an interactive tracking session.
type SessionOpts struct {
	Store      *store.Store
	Quotes     PriceSource
	Fallback   map[string]float64
	Live       bool
	SaveFormat string
	OutDir     string
	In         io.Reader
	Out        io.Writer
}

// Session runs the add-positions loop: one symbol per turn, a price from
// the best available source, then a quantity. Prices degrade from live
// quote to the configured table to a manual prompt.
type Session struct {
	store      *store.Store
	quotes     PriceSource
	fallback   map[string]float64
	live       bool
	saveFormat string
	outDir     string
	in         *bufio.Scanner
	out        io.Writer
}

func NewSession(opts SessionOpts) *Session {
	fallback := make(map[string]float64, len(opts.Fallback))
	for sym, price := range opts.Fallback {
		fallback[strings.ToUpper(sym)] = price
	}
	return &Session{
		store:      opts.Store,
		quotes:     opts.Quotes,
		fallback:   fallback,
		live:       opts.Live,
		saveFormat: opts.SaveFormat,
		outDir:     opts.OutDir,
		in:         bufio.NewScanner(opts.In),
		out:        opts.Out,
	}
}

func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Tracking your portfolio. Type a ticker symbol, or \"done\" to finish.")

	for {
		line, ok := s.prompt("\nSymbol: ")
		if !ok {
			break
		}
		symbol := strings.ToUpper(strings.TrimSpace(line))
		if symbol == "" {
			continue
		}
		if isDone(symbol) {
			break
		}

		price, ok := s.resolvePrice(ctx, symbol)
		if !ok {
			fmt.Fprintf(s.out, "Skipping %s.\n", symbol)
			continue
		}

		quantity, ok := s.promptQuantity()
		if !ok {
			fmt.Fprintf(s.out, "Skipping %s.\n", symbol)
			continue
		}

		if err := s.store.AddLot(symbol, quantity, price); err != nil {
			return fmt.Errorf("recording %s: %w", symbol, err)
		}
		fmt.Fprintf(s.out, "Added %d x %s at %s.\n", quantity, symbol, FormatMoney(price))
	}

	return s.finish()
}

// resolvePrice walks the ladder: live quote, configured table, manual entry.
func (s *Session) resolvePrice(ctx context.Context, symbol string) (float64, bool) {
	if s.live && s.quotes != nil {
		price, err := s.quotes.Price(ctx, symbol)
		if err == nil && price > 0 {
			fmt.Fprintf(s.out, "%s: %s (live)\n", symbol, FormatMoney(price))
			return price, true
		}
		if err != nil {
			log.WithError(err).WithField("symbol", symbol).Debug("live quote failed")
		}
	}

	if price, ok := s.fallback[symbol]; ok {
		fmt.Fprintf(s.out, "%s: %s (price table)\n", symbol, FormatMoney(price))
		return price, true
	}

	line, ok := s.prompt(fmt.Sprintf("No price found for %s. Enter one (blank to skip): ", symbol))
	if !ok {
		return 0, false
	}
	line = strings.TrimPrefix(strings.TrimSpace(line), "$")
	if line == "" {
		return 0, false
	}
	price, err := strconv.ParseFloat(line, 64)
	if err != nil || price <= 0 {
		fmt.Fprintln(s.out, "That doesn't look like a price.")
		return 0, false
	}
	return price, true
}

func (s *Session) promptQuantity() (int64, bool) {
	for {
		line, ok := s.prompt("Quantity: ")
		if !ok {
			return 0, false
		}
		line = strings.TrimSpace(line)
		if line == "" || line == "0" {
			return 0, false
		}
		n, err := strconv.ParseInt(line, 10, 64)
		if err != nil || n <= 0 {
			fmt.Fprintln(s.out, "Please enter a whole number greater than zero.")
			continue
		}
		return n, true
	}
}

// finish prints the valued summary, optionally saves reports, and stamps
// the session.
func (s *Session) finish() error {
	positions, err := s.store.Positions()
	if err != nil {
		return fmt.Errorf("loading positions: %w", err)
	}
	if len(positions) == 0 {
		fmt.Fprintln(s.out, "\nNothing tracked yet.")
		return nil
	}

	v := Summarize(positions)
	fmt.Fprintln(s.out)
	if err := WriteText(s.out, v, time.Now()); err != nil {
		return err
	}

	format := s.saveFormat
	if format == "" {
		line, ok := s.prompt("\nSave report? (txt/csv/both/no): ")
		if !ok {
			format = "no"
		} else {
			format = strings.ToLower(strings.TrimSpace(line))
		}
	}
	switch format {
	case "txt", "csv", "both":
		paths, err := SaveReports(s.outDir, v, format, time.Now())
		if err != nil {
			return fmt.Errorf("saving report: %w", err)
		}
		for _, p := range paths {
			fmt.Fprintf(s.out, "Saved %s\n", p)
		}
	default:
		// Anything else means don't save.
	}

	if err := s.store.SetLastSession(); err != nil {
		log.WithError(err).Debug("stamping session")
	}
	return nil
}

func (s *Session) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

func isDone(symbol string) bool {
	switch symbol {
	case "DONE", "QUIT", "EXIT", "Q":
		return true
	}
	return false
}
