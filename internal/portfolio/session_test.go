package portfolio

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ahmarkhann/sidekick/internal/store"
)

type stubQuotes struct {
	prices map[string]float64
	calls  int
}

func (s *stubQuotes) Price(_ context.Context, symbol string) (float64, error) {
	s.calls++
	if p, ok := s.prices[symbol]; ok {
		return p, nil
	}
	return 0, errors.New("no data")
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func runTrackerSession(t *testing.T, opts SessionOpts, input string) string {
	t.Helper()

	var out bytes.Buffer
	opts.In = strings.NewReader(input)
	opts.Out = &out
	if err := NewSession(opts).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return out.String()
}

func TestSessionLiveQuote(t *testing.T) {
	db := testStore(t)
	quotes := &stubQuotes{prices: map[string]float64{"AAPL": 187.5}}

	out := runTrackerSession(t, SessionOpts{
		Store:  db,
		Quotes: quotes,
		Live:   true,
	}, "aapl\n10\ndone\nno\n")

	if quotes.calls != 1 {
		t.Errorf("quote calls = %d, want 1", quotes.calls)
	}
	if !strings.Contains(out, "$187.50 (live)") {
		t.Errorf("output missing live price: %q", out)
	}

	positions, err := db.Positions()
	if err != nil {
		t.Fatalf("positions: %v", err)
	}
	if len(positions) != 1 || positions[0].Symbol != "AAPL" || positions[0].Quantity != 10 {
		t.Errorf("stored positions = %+v", positions)
	}
}

func TestSessionFallbackTable(t *testing.T) {
	db := testStore(t)

	out := runTrackerSession(t, SessionOpts{
		Store:    db,
		Fallback: map[string]float64{"tsla": 250.0},
	}, "TSLA\n2\ndone\nno\n")

	if !strings.Contains(out, "(price table)") {
		t.Errorf("output missing table price note: %q", out)
	}
	if !strings.Contains(out, "Added 2 x TSLA at $250.00.") {
		t.Errorf("output missing confirmation: %q", out)
	}
}

func TestSessionManualPrice(t *testing.T) {
	db := testStore(t)

	out := runTrackerSession(t, SessionOpts{Store: db},
		"XYZ\n$12.50\n4\ndone\nno\n")

	if !strings.Contains(out, "No price found for XYZ") {
		t.Errorf("output missing manual prompt: %q", out)
	}

	positions, _ := db.Positions()
	if len(positions) != 1 || positions[0].Price != 12.5 {
		t.Errorf("stored positions = %+v", positions)
	}
}

func TestSessionSkipsOnBlankPrice(t *testing.T) {
	db := testStore(t)

	out := runTrackerSession(t, SessionOpts{Store: db}, "XYZ\n\ndone\n")

	if !strings.Contains(out, "Skipping XYZ") {
		t.Errorf("output missing skip note: %q", out)
	}
	if count, _ := db.Count(); count != 0 {
		t.Errorf("blank price still stored %d positions", count)
	}
	if !strings.Contains(out, "Nothing tracked yet") {
		t.Errorf("empty portfolio summary missing: %q", out)
	}
}

func TestSessionRejectsBadQuantity(t *testing.T) {
	db := testStore(t)

	out := runTrackerSession(t, SessionOpts{
		Store:    db,
		Fallback: map[string]float64{"AAPL": 100},
	}, "AAPL\n-3\n2\ndone\nno\n")

	if !strings.Contains(out, "whole number greater than zero") {
		t.Errorf("output missing quantity complaint: %q", out)
	}
	positions, _ := db.Positions()
	if len(positions) != 1 || positions[0].Quantity != 2 {
		t.Errorf("stored positions = %+v", positions)
	}
}

func TestSessionSavesReports(t *testing.T) {
	db := testStore(t)
	dir := t.TempDir()

	out := runTrackerSession(t, SessionOpts{
		Store:      db,
		Fallback:   map[string]float64{"AAPL": 100},
		SaveFormat: "both",
		OutDir:     dir,
	}, "AAPL\n1\ndone\n")

	if got := strings.Count(out, "Saved "); got != 2 {
		t.Errorf("saved %d files, want 2\noutput: %q", got, out)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "portfolio_*"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("report files = %v, want txt and csv", matches)
	}
}

func TestSessionSummaryTable(t *testing.T) {
	db := testStore(t)

	out := runTrackerSession(t, SessionOpts{
		Fallback: map[string]float64{"AAPL": 180, "TSLA": 250},
		Store:    db,
	}, "AAPL\n10\nTSLA\n2\ndone\nno\n")

	for _, want := range []string{"AAPL", "TSLA", "TOTAL", "$2,300.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
