package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testDB(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	db, err := Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAddLotAccumulates(t *testing.T) {
	db := testDB(t)

	if err := db.AddLot("aapl", 10, 180.0); err != nil {
		t.Fatalf("first lot: %v", err)
	}
	if err := db.AddLot(" AAPL ", 5, 190.0); err != nil {
		t.Fatalf("second lot: %v", err)
	}

	got, err := db.Positions()
	if err != nil {
		t.Fatalf("positions: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 position, got %d", len(got))
	}
	p := got[0]
	if p.Symbol != "AAPL" {
		t.Errorf("symbol = %q, want AAPL", p.Symbol)
	}
	if p.Quantity != 15 {
		t.Errorf("quantity = %d, want 15", p.Quantity)
	}
	if p.Price != 190.0 {
		t.Errorf("price = %v, want the latest price 190.0", p.Price)
	}
}

func TestPositionsOrdered(t *testing.T) {
	db := testDB(t)

	for _, sym := range []string{"TSLA", "AAPL", "MSFT"} {
		if err := db.AddLot(sym, 1, 1.0); err != nil {
			t.Fatalf("adding %s: %v", sym, err)
		}
	}

	got, err := db.Positions()
	if err != nil {
		t.Fatalf("positions: %v", err)
	}
	want := []string{"AAPL", "MSFT", "TSLA"}
	for i, sym := range want {
		if got[i].Symbol != sym {
			t.Errorf("position %d = %s, want %s", i, got[i].Symbol, sym)
		}
	}
}

func TestRemove(t *testing.T) {
	db := testDB(t)
	db.AddLot("AAPL", 10, 180.0)

	removed, err := db.Remove("aapl")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !removed {
		t.Error("expected Remove to report an existing symbol")
	}

	removed, err = db.Remove("AAPL")
	if err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if removed {
		t.Error("expected Remove=false for a missing symbol")
	}
}

func TestClear(t *testing.T) {
	db := testDB(t)
	db.AddLot("AAPL", 10, 180.0)
	db.AddLot("TSLA", 2, 250.0)

	dropped, err := db.Clear()
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if dropped != 2 {
		t.Errorf("expected 2 dropped, got %d", dropped)
	}

	count, err := db.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty store, got %d positions", count)
	}
}

func TestStats(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	db.AddLot("AAPL", 10, 180.0)

	count, size, err := db.Stats(dbPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
	if size == 0 {
		t.Error("expected non-zero db size")
	}
}

func TestLastSession(t *testing.T) {
	db := testDB(t)

	if _, err := db.LastSession(); err == nil {
		t.Error("expected error when no last_session set")
	}

	if err := db.SetLastSession(); err != nil {
		t.Fatalf("SetLastSession: %v", err)
	}
	got, err := db.LastSession()
	if err != nil {
		t.Fatalf("LastSession: %v", err)
	}
	if time.Since(got) > 2*time.Second {
		t.Errorf("last session too old: %v", got)
	}
}

func TestOpenCreatesDir(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "deep", "test.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("opening db in nested dir: %v", err)
	}
	db.Close()

	if _, err := os.Stat(filepath.Dir(dbPath)); os.IsNotExist(err) {
		t.Error("expected directory to be created")
	}
}
