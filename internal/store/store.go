package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists portfolio positions in a local sqlite file. Reads go
// through a read-only handle; writes are serialized on a single connection.
type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS positions (
			symbol     TEXT PRIMARY KEY,
			quantity   INTEGER NOT NULL,
			price      REAL NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// AddLot records a purchase. Repeat symbols accumulate quantity and take
// the most recent price.
func (s *Store) AddLot(symbol string, quantity int64, price float64) error {
	_, err := s.writeDB.Exec(`
		INSERT INTO positions (symbol, quantity, price, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
			quantity = quantity + excluded.quantity,
			price = excluded.price,
			updated_at = excluded.updated_at
	`, strings.ToUpper(strings.TrimSpace(symbol)), quantity, price, time.Now())
	if err != nil {
		return fmt.Errorf("adding lot for %s: %w", symbol, err)
	}
	return nil
}

func (s *Store) Positions() ([]Position, error) {
	rows, err := s.readDB.Query(`
		SELECT symbol, quantity, price, updated_at
		FROM positions ORDER BY symbol
	`)
	if err != nil {
		return nil, fmt.Errorf("querying positions: %w", err)
	}
	defer rows.Close()

	var positions []Position
	for rows.Next() {
		var p Position
		if err := rows.Scan(&p.Symbol, &p.Quantity, &p.Price, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning position: %w", err)
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// Remove drops one symbol and reports whether it existed.
func (s *Store) Remove(symbol string) (bool, error) {
	res, err := s.writeDB.Exec(`DELETE FROM positions WHERE symbol = ?`,
		strings.ToUpper(strings.TrimSpace(symbol)))
	if err != nil {
		return false, fmt.Errorf("removing %s: %w", symbol, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Clear empties the portfolio and returns how many positions were dropped.
func (s *Store) Clear() (int64, error) {
	res, err := s.writeDB.Exec(`DELETE FROM positions`)
	if err != nil {
		return 0, fmt.Errorf("clearing positions: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) Count() (int64, error) {
	var count int64
	err := s.readDB.QueryRow(`SELECT COUNT(*) FROM positions`).Scan(&count)
	return count, err
}

// Stats reports the position count and the database file size.
func (s *Store) Stats(dbPath string) (count int64, size int64, err error) {
	count, err = s.Count()
	if err != nil {
		return 0, 0, fmt.Errorf("counting positions: %w", err)
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return 0, 0, fmt.Errorf("reading db file: %w", err)
	}
	return count, info.Size(), nil
}

func (s *Store) SetLastSession() error {
	_, err := s.writeDB.Exec(`
		INSERT INTO meta (key, value) VALUES ('last_session', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, time.Now().Format(time.RFC3339))
	return err
}

func (s *Store) LastSession() (time.Time, error) {
	var value string
	err := s.readDB.QueryRow(`SELECT value FROM meta WHERE key = 'last_session'`).Scan(&value)
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, value)
}
