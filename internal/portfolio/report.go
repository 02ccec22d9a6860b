package portfolio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// WriteText renders the fixed-width report used both on screen and in the
// saved .txt file.
func WriteText(w io.Writer, v Valuation, now time.Time) error {
	var b strings.Builder
	b.WriteString("Portfolio Report\n")
	b.WriteString("Generated: " + now.Format("2006-01-02 15:04:05") + "\n")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	b.WriteString(fmt.Sprintf("%-8s %6s %16s %18s\n", "Symbol", "Qty", "Price", "Value"))
	b.WriteString(strings.Repeat("-", 60) + "\n")
	for _, r := range v.Rows {
		b.WriteString(fmt.Sprintf("%-8s %6d %16s %18s\n",
			r.Symbol, r.Quantity, FormatMoney(r.Price), FormatMoney(r.Value)))
	}
	b.WriteString(strings.Repeat("-", 60) + "\n")
	b.WriteString(fmt.Sprintf("%-8s %6s %16s %18s\n", "TOTAL", "", "", FormatMoney(v.Total)))

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteCSV renders the machine-readable report.
func WriteCSV(w io.Writer, v Valuation) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Symbol", "Quantity", "Price", "Value"}); err != nil {
		return err
	}
	for _, r := range v.Rows {
		rec := []string{
			r.Symbol,
			strconv.FormatInt(r.Quantity, 10),
			fmt.Sprintf("%.2f", r.Price),
			fmt.Sprintf("%.2f", r.Value),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	if err := cw.Write([]string{"", "", "", ""}); err != nil {
		return err
	}
	if err := cw.Write([]string{"Total Investment", "", "", fmt.Sprintf("%.2f", v.Total)}); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

// ReportBaseName builds the timestamped stem shared by every saved format.
func ReportBaseName(now time.Time) string {
	return "portfolio_" + now.Format("20060102_150405")
}

// SaveReports writes the requested formats ("txt", "csv" or "both") into
// dir and returns the paths written.
func SaveReports(dir string, v Valuation, format string, now time.Time) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating report dir: %w", err)
	}

	base := filepath.Join(dir, ReportBaseName(now))
	var paths []string

	format = strings.ToLower(strings.TrimSpace(format))
	wantTxt := format == "txt" || format == "both"
	wantCSV := format == "csv" || format == "both"
	if !wantTxt && !wantCSV {
		return nil, fmt.Errorf("unknown report format %q", format)
	}

	if wantTxt {
		path := base + ".txt"
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("creating report: %w", err)
		}
		if err := WriteText(f, v, now); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing report: %w", err)
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	if wantCSV {
		path := base + ".csv"
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("creating report: %w", err)
		}
		if err := WriteCSV(f, v); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing report: %w", err)
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}
