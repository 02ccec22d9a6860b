package portfolio

import (
	"fmt"
	"strings"

	"github.com/ahmarkhann/sidekick/internal/store"
)

// Row is one valued holding.
type Row struct {
	Symbol   string
	Quantity int64
	Price    float64
	Value    float64
}

// Valuation is a priced snapshot of the whole portfolio.
type Valuation struct {
	Rows  []Row
	Total float64
}

// Summarize values every position at its stored price.
func Summarize(positions []store.Position) Valuation {
	var v Valuation
	for _, p := range positions {
		value := float64(p.Quantity) * p.Price
		v.Rows = append(v.Rows, Row{
			Symbol:   p.Symbol,
			Quantity: p.Quantity,
			Price:    p.Price,
			Value:    value,
		})
		v.Total += value
	}
	return v
}

// FormatMoney renders a dollar amount with thousands separators, always
// with two decimals: 1234567.891 becomes "$1,234,567.89".
func FormatMoney(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, d := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
