package quote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	defaultChartEndpoint = "https://query1.finance.yahoo.com/v8/finance/chart/%s?range=1d&interval=1d"

	userAgent    = "sidekick/1.0 (+https://github.com/ahmarkhann/sidekick)"
	quoteTimeout = 6 * time.Second
)

// ErrNoPrice reports a well-formed chart response that carries no usable
// price for the symbol.
var ErrNoPrice = errors.New("no price in chart response")

// Client fetches last-traded prices from a public chart API.
type Client struct {
	httpClient    *http.Client
	chartEndpoint string
}

func NewClient() *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: quoteTimeout},
		chartEndpoint: defaultChartEndpoint,
	}
}

// Price returns the latest market price for a ticker symbol.
func (c *Client) Price(ctx context.Context, symbol string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, quoteTimeout)
	defer cancel()

	rawURL := fmt.Sprintf(c.chartEndpoint, strings.ToUpper(strings.TrimSpace(symbol)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("chart request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if desc := gjson.GetBytes(body, "chart.error.description").String(); desc != "" {
			return 0, fmt.Errorf("chart API %d: %s", resp.StatusCode, desc)
		}
		return 0, fmt.Errorf("chart API status %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return 0, fmt.Errorf("malformed chart response")
	}

	if price := gjson.GetBytes(body, "chart.result.0.meta.regularMarketPrice"); price.Exists() {
		return price.Float(), nil
	}

	// Older payloads omit the meta price; fall back to the last close.
	closes := gjson.GetBytes(body, "chart.result.0.indicators.quote.0.close").Array()
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i].Type != gjson.Null {
			return closes[i].Float(), nil
		}
	}
	return 0, ErrNoPrice
}
