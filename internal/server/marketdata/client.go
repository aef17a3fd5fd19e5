// Package marketdata is the client of the external market data service that
// owns quotes, fund search and analysis.
package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Austin-Patrician/eastmoney/internal/common"
	"github.com/Austin-Patrician/eastmoney/internal/netx"
	"github.com/shopspring/decimal"
)

// Per-call budgets. The client-wide timeout covers everything else.
const (
	DefaultTimeout = 30 * time.Second
	SearchTimeout  = 10 * time.Second
	HealthTimeout  = 5 * time.Second
)

// DefaultHistoryDays is used by StockHistory when days is not positive.
const DefaultHistoryDays = 100

// Quote is a real-time stock quote.
type Quote struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	Volume        decimal.Decimal `json:"volume"`
}

// Bar is one day of price history.
type Bar struct {
	Date   string          `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume decimal.Decimal `json:"volume"`
}

// Index is a market index level.
type Index struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
}

// Client talks to the data service over HTTP. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the service at baseURL. A non-positive timeout
// means DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SearchFunds returns the service's matches for keyword as-is; the result
// items are passed through to API callers untouched.
func (c *Client) SearchFunds(ctx context.Context, keyword string) ([]json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, SearchTimeout)
	defer cancel()

	var out []json.RawMessage
	if err := netx.GetJSON(ctx, c.http, c.url("/api/market/funds", url.Values{"q": {keyword}}), &out); err != nil {
		return nil, wrap("search funds", err)
	}
	if out == nil {
		out = []json.RawMessage{}
	}
	return out, nil
}

func (c *Client) StockQuote(ctx context.Context, code string) (*Quote, error) {
	var q Quote
	if err := netx.GetJSON(ctx, c.http, c.url("/api/data/stocks/quote/"+url.PathEscape(code), nil), &q); err != nil {
		return nil, wrap("stock quote", err)
	}
	return &q, nil
}

func (c *Client) StockHistory(ctx context.Context, code string, days int) ([]Bar, error) {
	if days <= 0 {
		days = DefaultHistoryDays
	}
	var bars []Bar
	u := c.url("/api/data/stocks/history/"+url.PathEscape(code), url.Values{"days": {strconv.Itoa(days)}})
	if err := netx.GetJSON(ctx, c.http, u, &bars); err != nil {
		return nil, wrap("stock history", err)
	}
	return bars, nil
}

func (c *Client) MarketIndices(ctx context.Context) ([]Index, error) {
	var idx []Index
	if err := netx.GetJSON(ctx, c.http, c.url("/api/data/market/indices", nil), &idx); err != nil {
		return nil, wrap("market indices", err)
	}
	return idx, nil
}

// Health reports whether the service answers its health endpoint with 2xx.
func (c *Client) Health(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, HealthTimeout)
	defer cancel()
	return netx.GetJSON(ctx, c.http, c.url("/health", nil), nil) == nil
}

func (c *Client) url(path string, q url.Values) string {
	if len(q) == 0 {
		return c.baseURL + path
	}
	return c.baseURL + path + "?" + q.Encode()
}

// wrap keeps the service's detail and marks transport failures as
// common.ErrUnavailable.
func wrap(op string, err error) error {
	var se *netx.StatusError
	if errors.As(err, &se) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, common.ErrUnavailable, err)
}
