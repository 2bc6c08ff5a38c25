package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// chartResponse mirrors the subset of GET /v8/finance/chart/{ticker} we use.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta *chartMeta `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartMeta struct {
	Symbol             string   `json:"symbol"`
	Currency           string   `json:"currency"`
	RegularMarketPrice *float64 `json:"regularMarketPrice"`
	PreviousClose      *float64 `json:"previousClose"`
	ChartPreviousClose *float64 `json:"chartPreviousClose"`
}

// QuoteFields are the quote values extracted from chart.result[0].meta.
// Nil means the field was absent.
type QuoteFields struct {
	Symbol             string
	Currency           string
	RegularMarketPrice *float64
	PreviousClose      *float64
}

// Validate returns the price and previous close when both are present and
// positive.
func (f QuoteFields) Validate() (price, prevClose float64, err error) {
	if f.RegularMarketPrice == nil {
		return 0, 0, fmt.Errorf("%w: regularMarketPrice missing", ErrInvalidQuote)
	}
	if f.PreviousClose == nil {
		return 0, 0, fmt.Errorf("%w: previousClose missing", ErrInvalidQuote)
	}
	price, prevClose = *f.RegularMarketPrice, *f.PreviousClose
	if !(price > 0) || !(prevClose > 0) {
		return 0, 0, fmt.Errorf("%w: price=%v previousClose=%v", ErrInvalidQuote, price, prevClose)
	}
	return price, prevClose, nil
}

// ChartURL returns the request URL for ticker.
func (c *Client) ChartURL(ticker string) string {
	return c.baseURL + "/" + url.PathEscape(ticker)
}

// FetchChart fetches the raw chart payload for ticker. Any transport error or
// non-200 status matches ErrFetch.
func (c *Client) FetchChart(ctx context.Context, ticker string) ([]byte, error) {
	body, err := c.doWithRetry(ctx, c.ChartURL(ticker))
	if err != nil {
		return nil, fmt.Errorf("fetch chart %s: %w", ticker, err)
	}
	return body, nil
}

// ParseChart decodes a chart payload. Malformed JSON, an API-reported error,
// or a missing chart.result[0].meta all match ErrDecode. previousClose falls
// back to chartPreviousClose, which is what the chart endpoint usually
// carries.
func ParseChart(body []byte) (QuoteFields, error) {
	var resp chartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return QuoteFields{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if e := resp.Chart.Error; e != nil && len(resp.Chart.Result) == 0 {
		return QuoteFields{}, fmt.Errorf("%w: %s: %s", ErrDecode, e.Code, e.Description)
	}
	if len(resp.Chart.Result) == 0 || resp.Chart.Result[0].Meta == nil {
		return QuoteFields{}, fmt.Errorf("%w: no chart data found", ErrDecode)
	}

	meta := resp.Chart.Result[0].Meta
	prev := meta.PreviousClose
	if prev == nil {
		prev = meta.ChartPreviousClose
	}

	return QuoteFields{
		Symbol:             meta.Symbol,
		Currency:           meta.Currency,
		RegularMarketPrice: meta.RegularMarketPrice,
		PreviousClose:      prev,
	}, nil
}
