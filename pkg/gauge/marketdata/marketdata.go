// Package marketdata fetches the external daily reference series (a
// market-volatility index) the monthly indices are merged against.
package marketdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tonegauge/tonegauge/pkg/gauge/index"
	"github.com/tonegauge/tonegauge/pkg/gauge/internalerr"
)

// endOfTime is the provider's sentinel for "through the present".
const endOfTime = "9999999999"

// Client downloads daily history CSVs from a quote provider.
type Client struct {
	httpc   *http.Client
	baseURL string
}

// NewClient creates a client for the given download endpoint, e.g.
// "https://query1.finance.yahoo.com/v7/finance/download".
func NewClient(baseURL string) *Client {
	return &Client{
		httpc:   &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// FetchDaily retrieves the daily (date, adjusted close) series for a
// symbol from the given start date through the present. Any failure is
// fatal to aggregation, so errors wrap ErrFeedUnavailable.
func (c *Client) FetchDaily(ctx context.Context, symbol string, from time.Time) ([]index.Observation, error) {
	url := fmt.Sprintf("%s/%s?period1=%d&period2=%s&interval=1d&events=history",
		c.baseURL, symbol, from.Unix(), endOfTime)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w: %v", internalerr.ErrFeedUnavailable, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w: %v", symbol, internalerr.ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %w: HTTP %d", symbol, internalerr.ErrFeedUnavailable, resp.StatusCode)
	}

	series, err := ParseDailyCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s series: %w: %v", symbol, internalerr.ErrFeedUnavailable, err)
	}
	return series, nil
}

// ParseDailyCSV parses a provider history CSV. Only the Date and
// Adj Close columns are used; rows with an unparsable value (the
// provider emits "null" on market holidays) are skipped.
func ParseDailyCSV(r io.Reader) ([]index.Observation, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("empty csv")
	}

	dateCol, valueCol := -1, -1
	for i, name := range records[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			dateCol = i
		case "adj close":
			valueCol = i
		}
	}
	if dateCol < 0 || valueCol < 0 {
		return nil, fmt.Errorf("csv header missing Date/Adj Close: %v", records[0])
	}

	var series []index.Observation
	for _, row := range records[1:] {
		if dateCol >= len(row) || valueCol >= len(row) {
			continue
		}
		date, err := time.Parse("2006-01-02", row[dateCol])
		if err != nil {
			continue
		}
		value, err := strconv.ParseFloat(row[valueCol], 64)
		if err != nil {
			continue
		}
		series = append(series, index.Observation{Date: date, Value: value})
	}
	return series, nil
}
