package entsoe

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/angas/loadshift-go/convert"
	"github.com/angas/loadshift-go/hours"
	"github.com/angas/loadshift-go/types"
)

const periodLayout = "200601021504"

// Client fetches day-ahead prices and actual load from the ENTSO-E
// transparency platform web API.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Name() string {
	return "entsoe"
}

func (c *Client) DayAheadPrices(ctx context.Context, zone, date string) ([]types.PricePoint, error) {
	day, err := hours.ParseDate(date)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("documentType", documentTypeDayAheadPrices)
	params.Set("in_Domain", zone)
	params.Set("out_Domain", zone)

	body, err := c.get(ctx, day, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch day-ahead prices: %w", err)
	}

	prices, err := ParseDayAheadPrices(body)
	if err != nil {
		return nil, err
	}

	// The requested period straddles midnight in market time, keep the UTC day only.
	kept := make([]types.PricePoint, 0, len(prices))
	for _, p := range prices {
		if p.Hour.Date == date {
			kept = append(kept, p)
		}
	}
	return kept, nil
}

func (c *Client) ActualLoad(ctx context.Context, zone, date string) ([]types.LoadPoint, error) {
	day, err := hours.ParseDate(date)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("documentType", documentTypeActualLoad)
	params.Set("processType", processTypeRealised)
	params.Set("outBiddingZone_Domain", zone)

	body, err := c.get(ctx, day, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch actual load: %w", err)
	}

	loads, err := ParseActualLoad(body)
	if err != nil {
		return nil, err
	}

	kept := make([]types.LoadPoint, 0, len(loads))
	for _, l := range loads {
		if l.Hour.Date == date {
			kept = append(kept, l)
		}
	}
	return kept, nil
}

func (c *Client) get(ctx context.Context, day time.Time, params url.Values) ([]byte, error) {
	if c.token == "" {
		return nil, fmt.Errorf("entsoe api token is not configured")
	}

	params.Set("periodStart", day.Add(-2*time.Hour).Format(periodLayout))
	params.Set("periodEnd", day.Add(22*time.Hour).Format(periodLayout))
	params.Set("securityToken", c.token)

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// The API wraps errors (no data, bad params) in an acknowledgement document.
		var ack acknowledgementMarketDocument
		if xml.Unmarshal(body, &ack) == nil && ack.Reason.Text != "" {
			return nil, fmt.Errorf("entsoe rejected request (%d): %s", resp.StatusCode, ack.Reason.Text)
		}
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}

// ParseDayAheadPrices decodes a Publication_MarketDocument. Each Point has a
// 1-based position relative to the start of its period's time interval.
func ParseDayAheadPrices(data []byte) ([]types.PricePoint, error) {
	var doc publicationMarketDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode price document: %w", err)
	}

	var prices []types.PricePoint
	for _, ts := range doc.TimeSeries {
		for _, p := range ts.Periods {
			start, err := parseInterval(p.TimeInterval.Start)
			if err != nil {
				return nil, err
			}
			for _, pt := range p.Points {
				hour := start.Add(time.Duration(pt.Position-1) * time.Hour)
				// Rounded to 5 decimals so a parsed curve matches the same
				// curve read back from the store.
				prices = append(prices, types.PricePoint{
					Hour:     hours.FromTime(hour),
					PriceMWh: pt.Price,
					PriceKWh: convert.RoundFloat64(convert.MWhToKWhPrice(pt.Price), 5),
				})
			}
		}
	}

	return prices, nil
}

// ParseActualLoad decodes a GL_MarketDocument.
func ParseActualLoad(data []byte) ([]types.LoadPoint, error) {
	var doc glMarketDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode load document: %w", err)
	}

	var loads []types.LoadPoint
	for _, ts := range doc.TimeSeries {
		for _, p := range ts.Periods {
			start, err := parseInterval(p.TimeInterval.Start)
			if err != nil {
				return nil, err
			}
			for _, pt := range p.Points {
				hour := start.Add(time.Duration(pt.Position-1) * time.Hour)
				loads = append(loads, types.LoadPoint{
					Hour:   hours.FromTime(hour),
					LoadMW: pt.Quantity,
				})
			}
		}
	}

	return loads, nil
}

// Interval timestamps come as "2006-01-02T15:04Z", occasionally with seconds.
func parseInterval(str string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04Z07:00", time.RFC3339} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse time interval %q", str)
}
