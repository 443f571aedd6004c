package types

import (
	"context"

	"github.com/angas/loadshift-go/hours"
)

// PricePoint is one hour of the day-ahead price curve for a bidding zone.
type PricePoint struct {
	Hour     hours.DateHour `json:"hour_utc"`
	PriceMWh float64        `json:"price_eur_mwh"` // Market-cleared price in EUR/MWh
	PriceKWh float64        `json:"price_eur_kwh"` // PriceMWh / 1000
}

// LoadPoint is one hour of actual grid load for a bidding zone.
type LoadPoint struct {
	Hour   hours.DateHour `json:"hour_utc"`
	LoadMW float64        `json:"load_mw"`
}

// PriceProvider fetches hourly market data for a bidding zone (EIC code)
// and one UTC calendar day. Implementations may return an empty slice when
// the market has not published data for the requested day yet.
type PriceProvider interface {
	Name() string
	DayAheadPrices(ctx context.Context, zone, date string) ([]PricePoint, error)
	ActualLoad(ctx context.Context, zone, date string) ([]LoadPoint, error)
}
