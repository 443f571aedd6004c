// Package mockdata is the synthetic market-data provider. It serves JSON
// fixture files when they exist and otherwise generates a plausible daily
// price/load shape from a PRNG seeded by the date, so repeated fetches for
// the same day are identical.
package mockdata

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"

	"github.com/angas/loadshift-go/convert"
	"github.com/angas/loadshift-go/hours"
	"github.com/angas/loadshift-go/types"
)

const (
	basePriceMWh = 80.0    // EUR/MWh
	baseLoadMW   = 12000.0 // MW

	priceSeedOffset = 42
	loadSeedOffset  = 99
)

type Provider struct {
	logger   *slog.Logger
	fixtures *fixtureCache
}

// New returns a provider backed by fixture files in dir. An empty dir
// disables fixtures and every request is answered by the generator.
func New(logger *slog.Logger, dir string) *Provider {
	p := &Provider{logger: logger}
	if dir != "" {
		p.fixtures = newFixtureCache(logger, dir)
	}
	return p
}

func (p *Provider) Close() {
	if p.fixtures != nil {
		p.fixtures.Close()
	}
}

func (p *Provider) Name() string {
	return "mockdata"
}

func (p *Provider) DayAheadPrices(ctx context.Context, zone, date string) ([]types.PricePoint, error) {
	if _, err := hours.ParseDate(date); err != nil {
		return nil, err
	}

	if p.fixtures != nil {
		if prices, ok := p.fixtures.Prices(zone, date); ok {
			p.logger.Debug("serving day-ahead prices from fixture",
				slog.String("zone", zone), slog.String("date", date))
			return prices, nil
		}
	}

	return GeneratePrices(date)
}

func (p *Provider) ActualLoad(ctx context.Context, zone, date string) ([]types.LoadPoint, error) {
	if _, err := hours.ParseDate(date); err != nil {
		return nil, err
	}

	if p.fixtures != nil {
		if loads, ok := p.fixtures.Loads(zone, date); ok {
			p.logger.Debug("serving actual load from fixture",
				slog.String("zone", zone), slog.String("date", date))
			return loads, nil
		}
	}

	return GenerateLoad(date)
}

// GeneratePrices builds a 24 hour curve with cheap nights, a morning and an
// evening peak. The PRNG seed is derived from the date alone, identical
// dates always yield identical curves.
func GeneratePrices(date string) ([]types.PricePoint, error) {
	seed, err := dateSeed(date, priceSeedOffset)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))

	prices := make([]types.PricePoint, 0, 24)
	for hour := 0; hour < 24; hour++ {
		var multiplier float64
		switch {
		case hour <= 5:
			multiplier = 0.7 + uniform(rng, -0.1, 0.1)
		case hour <= 9:
			multiplier = 1.2 + uniform(rng, -0.1, 0.2)
		case hour <= 16:
			multiplier = 1.0 + uniform(rng, -0.1, 0.1)
		case hour <= 21:
			multiplier = 1.3 + uniform(rng, -0.1, 0.2)
		default:
			multiplier = 0.9 + uniform(rng, -0.1, 0.1)
		}

		priceMWh := convert.TwoDecimals(basePriceMWh * multiplier)
		prices = append(prices, types.PricePoint{
			Hour:     hours.FromDate(date, uint8(hour)),
			PriceMWh: priceMWh,
			PriceKWh: convert.RoundFloat64(convert.MWhToKWhPrice(priceMWh), 5),
		})
	}

	return prices, nil
}

// GenerateLoad builds a 24 hour grid load shape for the date, low at night
// and peaking in the evening.
func GenerateLoad(date string) ([]types.LoadPoint, error) {
	seed, err := dateSeed(date, loadSeedOffset)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))

	loads := make([]types.LoadPoint, 0, 24)
	for hour := 0; hour < 24; hour++ {
		var multiplier float64
		switch {
		case hour <= 5:
			multiplier = 0.6 + uniform(rng, -0.05, 0.05)
		case hour <= 9:
			multiplier = 0.9 + uniform(rng, -0.05, 0.1)
		case hour <= 17:
			multiplier = 1.0 + uniform(rng, -0.05, 0.05)
		case hour <= 21:
			multiplier = 1.1 + uniform(rng, -0.05, 0.1)
		default:
			multiplier = 0.8 + uniform(rng, -0.05, 0.05)
		}

		loads = append(loads, types.LoadPoint{
			Hour:   hours.FromDate(date, uint8(hour)),
			LoadMW: convert.TwoDecimals(baseLoadMW * multiplier),
		})
	}

	return loads, nil
}

func dateSeed(date string, offset int64) (int64, error) {
	if _, err := hours.ParseDate(date); err != nil {
		return 0, err
	}
	digits, err := strconv.ParseInt(strings.ReplaceAll(date, "-", ""), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to derive seed from date %q: %w", date, err)
	}
	return offset + digits, nil
}

func uniform(rng *rand.Rand, low, high float64) float64 {
	return low + rng.Float64()*(high-low)
}

var _ types.PriceProvider = (*Provider)(nil)
