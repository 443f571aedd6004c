// Package ingest fetches market data through a provider chain and persists
// it. Providers are tried in order; the first one that answers wins, so a
// mock provider placed last acts as an offline fallback.
package ingest

import (
	"context"
	"log/slog"

	"github.com/angas/loadshift-go/database"
	"github.com/angas/loadshift-go/types"
)

type Ingestor struct {
	logger    *slog.Logger
	db        *database.Database
	providers []types.PriceProvider
}

func New(logger *slog.Logger, db *database.Database, providers []types.PriceProvider) *Ingestor {
	if len(providers) == 0 {
		panic("no price providers")
	}

	return &Ingestor{logger: logger, db: db, providers: providers}
}

// Prices fetches day-ahead prices for one zone and day and stores them.
func (in *Ingestor) Prices(ctx context.Context, zone, date string) ([]types.PricePoint, error) {
	points, err := fetchChained(ctx, in.logger, in.providers, zone, date,
		func(p types.PriceProvider) func(context.Context, string, string) ([]types.PricePoint, error) {
			return p.DayAheadPrices
		})
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		in.logger.Warn("no day-ahead prices published",
			slog.String("zone", zone), slog.String("date", date))
		return nil, nil
	}

	if err := in.db.SaveDayAheadPrices(ctx, zone, points); err != nil {
		return nil, err
	}

	in.logger.Info("ingested day-ahead prices",
		slog.String("zone", zone), slog.String("date", date), slog.Int("hours", len(points)))
	return points, nil
}

// Loads fetches actual grid load for one zone and day and stores it.
func (in *Ingestor) Loads(ctx context.Context, zone, date string) ([]types.LoadPoint, error) {
	points, err := fetchChained(ctx, in.logger, in.providers, zone, date,
		func(p types.PriceProvider) func(context.Context, string, string) ([]types.LoadPoint, error) {
			return p.ActualLoad
		})
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		in.logger.Warn("no actual load published",
			slog.String("zone", zone), slog.String("date", date))
		return nil, nil
	}

	if err := in.db.SaveActualLoad(ctx, zone, points); err != nil {
		return nil, err
	}

	in.logger.Info("ingested actual load",
		slog.String("zone", zone), slog.String("date", date), slog.Int("hours", len(points)))
	return points, nil
}

// PricesCached returns stored prices when present and ingests otherwise.
func (in *Ingestor) PricesCached(ctx context.Context, zone, date string) ([]types.PricePoint, error) {
	points, err := in.db.GetDayAheadPrices(ctx, zone, date)
	if err != nil {
		return nil, err
	}
	if len(points) > 0 {
		return points, nil
	}

	return in.Prices(ctx, zone, date)
}

// fetchChained walks the provider chain until one delivers a non-empty
// result. Errors from earlier providers are logged and swallowed; only the
// last provider's error is returned.
func fetchChained[T any](
	ctx context.Context,
	logger *slog.Logger,
	providers []types.PriceProvider,
	zone, date string,
	fetch func(types.PriceProvider) func(context.Context, string, string) ([]T, error),
) ([]T, error) {
	var lastErr error
	for _, provider := range providers {
		points, err := fetch(provider)(ctx, zone, date)
		if err != nil {
			logger.Warn("provider fetch failed",
				slog.String("provider", provider.Name()),
				slog.String("zone", zone),
				slog.String("date", date),
				slog.Any("error", err))
			lastErr = err
			continue
		}
		if len(points) == 0 {
			logger.Warn("provider returned no data",
				slog.String("provider", provider.Name()),
				slog.String("zone", zone),
				slog.String("date", date))
			continue
		}
		return points, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, nil
}
