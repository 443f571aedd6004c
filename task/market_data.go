package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/angas/loadshift-go/config"
	"github.com/angas/loadshift-go/database"
	"github.com/angas/loadshift-go/hours"
	"github.com/angas/loadshift-go/ingest"
)

// NewMarketDataTask returns the scheduled job that keeps day-ahead prices
// and actual load current for all configured zones. When tomorrow's prices
// for the first zone are missing at startup the job also runs immediately.
func NewMarketDataTask(logger *slog.Logger, db *database.Database, in *ingest.Ingestor, cnfg *config.AppConfig) func() {
	zones := cnfg.Entsoe.GetZones()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if needImmediateMarketDataUpdate(ctx, db, zones[0]) {
		logger.Info("need an immediate update of market data")
		runMarketDataTask(logger, in, zones)
	} else {
		logger.Debug("no need for immediate update of market data")
	}

	return func() { runMarketDataTask(logger, in, zones) }
}

func runMarketDataTask(logger *slog.Logger, in *ingest.Ingestor, zones []string) {
	logger.Debug("running market data task...")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dates := []string{hours.Today(), hours.Tomorrow()}
	for _, zone := range zones {
		for _, date := range dates {
			if _, err := in.Prices(ctx, zone, date); err != nil {
				logger.Error("market data task error, fetching prices",
					slog.String("zone", zone), slog.String("date", date), slog.Any("error", err))
			}
		}

		// Actual load is published in arrears, yesterday is the freshest
		// complete day.
		yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
		if _, err := in.Loads(ctx, zone, yesterday); err != nil {
			logger.Error("market data task error, fetching load",
				slog.String("zone", zone), slog.String("date", yesterday), slog.Any("error", err))
		}
	}

	logger.Info("market data task done", slog.Int("zones", len(zones)))
}

func needImmediateMarketDataUpdate(ctx context.Context, db *database.Database, zone string) bool {
	points, err := db.GetDayAheadPrices(ctx, zone, hours.Tomorrow())
	if err != nil || len(points) == 0 {
		return true
	}
	return false
}
