// Command fixturegen writes synthetic price and load fixture files for one
// zone and day into a mock data directory.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"

	"github.com/angas/loadshift-go/hours"
	"github.com/angas/loadshift-go/mockdata"
)

func main() {
	w := os.Stdout
	logger := slog.New(tint.NewHandler(w, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.RFC3339Nano,
	}))

	dir := flag.String("dir", "mockdata", "directory to write fixture files into")
	zone := flag.String("zone", "10YNL----------L", "bidding zone EIC code")
	date := flag.String("date", hours.Today(), "day to generate, YYYY-MM-DD")
	flag.Parse()

	if _, err := hours.ParseDate(*date); err != nil {
		logger.Error("invalid date", slog.Any("error", err))
		os.Exit(1)
	}
	if err := os.MkdirAll(*dir, 0o755); err != nil {
		logger.Error("failed to create fixture directory", slog.Any("error", err))
		os.Exit(1)
	}

	prices, err := mockdata.GeneratePrices(*date)
	if err != nil {
		logger.Error("failed to generate prices", slog.Any("error", err))
		os.Exit(1)
	}
	loads, err := mockdata.GenerateLoad(*date)
	if err != nil {
		logger.Error("failed to generate loads", slog.Any("error", err))
		os.Exit(1)
	}

	if err := writeFixture(*dir, *zone, *date, "prices", prices); err != nil {
		logger.Error("failed to write price fixture", slog.Any("error", err))
		os.Exit(1)
	}
	if err := writeFixture(*dir, *zone, *date, "loads", loads); err != nil {
		logger.Error("failed to write load fixture", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("fixtures written",
		slog.String("dir", *dir),
		slog.String("zone", *zone),
		slog.String("date", *date),
		slog.Int("hours", len(prices)))
}

func writeFixture(dir, zone, date, kind string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	name := filepath.Join(dir, fmt.Sprintf("%s_%s.%s.json", zone, date, kind))
	return os.WriteFile(name, data, 0o644)
}
