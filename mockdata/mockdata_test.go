package mockdata

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/angas/loadshift-go/hours"
	"github.com/angas/loadshift-go/types"
)

func TestGeneratePricesShape(t *testing.T) {
	prices, err := GeneratePrices("2025-09-05")
	if err != nil {
		t.Fatalf("GeneratePrices() error: %v", err)
	}

	if len(prices) != 24 {
		t.Fatalf("expected 24 hourly points, got %d", len(prices))
	}

	for i, p := range prices {
		if int(p.Hour.Hour) != i {
			t.Errorf("point %d: expected hour %d, got %d", i, i, p.Hour.Hour)
		}
		if p.Hour.Date != "2025-09-05" {
			t.Errorf("point %d: expected date 2025-09-05, got %s", i, p.Hour.Date)
		}
		if p.PriceMWh <= 0 {
			t.Errorf("point %d: expected positive price, got %v", i, p.PriceMWh)
		}
		kwh := p.PriceMWh / 1000.0
		if diff := p.PriceKWh - kwh; diff > 1e-5 || diff < -1e-5 {
			t.Errorf("point %d: kWh price %v inconsistent with MWh price %v", i, p.PriceKWh, p.PriceMWh)
		}
	}

	// Night hours must be cheaper than the evening peak on average.
	night := (prices[0].PriceMWh + prices[1].PriceMWh + prices[2].PriceMWh) / 3
	evening := (prices[18].PriceMWh + prices[19].PriceMWh + prices[20].PriceMWh) / 3
	if night >= evening {
		t.Errorf("expected night (%v) cheaper than evening peak (%v)", night, evening)
	}
}

func TestGeneratePricesDeterministic(t *testing.T) {
	first, err := GeneratePrices("2025-09-05")
	if err != nil {
		t.Fatalf("GeneratePrices() error: %v", err)
	}
	second, err := GeneratePrices("2025-09-05")
	if err != nil {
		t.Fatalf("GeneratePrices() error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same date must generate the same curve")
	}

	other, err := GeneratePrices("2025-09-06")
	if err != nil {
		t.Fatalf("GeneratePrices() error: %v", err)
	}
	if reflect.DeepEqual(first, other) {
		t.Errorf("different dates should generate different curves")
	}
}

func TestGenerateLoadDeterministic(t *testing.T) {
	first, err := GenerateLoad("2025-09-05")
	if err != nil {
		t.Fatalf("GenerateLoad() error: %v", err)
	}
	if len(first) != 24 {
		t.Fatalf("expected 24 hourly points, got %d", len(first))
	}

	second, err := GenerateLoad("2025-09-05")
	if err != nil {
		t.Fatalf("GenerateLoad() error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same date must generate the same load shape")
	}
}

func TestGeneratePricesInvalidDate(t *testing.T) {
	if _, err := GeneratePrices("not-a-date"); err == nil {
		t.Errorf("expected error for invalid date")
	}
}

func TestProviderPrefersFixture(t *testing.T) {
	dir := t.TempDir()
	fixture := []types.PricePoint{
		{Hour: datehour("2025-09-05", 0), PriceMWh: 10, PriceKWh: 0.01},
		{Hour: datehour("2025-09-05", 1), PriceMWh: 20, PriceKWh: 0.02},
	}
	writeFixture(t, dir, "10YNL----------L_2025-09-05.prices.json", fixture)

	p := New(slog.Default(), dir)
	defer p.Close()

	got, err := p.DayAheadPrices(context.Background(), "10YNL----------L", "2025-09-05")
	if err != nil {
		t.Fatalf("DayAheadPrices() error: %v", err)
	}
	if !reflect.DeepEqual(got, fixture) {
		t.Errorf("expected fixture data, got %+v", got)
	}

	// Unknown zone falls back to the generator.
	generated, err := p.DayAheadPrices(context.Background(), "10YDE----------X", "2025-09-05")
	if err != nil {
		t.Fatalf("DayAheadPrices() error: %v", err)
	}
	if len(generated) != 24 {
		t.Errorf("expected generated 24 hour curve, got %d points", len(generated))
	}
}

func TestProviderWithoutFixtureDir(t *testing.T) {
	p := New(slog.Default(), "")
	defer p.Close()

	loads, err := p.ActualLoad(context.Background(), "10YNL----------L", "2025-09-05")
	if err != nil {
		t.Fatalf("ActualLoad() error: %v", err)
	}
	if len(loads) != 24 {
		t.Errorf("expected generated 24 hour load shape, got %d points", len(loads))
	}
}

func datehour(date string, hour uint8) hours.DateHour {
	return hours.DateHour{Date: date, Hour: hour}
}

func writeFixture(t *testing.T, dir, name string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}
