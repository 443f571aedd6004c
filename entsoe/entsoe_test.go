package entsoe

import (
	"testing"

	"github.com/angas/loadshift-go/hours"
)

const priceDocument = `<?xml version="1.0" encoding="UTF-8"?>
<Publication_MarketDocument xmlns="urn:iec62325.351:tc57wg16:451-3:publicationdocument:7:0">
	<mRID>5a61b0c8e85f4a3e</mRID>
	<type>A44</type>
	<TimeSeries>
		<mRID>1</mRID>
		<currency_Unit.name>EUR</currency_Unit.name>
		<price_Measure_Unit.name>MWH</price_Measure_Unit.name>
		<Period>
			<timeInterval>
				<start>2025-09-04T22:00Z</start>
				<end>2025-09-05T22:00Z</end>
			</timeInterval>
			<resolution>PT60M</resolution>
			<Point>
				<position>1</position>
				<price.amount>56.10</price.amount>
			</Point>
			<Point>
				<position>2</position>
				<price.amount>48.25</price.amount>
			</Point>
			<Point>
				<position>3</position>
				<price.amount>80.00</price.amount>
			</Point>
		</Period>
	</TimeSeries>
</Publication_MarketDocument>`

const loadDocument = `<?xml version="1.0" encoding="UTF-8"?>
<GL_MarketDocument xmlns="urn:iec62325.351:tc57wg16:451-6:generationloaddocument:3:0">
	<mRID>f00e5f4b9c2d4f8a</mRID>
	<type>A65</type>
	<TimeSeries>
		<mRID>1</mRID>
		<Period>
			<timeInterval>
				<start>2025-09-05T00:00Z</start>
				<end>2025-09-05T02:00Z</end>
			</timeInterval>
			<resolution>PT60M</resolution>
			<Point>
				<position>1</position>
				<quantity>11850.25</quantity>
			</Point>
			<Point>
				<position>2</position>
				<quantity>11204.00</quantity>
			</Point>
		</Period>
	</TimeSeries>
</GL_MarketDocument>`

func TestParseDayAheadPrices(t *testing.T) {
	prices, err := ParseDayAheadPrices([]byte(priceDocument))
	if err != nil {
		t.Fatalf("ParseDayAheadPrices() error: %v", err)
	}

	if len(prices) != 3 {
		t.Fatalf("expected 3 price points, got %d", len(prices))
	}

	first := prices[0]
	if first.Hour != (hours.DateHour{Date: "2025-09-04", Hour: 22}) {
		t.Errorf("expected first point at 2025-09-04 22, got %v", first.Hour)
	}
	if first.PriceMWh != 56.10 {
		t.Errorf("expected 56.10 EUR/MWh, got %v", first.PriceMWh)
	}
	// The kWh price is rounded to 5 decimals on parse, so exact
	// comparison holds even when the raw division is not representable.
	if first.PriceKWh != 0.0561 {
		t.Errorf("expected 0.0561 EUR/kWh, got %v", first.PriceKWh)
	}
	if prices[1].PriceKWh != 0.04825 {
		t.Errorf("expected 0.04825 EUR/kWh, got %v", prices[1].PriceKWh)
	}

	// Positions advance one hour each from the interval start.
	if prices[2].Hour != (hours.DateHour{Date: "2025-09-05", Hour: 0}) {
		t.Errorf("expected third point at 2025-09-05 00, got %v", prices[2].Hour)
	}
}

func TestParseActualLoad(t *testing.T) {
	loads, err := ParseActualLoad([]byte(loadDocument))
	if err != nil {
		t.Fatalf("ParseActualLoad() error: %v", err)
	}

	if len(loads) != 2 {
		t.Fatalf("expected 2 load points, got %d", len(loads))
	}
	if loads[0].Hour != (hours.DateHour{Date: "2025-09-05", Hour: 0}) {
		t.Errorf("expected first point at 2025-09-05 00, got %v", loads[0].Hour)
	}
	if loads[1].LoadMW != 11204.00 {
		t.Errorf("expected 11204.00 MW, got %v", loads[1].LoadMW)
	}
}

func TestParseDayAheadPricesMalformed(t *testing.T) {
	if _, err := ParseDayAheadPrices([]byte("this is not xml")); err == nil {
		t.Errorf("expected error for malformed document")
	}
}

func TestParseIntervalLayouts(t *testing.T) {
	for _, str := range []string{"2025-09-04T22:00Z", "2025-09-04T22:00:00Z"} {
		if _, err := parseInterval(str); err != nil {
			t.Errorf("parseInterval(%q) error: %v", str, err)
		}
	}
	if _, err := parseInterval("22:00"); err == nil {
		t.Errorf("expected error for unparsable interval")
	}
}
