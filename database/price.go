package database

import (
	"context"
	"fmt"

	"github.com/angas/loadshift-go/convert"
	"github.com/angas/loadshift-go/types"
)

func (d *Database) SaveDayAheadPrices(ctx context.Context, zone string, points []types.PricePoint) error {
	for _, p := range points {
		_, err := d.write.ExecContext(ctx, `
			INSERT INTO energy_price (zone, date, hour, price_mwh, price_kwh) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(zone, date, hour) DO UPDATE SET
				price_mwh = excluded.price_mwh,
				price_kwh = excluded.price_kwh`,
			zone,
			p.Hour.Date,
			p.Hour.Hour,
			convert.RoundFloat64(p.PriceMWh, 2),
			convert.RoundFloat64(p.PriceKWh, 5))
		if err != nil {
			return fmt.Errorf("saving day-ahead price for %s: %w", p.Hour, err)
		}
	}
	return nil
}

// GetDayAheadPrices returns the stored price curve for one zone and day in
// chronological order, or an empty slice when nothing is stored.
func (d *Database) GetDayAheadPrices(ctx context.Context, zone, date string) ([]types.PricePoint, error) {
	rows, err := d.read.QueryContext(ctx, `
		SELECT date, hour, price_mwh, price_kwh
		FROM energy_price
		WHERE zone = ? AND date = ?
		ORDER BY hour ASC`,
		zone, date)
	if err != nil {
		return nil, fmt.Errorf("fetching day-ahead prices for %s %s: %w", zone, date, err)
	}
	defer rows.Close()

	var points []types.PricePoint
	for rows.Next() {
		var p types.PricePoint
		if err := rows.Scan(&p.Hour.Date, &p.Hour.Hour, &p.PriceMWh, &p.PriceKWh); err != nil {
			return nil, fmt.Errorf("scanning day-ahead price row: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading day-ahead price rows: %w", err)
	}

	return points, nil
}

func (d *Database) PurgeDayAheadPrices(ctx context.Context, retentionDays int) error {
	return d.purgeHourTable(ctx, "energy_price", retentionDays)
}
