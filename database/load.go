package database

import (
	"context"
	"fmt"

	"github.com/angas/loadshift-go/convert"
	"github.com/angas/loadshift-go/types"
)

func (d *Database) SaveActualLoad(ctx context.Context, zone string, points []types.LoadPoint) error {
	for _, p := range points {
		_, err := d.write.ExecContext(ctx, `
			INSERT INTO actual_load (zone, date, hour, load_mw) VALUES (?, ?, ?, ?)
			ON CONFLICT(zone, date, hour) DO UPDATE SET load_mw = excluded.load_mw`,
			zone,
			p.Hour.Date,
			p.Hour.Hour,
			convert.RoundFloat64(p.LoadMW, 2))
		if err != nil {
			return fmt.Errorf("saving actual load for %s: %w", p.Hour, err)
		}
	}
	return nil
}

func (d *Database) GetActualLoad(ctx context.Context, zone, date string) ([]types.LoadPoint, error) {
	rows, err := d.read.QueryContext(ctx, `
		SELECT date, hour, load_mw
		FROM actual_load
		WHERE zone = ? AND date = ?
		ORDER BY hour ASC`,
		zone, date)
	if err != nil {
		return nil, fmt.Errorf("fetching actual load for %s %s: %w", zone, date, err)
	}
	defer rows.Close()

	var points []types.LoadPoint
	for rows.Next() {
		var p types.LoadPoint
		if err := rows.Scan(&p.Hour.Date, &p.Hour.Hour, &p.LoadMW); err != nil {
			return nil, fmt.Errorf("scanning actual load row: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading actual load rows: %w", err)
	}

	return points, nil
}

func (d *Database) PurgeActualLoad(ctx context.Context, retentionDays int) error {
	return d.purgeHourTable(ctx, "actual_load", retentionDays)
}
