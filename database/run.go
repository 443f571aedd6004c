package database

import (
	"context"
	"fmt"
	"time"
)

// OptimizationRunRow is one line of the run log, the audit trail of every
// optimization served.
type OptimizationRunRow struct {
	CreatedAt      time.Time `json:"created_at"`
	UserID         string    `json:"user_id,omitempty"`
	Zone           string    `json:"zone_eic"`
	Date           string    `json:"date_utc"`
	FlexibleKWh    float64   `json:"kwh_flexible"`
	MaxShiftHours  int       `json:"max_shift_hours"`
	BaselineCost   float64   `json:"baseline_cost_eur"`
	OptimizedCost  float64   `json:"optimized_cost_eur"`
	Savings        float64   `json:"savings_eur"`
	SavingsPercent float64   `json:"savings_percent"`
}

func (d *Database) SaveOptimizationRun(ctx context.Context, row OptimizationRunRow) error {
	createdAt := row.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := d.write.ExecContext(ctx, `
		INSERT INTO optimization_run
			(created_at, user_id, zone, date, flexible_kwh, max_shift_hours,
			 baseline_cost, optimized_cost, savings, savings_percent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		createdAt.UTC().Format(time.RFC3339),
		row.UserID,
		row.Zone,
		row.Date,
		row.FlexibleKWh,
		row.MaxShiftHours,
		row.BaselineCost,
		row.OptimizedCost,
		row.Savings,
		row.SavingsPercent)
	if err != nil {
		return fmt.Errorf("saving optimization run: %w", err)
	}
	return nil
}

func (d *Database) GetRecentOptimizationRuns(ctx context.Context, limit int) ([]OptimizationRunRow, error) {
	if limit < 1 {
		limit = 20
	}

	rows, err := d.read.QueryContext(ctx, `
		SELECT created_at, user_id, zone, date, flexible_kwh, max_shift_hours,
			baseline_cost, optimized_cost, savings, savings_percent
		FROM optimization_run
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching optimization runs: %w", err)
	}
	defer rows.Close()

	var runs []OptimizationRunRow
	for rows.Next() {
		var r OptimizationRunRow
		var createdAt string
		err := rows.Scan(&createdAt, &r.UserID, &r.Zone, &r.Date, &r.FlexibleKWh, &r.MaxShiftHours,
			&r.BaselineCost, &r.OptimizedCost, &r.Savings, &r.SavingsPercent)
		if err != nil {
			return nil, fmt.Errorf("scanning optimization run row: %w", err)
		}
		r.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing run timestamp: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading optimization run rows: %w", err)
	}

	return runs, nil
}

func (d *Database) PurgeOptimizationRuns(ctx context.Context, retentionDays int) error {
	d.logger.Debug("purging optimization runs")
	before := time.Now().UTC().AddDate(0, 0, -retentionDays).Format(time.RFC3339)
	_, err := d.write.ExecContext(ctx,
		"DELETE FROM optimization_run WHERE created_at < ?", before)
	if err != nil {
		return fmt.Errorf("purging optimization runs: %w", err)
	}
	return nil
}
