package task

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/angas/loadshift-go/config"
	"github.com/angas/loadshift-go/database"
	"github.com/angas/loadshift-go/ingest"
)

type Tasks struct {
	cron            *cron.Cron
	cnfg            *config.AppConfig
	MarketDataTask  func()
	MaintenanceTask func()
}

func NewTasks(db *database.Database, in *ingest.Ingestor, cnfg *config.AppConfig) *Tasks {
	logger := slog.Default().With("module", "tasks")
	return &Tasks{
		cron:            cron.New(),
		cnfg:            cnfg,
		MarketDataTask:  NewMarketDataTask(logger.With(slog.String("task", "market_data")), db, in, cnfg),
		MaintenanceTask: NewMaintenanceTask(logger.With(slog.String("task", "maintenance")), db, cnfg),
	}
}

func (t *Tasks) Run() {
	_, err := t.cron.AddFunc(t.cnfg.Entsoe.GetRunAt(), t.MarketDataTask)
	if err != nil {
		panic(err)
	}
	_, err = t.cron.AddFunc("30 2 * * *", t.MaintenanceTask)
	if err != nil {
		panic(err)
	}
	t.cron.Start()
}

func (t *Tasks) Stop() context.Context {
	return t.cron.Stop()
}
