package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/angas/loadshift-go/advisor"
	"github.com/angas/loadshift-go/config"
	"github.com/angas/loadshift-go/database"
	"github.com/angas/loadshift-go/entsoe"
	"github.com/angas/loadshift-go/ingest"
	"github.com/angas/loadshift-go/logging"
	"github.com/angas/loadshift-go/mockdata"
	"github.com/angas/loadshift-go/publisher"
	"github.com/angas/loadshift-go/task"
	"github.com/angas/loadshift-go/types"
	"github.com/angas/loadshift-go/www"
)

var Version = "?.?.?"

func main() {
	defer func() {
		if err := recover(); err != nil {
			exitWithError(slog.Default(), fmt.Errorf("application panicked: %v", err))
		} else {
			slog.Default().Info("application is shutting down...")
		}
	}()

	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consoleHandler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      cnfg.Logging.GetConsoleLevel(),
		TimeFormat: time.RFC3339,
	})
	slog.New(consoleHandler).Debug("loadshift is starting...", slog.String("version", Version))

	db, err := database.New(ctx, cnfg.Database.Path)
	if err != nil {
		panic(fmt.Sprintf("failed to connect to database: %v", err))
	}
	defer db.Close()

	logger := slog.New(logging.NewMultiHandler(
		consoleHandler,
		logging.NewSQLiteHandler(db, cnfg.Logging.GetDbLevel(), cnfg.Logging.GetDbAttrsFormat())))
	slog.SetDefault(logger)

	// Now we can use the logger to log database operations into the database itself
	db.SetLogger(logger.With("module", "database"))

	mock := mockdata.New(logger.With("module", "mockdata"), cnfg.MockData.GetDir())
	defer mock.Close()

	var providers []types.PriceProvider
	if cnfg.MockData.Force || cnfg.Entsoe.Token == "" {
		logger.Info("running on synthetic market data")
		providers = []types.PriceProvider{mock}
	} else {
		providers = []types.PriceProvider{
			entsoe.New(cnfg.Entsoe.GetBaseUrl(), cnfg.Entsoe.Token), // Primary provider
			mock, // Secondary provider
		}
	}

	in := ingest.New(logger.With("module", "ingest"), db, providers)

	var adv advisor.Advisor
	if cnfg.Advisor.ApiKey == "" {
		logger.Info("no advisor api key, using offline advice")
		adv = advisor.NewOffline(logger.With("module", "advisor"))
	} else {
		adv = advisor.NewOpenAI(logger.With("module", "advisor"),
			cnfg.Advisor.GetBaseUrl(), cnfg.Advisor.ApiKey, cnfg.Advisor.GetModel())
	}

	var pub *publisher.Publisher
	if cnfg.Mqtt.Enabled() {
		pub = publisher.New(
			cnfg.Mqtt.Host,
			cnfg.Mqtt.Port,
			cnfg.Mqtt.Username,
			cnfg.Mqtt.Password,
			cnfg.Mqtt.GetTopicPrefix())
		if err := pub.Connect(); err != nil {
			panic(fmt.Sprintf("mqtt connection error: %v", err))
		}
		defer pub.Disconnect()
	}

	tasks := task.NewTasks(db, in, cnfg)
	if isDevMode() {
		logger.Info("dev mode, skipping task scheduling")
	} else {
		tasks.Run()
		defer tasks.Stop()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-ctx.Done():
			logger.Info("main context done")
		case sig := <-sigCh:
			logger.Info("received signal", slog.Any("signal", sig))
			cancel()
		}
	}()

	server := www.StartServer(db, in, adv, pub, cnfg)
	server.Run(ctx)
}

func isDevMode() bool {
	return strings.EqualFold(os.Getenv("APP_ENV"), "development")
}

func exitWithError(logger *slog.Logger, err error) {
	if err != nil {
		logger.Error("application shutting down with error", slog.Any("error", err))
	}

	time.Sleep(2 * time.Second)
	os.Exit(1)
}
