package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

const testConfig = `
api:
  address: "0.0.0.0"
  port: 8000

database:
  path: "/tmp/loadshift.db"
  data_retention_days: 30

entsoe:
  token: "test-token"
  zones:
    - "10YNL----------L"
    - "10YBE----------2"

mock_data:
  force: true

optimizer:
  default_flexible_kwh: 4.5

mqtt:
  host: "broker.local"
  port: 1883

logging:
  console_level: "DEBUG"
`

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	cnfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	t.Run("Api", func(t *testing.T) {
		if cnfg.Api.Address != "0.0.0.0" {
			t.Errorf("expected address 0.0.0.0, got %q", cnfg.Api.Address)
		}
		if cnfg.Api.Port != 8000 {
			t.Errorf("expected port 8000, got %d", cnfg.Api.Port)
		}
	})

	t.Run("Database", func(t *testing.T) {
		if cnfg.Database.Path != "/tmp/loadshift.db" {
			t.Errorf("expected database path /tmp/loadshift.db, got %q", cnfg.Database.Path)
		}
		if cnfg.Database.GetDataRetentionDays() != 30 {
			t.Errorf("expected data retention 30, got %d", cnfg.Database.GetDataRetentionDays())
		}
		if cnfg.Database.GetBackupRetentionDays() != 90 {
			t.Errorf("expected default backup retention 90, got %d", cnfg.Database.GetBackupRetentionDays())
		}
	})

	t.Run("Entsoe", func(t *testing.T) {
		if cnfg.Entsoe.Token != "test-token" {
			t.Errorf("expected token test-token, got %q", cnfg.Entsoe.Token)
		}
		zones := cnfg.Entsoe.GetZones()
		if len(zones) != 2 || zones[0] != "10YNL----------L" {
			t.Errorf("unexpected zones %v", zones)
		}
		if cnfg.Entsoe.GetBaseUrl() != "https://web-api.tp.entsoe.eu/api" {
			t.Errorf("expected default base url, got %q", cnfg.Entsoe.GetBaseUrl())
		}
		if cnfg.Entsoe.GetRunAt() != "15 13 * * *" {
			t.Errorf("expected default run_at, got %q", cnfg.Entsoe.GetRunAt())
		}
	})

	t.Run("MockData", func(t *testing.T) {
		if !cnfg.MockData.Force {
			t.Errorf("expected mock data forced")
		}
		if cnfg.MockData.GetDir() != "" {
			t.Errorf("expected empty fixture dir, got %q", cnfg.MockData.GetDir())
		}
	})

	t.Run("Optimizer", func(t *testing.T) {
		if cnfg.Optimizer.GetDefaultFlexibleKWh() != 4.5 {
			t.Errorf("expected default flexible 4.5, got %f", cnfg.Optimizer.GetDefaultFlexibleKWh())
		}
		if cnfg.Optimizer.GetDefaultMaxShiftHours() != 3 {
			t.Errorf("expected default max shift hours 3, got %d", cnfg.Optimizer.GetDefaultMaxShiftHours())
		}
	})

	t.Run("Mqtt", func(t *testing.T) {
		if !cnfg.Mqtt.Enabled() {
			t.Errorf("expected mqtt enabled when host is set")
		}
		if cnfg.Mqtt.GetTopicPrefix() != "loadshift" {
			t.Errorf("expected default topic prefix, got %q", cnfg.Mqtt.GetTopicPrefix())
		}
	})

	t.Run("Advisor", func(t *testing.T) {
		if cnfg.Advisor.ApiKey != "" {
			t.Errorf("expected no advisor api key, got %q", cnfg.Advisor.ApiKey)
		}
		if cnfg.Advisor.GetModel() != "gpt-4.1" {
			t.Errorf("expected default model, got %q", cnfg.Advisor.GetModel())
		}
	})

	t.Run("Logging", func(t *testing.T) {
		if cnfg.Logging.GetConsoleLevel() != slog.LevelDebug {
			t.Errorf("expected console level DEBUG, got %v", cnfg.Logging.GetConsoleLevel())
		}
		if cnfg.Logging.GetDbLevel() != slog.LevelInfo {
			t.Errorf("expected default db level INFO, got %v", cnfg.Logging.GetDbLevel())
		}
	})
}
