package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/angas/loadshift-go/logging"
	"github.com/spf13/viper"
)

type AppConfigApi struct {
	Address string
	Port    int16
}

type AppConfigDatabase struct {
	Path string
	// How many days data should be stored in database before it gets purged
	DataRetentionDays *int `mapstructure:"data_retention_days"`
	// How many days daily backup files should be stored before they gets deleted
	BackupRetentionDays *int `mapstructure:"backup_retention_days"`
}

func (d AppConfigDatabase) GetDataRetentionDays() int {
	if d.DataRetentionDays == nil {
		return 90
	}
	return *d.DataRetentionDays
}

func (d AppConfigDatabase) GetBackupRetentionDays() int {
	if d.BackupRetentionDays == nil {
		return 90
	}
	return *d.BackupRetentionDays
}

type AppConfigEntsoe struct {
	// Transparency platform endpoint
	BaseUrl *string `mapstructure:"base_url"`
	// Security token handed out by ENTSO-E on request. Without a token the
	// application runs on synthetic data only.
	Token string `mapstructure:"token"`
	// Bidding zones (EIC codes) to ingest, e.g. "10YNL----------L"
	Zones []string `mapstructure:"zones"`
	// When to fetch day-ahead prices; they are published around 13:00 CET
	RunAt *string `mapstructure:"run_at"`
}

func (e AppConfigEntsoe) GetBaseUrl() string {
	if e.BaseUrl == nil {
		return "https://web-api.tp.entsoe.eu/api"
	}
	return *e.BaseUrl
}

func (e AppConfigEntsoe) GetZones() []string {
	if len(e.Zones) == 0 {
		return []string{"10YNL----------L"}
	}
	return e.Zones
}

func (e AppConfigEntsoe) GetRunAt() string {
	if e.RunAt == nil {
		return "15 13 * * *"
	}
	return *e.RunAt
}

type AppConfigMockData struct {
	// Force synthetic data even when an ENTSO-E token is configured
	Force bool `mapstructure:"force"`
	// Directory with fixture files ({zone}_{date}.prices.json), optional
	Dir *string `mapstructure:"dir"`
}

func (m AppConfigMockData) GetDir() string {
	if m.Dir == nil {
		return ""
	}
	return *m.Dir
}

type AppConfigOptimizer struct {
	// Defaults applied when a request leaves the fields out
	DefaultFlexibleKWh   *float64 `mapstructure:"default_flexible_kwh"`
	DefaultMaxShiftHours *int     `mapstructure:"default_max_shift_hours"`
}

func (o AppConfigOptimizer) GetDefaultFlexibleKWh() float64 {
	if o.DefaultFlexibleKWh == nil {
		return 6.0
	}
	return *o.DefaultFlexibleKWh
}

func (o AppConfigOptimizer) GetDefaultMaxShiftHours() int {
	if o.DefaultMaxShiftHours == nil {
		return 3
	}
	return *o.DefaultMaxShiftHours
}

type AppConfigAdvisor struct {
	// API key for an OpenAI-compatible chat completions endpoint. Without a
	// key the deterministic offline advisor answers all requests.
	ApiKey  string  `mapstructure:"api_key"`
	BaseUrl *string `mapstructure:"base_url"`
	Model   *string `mapstructure:"model"`
}

func (a AppConfigAdvisor) GetBaseUrl() string {
	if a.BaseUrl == nil {
		return "https://api.openai.com/v1"
	}
	return *a.BaseUrl
}

func (a AppConfigAdvisor) GetModel() string {
	if a.Model == nil {
		return "gpt-4.1"
	}
	return *a.Model
}

type AppConfigMqtt struct {
	// Broker to publish shift schedules to, disabled when host is empty
	Host        string
	Port        int16
	Username    string
	Password    string
	TopicPrefix *string `mapstructure:"topic_prefix"`
}

func (m AppConfigMqtt) Enabled() bool {
	return m.Host != ""
}

func (m AppConfigMqtt) GetTopicPrefix() string {
	if m.TopicPrefix == nil {
		return "loadshift"
	}
	return *m.TopicPrefix
}

type AppConfigLogging struct {
	// Min log level for database : "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for console: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	if l.DbAttrsFormat == nil {
		return "JSON"
	}
	if strings.EqualFold(*l.DbAttrsFormat, "text") {
		return "TEXT"
	}
	return "JSON"
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	if l.DbMaxEntries == nil {
		return 10000
	}
	return *l.DbMaxEntries
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return logging.LevelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	Api       AppConfigApi
	Database  AppConfigDatabase
	Entsoe    AppConfigEntsoe
	MockData  AppConfigMockData `mapstructure:"mock_data"`
	Optimizer AppConfigOptimizer
	Advisor   AppConfigAdvisor
	Mqtt      AppConfigMqtt
	Logging   AppConfigLogging
}

func Load(path string) (*AppConfig, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath("config")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c AppConfig

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	return &c, nil
}
