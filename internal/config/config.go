package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	HubSpot   HubSpotConfig   `yaml:"hubspot" mapstructure:"hubspot"`
	Pipelines PipelinesConfig `yaml:"pipelines" mapstructure:"pipelines"`
	Sheets    SheetsConfig    `yaml:"sheets" mapstructure:"sheets"`
	Slack     SlackConfig     `yaml:"slack" mapstructure:"slack"`
	Report    ReportConfig    `yaml:"report" mapstructure:"report"`
	Counts    CountsConfig    `yaml:"counts" mapstructure:"counts"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// HubSpotConfig holds HubSpot private-app credentials.
type HubSpotConfig struct {
	Token   string `yaml:"token" mapstructure:"token"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// PipelinesConfig maps deal pipeline IDs to contact categories. The three
// lists must be disjoint; the first deal whose pipeline appears in one of
// them decides the contact's category.
type PipelinesConfig struct {
	Creator   []string `yaml:"creator" mapstructure:"creator"`
	Agency    []string `yaml:"agency" mapstructure:"agency"`
	Affiliate []string `yaml:"affiliate" mapstructure:"affiliate"`
}

// SheetsConfig holds Google Sheets service-account settings.
type SheetsConfig struct {
	CredentialsFile string `yaml:"credentials_file" mapstructure:"credentials_file"`
	SpreadsheetID   string `yaml:"spreadsheet_id" mapstructure:"spreadsheet_id"`
	Worksheet       string `yaml:"worksheet" mapstructure:"worksheet"`
}

// SlackConfig holds Slack bot credentials. An empty BotToken disables
// Slack posting.
type SlackConfig struct {
	BotToken      string `yaml:"bot_token" mapstructure:"bot_token"`
	SigningSecret string `yaml:"signing_secret" mapstructure:"signing_secret"`
	ReportChannel string `yaml:"report_channel" mapstructure:"report_channel"`
}

// ReportConfig configures the reporting window and daily schedule.
type ReportConfig struct {
	LookbackHours int `yaml:"lookback_hours" mapstructure:"lookback_hours"`
	Hour          int `yaml:"hour" mapstructure:"hour"`
	Minute        int `yaml:"minute" mapstructure:"minute"`
}

// CountsConfig configures the manual counts store backend.
type CountsConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"`
	Path   string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the webhook server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("OUTREACH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("hubspot.base_url", "https://api.hubapi.com")
	v.SetDefault("sheets.credentials_file", "service_account.json")
	v.SetDefault("sheets.worksheet", "BizDev")
	v.SetDefault("slack.report_channel", "#creator-reporting")
	v.SetDefault("report.lookback_hours", 24)
	v.SetDefault("report.hour", 9)
	v.SetDefault("report.minute", 0)
	v.SetDefault("counts.driver", "file")
	v.SetDefault("counts.path", "data/manual_counts.json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
