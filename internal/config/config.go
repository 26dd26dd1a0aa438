package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

type Config struct {
	Environment string          `mapstructure:"environment"`
	LogLevel    string          `mapstructure:"log_level"`
	Server      ServerConfig    `mapstructure:"server"`
	Dataset     DatasetConfig   `mapstructure:"dataset"`
	Database    DatabaseConfig  `mapstructure:"database"`
	Redis       RedisConfig     `mapstructure:"redis"`
	Analytics   AnalyticsConfig `mapstructure:"analytics"`
	Telemetry   TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// AdminAPIKey guards maintenance endpoints; empty disables them
	AdminAPIKey    string   `mapstructure:"admin_api_key"`
}

// DatasetConfig selects where the price table comes from and how it is cached
type DatasetConfig struct {
	Source        string `mapstructure:"source"`
	CSVPath       string `mapstructure:"csv_path"`
	DefaultSymbol string `mapstructure:"default_symbol"`
	RefreshCron   string `mapstructure:"refresh_cron"`
	CacheTTL      string `mapstructure:"cache_ttl"`
}

type DatabaseConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	DBName      string `mapstructure:"dbname"`
	SSLMode     string `mapstructure:"sslmode"`
	DatabaseURL string `mapstructure:"database_url"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AnalyticsConfig holds indicator windows exposed to operators
type AnalyticsConfig struct {
	SMAWindow      int `mapstructure:"sma_window"`
	EMASpan        int `mapstructure:"ema_span"`
	MACDFast       int `mapstructure:"macd_fast"`
	MACDSlow       int `mapstructure:"macd_slow"`
	MACDSignal     int `mapstructure:"macd_signal"`
	RSIPeriod      int `mapstructure:"rsi_period"`
	VolumeMAWindow int `mapstructure:"volume_ma_window"`
	StrengthWindow int `mapstructure:"strength_window"`
	HeatmapDays    int `mapstructure:"heatmap_days"`
}

type TelemetryConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	Exporter     string  `mapstructure:"exporter"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
}

// CacheTTLDuration parses Dataset.CacheTTL, returning 0 when unset
func (d DatasetConfig) CacheTTLDuration() time.Duration {
	if d.CacheTTL == "" {
		return 0
	}
	ttl, err := time.ParseDuration(d.CacheTTL)
	if err != nil {
		return 0
	}
	return ttl
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set default values
	setDefaults(v)

	// Enable environment variable support
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// Config file not found, use defaults and environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Normalize environment to lowercase for consistent comparison
	config.Environment = strings.ToLower(config.Environment)
	config.Dataset.Source = strings.ToLower(config.Dataset.Source)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the invariants the server relies on
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch c.Dataset.Source {
	case "csv":
		if c.Dataset.CSVPath == "" {
			return errors.New("dataset.csv_path is required when dataset.source is csv")
		}
	case "postgres":
	default:
		return fmt.Errorf("unsupported dataset source %q", c.Dataset.Source)
	}

	if c.Dataset.RefreshCron != "" {
		if _, err := cron.ParseStandard(c.Dataset.RefreshCron); err != nil {
			return fmt.Errorf("invalid dataset refresh cron: %w", err)
		}
	}

	if c.Dataset.CacheTTL != "" {
		if _, err := time.ParseDuration(c.Dataset.CacheTTL); err != nil {
			return fmt.Errorf("invalid dataset cache ttl: %w", err)
		}
	}

	a := c.Analytics
	windows := map[string]int{
		"sma_window":       a.SMAWindow,
		"ema_span":         a.EMASpan,
		"macd_fast":        a.MACDFast,
		"macd_slow":        a.MACDSlow,
		"macd_signal":      a.MACDSignal,
		"rsi_period":       a.RSIPeriod,
		"volume_ma_window": a.VolumeMAWindow,
		"strength_window":  a.StrengthWindow,
		"heatmap_days":     a.HeatmapDays,
	}
	for name, w := range windows {
		if w <= 0 {
			return fmt.Errorf("analytics.%s must be positive, got %d", name, w)
		}
	}
	if a.MACDFast >= a.MACDSlow {
		return fmt.Errorf("analytics.macd_fast (%d) must be below analytics.macd_slow (%d)", a.MACDFast, a.MACDSlow)
	}

	if c.Telemetry.Enabled && c.Telemetry.Exporter != "stdout" && c.Telemetry.Exporter != "otlp" {
		return fmt.Errorf("unsupported telemetry exporter %q", c.Telemetry.Exporter)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Environment
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")

	// Server
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.admin_api_key", "")

	// Dataset
	v.SetDefault("dataset.source", "csv")
	v.SetDefault("dataset.csv_path", "stocks_market.csv")
	v.SetDefault("dataset.default_symbol", "AXISBANK.NS")
	v.SetDefault("dataset.refresh_cron", "")
	v.SetDefault("dataset.cache_ttl", "24h")

	// Set database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "stockpulse")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.database_url", "")

	// Redis
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Analytics
	v.SetDefault("analytics.sma_window", 14)
	v.SetDefault("analytics.ema_span", 14)
	v.SetDefault("analytics.macd_fast", 12)
	v.SetDefault("analytics.macd_slow", 26)
	v.SetDefault("analytics.macd_signal", 9)
	v.SetDefault("analytics.rsi_period", 14)
	v.SetDefault("analytics.volume_ma_window", 50)
	v.SetDefault("analytics.strength_window", 50)
	v.SetDefault("analytics.heatmap_days", 30)

	// Telemetry
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.exporter", "stdout")
	v.SetDefault("telemetry.otlp_endpoint", "http://localhost:4318")
	v.SetDefault("telemetry.sample_rate", 1.0)
}
