package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/susumOyaji/quotelens/internal/heuristic"
)

// Config holds the full application configuration.
type Config struct {
	Fetch   FetchConfig   `yaml:"fetch" mapstructure:"fetch"`
	Extract ExtractConfig `yaml:"extract" mapstructure:"extract"`
	Scan    ScanConfig    `yaml:"scan" mapstructure:"scan"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// FetchConfig configures the HTTP page fetcher.
type FetchConfig struct {
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int     `yaml:"max_retries" mapstructure:"max_retries"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	Burst       int     `yaml:"burst" mapstructure:"burst"`
}

// Timeout returns the fetch timeout as a duration.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSecs) * time.Second
}

// ExtractConfig configures the extraction pipeline.
type ExtractConfig struct {
	BaseURL       string `yaml:"base_url" mapstructure:"base_url"`
	MaxConcurrent int    `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// ScanConfig exposes the DOM scanner's scoring constants as overridable
// configuration. The values are empirically tuned; only "dedicated
// patterns outrank the generic fallback" is load-bearing.
type ScanConfig struct {
	ValueClassBonus      int `yaml:"value_class_bonus" mapstructure:"value_class_bonus"`
	LargeClassBonus      int `yaml:"large_class_bonus" mapstructure:"large_class_bonus"`
	ThousandsBonus       int `yaml:"thousands_bonus" mapstructure:"thousands_bonus"`
	CodeClassPenalty     int `yaml:"code_class_penalty" mapstructure:"code_class_penalty"`
	FallbackScore        int `yaml:"fallback_score" mapstructure:"fallback_score"`
	TitleScore           int `yaml:"title_score" mapstructure:"title_score"`
	ExactHeadingScore    int `yaml:"exact_heading_score" mapstructure:"exact_heading_score"`
	ContainsHeadingScore int `yaml:"contains_heading_score" mapstructure:"contains_heading_score"`
}

// Heuristic converts the configured constants to the scanner's form.
func (s ScanConfig) Heuristic() heuristic.ScanConfig {
	return heuristic.ScanConfig{
		ValueClassBonus:      s.ValueClassBonus,
		LargeClassBonus:      s.LargeClassBonus,
		ThousandsBonus:       s.ThousandsBonus,
		CodeClassPenalty:     s.CodeClassPenalty,
		FallbackScore:        s.FallbackScore,
		TitleScore:           s.TitleScore,
		ExactHeadingScore:    s.ExactHeadingScore,
		ContainsHeadingScore: s.ContainsHeadingScore,
	}
}

// StoreConfig configures the selector cache database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the HTTP API server.
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
	v.SetEnvPrefix("QUOTELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("fetch.user_agent", "quotelens/1.0")
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.rate_per_sec", 5)
	v.SetDefault("fetch.burst", 5)
	v.SetDefault("extract.base_url", "https://finance.yahoo.co.jp")
	v.SetDefault("extract.max_concurrent", 4)
	scan := heuristic.DefaultScanConfig()
	v.SetDefault("scan.value_class_bonus", scan.ValueClassBonus)
	v.SetDefault("scan.large_class_bonus", scan.LargeClassBonus)
	v.SetDefault("scan.thousands_bonus", scan.ThousandsBonus)
	v.SetDefault("scan.code_class_penalty", scan.CodeClassPenalty)
	v.SetDefault("scan.fallback_score", scan.FallbackScore)
	v.SetDefault("scan.title_score", scan.TitleScore)
	v.SetDefault("scan.exact_heading_score", scan.ExactHeadingScore)
	v.SetDefault("scan.contains_heading_score", scan.ContainsHeadingScore)
	v.SetDefault("store.path", "quotelens.db")
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
