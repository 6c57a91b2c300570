// Package config provides configuration management for the journal matcher service.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the journal matcher service.
type Config struct {
	// Server contains HTTP server settings.
	Server ServerConfig `mapstructure:"server"`
	// Logging contains structured logging settings.
	Logging LoggingConfig `mapstructure:"logging"`
	// Metrics contains Prometheus metrics exposure settings.
	Metrics MetricsConfig `mapstructure:"metrics"`
	// OpenAlex contains OpenAlex API client settings.
	OpenAlex OpenAlexConfig `mapstructure:"openalex"`
	// Translator contains translation adapter settings.
	Translator TranslatorConfig `mapstructure:"translator"`
	// Extractor contains keyword extraction settings.
	Extractor ExtractorConfig `mapstructure:"extractor"`
	// Matching contains pipeline and scoring settings.
	Matching MatchingConfig `mapstructure:"matching"`
	// Analyzers contains auxiliary analyzer settings.
	Analyzers AnalyzersConfig `mapstructure:"analyzers"`
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	// Host is the address to bind the server to (default: 0.0.0.0).
	Host string `mapstructure:"host"`
	// HTTPPort is the HTTP server port (default: 8080).
	HTTPPort int `mapstructure:"http_port"`
	// MetricsPort is the metrics server port (default: 9091).
	MetricsPort int `mapstructure:"metrics_port"`
	// ReadTimeout is the maximum duration for reading the request body.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout is the maximum duration for writing the response.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the log level (trace, debug, info, warn, error, fatal, panic).
	Level string `mapstructure:"level"`
	// Format is the log format (json, console).
	Format string `mapstructure:"format"`
	// Output is the log output destination (stdout, stderr).
	Output string `mapstructure:"output"`
	// AddSource adds source file and line to log output.
	AddSource bool `mapstructure:"add_source"`
	// TimeFormat is the timestamp format.
	TimeFormat string `mapstructure:"time_format"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	// Enabled enables metrics collection and exposure.
	Enabled bool `mapstructure:"enabled"`
	// Path is the HTTP path for the metrics endpoint.
	Path string `mapstructure:"path"`
}

// OpenAlexConfig holds OpenAlex API client configuration.
type OpenAlexConfig struct {
	// BaseURL is the OpenAlex API base URL.
	BaseURL string `mapstructure:"base_url"`
	// Email is the contact email sent as the mailto courtesy parameter.
	Email string `mapstructure:"email"`
	// Timeout is the per-call timeout.
	Timeout time.Duration `mapstructure:"timeout"`
	// RateLimit is the maximum requests per second.
	RateLimit float64 `mapstructure:"rate_limit"`
	// BurstSize is the maximum request burst allowed.
	BurstSize int `mapstructure:"burst_size"`
	// MaxResults is the page size for topical work searches.
	MaxResults int `mapstructure:"max_results"`
}

// TranslatorConfig holds translation adapter configuration.
type TranslatorConfig struct {
	// Enabled controls whether translation is attempted at all.
	// When disabled, input text is used verbatim.
	Enabled bool `mapstructure:"enabled"`
	// BaseURL is the translation endpoint base URL.
	BaseURL string `mapstructure:"base_url"`
	// TargetLanguage is the fixed target language for queries.
	TargetLanguage string `mapstructure:"target_language"`
	// Timeout is the per-call timeout. Translation is advisory; on timeout
	// the original text is used.
	Timeout time.Duration `mapstructure:"timeout"`
}

// ExtractorConfig holds keyword extraction configuration.
//
// These are tunable heuristics, not load-bearing contracts; the defaults
// document one consistent parameter set.
type ExtractorConfig struct {
	// MaxKeywords is the number of top-frequency tokens kept for the query.
	MaxKeywords int `mapstructure:"max_keywords"`
	// MinTokenLength is the minimum surviving token length in runes.
	MinTokenLength int `mapstructure:"min_token_length"`
	// MinSurvivors is the survivor count below which the extractor falls
	// back to the leading raw words.
	MinSurvivors int `mapstructure:"min_survivors"`
	// FallbackWords is how many leading raw words the fallback keeps.
	FallbackWords int `mapstructure:"fallback_words"`
}

// MatchingConfig holds pipeline and scoring configuration.
type MatchingConfig struct {
	// TierQ1, TierQ2, TierQ3 are the citation-strength cutoffs of the
	// quality-tier ladder (strictly-greater-than semantics).
	TierQ1 int `mapstructure:"tier_q1"`
	TierQ2 int `mapstructure:"tier_q2"`
	TierQ3 int `mapstructure:"tier_q3"`
	// MaxDOIs caps the number of reference DOIs looked up per request.
	MaxDOIs int `mapstructure:"max_dois"`
	// ShortQueryTokens is the token count for the more-general retry query
	// issued when the full query returns zero results.
	ShortQueryTokens int `mapstructure:"short_query_tokens"`
}

// AnalyzersConfig holds auxiliary analyzer configuration.
type AnalyzersConfig struct {
	// TrendYears is the recent-year window for the trend counter.
	TrendYears int `mapstructure:"trend_years"`
	// TopN bounds the result size of the aggregating analyzers.
	TopN int `mapstructure:"top_n"`
	// SampleSize bounds the work sample fetched per analyzer call.
	SampleSize int `mapstructure:"sample_size"`
	// VenueTierQ1, VenueTierQ2, VenueTierQ3 are the venue-level citation
	// cutoffs used by the institution analyzer (a venue's total citation
	// count is a much larger number than a single article's).
	VenueTierQ1 int `mapstructure:"venue_tier_q1"`
	VenueTierQ2 int `mapstructure:"venue_tier_q2"`
	VenueTierQ3 int `mapstructure:"venue_tier_q3"`
}

// HTTPAddress returns the HTTP server address.
func (c *ServerConfig) HTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.HTTPPort)
}

// MetricsAddress returns the metrics server address.
func (c *ServerConfig) MetricsAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.MetricsPort)
}

// Load loads configuration from environment variables and config files.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("JOURNALMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if present
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/journal-matcher")

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use env vars and defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.metrics_port", 9091)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", time.RFC3339)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// OpenAlex defaults
	v.SetDefault("openalex.base_url", "https://api.openalex.org")
	v.SetDefault("openalex.email", "admin@pubscout.com")
	v.SetDefault("openalex.timeout", "10s")
	v.SetDefault("openalex.rate_limit", 10.0)
	v.SetDefault("openalex.burst_size", 10)
	v.SetDefault("openalex.max_results", 50)

	// Translator defaults
	v.SetDefault("translator.enabled", true)
	v.SetDefault("translator.base_url", "https://translate.googleapis.com")
	v.SetDefault("translator.target_language", "en")
	v.SetDefault("translator.timeout", "5s")

	// Extractor defaults
	v.SetDefault("extractor.max_keywords", 8)
	v.SetDefault("extractor.min_token_length", 4)
	v.SetDefault("extractor.min_survivors", 3)
	v.SetDefault("extractor.fallback_words", 5)

	// Matching defaults
	v.SetDefault("matching.tier_q1", 50)
	v.SetDefault("matching.tier_q2", 20)
	v.SetDefault("matching.tier_q3", 5)
	v.SetDefault("matching.max_dois", 10)
	v.SetDefault("matching.short_query_tokens", 3)

	// Analyzer defaults. The venue-level cutoffs classify a venue by its
	// total citation count, so they sit three orders of magnitude above
	// the per-article ladder.
	v.SetDefault("analyzers.trend_years", 12)
	v.SetDefault("analyzers.top_n", 10)
	v.SetDefault("analyzers.sample_size", 100)
	v.SetDefault("analyzers.venue_tier_q1", 50000)
	v.SetDefault("analyzers.venue_tier_q2", 10000)
	v.SetDefault("analyzers.venue_tier_q3", 2000)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.Server.HTTPPort)
	}
	if c.Server.MetricsPort <= 0 || c.Server.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", c.Server.MetricsPort)
	}

	validLogLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.OpenAlex.BaseURL == "" {
		return fmt.Errorf("openalex base_url is required")
	}
	if c.OpenAlex.RateLimit <= 0 {
		return fmt.Errorf("openalex rate_limit must be positive")
	}
	if c.OpenAlex.MaxResults <= 0 || c.OpenAlex.MaxResults > 200 {
		return fmt.Errorf("openalex max_results must be in (0, 200]: %d", c.OpenAlex.MaxResults)
	}

	if c.Translator.Enabled && c.Translator.BaseURL == "" {
		return fmt.Errorf("translator base_url is required when translation is enabled")
	}
	if c.Translator.Enabled && c.Translator.TargetLanguage == "" {
		return fmt.Errorf("translator target_language is required when translation is enabled")
	}

	if c.Extractor.MaxKeywords <= 0 {
		return fmt.Errorf("extractor max_keywords must be positive")
	}
	if c.Extractor.MinTokenLength <= 0 {
		return fmt.Errorf("extractor min_token_length must be positive")
	}
	if c.Extractor.FallbackWords <= 0 {
		return fmt.Errorf("extractor fallback_words must be positive")
	}

	// The tier ladder must be strictly descending for the bucketing to be
	// well defined.
	if !(c.Matching.TierQ1 > c.Matching.TierQ2 && c.Matching.TierQ2 > c.Matching.TierQ3 && c.Matching.TierQ3 >= 0) {
		return fmt.Errorf("matching tier thresholds must be strictly descending: %d/%d/%d",
			c.Matching.TierQ1, c.Matching.TierQ2, c.Matching.TierQ3)
	}
	if !(c.Analyzers.VenueTierQ1 > c.Analyzers.VenueTierQ2 && c.Analyzers.VenueTierQ2 > c.Analyzers.VenueTierQ3 && c.Analyzers.VenueTierQ3 >= 0) {
		return fmt.Errorf("analyzer venue tier thresholds must be strictly descending: %d/%d/%d",
			c.Analyzers.VenueTierQ1, c.Analyzers.VenueTierQ2, c.Analyzers.VenueTierQ3)
	}
	if c.Matching.MaxDOIs <= 0 {
		return fmt.Errorf("matching max_dois must be positive")
	}
	if c.Matching.ShortQueryTokens <= 0 {
		return fmt.Errorf("matching short_query_tokens must be positive")
	}

	if c.Analyzers.TrendYears <= 0 {
		return fmt.Errorf("analyzers trend_years must be positive")
	}
	if c.Analyzers.TopN <= 0 {
		return fmt.Errorf("analyzers top_n must be positive")
	}
	if c.Analyzers.SampleSize <= 0 || c.Analyzers.SampleSize > 200 {
		return fmt.Errorf("analyzers sample_size must be in (0, 200]: %d", c.Analyzers.SampleSize)
	}

	return nil
}
