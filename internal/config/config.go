package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/soil-calculator/internal/calculator"
	"github.com/eugenenazirov/soil-calculator/internal/catalog"
	"github.com/eugenenazirov/soil-calculator/internal/selection"
	"github.com/eugenenazirov/soil-calculator/internal/storage"
)

const (
	defaultPort           = "8080"
	defaultBagSize        = 1.0
	defaultFillFactor     = 1.0
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Port                 string
	LogLevel             string
	DefaultBagSize       float64
	DefaultDisplayUnit   calculator.VolumeUnit
	DefaultFillFactor    float64
	MaxSessions          int
	MaxEntries           int
	ExtraBeds            []catalog.Bed
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	RateLimitRPS         float64
	RateLimitBurst       int
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Port                 string        `yaml:"port"`
	LogLevel             string        `yaml:"log_level"`
	DefaultBagSize       *float64      `yaml:"default_bag_size"`
	DefaultDisplayUnit   string        `yaml:"default_display_unit"`
	DefaultFillFactor    *float64      `yaml:"default_fill_factor"`
	MaxSessions          int           `yaml:"max_sessions"`
	MaxEntries           int           `yaml:"max_entries"`
	Beds                 []catalog.Bed `yaml:"beds"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	Port           *string
	LogLevel       *string
	BagSize        *float64
	DisplayUnit    *string
	FillFactor     *float64
	RateLimitRPS   *float64
	RateLimitBurst *int
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Environment first so the YAML file can override it.
	applyEnvConfig(&cfg)

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, fmt.Errorf("apply YAML config: %w", err)
		}
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Port:                 defaultPort,
		LogLevel:             "info",
		DefaultBagSize:       defaultBagSize,
		DefaultDisplayUnit:   calculator.CubicFeet,
		DefaultFillFactor:    defaultFillFactor,
		MaxSessions:          storage.DefaultMaxSessions,
		MaxEntries:           selection.DefaultMaxEntries,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	if yamlCfg.DefaultBagSize != nil {
		cfg.DefaultBagSize = *yamlCfg.DefaultBagSize
	}

	if yamlCfg.DefaultDisplayUnit != "" {
		cfg.DefaultDisplayUnit = calculator.VolumeUnit(strings.TrimSpace(yamlCfg.DefaultDisplayUnit))
	}

	if yamlCfg.DefaultFillFactor != nil {
		cfg.DefaultFillFactor = *yamlCfg.DefaultFillFactor
	}

	if yamlCfg.MaxSessions > 0 {
		cfg.MaxSessions = yamlCfg.MaxSessions
	}

	if yamlCfg.MaxEntries > 0 {
		cfg.MaxEntries = yamlCfg.MaxEntries
	}

	if len(yamlCfg.Beds) > 0 {
		cfg.ExtraBeds = normalizeBeds(yamlCfg.Beds)
	}

	durations := []struct {
		raw    string
		target *time.Duration
		name   string
	}{
		{yamlCfg.ShutdownGracePeriod, &cfg.ShutdownGracePeriod, "shutdown_grace_period"},
		{yamlCfg.ReadHeaderTimeout, &cfg.ReadHeaderTimeout, "read_header_timeout"},
		{yamlCfg.WriteTimeout, &cfg.WriteTimeout, "write_timeout"},
		{yamlCfg.IdleTimeout, &cfg.IdleTimeout, "idle_timeout"},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
		*d.target = parsed
	}

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}

	if yamlCfg.RateLimit.RPS != nil {
		cfg.RateLimitRPS = *yamlCfg.RateLimit.RPS
	}

	if yamlCfg.RateLimit.Burst != nil {
		cfg.RateLimitBurst = *yamlCfg.RateLimit.Burst
	}

	return nil
}

// normalizeBeds accepts unit aliases such as "ft" or "in" in configured beds.
func normalizeBeds(beds []catalog.Bed) []catalog.Bed {
	out := make([]catalog.Bed, len(beds))
	for i, bed := range beds {
		bed = bed.Clone()
		bed.Shape = catalog.Shape(strings.ToLower(strings.TrimSpace(string(bed.Shape))))
		if bed.Rectangular != nil {
			bed.Rectangular.LengthWidthUnit = calculator.ParseLengthUnit(string(bed.Rectangular.LengthWidthUnit))
			bed.Rectangular.HeightUnit = calculator.ParseLengthUnit(string(bed.Rectangular.HeightUnit))
		}
		if bed.Circular != nil {
			bed.Circular.DiameterUnit = calculator.ParseLengthUnit(string(bed.Circular.DiameterUnit))
			bed.Circular.HeightUnit = calculator.ParseLengthUnit(string(bed.Circular.HeightUnit))
		}
		out[i] = bed
	}
	return out
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}

	if level := strings.TrimSpace(os.Getenv("LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	if raw := strings.TrimSpace(os.Getenv("DEFAULT_BAG_SIZE")); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil && value > 0 {
			cfg.DefaultBagSize = value
		}
	}

	if unit := strings.TrimSpace(os.Getenv("DISPLAY_UNIT")); unit != "" {
		cfg.DefaultDisplayUnit = calculator.VolumeUnit(unit)
	}

	if raw := strings.TrimSpace(os.Getenv("FILL_FACTOR")); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil {
			cfg.DefaultFillFactor = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("MAX_SESSIONS")); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.MaxSessions = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("MAX_ENTRIES")); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.MaxEntries = value
		}
	}

	if rps := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			cfg.RateLimitRPS = value
		}
	}

	if burst := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); burst != "" {
		if value, err := strconv.Atoi(burst); err == nil && value >= 0 {
			cfg.RateLimitBurst = value
		}
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}

	if overrides.BagSize != nil {
		cfg.DefaultBagSize = *overrides.BagSize
	}

	if overrides.DisplayUnit != nil && *overrides.DisplayUnit != "" {
		cfg.DefaultDisplayUnit = calculator.VolumeUnit(*overrides.DisplayUnit)
	}

	if overrides.FillFactor != nil {
		cfg.DefaultFillFactor = *overrides.FillFactor
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if cfg.DefaultBagSize <= 0 {
		return fmt.Errorf("default bag size must be > 0, got %v", cfg.DefaultBagSize)
	}
	if !cfg.DefaultDisplayUnit.Valid() {
		return fmt.Errorf("default display unit %q: %w", cfg.DefaultDisplayUnit, selection.ErrInvalidDisplayUnit)
	}
	if !selection.ValidFillFactor(cfg.DefaultFillFactor) {
		return fmt.Errorf("default fill factor %v: %w", cfg.DefaultFillFactor, selection.ErrInvalidFillFactor)
	}
	if cfg.MaxSessions <= 0 {
		return fmt.Errorf("MAX_SESSIONS must be > 0")
	}
	if cfg.MaxEntries <= 0 {
		return fmt.Errorf("MAX_ENTRIES must be > 0")
	}
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	return nil
}
