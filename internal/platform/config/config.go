package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Server captures the runtime configuration of the genealogy server.
// Values come from an optional YAML file, GIMM_* env vars and CLI flags.
type Server struct {
	Addr             string        `mapstructure:"addr"`
	GedcomPath       string        `mapstructure:"gedcom_input_file"`
	ContactEmail     string        `mapstructure:"email"`
	LogLevel         string        `mapstructure:"log_level"`
	LogFormat        string        `mapstructure:"log_format"`
	Watch            bool          `mapstructure:"watch"`
	WatchDebounce    time.Duration `mapstructure:"watch_debounce"`
	SearchRateLimit  int           `mapstructure:"search_rate_limit"`
	SearchRateWindow time.Duration `mapstructure:"search_rate_window"`
	SearchMaxResults int           `mapstructure:"search_max_results"`
	RedisURL         string        `mapstructure:"redis_url"`
	SearchCacheTTL   time.Duration `mapstructure:"search_cache_ttl"`
	ShutdownTimeout  time.Duration `mapstructure:"shutdown_timeout"`
}

// ErrSourceMissing reports a GEDCOM path that does not name a readable file.
var ErrSourceMissing = errors.New("gedcom source file missing")

// SetDefaults registers the built-in default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("gedcom_input_file", "")
	v.SetDefault("email", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("watch", false)
	v.SetDefault("watch_debounce", 500*time.Millisecond)
	v.SetDefault("search_rate_limit", 60)
	v.SetDefault("search_rate_window", time.Minute)
	v.SetDefault("search_max_results", 500)
	v.SetDefault("redis_url", "")
	v.SetDefault("search_cache_ttl", 10*time.Minute)
	v.SetDefault("shutdown_timeout", 10*time.Second)
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Server, error) {
	SetDefaults(v)

	var cfg Server
	if err := v.Unmarshal(&cfg); err != nil {
		return Server{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks field ranges. It does not touch the filesystem.
func (c Server) Validate() error {
	var errs []error
	if c.GedcomPath == "" {
		errs = append(errs, errors.New("gedcom input file is required"))
	}
	if c.Addr == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if c.SearchRateLimit < 0 {
		errs = append(errs, fmt.Errorf("search rate limit must be >= 0, got %d", c.SearchRateLimit))
	}
	if c.SearchRateLimit > 0 && c.SearchRateWindow <= 0 {
		errs = append(errs, errors.New("search rate window must be positive"))
	}
	if c.SearchMaxResults < 0 {
		errs = append(errs, fmt.Errorf("search max results must be >= 0, got %d", c.SearchMaxResults))
	}
	if c.Watch && c.WatchDebounce <= 0 {
		errs = append(errs, errors.New("watch debounce must be positive"))
	}
	return errors.Join(errs...)
}

// CheckSource verifies the GEDCOM path names a regular file.
func (c Server) CheckSource() error {
	info, err := os.Stat(c.GedcomPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSourceMissing, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrSourceMissing, c.GedcomPath)
	}
	return nil
}
