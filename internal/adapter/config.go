package adapter

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultSourceURL is the listing endpoint used when none is configured
const DefaultSourceURL = "https://picsum.photos/v2/list"

// Config holds all application configuration
type Config struct {
	Source  SourceConfig  `mapstructure:"source"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Viewer  ViewerConfig  `mapstructure:"viewer"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SourceConfig holds the image listing endpoint configuration
type SourceConfig struct {
	URL         string        `mapstructure:"url"`          // Base listing URL, without query
	Page        string        `mapstructure:"page"`         // Sent verbatim as ?page=
	Limit       string        `mapstructure:"limit"`        // Sent as &limit=1{limit} in legacy mode
	LegacyLimit bool          `mapstructure:"legacy_limit"` // Keep the "1" prefix on limit
	Timeout     time.Duration `mapstructure:"timeout"`      // 0 disables the client timeout
}

// CacheConfig holds listing cache configuration
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"` // Off: every run issues its own request
	Dir     string        `mapstructure:"dir"` // Empty keeps the cache in memory only
	TTL     time.Duration `mapstructure:"ttl"` // 0 never expires
}

// ViewerConfig holds external image viewer configuration
type ViewerConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	ShowHelp bool `mapstructure:"show_help"` // Start with the full help expanded
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			URL:         DefaultSourceURL,
			Page:        "1",
			Limit:       "0",
			LegacyLimit: true,
			Timeout:     30 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: false,
			Dir:     defaultCachePath(),
			TTL:     10 * time.Minute,
		},
		Viewer: ViewerConfig{
			Args: []string{},
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "slide", "slide.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "slide", "slide.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "slide")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "slide")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "slide", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "slide", "cache")
	}
}

// newViper returns a viper instance seeded with every default, so that
// SLIDE_* environment variables can override keys absent from the file.
func newViper(cfg *Config) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("source.url", cfg.Source.URL)
	v.SetDefault("source.page", cfg.Source.Page)
	v.SetDefault("source.limit", cfg.Source.Limit)
	v.SetDefault("source.legacy_limit", cfg.Source.LegacyLimit)
	v.SetDefault("source.timeout", cfg.Source.Timeout)
	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.dir", cfg.Cache.Dir)
	v.SetDefault("cache.ttl", cfg.Cache.TTL)
	v.SetDefault("viewer.command", cfg.Viewer.Command)
	v.SetDefault("viewer.args", cfg.Viewer.Args)
	v.SetDefault("ui.show_help", cfg.UI.ShowHelp)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)

	// Environment variable overrides, e.g. SLIDE_SOURCE_URL
	v.SetEnvPrefix("SLIDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadConfig loads configuration from file and environment.
// With no dirs it searches the OS config directory and the working directory.
func LoadConfig(dirs ...string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)

	if len(dirs) == 0 {
		dirs = []string{defaultConfigPath(), "."}
	}
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg to config.yaml in dir (the OS config directory when empty)
func SaveConfig(cfg *Config, dir string) error {
	if dir == "" {
		dir = defaultConfigPath()
	}

	// Ensure config directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("source.url", cfg.Source.URL)
	v.Set("source.page", cfg.Source.Page)
	v.Set("source.limit", cfg.Source.Limit)
	v.Set("source.legacy_limit", cfg.Source.LegacyLimit)
	v.Set("source.timeout", cfg.Source.Timeout.String())

	v.Set("cache.enabled", cfg.Cache.Enabled)
	v.Set("cache.dir", cfg.Cache.Dir)
	v.Set("cache.ttl", cfg.Cache.TTL.String())

	v.Set("viewer.command", cfg.Viewer.Command)
	v.Set("viewer.args", cfg.Viewer.Args)

	v.Set("ui.show_help", cfg.UI.ShowHelp)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the source settings can form a request
func (c *Config) Validate() error {
	if c.Source.URL == "" {
		return fmt.Errorf("source url is required")
	}
	u, err := url.Parse(c.Source.URL)
	if err != nil {
		return fmt.Errorf("invalid source url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("source url must be http or https, got %q", c.Source.URL)
	}
	if u.RawQuery != "" {
		return fmt.Errorf("source url must not carry a query string; use page and limit")
	}
	if c.Source.Timeout < 0 {
		return fmt.Errorf("source timeout must not be negative")
	}
	return nil
}
