package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Device emulation targets
const (
	EmulateNone    = ""
	EmulateIOS     = "ios"
	EmulateAndroid = "android"
)

// Config holds all application configuration
type Config struct {
	Player   PlayerConfig   `mapstructure:"player"`
	Playback PlaybackConfig `mapstructure:"playback"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	UI       UIConfig       `mapstructure:"ui"`
	Store    StoreConfig    `mapstructure:"store"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// PlayerConfig holds external media player configuration
type PlayerConfig struct {
	Command   string   `mapstructure:"command"`
	Args      []string `mapstructure:"args"`
	StartFlag string   `mapstructure:"start_flag"` // e.g., "--start=" or "--start-time="
}

// PlaybackConfig tunes the in-app player
type PlaybackConfig struct {
	SkipInterval    time.Duration `mapstructure:"skip_interval"`
	ControlsTimeout time.Duration `mapstructure:"controls_timeout"`
	LoadTimeout     time.Duration `mapstructure:"load_timeout"`
	StatusInterval  time.Duration `mapstructure:"status_interval"` // engine report cadence
	LoadLatency     time.Duration `mapstructure:"load_latency"`
}

// CatalogConfig selects the content catalog
type CatalogConfig struct {
	File          string   `mapstructure:"file"`           // empty uses the bundled catalog
	WatchlistSeed int      `mapstructure:"watchlist_seed"` // items pre-loaded into My List
	HomeGenres    []string `mapstructure:"home_genres"`    // genres given a home row, in order
}

// UIConfig holds UI configuration
type UIConfig struct {
	Emulate string `mapstructure:"emulate"` // "", "ios" or "android"
}

// StoreConfig locates the preference database
type StoreConfig struct {
	Path string `mapstructure:"path"` // empty keeps preferences in memory
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File   string `mapstructure:"file"`
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "text"
}

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Player: PlayerConfig{
			Command: "",
			Args:    []string{},
		},
		Playback: PlaybackConfig{
			SkipInterval:    10 * time.Second,
			ControlsTimeout: 3 * time.Second,
			LoadTimeout:     15 * time.Second,
			StatusInterval:  250 * time.Millisecond,
			LoadLatency:     400 * time.Millisecond,
		},
		Catalog: CatalogConfig{
			WatchlistSeed: 3,
			HomeGenres:    []string{"Action", "Drama"},
		},
		Store: StoreConfig{
			Path: filepath.Join(defaultDataPath(), "marquee.db"),
		},
		Logging: LoggingConfig{
			File:   filepath.Join(defaultDataPath(), "marquee.log"),
			Level:  "INFO",
			Format: "json",
		},
	}
}

// defaultDataPath returns the data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee")
	}
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return LoadConfigFrom("")
}

// LoadConfigFrom loads configuration from path, or from the default
// locations when path is empty. A missing default file is not an error;
// a missing explicit file is.
func LoadConfigFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Store.Path = expandHome(cfg.Store.Path)
	cfg.Logging.File = expandHome(cfg.Logging.File)
	cfg.Catalog.File = expandHome(cfg.Catalog.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newViper returns a viper instance with every key defaulted, so that
// environment overrides (MARQUEE_PLAYBACK_SKIP_INTERVAL, ...) apply even
// without a config file.
func newViper(cfg *Config) *viper.Viper {
	v := viper.New()

	v.SetDefault("player.command", cfg.Player.Command)
	v.SetDefault("player.args", cfg.Player.Args)
	v.SetDefault("player.start_flag", cfg.Player.StartFlag)

	v.SetDefault("playback.skip_interval", cfg.Playback.SkipInterval)
	v.SetDefault("playback.controls_timeout", cfg.Playback.ControlsTimeout)
	v.SetDefault("playback.load_timeout", cfg.Playback.LoadTimeout)
	v.SetDefault("playback.status_interval", cfg.Playback.StatusInterval)
	v.SetDefault("playback.load_latency", cfg.Playback.LoadLatency)

	v.SetDefault("catalog.file", cfg.Catalog.File)
	v.SetDefault("catalog.watchlist_seed", cfg.Catalog.WatchlistSeed)
	v.SetDefault("catalog.home_genres", cfg.Catalog.HomeGenres)

	v.SetDefault("ui.emulate", cfg.UI.Emulate)
	v.SetDefault("store.path", cfg.Store.Path)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)

	// Environment variable overrides
	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Validate checks values that would otherwise fail later in confusing ways
func (c *Config) Validate() error {
	if !ValidEmulation(c.UI.Emulate) {
		return fmt.Errorf("%w: ui.emulate %q (want ios, android or empty)", ErrInvalidConfig, c.UI.Emulate)
	}
	if c.Playback.SkipInterval <= 0 {
		return fmt.Errorf("%w: playback.skip_interval must be positive", ErrInvalidConfig)
	}
	if c.Playback.ControlsTimeout <= 0 {
		return fmt.Errorf("%w: playback.controls_timeout must be positive", ErrInvalidConfig)
	}
	if c.Playback.LoadTimeout <= 0 {
		return fmt.Errorf("%w: playback.load_timeout must be positive", ErrInvalidConfig)
	}
	if c.Playback.StatusInterval <= 0 {
		return fmt.Errorf("%w: playback.status_interval must be positive", ErrInvalidConfig)
	}
	if c.Playback.LoadLatency < 0 {
		return fmt.Errorf("%w: playback.load_latency must not be negative", ErrInvalidConfig)
	}
	if c.Catalog.WatchlistSeed < 0 {
		return fmt.Errorf("%w: catalog.watchlist_seed must not be negative", ErrInvalidConfig)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "text":
	default:
		return fmt.Errorf("%w: logging.format %q", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// ValidEmulation reports whether device is a known emulation target
func ValidEmulation(device string) bool {
	switch device {
	case EmulateNone, EmulateIOS, EmulateAndroid:
		return true
	}
	return false
}

// SaveConfig writes cfg to path, or to the default location when path is empty
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = filepath.Join(defaultConfigPath(), "config.yaml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("player.command", cfg.Player.Command)
	v.Set("player.args", cfg.Player.Args)
	v.Set("player.start_flag", cfg.Player.StartFlag)

	v.Set("playback.skip_interval", cfg.Playback.SkipInterval.String())
	v.Set("playback.controls_timeout", cfg.Playback.ControlsTimeout.String())
	v.Set("playback.load_timeout", cfg.Playback.LoadTimeout.String())
	v.Set("playback.status_interval", cfg.Playback.StatusInterval.String())
	v.Set("playback.load_latency", cfg.Playback.LoadLatency.String())

	v.Set("catalog.file", cfg.Catalog.File)
	v.Set("catalog.watchlist_seed", cfg.Catalog.WatchlistSeed)
	v.Set("catalog.home_genres", cfg.Catalog.HomeGenres)

	v.Set("ui.emulate", cfg.UI.Emulate)
	v.Set("store.path", cfg.Store.Path)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.format", cfg.Logging.Format)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// expandHome expands a leading ~ in path
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
