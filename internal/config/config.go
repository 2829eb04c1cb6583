package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"imagehelper/internal/errors"
)

// Config represents the application configuration structure.
// It defines gallery scanning, capture and viewer behavior plus logging.
type Config struct {
	Gallery struct {
		ThumbnailSize  int      `yaml:"thumbnail_size"`  // Thumbnail bounding box edge in pixels
		Patterns       []string `yaml:"patterns"`        // Filename globs matched against lowercased names
		RescanInterval int      `yaml:"rescan_interval"` // Rescan interval in seconds
		WatchEvents    bool     `yaml:"watch_events"`    // Rescan early on filesystem events
		HGap           int      `yaml:"hgap"`            // Horizontal gap between thumbnails
		VGap           int      `yaml:"vgap"`            // Vertical gap between rows
	} `yaml:"gallery"`
	Capture struct {
		HideDelayMS     int    `yaml:"hide_delay_ms"`    // Wait after hiding the overlay before grabbing
		FilePrefix      string `yaml:"file_prefix"`      // Screenshot file name prefix
		TimestampLayout string `yaml:"timestamp_layout"` // Go time layout for the file name
	} `yaml:"capture"`
	Viewer struct {
		ResizeMargin int `yaml:"resize_margin"` // Bottom-right resize handle size
		MinWidth     int `yaml:"min_width"`     // Smallest width a resize can reach
	} `yaml:"viewer"`
	Logging struct {
		Debug bool   `yaml:"debug"`
		JSON  bool   `yaml:"json"`
		File  string `yaml:"file"` // Optional log file, empty for stdout only
	} `yaml:"logging"`
}

// DefaultPath returns ~/.config/imagehelper/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "imagehelper", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Decode over the defaults so unset keys keep their default values
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.NewConfigError("invalid configuration", path, errors.InvalidConfig, err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Gallery.ThumbnailSize = 100
	cfg.Gallery.Patterns = []string{"*.jpg", "*.jpeg", "*.png", "*.gif"}
	cfg.Gallery.RescanInterval = 5
	cfg.Gallery.WatchEvents = true
	cfg.Gallery.HGap = 10
	cfg.Gallery.VGap = 10

	cfg.Capture.HideDelayMS = 200
	cfg.Capture.FilePrefix = "screenshot_"
	cfg.Capture.TimestampLayout = "20060102_150405"

	cfg.Viewer.ResizeMargin = 10
	cfg.Viewer.MinWidth = 100

	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}

	if c.Gallery.ThumbnailSize < 1 {
		return fmt.Errorf("thumbnail size must be >= 1")
	}
	if c.Gallery.RescanInterval < 1 {
		return fmt.Errorf("rescan interval must be >= 1 second")
	}
	if c.Gallery.HGap < 0 || c.Gallery.VGap < 0 {
		return fmt.Errorf("gallery gaps must be >= 0")
	}
	if len(c.Gallery.Patterns) == 0 {
		return fmt.Errorf("at least one image pattern is required")
	}
	for i, pattern := range c.Gallery.Patterns {
		if pattern == "" {
			return fmt.Errorf("pattern %d: pattern is empty", i)
		}
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("pattern %d: %w", i, err)
		}
	}

	if c.Capture.HideDelayMS < 0 {
		return fmt.Errorf("capture hide delay must be >= 0")
	}
	if c.Capture.TimestampLayout == "" {
		return fmt.Errorf("capture timestamp layout is required")
	}

	if c.Viewer.ResizeMargin < 0 {
		return fmt.Errorf("viewer resize margin must be >= 0")
	}
	if c.Viewer.MinWidth < 1 {
		return fmt.Errorf("viewer min width must be >= 1")
	}

	return nil
}

// RescanEvery returns the rescan interval as a duration.
func (c *Config) RescanEvery() time.Duration {
	return time.Duration(c.Gallery.RescanInterval) * time.Second
}

// HideDelay returns the capture hide delay as a duration.
func (c *Config) HideDelay() time.Duration {
	return time.Duration(c.Capture.HideDelayMS) * time.Millisecond
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}
