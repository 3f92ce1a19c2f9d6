// Package config loads runtime settings for the plantkeeper CLI. Values are
// layered: defaults, then a JSON file (-c/-config), then command-line flags,
// with later sources taking precedence.
package config

import "time"

// Config holds runtime settings.
//
// Fields:
//   - DatabasePath: SQLite file holding all plant data (":memory:" for an
//     ephemeral session).
//   - PhotoDir: directory the photo gallery copies images into.
//   - PollInterval: how often the local notifier checks for due reminders.
type Config struct {
	DatabasePath string
	PhotoDir     string
	PollInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "plants.db"
	c.PhotoDir = "photos"
	c.PollInterval = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
