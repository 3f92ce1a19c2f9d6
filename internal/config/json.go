package config

import (
	"encoding/json"
	"os"
	"time"

	"plantkeeper/internal/flagx"
	"plantkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the poll interval either as a string
// like "30s" or as integer nanoseconds. After parsing, values are copied into
// the runtime Config.
type JsonConfig struct {
	DatabasePath string         `json:"database_path"`
	PhotoDir     string         `json:"photo_dir"`
	PollInterval timex.Duration `json:"poll_interval"`
}

// parseJson overlays Config with values loaded from a JSON file located via
// the -c/-config flags. When no file is given, the config is left untouched.
// Read or unmarshal errors panic; configuration is resolved before any state
// exists to clean up.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.PhotoDir != "" {
		cfg.PhotoDir = jc.PhotoDir
	}
	if jc.PollInterval.Duration != 0 {
		cfg.PollInterval = time.Duration(jc.PollInterval.Duration)
	}
}
