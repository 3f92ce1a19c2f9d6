package config

import (
	"flag"
	"os"
	"time"

	"plantkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path of the SQLite database file (default from Config)
//	-p string   photo gallery directory (default from Config)
//	-i int      reminder poll interval in seconds (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-p", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the plant database file")
	fs.StringVar(&cfg.PhotoDir, "p", cfg.PhotoDir, "photo gallery directory")
	pollInterval := fs.Int("i", int(cfg.PollInterval.Seconds()), "reminder poll interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.PollInterval = time.Duration(*pollInterval) * time.Second
}
