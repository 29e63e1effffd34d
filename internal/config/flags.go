package config

import (
	"flag"
	"strings"
)

var (
	flagConfig  string
	flagDebug   bool
	flagData    string
	flagLogFile string
)

// RegisterFlags registers the config override flags on the given FlagSet.
// Commands that honor configuration call this before parsing their
// arguments; Load then picks the parsed values up.
func RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&flagConfig, "config", "", "Path to config file")
	fs.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	fs.StringVar(&flagData, "data", "", "Comma-separated skeleton directories (overrides config)")
	fs.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if flagDebug {
		cfg.Logging.Level = "debug"
	}
	if flagData != "" {
		cfg.Data.SkeletonDirs = strings.Split(flagData, ",")
	}
	if flagLogFile != "" {
		cfg.Logging.LogFile = flagLogFile
	}
}
