// Package config handles skeltool configuration loading and management.
package config

// Config holds all tool settings.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig holds skeleton document locations.
type DataConfig struct {
	// SkeletonDirs are searched in order; later directories take priority.
	SkeletonDirs []string `yaml:"skeleton_dirs"`
}

// WatchConfig holds hot-reload settings for the watch command.
type WatchConfig struct {
	// DebounceMS collapses bursts of file events within this window.
	DebounceMS int `yaml:"debounce_ms"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			SkeletonDirs: []string{"./skeletons"},
		},
		Watch: WatchConfig{
			DebounceMS: 100,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
