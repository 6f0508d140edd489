package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	DefaultProjectDir = "."

	// Concurrency defaults
	DefaultWorkers = 4

	// Write defaults
	DefaultWriteRetries      = 3
	DefaultWriteInitialDelay = 100 * time.Millisecond
	DefaultWriteMaxDelay     = 2 * time.Second

	// Watch defaults
	DefaultWatchDebounce = 300 * time.Millisecond
	MinWatchDebounce     = 10 * time.Millisecond

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// Default manifest file names inside vendor/composer
const (
	StaticManifest = "autoload_static.php"
	FilesManifest  = "autoload_files.php"
)

// DefaultTargets returns the two manifests Composer generates.
// autoload_files.php is optional since optimized dumps may only ship the static one.
func DefaultTargets() []TargetConfig {
	return []TargetConfig{
		{Path: StaticManifest, Format: "static"},
		{Path: FilesManifest, Format: "files", Optional: true},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".autoload-priority"
	}
	return filepath.Join(home, ".autoload-priority")
}

// ConfigFilePath returns the global config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), ConfigName+".yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Project: ProjectConfig{
			Dir: DefaultProjectDir,
		},
		Targets: DefaultTargets(),
		Concurrency: ConcurrencyConfig{
			Workers: DefaultWorkers,
		},
		Write: WriteConfig{
			MaxRetries:   DefaultWriteRetries,
			InitialDelay: DefaultWriteInitialDelay,
			MaxDelay:     DefaultWriteMaxDelay,
		},
		Watch: WatchConfig{
			Debounce: DefaultWatchDebounce,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
