package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// ConfigName is the config file base name, looked up in the working
// directory first and then in ConfigDir
const ConfigName = "autoload-priority"

// EnvPrefix prefixes environment overrides (AUTOLOAD_PRIORITY_LOGGING_LEVEL, ...)
const EnvPrefix = "AUTOLOAD_PRIORITY"

// LoadFrom loads configuration from file, environment, and defaults into v.
// v usually carries the CLI flag bindings, which take precedence.
func LoadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// Config file settings
	v.SetConfigName(ConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(ConfigDir())

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate and apply defaults for invalid values
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	v.SetDefault("project.dir", DefaultProjectDir)
	v.SetDefault("project.vendor_dir", "")

	v.SetDefault("promote.packages", []string{})
	v.SetDefault("promote.files", []string{})
	v.SetDefault("promote.root", false)

	v.SetDefault("targets", DefaultTargets())

	v.SetDefault("concurrency.workers", DefaultWorkers)

	v.SetDefault("write.max_retries", DefaultWriteRetries)
	v.SetDefault("write.initial_delay", DefaultWriteInitialDelay)
	v.SetDefault("write.max_delay", DefaultWriteMaxDelay)

	v.SetDefault("watch.debounce", DefaultWatchDebounce)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}
