package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/autoload-priority/internal/autoload"
	"github.com/quantmind-br/autoload-priority/internal/domain"
)

// TestConfig_Validate tests configuration validation
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		check     func(*testing.T, *Config)
		wantErr   string
		wantField string
	}{
		{
			name:   "default config is valid",
			modify: func(c *Config) {},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, Default(), c)
			},
		},
		{
			name: "workers below minimum use default",
			modify: func(c *Config) {
				c.Concurrency.Workers = 0
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultWorkers, c.Concurrency.Workers)
			},
		},
		{
			name: "negative retries use default",
			modify: func(c *Config) {
				c.Write.MaxRetries = -1
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultWriteRetries, c.Write.MaxRetries)
			},
		},
		{
			name: "zero retries are kept",
			modify: func(c *Config) {
				c.Write.MaxRetries = 0
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 0, c.Write.MaxRetries)
			},
		},
		{
			name: "max delay below initial delay uses default",
			modify: func(c *Config) {
				c.Write.InitialDelay = time.Second
				c.Write.MaxDelay = time.Millisecond
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultWriteMaxDelay, c.Write.MaxDelay)
			},
		},
		{
			name: "tiny debounce uses default",
			modify: func(c *Config) {
				c.Watch.Debounce = time.Millisecond
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultWatchDebounce, c.Watch.Debounce)
			},
		},
		{
			name: "empty targets use defaults",
			modify: func(c *Config) {
				c.Targets = nil
				c.Project.Dir = ""
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultTargets(), c.Targets)
				assert.Equal(t, DefaultProjectDir, c.Project.Dir)
			},
		},
		{
			name: "target without path",
			modify: func(c *Config) {
				c.Targets = []TargetConfig{{Format: "static"}}
			},
			wantErr:   "path is required",
			wantField: "targets[0].path",
		},
		{
			name: "target with unknown format",
			modify: func(c *Config) {
				c.Targets = []TargetConfig{{Path: "x.php", Format: "psr4"}}
			},
			wantErr:   `unknown format "psr4"`,
			wantField: "targets[0].format",
		},
		{
			name: "custom target without end marker",
			modify: func(c *Config) {
				c.Targets = []TargetConfig{{Path: "x.php", Start: "return array("}}
			},
			wantErr:   "needs a format or both start and end markers",
			wantField: "targets[0].format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				var ve *domain.ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, tt.wantField, ve.Field)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestTargetConfig_AutoloadFormat(t *testing.T) {
	f, err := TargetConfig{Path: StaticManifest, Format: "static"}.AutoloadFormat()
	require.NoError(t, err)
	assert.Equal(t, autoload.StaticFormat, f)

	f, err = TargetConfig{Path: FilesManifest, Format: "files"}.AutoloadFormat()
	require.NoError(t, err)
	assert.Equal(t, autoload.FilesFormat, f)

	f, err = TargetConfig{Path: "custom.php", Start: "$files = [", End: "];"}.AutoloadFormat()
	require.NoError(t, err)
	assert.Equal(t, autoload.Format{Name: "custom.php", Start: "$files = [", End: "];"}, f)

	_, err = TargetConfig{Path: "x.php", Format: "psr4"}.AutoloadFormat()
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "format", ve.Field)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ".", cfg.Project.Dir)
	assert.Empty(t, cfg.Project.VendorDir)
	assert.Len(t, cfg.Targets, 2)
	assert.False(t, cfg.Targets[0].Optional)
	assert.True(t, cfg.Targets[1].Optional)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "pretty", cfg.Logging.Format)
	assert.Equal(t, filepath.Join(ConfigDir(), "autoload-priority.yaml"), ConfigFilePath())
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(dir)
	return dir
}

func TestLoadFrom_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DefaultWorkers, cfg.Concurrency.Workers)
	assert.Equal(t, DefaultWatchDebounce, cfg.Watch.Debounce)
	assert.Equal(t, DefaultTargets(), cfg.Targets)
}

func TestLoadFrom_ConfigFile(t *testing.T) {
	dir := isolate(t)

	content := `
project:
  vendor_dir: lib/vendor
promote:
  packages:
    - acme/helpers
    - acme/strings
  root: true
targets:
  - path: autoload_static.php
    format: static
concurrency:
  workers: 2
write:
  max_retries: 5
  initial_delay: 50ms
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "autoload-priority.yaml"), []byte(content), 0644))

	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "lib/vendor", cfg.Project.VendorDir)
	assert.Equal(t, []string{"acme/helpers", "acme/strings"}, cfg.Promote.Packages)
	assert.True(t, cfg.Promote.Root)
	require.Len(t, cfg.Targets, 1)
	assert.Equal(t, StaticManifest, cfg.Targets[0].Path)
	assert.Equal(t, 2, cfg.Concurrency.Workers)
	assert.Equal(t, 5, cfg.Write.MaxRetries)
	assert.Equal(t, 50*time.Millisecond, cfg.Write.InitialDelay)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFrom_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("AUTOLOAD_PRIORITY_LOGGING_LEVEL", "warn")
	t.Setenv("AUTOLOAD_PRIORITY_CONCURRENCY_WORKERS", "7")

	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 7, cfg.Concurrency.Workers)
}

func TestLoadFrom_InvalidFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "autoload-priority.yaml"), []byte("targets: [unclosed"), 0644))

	cfg, err := LoadFrom(viper.New())
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestSave_RoundTrip(t *testing.T) {
	dir := isolate(t)

	cfg := Default()
	cfg.Project.VendorDir = "lib/vendor"
	cfg.Promote.Packages = []string{"acme/helpers"}
	cfg.Promote.Root = true
	cfg.Watch.Debounce = 750 * time.Millisecond
	cfg.Logging.Level = "debug"

	require.NoError(t, Save(cfg, filepath.Join(dir, "autoload-priority.yaml")))

	loaded, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "lib/vendor", loaded.Project.VendorDir)
	assert.Equal(t, []string{"acme/helpers"}, loaded.Promote.Packages)
	assert.True(t, loaded.Promote.Root)
	assert.Equal(t, 750*time.Millisecond, loaded.Watch.Debounce)
	assert.Equal(t, DefaultWriteInitialDelay, loaded.Write.InitialDelay)
	assert.Equal(t, DefaultTargets(), loaded.Targets)
	assert.Equal(t, "debug", loaded.Logging.Level)
}

func TestMarshal_DurationsAreReadable(t *testing.T) {
	data, err := Marshal(Default())
	require.NoError(t, err)

	assert.Contains(t, string(data), "debounce: 300ms")
	assert.Contains(t, string(data), "max_delay: 2s")
	assert.NotContains(t, string(data), "vendor_dir")
}

func TestSave_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "autoload-priority.yaml")

	require.NoError(t, Save(Default(), path))
	assert.FileExists(t, path)
}
