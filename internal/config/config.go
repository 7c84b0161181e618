// Package config provides configuration management for mcplat using Viper.
package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/thoreinstein/mcplat/internal/errors"
	"github.com/thoreinstein/mcplat/internal/paths"
	"github.com/thoreinstein/mcplat/internal/platform"
)

// CurrentVersion is the only configuration schema version understood.
const CurrentVersion = 1

// EnvPrefix prefixes environment overrides, e.g. MCPLAT_PLATFORM.
const EnvPrefix = "MCPLAT"

// envConfigDir names an extra directory searched for config.yaml before the
// defaults.
const envConfigDir = EnvPrefix + "_CONFIG_DIR"

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`

	// Platform forces the active platform by name, skipping detection.
	Platform string `mapstructure:"platform" yaml:"platform,omitempty"`

	// Hosts lists host manifest files. When empty, manifests in
	// paths.HostsDir() are used.
	Hosts []string `mapstructure:"hosts" yaml:"hosts,omitempty"`

	// Plugins declares additional platforms, consulted after the built-ins
	// in the order listed.
	Plugins []platform.Definition `mapstructure:"plugins" yaml:"plugins,omitempty"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
// Calling it again discards any previously loaded file.
func Init() {
	viper.Reset()

	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	if dir := os.Getenv(envConfigDir); dir != "" {
		viper.AddConfigPath(dir)
	}
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	// Environment variable support
	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("version", CurrentVersion)
	viper.SetDefault("platform", "")
	viper.SetDefault("hosts", []string{})
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
// The result is validated; the first problem is returned wrapped with
// "validating config".
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}

	if errs := Validate(cfg); len(errs) > 0 {
		return nil, errors.Wrap(errs[0], "validating config")
	}

	return cfg, nil
}

// Read is Load without validation. Callers that want every problem, not
// just the first, pass the result to Validate.
func Read(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// Implicit load without a file is fine; defaults apply.
		case path != "" && os.IsNotExist(err):
			return nil, errors.Wrapf(errors.ErrNotFound, "config file %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	return &cfg, nil
}

// FileUsed returns the configuration file read by Load, or "" if none.
func FileUsed() string {
	return viper.ConfigFileUsed()
}

// HostFiles returns the host manifest paths to load: the configured ones
// with "~" expanded, or the manifests found in paths.HostsDir().
func (c *Config) HostFiles() ([]string, error) {
	if len(c.Hosts) == 0 {
		return paths.ManifestFiles(paths.HostsDir())
	}

	files := make([]string, 0, len(c.Hosts))
	for _, h := range c.Hosts {
		p, err := paths.Expand(h)
		if err != nil {
			return nil, err
		}
		files = append(files, p)
	}
	return files, nil
}

// RegisterPlugins builds every configured plugin into reg.
func (c *Config) RegisterPlugins(reg *platform.Registry, opts ...platform.Option) error {
	return platform.RegisterDefinitions(reg, c.Plugins, opts...)
}
