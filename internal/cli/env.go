// Package cli wires configuration, host manifests, and platform resolution
// together for the mcplat commands.
package cli

import (
	"log/slog"

	"github.com/thoreinstein/mcplat/internal/config"
	"github.com/thoreinstein/mcplat/internal/errors"
	"github.com/thoreinstein/mcplat/internal/host"
	"github.com/thoreinstein/mcplat/internal/platform"
)

// Options selects what an Env is built from. Flag values take precedence
// over the configuration.
type Options struct {
	// Config is the loaded configuration; nil means defaults.
	Config *config.Config

	// HostFiles replaces the configured host manifests when non-empty.
	HostFiles []string

	// Platform forces the active platform by name when non-empty.
	Platform string

	// Logger receives resolution and host-lookup logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// Env is everything a command needs to inspect a host.
type Env struct {
	// Loader is the host being inspected.
	Loader host.Loader

	// Manifest is the merged manifest behind Loader, or nil when Loader is
	// the process default.
	Manifest *host.Manifest

	// Registry holds the configured plugin platforms.
	Registry *platform.Registry

	// Resolver searches the built-ins then Registry against Loader.
	Resolver *platform.Resolver

	// Forced is the platform named by Options.Platform or the
	// configuration, if any. It is already installed on Resolver.
	Forced platform.Descriptor
}

// NewEnv builds the host loader, registers configured plugins, and creates
// a resolver bound to that host.
func NewEnv(opts Options) (*Env, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{Version: config.CurrentVersion}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	files := opts.HostFiles
	if len(files) == 0 {
		var err error
		if files, err = cfg.HostFiles(); err != nil {
			return nil, errors.NewConfigError(err)
		}
	}

	env := &Env{Loader: host.Default()}
	if len(files) > 0 {
		loader, manifest, err := host.LoadManifests(files...)
		if err != nil {
			return nil, errors.NewUserError(err, "Check the host manifest (see: mcplat host show --help)")
		}
		env.Loader, env.Manifest = loader, manifest
		logger.Info("loaded host manifests", "files", len(files), "classes", len(manifest.Classes))
	}
	loader := host.Traced(env.Loader, logger)

	env.Registry = platform.NewRegistry()
	if err := cfg.RegisterPlugins(env.Registry, platform.WithLoader(loader)); err != nil {
		return nil, errors.NewConfigError(err)
	}

	env.Resolver = platform.NewResolver(
		platform.WithBuiltins(platform.NewBuiltins(platform.WithLoader(loader))...),
		platform.WithRegistry(env.Registry),
		platform.WithLogger(logger),
	)

	name := opts.Platform
	if name == "" {
		name = cfg.Platform
	}
	if name != "" {
		d, err := env.Resolver.Lookup(name)
		if err != nil {
			return nil, errors.NewUserError(err, "Run 'mcplat list' to see available platforms")
		}
		env.Resolver.SetCurrent(d)
		env.Forced = d
	}

	return env, nil
}

// ResolveError converts a resolution failure into an ExitError. Exhaustion
// is a user error; an integrity failure is a system error.
func ResolveError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, platform.ErrNoSupportedPlatform):
		return errors.NewUserError(err, "Use --platform to choose one, or --interactive to pick from a list")
	case errors.Is(err, platform.ErrIntegrity):
		return errors.NewSystemError(err, "The host exposes a platform API that could not be used; run with -vvv to trace lookups")
	default:
		return errors.NewSystemError(err, "")
	}
}
