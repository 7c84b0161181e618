package config

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/mcplat/internal/errors"
	"github.com/thoreinstein/mcplat/internal/platform"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrUnsupportedVersion indicates a schema version newer than this build understands.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidPlatform indicates an unrecognized platform name.
	ErrInvalidPlatform = errors.New("invalid platform")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrDuplicatePlugin indicates two plugins share a name.
	ErrDuplicatePlugin = errors.New("duplicate plugin")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	switch {
	case cfg.Version < 1:
		errs = append(errs, ErrVersionTooLow)
	case cfg.Version > CurrentVersion:
		errs = append(errs, errors.Mark(errors.Newf("unsupported config version: %d", cfg.Version), ErrUnsupportedVersion))
	}

	names := knownPlatforms()
	seen := make(map[string]bool, len(cfg.Plugins))
	for _, def := range cfg.Plugins {
		for _, err := range def.Validate() {
			errs = append(errs, errors.Wrap(err, "plugins"))
		}
		if def.Name == "" {
			continue
		}
		if seen[def.Name] {
			errs = append(errs, &PlatformError{Platform: def.Name, Err: ErrDuplicatePlugin})
		}
		seen[def.Name] = true
		names = append(names, def.Name)
	}

	if cfg.Platform != "" && !slices.Contains(names, cfg.Platform) {
		errs = append(errs, &PlatformError{
			Platform: cfg.Platform,
			Err:      ErrInvalidPlatform,
		})
	}

	for _, h := range cfg.Hosts {
		if err := validatePath(h); err != nil {
			errs = append(errs, &PathError{
				Field: "hosts",
				Path:  h,
				Err:   err,
			})
		}
	}

	return errs
}

func knownPlatforms() []string {
	builtins := platform.Builtins()
	names := make([]string, 0, len(builtins))
	for _, d := range builtins {
		names = append(names, d.Name())
	}
	return names
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrInvalidPath
	}

	// Check for null bytes which are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	// Clean the path and check it's not empty after cleaning
	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// PlatformError represents an error for a specific platform.
type PlatformError struct {
	Platform string
	Err      error
}

func (e *PlatformError) Error() string {
	return e.Err.Error() + ": " + e.Platform
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
