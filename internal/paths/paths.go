package paths

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/mcplat/internal/errors"
)

// AppName names the per-user configuration directory.
const AppName = "mcplat"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// manifestExts are the extensions recognized by ManifestFiles.
var manifestExts = []string{".yaml", ".yml", ".toml", ".json"}

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns <ConfigHome>/mcplat.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// HostsDir returns the directory scanned for host manifests when the
// configuration names none: <ConfigDir>/hosts.
func HostsDir() string {
	return filepath.Join(ConfigDir(), "hosts")
}

// Expand replaces a leading "~" with the home directory and cleans the result.
func Expand(path string) (string, error) {
	if path == "" || strings.ContainsRune(path, '\x00') {
		return "", errors.Wrapf(ErrInvalidPath, "%q", path)
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := ResolveHome()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return filepath.Clean(path), nil
}

// ManifestFiles lists the host manifests directly inside dir, sorted by name.
// A missing directory yields no files and no error.
func ManifestFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading %s", dir)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if slices.Contains(manifestExts, strings.ToLower(filepath.Ext(e.Name()))) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}
