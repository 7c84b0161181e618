// Package fileutil provides bounded reads and atomic writes for the small
// snapshot files (host manifests, exported reports) mcplat deals with.
package fileutil

import (
	"os"
	"path/filepath"

	"github.com/thoreinstein/mcplat/internal/errors"
)

// AtomicWriteFile replaces path with data so readers see either the old
// file or the complete new one, never a partial write. The data is synced
// before the rename. The parent directory must exist.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) (err error) {
	// Same directory, so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".mcplat-atomic-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return errors.Wrap(err, "writing temp file")
	}
	if err = tmp.Chmod(perm); err != nil {
		return errors.Wrap(err, "setting file permissions")
	}
	if err = tmp.Sync(); err != nil {
		return errors.Wrap(err, "syncing temp file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err = os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "replacing %s", path)
	}
	return nil
}
