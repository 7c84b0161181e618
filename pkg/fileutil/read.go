package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/mcplat/internal/errors"
)

// MaxFileSize caps what ReadFileWithLimit will read. Host manifests are small;
// anything larger is rejected.
const MaxFileSize = 1 << 20

// ErrFileTooLarge indicates that a file exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads a file of at most MaxFileSize bytes.
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > MaxFileSize {
		return nil, errors.Wrapf(ErrFileTooLarge, "%s is %d bytes", path, info.Size())
	}
	return readWithLimit(f, MaxFileSize)
}

// readWithLimit reads r until EOF, failing once more than limit bytes arrive.
// The limit holds even when a stat size is missing or wrong.
func readWithLimit(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if int64(len(data)) > limit {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
