package utils

import (
	"io"
	"os"
	"path/filepath"

	"github.com/egerke001/halfop/internal/logger"
)

// WriteFileAtomic streams r into a temp file next to finalPath and renames it
// into place. On any failure the temp file is removed and finalPath is left
// untouched. An existing finalPath is replaced. perm is applied on a best
// effort basis. It returns the bytes written.
func WriteFileAtomic(finalPath string, r io.Reader, perm os.FileMode) (int64, error) {
	dir := filepath.Dir(finalPath)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(finalPath)+".*.part")
	if err != nil {
		return 0, err
	}
	tmpPath := tmp.Name()

	n, copyErr := io.Copy(tmp, r)
	syncErr := tmp.Sync()
	closeErr := tmp.Close()

	for _, err := range []error{copyErr, syncErr, closeErr} {
		if err != nil {
			_ = os.Remove(tmpPath)
			return n, err
		}
	}

	// Best effort: some filesystems have no permission bits to set.
	_ = os.Chmod(tmpPath, perm)

	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return n, err
	}
	syncDir(dir)
	return n, nil
}

// syncDir flushes the rename to disk. It is best effort: once the rename has
// succeeded the file is in place, so no failure here is reported.
func syncDir(dir string) {
	df, err := os.Open(dir)
	if err != nil {
		logger.Debug("open %s for sync: %v", dir, err)
		return
	}
	defer Try(df.Close)

	if err := df.Sync(); err != nil {
		logger.Debug("sync %s: %v", dir, err)
	}
}
