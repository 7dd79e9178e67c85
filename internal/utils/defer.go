package utils

import "github.com/egerke001/halfop/internal/logger"

// Try runs a deferred cleanup and logs its error at debug level.
func Try(f func() error) {
	if err := f(); err != nil {
		logger.Debug("deferred cleanup failed: %v", err)
	}
}
