package shutdown

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"longsd/core"
	"longsd/logging"
)

// tempImagePattern matches partially written images inside each document's
// image directory.
const tempImagePattern = ".*.png.tmp"

// CleanupTempImages returns a cleanup function that removes leftover
// temporary images under imagesRoot/*/. Removal failures are logged and do
// not fail the shutdown.
func CleanupTempImages(logger *logging.Logger, imagesRoot string) core.ShutdownFunc {
	return func(ctx context.Context) error {
		pattern := filepath.Join(imagesRoot, "*", tempImagePattern)
		matches, err := filepath.Glob(pattern)
		if err != nil {
			logger.Error("Failed to list temporary images", zap.String("pattern", pattern), zap.Error(err))
			return nil
		}
		if len(matches) == 0 {
			return nil
		}

		removed := 0
		for _, match := range matches {
			if ctx.Err() != nil {
				logger.Warn("Cleanup interrupted", zap.Int("remaining", len(matches)-removed))
				return nil
			}
			if err := os.Remove(match); err != nil && !os.IsNotExist(err) {
				logger.Warn("Failed to remove temporary image", zap.String("file", match), zap.Error(err))
				continue
			}
			removed++
		}

		logger.Info("Removed temporary images", zap.Int("count", removed))
		return nil
	}
}
