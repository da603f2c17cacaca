package validation

import (
	"fmt"
	"os"
	"path/filepath"

	"longsd/core"
)

// MinFreeImageSpace is the free space a run asks for below the layout root:
// a few hundred PNGs at the largest image size with room to spare.
const MinFreeImageSpace int64 = 512 * core.BytesPerMB

// DiskSpaceInfo contains information about disk space.
type DiskSpaceInfo struct {
	Path          string
	Total         int64
	Free          int64
	Used          int64
	FreeFormatted string
	UsedPercent   float64
}

// DiskSpaceError indicates a disk space problem.
type DiskSpaceError struct {
	Path      string
	Required  int64
	Available int64
	Message   string
}

func (e *DiskSpaceError) Error() string {
	return e.Message
}

// GetDiskSpace returns disk space information for the filesystem holding
// path. A path that does not exist yet is looked up through its nearest
// existing parent.
func GetDiskSpace(path string) (*DiskSpaceInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if parent := filepath.Dir(path); parent != path {
				return GetDiskSpace(parent)
			}
		}
		return nil, fmt.Errorf("cannot access path %s: %w", path, err)
	}

	if !info.IsDir() {
		path = filepath.Dir(path)
	}

	total, free, err := getDiskSpace(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get disk space for %s: %w", path, err)
	}

	used := total - free
	var usedPercent float64
	if total > 0 {
		usedPercent = float64(used) / float64(total) * 100
	}

	return &DiskSpaceInfo{
		Path:          path,
		Total:         total,
		Free:          free,
		Used:          used,
		FreeFormatted: core.FormatBytes(free),
		UsedPercent:   usedPercent,
	}, nil
}

// CheckDiskSpace returns a *DiskSpaceError if path has less than
// requiredBytes free.
func CheckDiskSpace(path string, requiredBytes int64) error {
	info, err := GetDiskSpace(path)
	if err != nil {
		return err
	}

	if info.Free < requiredBytes {
		return &DiskSpaceError{
			Path:      path,
			Required:  requiredBytes,
			Available: info.Free,
			Message: fmt.Sprintf("insufficient disk space at %s: need %s, have %s free",
				path, core.FormatBytes(requiredBytes), info.FreeFormatted),
		}
	}

	return nil
}
