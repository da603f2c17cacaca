//go:build !windows

package validation

import "syscall"

func getDiskSpace(path string) (total int64, free int64, err error) {
	var stat syscall.Statfs_t
	err = syscall.Statfs(path, &stat)
	if err != nil {
		return 0, 0, err
	}

	total = int64(stat.Blocks) * int64(stat.Bsize)
	// Bavail, not Bfree: space left to an unprivileged user.
	free = int64(stat.Bavail) * int64(stat.Bsize)

	return total, free, nil
}
