//go:build windows

package infra

import "golang.org/x/sys/windows"

// tryLockFile takes a non-blocking exclusive lock on the first byte of the
// file. Windows releases the lock when the holding process dies.
func tryLockFile(fd uintptr) error {
	return windows.LockFileEx(windows.Handle(fd),
		windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY,
		0, 1, 0, new(windows.Overlapped))
}

func unlockFile(fd uintptr) error {
	return windows.UnlockFileEx(windows.Handle(fd), 0, 1, 0, new(windows.Overlapped))
}
