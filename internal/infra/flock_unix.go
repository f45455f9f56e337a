//go:build unix

package infra

import "syscall"

// tryLockFile takes a non-blocking exclusive advisory lock on fd. The OS
// releases the lock automatically when the holding process dies.
func tryLockFile(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_EX|syscall.LOCK_NB)
}

func unlockFile(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_UN)
}
