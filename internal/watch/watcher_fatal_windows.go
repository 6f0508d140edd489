//go:build windows

package watch

import (
	"errors"
	"syscall"
)

// ERROR_NOT_ENOUGH_QUOTA is returned by ReadDirectoryChangesW when the
// watch buffer cannot be allocated
const errorNotEnoughQuota syscall.Errno = 1816

func isFatalFsnotifyError(err error) bool {
	return errors.Is(err, errorNotEnoughQuota)
}
