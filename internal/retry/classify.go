package retry

import (
	"context"
	"errors"
	"io/fs"
	"syscall"
)

// transientErrnos are errno values that usually clear up on their own:
// a file held by another process, an interrupted call, a flaky device.
var transientErrnos = []syscall.Errno{
	syscall.EBUSY,
	syscall.ETXTBSY,
	syscall.EAGAIN,
	syscall.EINTR,
	syscall.EIO,
}

// IsTransient reports whether a filesystem error is worth retrying.
// Missing files, permission problems and context errors never are.
func IsTransient(err error) bool {
	if err == nil || IsPermanent(err) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	for _, errno := range transientErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}

	var temporary interface{ Temporary() bool }
	if errors.As(err, &temporary) && temporary.Temporary() {
		return true
	}
	var timeout interface{ Timeout() bool }
	if errors.As(err, &timeout) && timeout.Timeout() {
		return true
	}

	return false
}

// IsPermanent reports whether err will not go away by retrying within
// the same sweep: the file is gone or access is denied.
func IsPermanent(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission)
}
