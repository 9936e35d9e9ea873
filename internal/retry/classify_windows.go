//go:build windows

package retry

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// A telemetry writer that still has the file open makes DeleteFile fail
// with a sharing or lock violation until it closes the handle.
func init() {
	transientErrnos = append(transientErrnos,
		syscall.Errno(windows.ERROR_SHARING_VIOLATION),
		syscall.Errno(windows.ERROR_LOCK_VIOLATION),
	)
}
