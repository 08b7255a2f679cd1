//go:build linux || freebsd

package device

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// datasync performs file data sync.
//
// Character devices such as MTD may not implement fsync; EINVAL from those
// is not an error.
func datasync(f *os.File) error {
	err := unix.Fdatasync(int(f.Fd()))
	if errors.Is(err, unix.EINVAL) || errors.Is(err, unix.EROFS) {
		return nil
	}
	return err
}
