//go:build !linux && !freebsd

package device

import "os"

func datasync(f *os.File) error {
	return f.Sync()
}
