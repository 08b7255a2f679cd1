//go:build !linux

package mtd

// GetInfo always fails: MTD devices exist only on Linux.
func GetInfo(Descriptor) (Info, error) {
	return Info{}, ErrNotMTD
}

// Erase is unsupported off Linux.
func Erase(Descriptor, uint32, uint32) error {
	return ErrNotMTD
}
